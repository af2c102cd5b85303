package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() {
		logger.SetOutput(newLogger().Out)
		logger.SetLevel(logrus.InfoLevel)
	})
	return buf
}

func TestLog(t *testing.T) {
	testCases := []struct {
		name        string
		setLevel    string
		logLevel    string
		expectEntry bool
	}{
		{name: "info_at_info", setLevel: Info, logLevel: Info, expectEntry: true},
		{name: "debug_at_info", setLevel: Info, logLevel: Debug, expectEntry: false},
		{name: "debug_at_debug", setLevel: "debug", logLevel: Debug, expectEntry: true},
		{name: "info_at_error", setLevel: Error, logLevel: Info, expectEntry: false},
		{name: "error_at_error", setLevel: Error, logLevel: Error, expectEntry: true},
		{name: "unknown_level_falls_back", setLevel: "verbose", logLevel: Info, expectEntry: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureOutput(t)
			SetLogLevel(tc.setLevel)
			buf.Reset()

			Log(tc.logLevel, "hello %s", "world")

			if tc.expectEntry {
				assert.Contains(t, buf.String(), "hello world")
				assert.Contains(t, buf.String(), "logging_test.go:")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel(Info)

	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?username=Dave", nil))

	requestID := recorder.Header().Get("X-Request-Id")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.NotEmpty(t, requestID)
	assert.Contains(t, buf.String(), "requestId="+requestID)
	assert.Contains(t, buf.String(), "status=400")
	assert.Contains(t, buf.String(), "GET /?username=Dave HTTP/1.1")
}

func TestClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{name: "ipv4", remoteAddr: "192.0.2.1:1234", expected: "192.0.2.1"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:1234", expected: "2001:db8::1"},
		{name: "no_port", remoteAddr: "192.0.2.1", expected: "192.0.2.1"},
		{name: "empty", remoteAddr: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, clientIP(tc.remoteAddr))
		})
	}
}

func TestRequestLoggerIPv6(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel(Info)

	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "[2001:db8::1]:1234"
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Contains(t, buf.String(), `client="2001:db8::1"`)
}

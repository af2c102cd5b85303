package logging

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Log levels
const (
	Debug = "DEBUG"
	Info  = "INFO"
	Error = "ERROR"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.999",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

func toLogrus(level string) (logrus.Level, error) {
	switch strings.ToUpper(level) {
	case Debug:
		return logrus.DebugLevel, nil
	case Info:
		return logrus.InfoLevel, nil
	case Error:
		return logrus.ErrorLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// SetLogLevel sets the current log level. Unknown levels fall back to Info.
func SetLogLevel(level string) {
	l, err := toLogrus(level)
	logger.SetLevel(l)
	if err != nil {
		logger.Warn(err)
	}
}

// Log logs a message with file and line number information at the specified level.
func Log(level string, message string, args ...any) {
	l, _ := toLogrus(level)
	if !logger.IsLevelEnabled(l) {
		return
	}
	entry := logrus.NewEntry(logger)
	if _, file, line, ok := runtime.Caller(1); ok {
		_, filename := filepath.Split(file)
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filename, line))
	}
	entry.Logf(l, message, args...)
}

type StatusRecorder struct {
	http.ResponseWriter
	StatusCode int
}

func (r *StatusRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// clientIP strips the port from a RemoteAddr, handling bracketed IPv6 hosts.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// RequestLogger writes one access log line per request, tagged with a request id
// that is also returned to the client in X-Request-Id.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		recorder := &StatusRecorder{
			ResponseWriter: w,
			StatusCode:     http.StatusOK,
		}

		h.ServeHTTP(recorder, r)
		referer := r.Referer()
		if referer == "" {
			referer = "-"
		}
		logger.WithFields(logrus.Fields{
			"requestId": requestID,
			"client":    clientIP(r.RemoteAddr),
			"status":    recorder.StatusCode,
		}).Infof("\"%s %s %s\" \"%s\" \"%s\"", r.Method, r.URL.RequestURI(), r.Proto, referer, r.UserAgent())
	})
}

package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrUnexpectedStatus = errors.New("unexpected webhook response status")

// Client posts JSON payloads to a single webhook endpoint. It is safe for
// concurrent use.
type Client struct {
	URL    string
	client *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return &Client{
		URL: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post sends payload as the request body and returns the response status code.
// A non-2xx response yields ErrUnexpectedStatus alongside the code.
func (c *Client) Post(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp.StatusCode, nil
}

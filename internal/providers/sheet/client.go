package sheet

import (
	"context"
	"net/http"
	"time"

	"course-catalog/internal/httpx"
)

const userAgent = "course-catalog/1.0"

type Client struct {
	HTTP *http.Client
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTP: &http.Client{Timeout: timeout},
	}
}

// Fetch performs one read of a published sheet endpoint.
// Failures are *httpx.FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	body, err := httpx.Get(ctx, c.HTTP, url, http.Header{
		"User-Agent": {userAgent},
		"Accept":     {"text/csv, application/json, text/plain, */*"},
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

package trainsdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"github.com/rs/zerolog/log"
)

var ErrUnexpectedStatus = errors.New("trainsdata: unexpected response status")

// Client performs the single GET against the trains data endpoint. It never
// retries.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = constant.FEED_URL
	}
	if timeout <= 0 {
		timeout = constant.FEED_TIMEOUT
	}
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = timeout
	return &Client{url: url, httpClient: httpClient}
}

// Fetch returns the raw encrypted body.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.FEED_USER_AGENT)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("trainsdata: fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("trainsdata: read body: %w", err)
	}
	log.Debug().
		Str("url", c.url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("fetched trains data")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return string(body), nil
}

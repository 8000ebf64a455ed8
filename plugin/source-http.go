package plugin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	Kt "github.com/maroda/kinetic/types"
)

const (
	webTimeout = 10 * time.Second
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Shared HTTP Client
var sharedHTTPClient = &http.Client{
	Timeout: webTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	},
}

// SingleFetchWithClient handles the messy business of the HTTP connection
// and is testable with dependency injection
func SingleFetchWithClient(ctx context.Context, url string, c HTTPClient) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		slog.Error("Fetch Error", slog.Any("Error", err))
		return 0, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("Close Error", slog.Any("Error", err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Could not read body", slog.Any("Error", err))
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// HTTPSource fetches the dataset as a JSON array of rows
type HTTPSource struct {
	URL    string
	Client HTTPClient
}

// NewHTTPSource uses the shared client:
// - to reuse existing endpoint connections
// - to avoid stale connections that eat up OS FDs
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: sharedHTTPClient}
}

func (hs *HTTPSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	code, body, err := SingleFetchWithClient(ctx, hs.URL, hs.Client)
	if err != nil {
		return nil, fmt.Errorf("http source fetch error: %w", err)
	}
	if code != http.StatusOK {
		slog.Error("HTTPSource bad status",
			slog.String("url", hs.URL),
			slog.Int("code", code))
		return nil, fmt.Errorf("http source status: %d", code)
	}

	return DecodeRows(body)
}

func (hs *HTTPSource) Close() error { return nil }
func (hs *HTTPSource) Type() string { return "http" }

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"travelplanner/pkg/utils"
)

const (
	RequestTimeout = 10 * time.Second
	browserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxPageBytes   = 2 << 20
)

// NewHTTPClient returns the client shared by every provider. Requests are never retried.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: RequestTimeout}
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, out any) error {
	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", utils.ErrProviderRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", utils.ErrProviderRequest, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: bad status: %s", utils.ErrProviderRequest, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %w", utils.ErrProviderRequest, err)
	}
	return nil
}

// fetchPage downloads an HTML page the way a browser would.
func fetchPage(ctx context.Context, client *http.Client, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", utils.ErrProviderRequest, err)
	}
	req.Header.Set("User-Agent", browserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrProviderRequest, err)
	}
	if resp.StatusCode/100 != 2 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: bad status: %s", utils.ErrProviderRequest, resp.Status)
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxPageBytes), resp.Body}, nil
}

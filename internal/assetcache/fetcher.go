package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxAssetSize caps how much of a response body is buffered.
const maxAssetSize = 10 * 1024 * 1024

// ErrAssetTooLarge is returned for bodies over maxAssetSize. Nothing partial is
// handed back, so a truncated asset can never reach the cache.
var ErrAssetTooLarge = errors.New("asset exceeds size limit")

// Fetcher performs the network half of the fetch policy.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Response, error)
}

// HTTPFetcher fetches assets from a fixed origin.
type HTTPFetcher struct {
	origin *url.URL
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher returns a fetcher for origin (e.g. "http://localhost:3000").
// A nil client means http.DefaultClient.
func NewHTTPFetcher(origin string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid asset origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid asset origin %q: scheme and host are required", origin)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{origin: u, client: client}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid asset path %q: %w", path, err)
	}
	target := f.origin.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "gym-buddy-asset-cache/1.0")
	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer res.Body.Close()

	if res.ContentLength > maxAssetSize {
		return nil, fmt.Errorf("fetch %s: %w (%d bytes)", target, ErrAssetTooLarge, res.ContentLength)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if len(body) > maxAssetSize {
		return nil, fmt.Errorf("fetch %s: %w", target, ErrAssetTooLarge)
	}

	// Redirects may land on another origin; only the final URL counts.
	final := target
	if res.Request != nil && res.Request.URL != nil {
		final = res.Request.URL
	}
	respType := TypeCORS
	if final.Scheme == f.origin.Scheme && final.Host == f.origin.Host {
		respType = TypeBasic
	}

	return &Response{
		Status: res.StatusCode,
		Header: res.Header.Clone(),
		Body:   body,
		Type:   respType,
		URL:    final.String(),
	}, nil
}

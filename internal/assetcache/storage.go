package assetcache

import "context"

// Storage holds named caches of responses keyed by request path.
type Storage interface {
	// CacheNames lists every cache that currently holds at least one entry.
	CacheNames(ctx context.Context) ([]string, error)
	// Match returns the cached response for path, or found=false.
	Match(ctx context.Context, cacheName, path string) (resp *Response, found bool, err error)
	// Put stores resp under path in the named cache, replacing any previous entry.
	Put(ctx context.Context, cacheName, path string, resp *Response) error
	// DeleteCache removes a cache and all its entries.
	DeleteCache(ctx context.Context, cacheName string) error
}

package assetcache

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cacheNamePrefix = "gym-buddy-"

// DefaultManifest is the app shell cached on install.
var DefaultManifest = []string{"/", "/index.html", "/manifest.json", "/logo192.png", "/logo512.png"}

// CacheName returns the cache name for an asset version, e.g. "gym-buddy-v1".
func CacheName(version string) string {
	return cacheNamePrefix + version
}

// Worker applies the cache policy for one cache version.
type Worker struct {
	cacheName string
	manifest  []string
	store     Storage
	fetcher   Fetcher
}

// NewWorker creates a worker. An empty manifest falls back to DefaultManifest.
func NewWorker(cacheName string, manifest []string, store Storage, fetcher Fetcher) *Worker {
	if len(manifest) == 0 {
		manifest = DefaultManifest
	}
	return &Worker{
		cacheName: cacheName,
		manifest:  append([]string(nil), manifest...),
		store:     store,
		fetcher:   fetcher,
	}
}

func (w *Worker) CacheName() string { return w.cacheName }

// Install fetches every manifest asset and stores them under the current cache.
// Nothing is written unless every fetch succeeds with 200.
func (w *Worker) Install(ctx context.Context) error {
	fetched := make([]*Response, len(w.manifest))
	for i, path := range w.manifest {
		resp, err := w.fetcher.Fetch(ctx, path)
		if err != nil {
			return fmt.Errorf("install %s: %w", w.cacheName, err)
		}
		if resp.Status != http.StatusOK {
			return fmt.Errorf("install %s: %s returned status %d", w.cacheName, path, resp.Status)
		}
		fetched[i] = resp
	}

	for i, path := range w.manifest {
		if err := w.store.Put(ctx, w.cacheName, path, fetched[i]); err != nil {
			return fmt.Errorf("install %s: %w", w.cacheName, err)
		}
	}
	log.Printf("INFO: Opened cache %s with %d assets", w.cacheName, len(w.manifest))
	return nil
}

// Activate deletes every cache except the current one.
func (w *Worker) Activate(ctx context.Context) error {
	names, err := w.store.CacheNames(ctx)
	if err != nil {
		return fmt.Errorf("activate %s: %w", w.cacheName, err)
	}
	for _, name := range names {
		if name == w.cacheName {
			continue
		}
		log.Printf("INFO: Deleting old cache: %s", name)
		if err := w.store.DeleteCache(ctx, name); err != nil {
			return fmt.Errorf("activate %s: %w", w.cacheName, err)
		}
	}
	return nil
}

// Fetch answers from the current cache, else from the network. A 200
// same-origin network response is stored before being returned. Network
// errors are returned to the caller unchanged.
func (w *Worker) Fetch(ctx context.Context, path string) (*Response, error) {
	cached, found, err := w.store.Match(ctx, w.cacheName, path)
	if err != nil {
		log.Printf("WARN: Asset cache lookup for %s failed: %v", path, err)
	} else if found {
		return cached, nil
	}

	resp, err := w.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.Cacheable() {
		return resp, nil
	}
	if err := w.store.Put(ctx, w.cacheName, path, resp.Clone()); err != nil {
		log.Printf("WARN: Failed to cache %s: %v", path, err)
	}
	return resp, nil
}

// hop-by-hop and length headers are recomputed by gin.
var skipHeaders = map[string]bool{
	"Content-Length":    true,
	"Connection":        true,
	"Transfer-Encoding": true,
	"Keep-Alive":        true,
}

// Handler serves GET and HEAD requests through Fetch. Intended for gin's NoRoute.
func (w *Worker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}

		resp, err := w.Fetch(c.Request.Context(), c.Request.URL.RequestURI())
		if err != nil {
			log.Printf("ERROR: Asset fetch for %s failed: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Asset unavailable"})
			return
		}

		for key, values := range resp.Header {
			if skipHeaders[http.CanonicalHeaderKey(key)] {
				continue
			}
			for _, v := range values {
				c.Writer.Header().Add(key, v)
			}
		}
		c.Data(resp.Status, resp.Header.Get("Content-Type"), resp.Body)
	}
}

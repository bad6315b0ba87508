package app

import (
	"alcyxob/gym-buddy/internal/assetcache"
	"alcyxob/gym-buddy/internal/config"
	"alcyxob/gym-buddy/internal/storage"
	"context"
	"fmt"
	"net/http"
	"time"
)

// NewAssetWorker builds the asset cache for cfg, or returns nil when no origin
// is configured.
func NewAssetWorker(ctx context.Context, cfg config.Config) (*assetcache.Worker, error) {
	if cfg.AssetCache.Origin == "" {
		return nil, nil
	}

	var store assetcache.Storage
	switch cfg.AssetCache.Backend {
	case config.CacheBackendMemory, "":
		store = assetcache.NewMemoryStorage()
	case config.CacheBackendS3:
		objects, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		store = assetcache.NewObjectStorageBackend(objects, cfg.AssetCache.Prefix)
	default:
		return nil, fmt.Errorf("unknown asset cache backend %q", cfg.AssetCache.Backend)
	}

	fetcher, err := assetcache.NewHTTPFetcher(cfg.AssetCache.Origin, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		return nil, err
	}
	return assetcache.NewWorker(assetcache.CacheName(cfg.AssetCache.Version), cfg.AssetCache.Manifest, store, fetcher), nil
}

package assetcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"alcyxob/gym-buddy/internal/storage"
)

// ObjectStorageBackend keeps each cached response as a JSON object at
// <prefix>/<cacheName>/<escaped path>.
type ObjectStorageBackend struct {
	objects storage.ObjectStorage
	prefix  string
}

var _ Storage = (*ObjectStorageBackend)(nil)

func NewObjectStorageBackend(objects storage.ObjectStorage, prefix string) *ObjectStorageBackend {
	return &ObjectStorageBackend{objects: objects, prefix: strings.Trim(prefix, "/")}
}

func (s *ObjectStorageBackend) cachePrefix(cacheName string) string {
	if s.prefix == "" {
		return cacheName + "/"
	}
	return s.prefix + "/" + cacheName + "/"
}

func (s *ObjectStorageBackend) objectKey(cacheName, path string) string {
	// PathEscape turns "/" into %2F so every entry sits directly under the cache prefix.
	return s.cachePrefix(cacheName) + url.PathEscape(path)
}

func (s *ObjectStorageBackend) CacheNames(ctx context.Context) ([]string, error) {
	root := ""
	if s.prefix != "" {
		root = s.prefix + "/"
	}
	prefixes, err := s.objects.ListPrefixes(ctx, root, "/")
	if err != nil {
		return nil, fmt.Errorf("list asset caches: %w", err)
	}
	names := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		name := strings.TrimSuffix(strings.TrimPrefix(p, root), "/")
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *ObjectStorageBackend) Match(ctx context.Context, cacheName, path string) (*Response, bool, error) {
	obj, err := s.objects.GetObject(ctx, s.objectKey(cacheName, path))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached asset %q: %w", path, err)
	}
	var resp Response
	if err := json.Unmarshal(obj.Body, &resp); err != nil {
		return nil, false, fmt.Errorf("decode cached asset %q: %w", path, err)
	}
	return &resp, true, nil
}

func (s *ObjectStorageBackend) Put(ctx context.Context, cacheName, path string, resp *Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode asset %q: %w", path, err)
	}
	err = s.objects.PutObject(ctx, s.objectKey(cacheName, path), storage.Object{
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("store asset %q: %w", path, err)
	}
	return nil
}

func (s *ObjectStorageBackend) DeleteCache(ctx context.Context, cacheName string) error {
	keys, err := s.objects.ListKeys(ctx, s.cachePrefix(cacheName))
	if err != nil {
		return fmt.Errorf("list cache %s: %w", cacheName, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.objects.DeleteObjects(ctx, keys); err != nil {
		return fmt.Errorf("delete cache %s: %w", cacheName, err)
	}
	return nil
}

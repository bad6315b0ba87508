package assetcache

import (
	"context"
	"log"
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// keySep cannot appear in a cache name or an escaped request URI.
const keySep = "\x00"

// MemoryStorage keeps caches in process memory. Entries never expire; only
// DeleteCache removes them.
type MemoryStorage struct {
	cache *gocache.Cache
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{cache: gocache.New(gocache.NoExpiration, 0)}
}

func memoryKey(cacheName, path string) string {
	return cacheName + keySep + path
}

func (m *MemoryStorage) CacheNames(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for key := range m.cache.Items() {
		name, _, ok := strings.Cut(key, keySep)
		if ok {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStorage) Match(ctx context.Context, cacheName, path string) (*Response, bool, error) {
	value, found := m.cache.Get(memoryKey(cacheName, path))
	if !found {
		return nil, false, nil
	}
	resp, ok := value.(*Response)
	if !ok {
		log.Printf("WARN: Asset cache entry %q in %s has unexpected type %T", path, cacheName, value)
		return nil, false, nil
	}
	return resp.Clone(), true, nil
}

func (m *MemoryStorage) Put(ctx context.Context, cacheName, path string, resp *Response) error {
	m.cache.Set(memoryKey(cacheName, path), resp.Clone(), gocache.NoExpiration)
	return nil
}

func (m *MemoryStorage) DeleteCache(ctx context.Context, cacheName string) error {
	prefix := cacheName + keySep
	for key := range m.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			m.cache.Delete(key)
		}
	}
	return nil
}

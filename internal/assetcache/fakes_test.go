package assetcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"alcyxob/gym-buddy/internal/storage"
)

// fakeObjects is an in-memory storage.ObjectStorage.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string]storage.Object
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string]storage.Object)}
}

func (f *fakeObjects) PutObject(ctx context.Context, key string, obj storage.Object) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = obj
	return nil
}

func (f *fakeObjects) GetObject(ctx context.Context, key string) (*storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &obj, nil
}

func (f *fakeObjects) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeObjects) ListPrefixes(ctx context.Context, prefix, delimiter string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]struct{}{}
	for k := range f.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if i := strings.Index(rest, delimiter); i >= 0 {
			seen[prefix+rest[:i+len(delimiter)]] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeObjects) DeleteObjects(ctx context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.objects, k)
	}
	return nil
}

// stubFetcher answers from a fixed table and counts calls per path.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]*Response
	failing   map[string]bool
	calls     map[string]int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		responses: map[string]*Response{},
		failing:   map[string]bool{},
		calls:     map[string]int{},
	}
}

func (s *stubFetcher) serve(path string, status int, body string, typ ResponseType) {
	s.responses[path] = &Response{
		Status: status,
		Header: http.Header{"Content-Type": []string{"text/plain"}},
		Body:   []byte(body),
		Type:   typ,
		URL:    "http://app.local" + path,
	}
}

func (s *stubFetcher) Fetch(ctx context.Context, path string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[path]++
	if s.failing[path] {
		return nil, errors.New("network down")
	}
	resp, ok := s.responses[path]
	if !ok {
		return &Response{Status: http.StatusNotFound, Type: TypeBasic, Header: http.Header{}}, nil
	}
	return resp.Clone(), nil
}

func (s *stubFetcher) callCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func serveManifest(f *stubFetcher) {
	for _, p := range DefaultManifest {
		f.serve(p, http.StatusOK, fmt.Sprintf("asset %s", p), TypeBasic)
	}
}

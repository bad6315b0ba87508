package assetcache

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageBackends() map[string]func() Storage {
	return map[string]func() Storage{
		"memory": func() Storage { return NewMemoryStorage() },
		"object": func() Storage { return NewObjectStorageBackend(newFakeObjects(), "asset-cache") },
	}
}

func TestStorage_PutMatchDelete(t *testing.T) {
	for name, newStore := range storageBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore()

			resp := &Response{Status: 200, Header: http.Header{"Content-Type": {"text/html"}}, Body: []byte("<html>"), Type: TypeBasic}
			require.NoError(t, s.Put(ctx, "gym-buddy-v1", "/", resp))
			require.NoError(t, s.Put(ctx, "gym-buddy-v1", "/index.html", resp))
			require.NoError(t, s.Put(ctx, "gym-buddy-v0", "/", resp))

			got, found, err := s.Match(ctx, "gym-buddy-v1", "/")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []byte("<html>"), got.Body)
			assert.Equal(t, "text/html", got.Header.Get("Content-Type"))

			_, found, err = s.Match(ctx, "gym-buddy-v1", "/missing.png")
			require.NoError(t, err)
			assert.False(t, found)

			names, err := s.CacheNames(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"gym-buddy-v0", "gym-buddy-v1"}, names)

			require.NoError(t, s.DeleteCache(ctx, "gym-buddy-v0"))
			names, err = s.CacheNames(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"gym-buddy-v1"}, names)

			_, found, err = s.Match(ctx, "gym-buddy-v1", "/index.html")
			require.NoError(t, err)
			assert.True(t, found, "deleting one cache leaves the others intact")
		})
	}
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	resp := &Response{Status: 200, Body: []byte("abc"), Type: TypeBasic}
	require.NoError(t, s.Put(ctx, "c", "/a", resp))

	resp.Body[0] = 'X'
	got, _, err := s.Match(ctx, "c", "/a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got.Body))

	got.Body[0] = 'Y'
	again, _, err := s.Match(ctx, "c", "/a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again.Body))
}

func TestObjectStorageBackend_KeyLayout(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	s := NewObjectStorageBackend(objects, "/asset-cache/")

	require.NoError(t, s.Put(ctx, "gym-buddy-v1", "/logo192.png", &Response{Status: 200, Type: TypeBasic}))

	keys, err := objects.ListKeys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"asset-cache/gym-buddy-v1/%2Flogo192.png"}, keys)
}

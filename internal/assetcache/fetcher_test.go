package assetcache

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_SameOrigin(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	defer origin.Close()

	f, err := NewHTTPFetcher(origin.URL, origin.Client())
	require.NoError(t, err)

	resp, err := f.Fetch(context.Background(), "/manifest.json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, TypeBasic, resp.Type)
	assert.JSONEq(t, `{"path":"/manifest.json"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.True(t, resp.Cacheable())
}

func TestHTTPFetcher_RedirectToOtherOrigin(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("font"))
	}))
	defer cdn.Close()
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cdn.URL+"/font.woff2", http.StatusFound)
	}))
	defer origin.Close()

	f, err := NewHTTPFetcher(origin.URL, nil)
	require.NoError(t, err)

	resp, err := f.Fetch(context.Background(), "/font.woff2")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, TypeCORS, resp.Type)
	assert.False(t, resp.Cacheable())
}

func TestHTTPFetcher_NetworkError(t *testing.T) {
	origin := httptest.NewServer(http.NotFoundHandler())
	url := origin.URL
	origin.Close()

	f, err := NewHTTPFetcher(url, nil)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "/")
	assert.Error(t, err)
}

func TestNewHTTPFetcher_RejectsRelativeOrigin(t *testing.T) {
	_, err := NewHTTPFetcher("localhost", nil)
	assert.Error(t, err)
}

func TestHTTPFetcher_OversizedBody(t *testing.T) {
	big := bytes.Repeat([]byte("a"), maxAssetSize+1024)
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bundle.js" {
			w.Header().Set("Content-Length", strconv.Itoa(len(big)))
		}
		_, _ = w.Write(big)
	}))
	defer origin.Close()

	f, err := NewHTTPFetcher(origin.URL, origin.Client())
	require.NoError(t, err)

	for _, path := range []string{"/bundle.js", "/chunked.js"} {
		resp, err := f.Fetch(context.Background(), path)
		assert.ErrorIs(t, err, ErrAssetTooLarge, path)
		assert.Nil(t, resp, path)
	}
}

func TestHTTPFetcher_BodyAtLimit(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxAssetSize))
	}))
	defer origin.Close()

	f, err := NewHTTPFetcher(origin.URL, origin.Client())
	require.NoError(t, err)
	resp, err := f.Fetch(context.Background(), "/bundle.js")
	require.NoError(t, err)
	assert.Len(t, resp.Body, maxAssetSize)
}

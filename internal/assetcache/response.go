// Package assetcache keeps the web app's static assets available offline.
//
// It follows the install / activate / fetch lifecycle of a browser service
// worker: Install pre-caches a manifest under a versioned cache name,
// Activate drops every other cache, and Fetch answers cache-first, falling
// back to the origin and caching successful same-origin responses.
package assetcache

import (
	"net/http"
)

// ResponseType mirrors the browser's Response.type for the cases we care about.
type ResponseType string

const (
	TypeBasic ResponseType = "basic" // Same-origin response
	TypeCORS  ResponseType = "cors"  // Served from a different origin
)

// Response is a fully buffered HTTP response.
type Response struct {
	Status int          `json:"status"`
	Header http.Header  `json:"header"`
	Body   []byte       `json:"body"`
	Type   ResponseType `json:"type"`
	URL    string       `json:"url"`
}

// Clone returns a deep copy so the cached value and the returned value never share buffers.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := *r
	out.Header = r.Header.Clone()
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return &out
}

// Cacheable reports whether a network response may be stored.
func (r *Response) Cacheable() bool {
	return r != nil && r.Status == http.StatusOK && r.Type == TypeBasic
}

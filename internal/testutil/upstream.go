// Package testutil holds helpers shared by the upstream client tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// notFoundBody is what TMDB answers for an unknown resource.
const notFoundBody = `{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`

// FakeUpstream is an httptest server that answers GETs from canned JSON
// bodies keyed by URL path and records every request it sees. Unknown
// paths get a TMDB style 404.
type FakeUpstream struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string]string
	requests []*url.URL
}

// NewFakeUpstream starts a FakeUpstream that is closed with the test.
func NewFakeUpstream(t *testing.T, bodies map[string]string) *FakeUpstream {
	t.Helper()
	f := &FakeUpstream{bodies: bodies}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL)
	body, ok := f.bodies[r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundBody))
		return
	}
	_, _ = w.Write([]byte(body))
}

// Last returns the most recent request URL, failing the test if none arrived.
func (f *FakeUpstream) Last(t *testing.T) *url.URL {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("Expected at least one upstream request")
	}
	return f.requests[len(f.requests)-1]
}

// Count returns how many requests reached the server.
func (f *FakeUpstream) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// RecordedRequest is a request captured by [StubSpotify].
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Form          url.Values
	Authorization string
}

// StubSpotify is an httptest server standing in for both accounts.spotify.com and api.spotify.com.
//
// POST /api/token answers with the token status and body set by SetToken. Any other path
// answers with the body registered by Respond for that path, or the default set by SetAPI.
type StubSpotify struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []RecordedRequest
	tokenStatus int
	tokenBody   map[string]any
	apiStatus   int
	apiBody     string
	responses   map[string]string
}

// NewStubSpotify starts a [StubSpotify] that grants {access_token:"T", refresh_token:"R", expires_in:3600}
// and answers API calls with {"ok":true}. The server is closed with the test.
func NewStubSpotify(t *testing.T) *StubSpotify {
	t.Helper()

	stub := &StubSpotify{
		tokenStatus: http.StatusOK,
		tokenBody: map[string]any{
			"access_token":  "T",
			"token_type":    "Bearer",
			"refresh_token": "R",
			"expires_in":    3600,
			"scope":         "user-read-private",
		},
		apiStatus: http.StatusOK,
		apiBody:   `{"ok":true}`,
		responses: map[string]string{},
	}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.Close)
	return stub
}

func (s *StubSpotify) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Form:          r.PostForm,
		Authorization: r.Header.Get("Authorization"),
	})
	tokenStatus, tokenBody := s.tokenStatus, s.tokenBody
	apiStatus, apiBody := s.apiStatus, s.apiBody
	override, hasOverride := s.responses[r.URL.Path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodPost && r.URL.Path == "/api/token" {
		w.WriteHeader(tokenStatus)
		if tokenStatus >= 300 {
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid authorization code"}`))
			return
		}
		json.NewEncoder(w).Encode(tokenBody)
		return
	}

	if hasOverride {
		apiBody = override
	}
	w.WriteHeader(apiStatus)
	w.Write([]byte(apiBody))
}

// SetToken changes the token endpoint's response.
func (s *StubSpotify) SetToken(status int, body map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenStatus, s.tokenBody = status, body
}

// SetAPI changes the default response for API paths.
func (s *StubSpotify) SetAPI(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiStatus, s.apiBody = status, body
}

// Respond registers a body for a single API path.
func (s *StubSpotify) Respond(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = body
}

// Requests returns a copy of every request received so far.
func (s *StubSpotify) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// TokenURL is the stub's token endpoint.
func (s *StubSpotify) TokenURL() string {
	return s.URL + "/api/token"
}

// AuthURL is the stub's authorize endpoint. It is never requested by the server itself.
func (s *StubSpotify) AuthURL() string {
	return s.URL + "/authorize"
}

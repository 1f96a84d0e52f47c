package gh_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          map[string]any
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// mockGitHubServer serves canned REST responses keyed by "METHOD /escaped/path"
// and GraphQL responses produced by graphqlHandler.
type mockGitHubServer struct {
	t *testing.T

	mu       sync.Mutex
	requests []recordedRequest

	routes         map[string]http.HandlerFunc
	graphqlHandler func(req graphqlRequest) any

	*httptest.Server
}

func runMockGitHubServer(t *testing.T) *mockGitHubServer {
	s := &mockGitHubServer{t: t, routes: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(s)
	t.Cleanup(s.Close)
	return s
}

func (s *mockGitHubServer) handle(method, path string, h http.HandlerFunc) {
	s.routes[method+" "+path] = h
}

func (s *mockGitHubServer) respond(method, path string, status int, body any) {
	s.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(s.t, w, status, body)
	})
}

func (s *mockGitHubServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func (s *mockGitHubServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.t.Errorf("failed to read request body: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if r.URL.Path == "/graphql" {
		var req graphqlRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			s.t.Errorf("failed to decode GraphQL request: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.t.Logf("received GraphQL query: %s %v", req.Query, req.Variables)
		if s.graphqlHandler == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(s.t, w, http.StatusOK, map[string]any{"data": s.graphqlHandler(req)})
		return
	}

	rec := recordedRequest{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rec.Body); err != nil {
			s.t.Errorf("failed to decode request body %q: %v", raw, err)
		}
	}
	s.mu.Lock()
	s.requests = append(s.requests, rec)
	s.mu.Unlock()

	h, ok := s.routes[r.Method+" "+rec.Path]
	if !ok {
		s.t.Logf("unexpected request: %s %s", r.Method, rec.Path)
		writeJSON(s.t, w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	h(w, r)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeRepo struct {
	labels     []map[string]any
	milestones []map[string]any
	issues     []map[string]any
	// fail makes every read of the repository return 500.
	fail bool
	// permission is reported by the GraphQL repository query.
	permission string
}

// fakeGitHub serves the REST collections of the repositories in the
// matomo-org organization and the GraphQL queries used by the CLI. Created
// records are stored, so later reads in the same run see them.
type fakeGitHub struct {
	t *testing.T

	mu          sync.Mutex
	repos       map[string]*fakeRepo
	created     map[string][]map[string]any
	issueStates []string
	// viewerStatus overrides the status of GraphQL responses when set.
	viewerStatus int

	*httptest.Server
}

func runFakeGitHub(t *testing.T) *fakeGitHub {
	f := &fakeGitHub{
		t:       t,
		created: map[string][]map[string]any{},
		repos: map[string]*fakeRepo{
			"source": {
				labels: []map[string]any{
					{"name": "bug", "color": "d73a4a"},
					{"name": "enhancement", "color": "a2eeef"},
				},
				permission: "READ",
			},
			"dest": {
				labels:     []map[string]any{{"name": "enhancement", "color": "a2eeef"}},
				permission: "WRITE",
			},
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/matomo-org/{repo}/{kind}", f.list)
	mux.HandleFunc("POST /repos/matomo-org/{repo}/{kind}", f.create)
	mux.HandleFunc("POST /graphql", f.graphql)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGitHub) repo(name string) *fakeRepo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repos[name]
}

func (f *fakeGitHub) createdRecords(repo, kind string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[repo+"/"+kind]
}

func (f *fakeGitHub) collection(r *fakeRepo, kind string) *[]map[string]any {
	switch kind {
	case "labels":
		return &r.labels
	case "milestones":
		return &r.milestones
	case "issues":
		return &r.issues
	}
	return nil
}

func (f *fakeGitHub) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := r.PathValue("repo")
	repo := f.repos[name]
	if repo == nil {
		f.writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
		return
	}
	if repo.fail {
		f.writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Server Error"})
		return
	}
	kind := r.PathValue("kind")
	if kind == "issues" && name == "source" {
		f.issueStates = append(f.issueStates, r.URL.Query().Get("state"))
	}
	records := f.collection(repo, kind)
	if records == nil {
		f.writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
		return
	}
	f.writeJSON(w, http.StatusOK, append([]map[string]any{}, *records...))
}

func (f *fakeGitHub) create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.t.Errorf("failed to decode request body: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name, kind := r.PathValue("repo"), r.PathValue("kind")
	repo := f.repos[name]
	var records *[]map[string]any
	if repo != nil {
		records = f.collection(repo, kind)
	}
	if records == nil {
		f.writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
		return
	}
	f.created[name+"/"+kind] = append(f.created[name+"/"+kind], body)

	stored := map[string]any{}
	for k, v := range body {
		stored[k] = v
	}
	if kind != "labels" {
		stored["number"] = len(*records) + 1
	}
	if kind == "issues" {
		// Issues are read back with a milestone object, not a number.
		delete(stored, "milestone")
		delete(stored, "labels")
	}
	*records = append(*records, stored)
	f.writeJSON(w, http.StatusCreated, stored)
}

func (f *fakeGitHub) graphql(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.t.Errorf("failed to decode GraphQL request: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.viewerStatus != 0 {
		f.writeJSON(w, f.viewerStatus, map[string]any{"message": "Bad credentials"})
		return
	}

	var data map[string]any
	switch {
	case strings.Contains(req.Query, "repositories("):
		var nodes []any
		for name := range f.repos {
			nodes = append(nodes, map[string]any{"nameWithOwner": "matomo-org/" + name})
		}
		data = map[string]any{"viewer": map[string]any{"repositories": map[string]any{
			"nodes":    nodes,
			"pageInfo": map[string]any{"endCursor": "", "hasNextPage": false},
		}}}
	case strings.Contains(req.Query, "repository("):
		name, _ := req.Variables["name"].(string)
		repo := f.repos[name]
		if repo == nil {
			f.writeJSON(w, http.StatusOK, map[string]any{
				"data":   map[string]any{"repository": nil},
				"errors": []any{map[string]any{"message": "Could not resolve to a Repository"}},
			})
			return
		}
		data = map[string]any{"repository": map[string]any{
			"id":               "R_" + name,
			"nameWithOwner":    "matomo-org/" + name,
			"viewerPermission": repo.permission,
		}}
	default:
		data = map[string]any{"viewer": map[string]any{"name": "Jane Doe", "login": "jdoe"}}
	}
	f.writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (f *fakeGitHub) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		f.t.Errorf("failed to encode response: %v", err)
	}
}

// Package bigiptest provides an httptest-backed fake BIG-IP for tests.
//
// The fake emulates the small slice of iControl REST the client uses: the
// login endpoint, rule / virtual / pool / data-group collections, and the
// bash command endpoint. State is kept in memory and seeded with one virtual
// server, /Common/TestVs, so binding tests have a target.
package bigiptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// Server is a fake BIG-IP management endpoint.
type Server struct {
	*httptest.Server

	// ValidToken is the token the login endpoint mints and the request
	// handlers accept. Override before first use to simulate rotation.
	ValidToken string

	// LogLines is returned by the bash endpoint as the tail output.
	LogLines []string

	mu         sync.Mutex
	rules      map[string]map[string]any
	pools      map[string]map[string]any
	dataGroups map[string]map[string]any
	virtuals   map[string]map[string]any
	generation int64
	loginCalls int
	bashArgs   []string
}

// New starts a fake BIG-IP. Close it with Server.Close.
func New() *Server {
	s := &Server{
		ValidToken: "bigiptest-token",
		LogLines:   []string{"ltm line one", "ltm line two"},
		rules:      map[string]map[string]any{},
		pools:      map[string]map[string]any{},
		dataGroups: map[string]map[string]any{},
		virtuals: map[string]map[string]any{
			"/Common/TestVs": {
				"name":        "TestVs",
				"partition":   "Common",
				"fullPath":    "/Common/TestVs",
				"destination": "0.0.0.0:0",
				"rules":       []any{},
			},
		},
		generation: 1,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// LoginCalls reports how many times the login endpoint was hit.
func (s *Server) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

// BashCommands returns the utilCmdArgs strings received by the bash endpoint.
func (s *Server) BashCommands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bashArgs...)
}

// VirtualRules returns the current binding list of a virtual server.
func (s *Server) VirtualRules(fullPath string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.virtuals[fullPath]
	if !ok {
		return nil
	}
	return toStrings(vs["rules"])
}

// RuleNames returns the names of all stored rules.
func (s *Server) RuleNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		names = append(names, rule["name"].(string))
	}
	return names
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := r.URL.Path

	if path == "/mgmt/shared/authn/login" && r.Method == http.MethodPost {
		s.loginCalls++
		writeJSON(w, http.StatusOK, map[string]any{
			"token": map[string]any{"token": s.ValidToken},
		})
		return
	}

	if r.Header.Get("X-F5-Auth-Token") != s.ValidToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"code": 401, "message": "X-F5-Auth-Token does not exist",
		})
		return
	}

	switch {
	case path == "/mgmt/tm/ltm/rule":
		s.handleCollection(w, r, s.rules, func(body map[string]any) map[string]any {
			return map[string]any{
				"name":         str(body["name"], "rule"),
				"partition":    str(body["partition"], "Common"),
				"apiAnonymous": str(body["apiAnonymous"], ""),
			}
		})
	case strings.HasPrefix(path, "/mgmt/tm/ltm/rule/"):
		s.handleItem(w, r, s.rules, decodeName(strings.TrimPrefix(path, "/mgmt/tm/ltm/rule/")), []string{"apiAnonymous"})
	case path == "/mgmt/tm/ltm/pool":
		s.handleCollection(w, r, s.pools, func(body map[string]any) map[string]any {
			return map[string]any{
				"name":              str(body["name"], "pool"),
				"partition":         str(body["partition"], "Common"),
				"loadBalancingMode": str(body["loadBalancingMode"], "round-robin"),
				"monitor":           str(body["monitor"], ""),
				"description":       str(body["description"], ""),
				"members":           orEmpty(body["members"]),
			}
		})
	case strings.HasPrefix(path, "/mgmt/tm/ltm/pool/"):
		s.handleItem(w, r, s.pools, decodeName(strings.TrimPrefix(path, "/mgmt/tm/ltm/pool/")),
			[]string{"loadBalancingMode", "monitor", "description", "members"})
	case path == "/mgmt/tm/ltm/data-group/internal":
		s.handleCollection(w, r, s.dataGroups, func(body map[string]any) map[string]any {
			return map[string]any{
				"name":        str(body["name"], "dg"),
				"partition":   str(body["partition"], "Common"),
				"type":        str(body["type"], "string"),
				"description": str(body["description"], ""),
				"records":     orEmpty(body["records"]),
			}
		})
	case strings.HasPrefix(path, "/mgmt/tm/ltm/data-group/internal/"):
		s.handleItem(w, r, s.dataGroups, decodeName(strings.TrimPrefix(path, "/mgmt/tm/ltm/data-group/internal/")),
			[]string{"type", "description", "records"})
	case path == "/mgmt/tm/ltm/virtual":
		writeJSON(w, http.StatusOK, map[string]any{"items": values(s.virtuals)})
	case strings.HasPrefix(path, "/mgmt/tm/ltm/virtual/"):
		s.handleVirtual(w, r, decodeName(strings.TrimPrefix(path, "/mgmt/tm/ltm/virtual/")))
	case path == "/mgmt/tm/util/bash" && r.Method == http.MethodPost:
		body := readBody(r)
		s.bashArgs = append(s.bashArgs, str(body["utilCmdArgs"], ""))
		writeJSON(w, http.StatusOK, map[string]any{
			"commandResult": strings.Join(s.LogLines, "\n") + "\n",
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, store map[string]map[string]any, build func(map[string]any) map[string]any) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": values(store)})
	case http.MethodPost:
		body := readBody(r)
		item := build(body)
		full := fmt.Sprintf("/%s/%s", item["partition"], item["name"])
		if _, exists := store[full]; exists {
			writeJSON(w, http.StatusConflict, map[string]any{
				"code": 409, "message": fmt.Sprintf("%s already exists", full),
			})
			return
		}
		item["fullPath"] = full
		s.generation++
		item["generation"] = s.generation
		store[full] = item
		writeJSON(w, http.StatusOK, item)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request, store map[string]map[string]any, fullPath string, patchable []string) {
	item, ok := store[fullPath]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code": 404, "message": fullPath + " was not found",
		})
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, item)
	case http.MethodPatch:
		body := readBody(r)
		for _, key := range patchable {
			if value, present := body[key]; present {
				item[key] = value
			}
		}
		s.generation++
		item["generation"] = s.generation
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		delete(store, fullPath)
		// Real devices answer deletes with 200 and a zero-length
		// application/json body; reproduce that exactly.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleVirtual(w http.ResponseWriter, r *http.Request, fullPath string) {
	vs, ok := s.virtuals[fullPath]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code": 404, "message": fullPath + " was not found",
		})
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, vs)
	case http.MethodPatch:
		body := readBody(r)
		if rules, present := body["rules"]; present {
			vs["rules"] = rules
		}
		writeJSON(w, http.StatusOK, vs)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeName(component string) string {
	component, _ = url.PathUnescape(component)
	if strings.HasPrefix(component, "~") {
		var segments []string
		for _, segment := range strings.Split(component, "~") {
			if segment != "" {
				segments = append(segments, segment)
			}
		}
		return "/" + strings.Join(segments, "/")
	}
	return component
}

func readBody(r *http.Request) map[string]any {
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func values(store map[string]map[string]any) []map[string]any {
	items := make([]map[string]any, 0, len(store))
	for _, item := range store {
		items = append(items, item)
	}
	return items
}

func toStrings(value any) []string {
	items, ok := value.([]any)
	if !ok {
		if typed, ok := value.([]string); ok {
			return typed
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(value any, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}

func orEmpty(value any) any {
	if value == nil {
		return []any{}
	}
	return value
}

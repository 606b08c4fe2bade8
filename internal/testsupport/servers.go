package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// AnnictServer answers every GraphQL request with a fixed body.
type AnnictServer struct {
	server *httptest.Server

	mu        sync.Mutex
	variables []map[string]any
}

// NewAnnictServer starts a stand-in catalog endpoint that replies with body
// and status. It is closed when the test ends.
func NewAnnictServer(t testing.TB, status int, body string) *AnnictServer {
	t.Helper()
	s := &AnnictServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.variables = append(s.variables, req.Variables)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the endpoint URL.
func (s *AnnictServer) URL() string {
	return s.server.URL
}

// Variables returns the GraphQL variables of each request received.
func (s *AnnictServer) Variables() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.variables...)
}

// NotionServer records create-page requests and answers 200 unless the
// page title is listed in Reject.
type NotionServer struct {
	server *httptest.Server

	mu       sync.Mutex
	payloads []map[string]any
	reject   map[string]bool
}

// NewNotionServer starts a stand-in destination API. Titles in reject get a
// 400 validation error.
func NewNotionServer(t testing.TB, reject ...string) *NotionServer {
	t.Helper()
	s := &NotionServer{reject: make(map[string]bool, len(reject))}
	for _, title := range reject {
		s.reject[title] = true
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *NotionServer) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/pages") {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"object":"error","code":"invalid_request_url"}`)
		return
	}
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"object":"error","code":"invalid_json"}`)
		return
	}

	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()

	if s.reject[pageTitle(payload)] {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"object":"error","code":"validation_error","message":"rejected"}`)
		return
	}
	_, _ = io.WriteString(w, `{"object":"page","id":"page-id"}`)
}

// URL returns the API base URL.
func (s *NotionServer) URL() string {
	return s.server.URL
}

// Payloads returns the decoded request bodies in arrival order.
func (s *NotionServer) Payloads() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.payloads...)
}

// pageTitle digs the plain title text out of a create-page payload whatever
// the title property is called.
func pageTitle(payload map[string]any) string {
	props, _ := payload["properties"].(map[string]any)
	for _, value := range props {
		prop, _ := value.(map[string]any)
		parts, ok := prop["title"].([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		part, _ := parts[0].(map[string]any)
		textValue, _ := part["text"].(map[string]any)
		content, _ := textValue["content"].(string)
		return content
	}
	return ""
}

// Package plannertest provides an in-process stand-in for the planner API,
// for tests that exercise the client end to end.
package plannertest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mithrel/eventwizard/pkg/api"
)

// Reply is the canned answer for one endpoint. Raw, when set, is written
// verbatim instead of the JSON encoding of Result.
type Reply struct {
	Status int
	Result api.Result
	Raw    string
}

// Request is one submission the server received.
type Request struct {
	Path   string
	Header http.Header
	Body   map[string]string
}

// Server serves the planner endpoints from canned replies and records
// every request.
type Server struct {
	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

func strptr(s string) *string { return &s }

func New() *Server {
	return &Server{replies: map[string]Reply{
		api.VariantThemes.Path: {Result: api.Result{
			Message:          strptr("Sugestões geradas com sucesso"),
			ThemeSuggestions: strptr("1. Tropical theme"),
		}},
		api.VariantCompile.Path: {Result: api.Result{
			Message:          strptr("Respostas compiladas com sucesso"),
			CompiledResponse: strptr("## Plan\n\n- Venue"),
		}},
	}}
}

// Start serves s on a loopback listener closed when tb finishes. It returns
// the base URL.
func Start(tb testing.TB, s *Server) string {
	tb.Helper()
	srv := httptest.NewServer(s.Router())
	tb.Cleanup(srv.Close)
	return srv.URL
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	for _, v := range api.Variants() {
		mux.HandleFunc(v.Path, s.handleSubmit)
	}
	return mux
}

// Reply sets the answer for path, e.g. api.VariantThemes.Path.
func (s *Server) Reply(path string, r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = r
}

// Requests returns a copy of the submissions received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent submission.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, api.Result{Error: strptr("method not allowed")})
		return
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.Result{Error: strptr("failed to read body")})
		return
	}
	var body map[string]string
	if err := json.Unmarshal(b, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Result{Error: strptr("invalid JSON body")})
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
	reply := s.replies[r.URL.Path]
	s.mu.Unlock()

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if reply.Raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply.Raw)
		return
	}
	writeJSON(w, status, reply.Result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

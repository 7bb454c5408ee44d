// Package saucetest runs an in-process fake of the SauceNAO search endpoint
// and the anime id mapping service for tests.
package saucetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 8 << 20

// Request is what the fake search endpoint received.
type Request struct {
	Method   string
	Params   url.Values
	FileName string
	FileSize int
}

// Server is a fake SauceNAO + id mapping service.
type Server struct {
	srv *httptest.Server

	mu            sync.Mutex
	searchStatus  int
	searchBody    string
	requests      []Request
	relations     map[int]string
	relationsDown bool
	relationCalls int
}

// NewServer starts a fake answering every search with SampleResponse.
// Call Close when done.
func NewServer() *Server {
	s := &Server{
		searchStatus: http.StatusOK,
		searchBody:   SampleResponse,
		relations:    map[int]string{},
	}

	r := chi.NewRouter()
	r.Get("/search.php", s.handleSearch)
	r.Post("/search.php", s.handleSearch)
	r.Get("/api/ids", s.handleRelations)

	s.srv = httptest.NewServer(r)
	return s
}

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SearchURL is the search endpoint to pass as base URL.
func (s *Server) SearchURL() string { return s.srv.URL + "/search.php" }

// RelationsURL is the id mapping service base URL.
func (s *Server) RelationsURL() string { return s.srv.URL }

// RespondSearch sets the status and raw body for subsequent searches.
func (s *Server) RespondSearch(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchStatus = status
	s.searchBody = body
}

// SetRelations registers the JSON mapping returned for an AniDB id.
// Unknown ids answer 204.
func (s *Server) SetRelations(anidbID int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relations[anidbID] = body
}

// FailRelations makes the id mapping service answer 500.
func (s *Server) FailRelations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationsDown = true
}

// Requests returns the searches received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RelationCalls returns how many id mapping requests were served.
func (s *Server) RelationCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relationCalls
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rec := Request{Method: r.Method, Params: r.URL.Query()}
	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec.Params = url.Values(r.MultipartForm.Value)
		if f, hdr, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(f)
			_ = f.Close()
			rec.FileName = hdr.Filename
			rec.FileSize = len(data)
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	status, body := s.searchStatus, s.searchBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *Server) handleRelations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || r.URL.Query().Get("source") != "anidb" {
		http.Error(w, "bad query", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.relationCalls++
	down := s.relationsDown
	body, ok := s.relations[id]
	s.mu.Unlock()

	switch {
	case down:
		http.Error(w, "unavailable", http.StatusInternalServerError)
	case !ok:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

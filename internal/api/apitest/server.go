// Package apitest runs an in-memory fake of the gallery HTTP API for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/harrylevesque/gallery/internal/models"
)

// Failure makes an endpoint answer with Status and, if set, a JSON detail.
type Failure struct {
	Status int
	Detail string
}

// Server is a running fake gallery service.
type Server struct {
	*httptest.Server
	Store *Store

	mu       sync.Mutex
	requests []string
	failures map[string]Failure
}

// NewServer starts the fake. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		Store:    &Store{},
		failures: make(map[string]Failure),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// Fail makes the route named by method and route ("GET /api/images",
// "DELETE /api/images/{id}", "POST /upload") return f until cleared with Recover.
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

// Recover clears a failure installed with Fail.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Requests returns "METHOD /path" for every request served, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/api/images", s.failable("GET /api/images", s.listHandler)).Methods("GET")
	r.HandleFunc("/api/images/{id}", s.failable("DELETE /api/images/{id}", s.deleteHandler)).Methods("DELETE")
	r.HandleFunc("/upload", s.failable("POST /upload", s.uploadHandler)).Methods("POST")
	r.PathPrefix("/static/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failable(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, failing := s.failures[route]
		s.mu.Unlock()
		if !failing {
			h(w, r)
			return
		}
		if f.Detail == "" {
			w.WriteHeader(f.Status)
			return
		}
		writeJSON(w, f.Status, models.ErrorResponse{Detail: f.Detail})
	}
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.GetAll())
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id := models.ImageID(mux.Vars(r)["id"])
	if !s.Store.Delete(id) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Detail: "image not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: "missing file field"})
		return
	}
	defer file.Close()

	n, err := io.Copy(io.Discard, file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: "unreadable file"})
		return
	}
	s.Store.recordUpload(Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        n,
	})

	id := models.ImageID(uuid.NewString())
	img := s.Store.Add(models.Image{
		ID:   id,
		Name: header.Filename,
		URL:  fmt.Sprintf("%s/static/%s/%s", s.URL, id, header.Filename),
	})
	writeJSON(w, http.StatusOK, models.UploadResponse{URL: img.URL})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

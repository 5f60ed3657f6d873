// Package api exposes parsing views over HTTP: CoNLL-U in, render JSON or
// noun chunks out. The document core itself stays transport-free.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kittclouds/depdoc/internal/config"
	"github.com/kittclouds/depdoc/internal/conllu"
	"github.com/kittclouds/depdoc/pkg/chunker"
	"github.com/kittclouds/depdoc/pkg/deptree"
	"github.com/kittclouds/depdoc/pkg/render"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger, cfg config.Config) *Server {
	s := &Server{log: log, cfg: cfg}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/v1/parse", s.handleParse)
	r.Post("/v1/chunks", s.handleChunks)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleParse renders each sentence of a CoNLL-U body as {words, arcs}.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	docs, ok := s.readDocs(w, r)
	if !ok {
		return
	}
	parses := make([]render.Parse, len(docs))
	for i, doc := range docs {
		parses[i] = render.Build(doc)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"parses": parses})
}

// handleChunks extracts noun chunks per sentence. The language defaults
// from config and can be overridden with ?lang=.
func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	ext, err := chunker.New(s.lang(r))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, ok := s.readDocs(w, r)
	if !ok {
		return
	}
	out := make([][]chunker.Chunk, len(docs))
	for i, doc := range docs {
		chunks, err := ext.Extract(doc)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if chunks == nil {
			chunks = []chunker.Chunk{}
		}
		out[i] = chunks
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"chunks": out})
}

// readDocs parses the request body as CoNLL-U, bounded by the configured
// payload limit. On failure it writes the error response and returns false.
func (s *Server) readDocs(w http.ResponseWriter, r *http.Request) ([]*deptree.Document, bool) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	docs, err := conllu.Read(body, s.lang(r))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid conllu: "+err.Error())
		return nil, false
	}
	if len(docs) == 0 {
		s.writeError(w, http.StatusBadRequest, "empty input")
		return nil, false
	}
	return docs, true
}

// lang resolves the request language, falling back to the configured
// default.
func (s *Server) lang(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return s.cfg.DefaultLang
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Package api serves built artifacts over HTTP to downstream training and
// persona services. It is strictly read-only: ingestion and dataset building
// are not reachable through it.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/instapersona/dmcorpus/internal/dataset"
)

type Server struct {
	router      *chi.Mux
	port        int
	artifactDir string
}

func NewServer(port int, artifactDir string) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:      router,
		port:        port,
		artifactDir: artifactDir,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/corpus/status", s.status)
	router.Get("/api/v1/corpus/artifacts/{name}", s.artifact)
	router.Get("/api/v1/corpus/targets/{target}/reply-probabilities", s.replyProbabilities)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr, "artifact_dir", s.artifactDir)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	entries, _ := os.ReadDir(s.artifactDir)
	var artifacts []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			artifacts = append(artifacts, e.Name())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"service":   "dmcorpus",
		"artifacts": artifacts,
	})
}

// artifact serves one artifact file verbatim. Only base names inside the
// artifact directory are reachable.
func (s *Server) artifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") {
		http.Error(w, `{"error":"unknown artifact"}`, http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.artifactDir, name))
	if err != nil {
		http.Error(w, `{"error":"unknown artifact"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) replyProbabilities(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	name := dataset.ReplyProbabilitiesArtifactName(target)
	if name != filepath.Base(name) {
		http.Error(w, `{"error":"unknown target"}`, http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.artifactDir, name))
	if err != nil {
		http.Error(w, `{"error":"no reply probabilities for target"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

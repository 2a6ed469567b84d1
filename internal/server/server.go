// Package server provides the HTTP REST API for serve mode: one resource per
// pipeline session, one endpoint per stage action.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/publish"
	"github.com/asimons81/guide-generator/internal/workflow"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	llm        llm.Client
	cms        publish.CMS
	store      *workflow.Store

	mu       sync.Mutex
	sessions map[string]*workflow.Session
}

// Config holds server configuration
type Config struct {
	Port     int
	LLM      llm.Client
	CMS      publish.CMS
	StateDir string
}

// New creates a new server instance. Sessions live in memory and are
// checkpointed to the state directory on every mutation.
func New(cfg Config) (*Server, error) {
	store, err := workflow.NewStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	s := &Server{
		llm:      cfg.LLM,
		cms:      cfg.CMS,
		store:    store,
		sessions: make(map[string]*workflow.Session),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation and publish calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)

	mux.HandleFunc("POST /sessions/{id}/strategy", s.handleGenerateStrategy)
	mux.HandleFunc("PUT /sessions/{id}/strategy", s.handleRefineStrategy)
	mux.HandleFunc("POST /sessions/{id}/draft", s.handleGenerateDraft)
	mux.HandleFunc("PUT /sessions/{id}/content", s.handleEditContent)
	mux.HandleFunc("GET /sessions/{id}/checklist", s.handleChecklist)
	mux.HandleFunc("POST /sessions/{id}/image-plan", s.handleGenerateImagePlan)
	mux.HandleFunc("PUT /sessions/{id}/image-plan", s.handleEditImagePlan)
	mux.HandleFunc("GET /sessions/{id}/image-plan/prompts", s.handleImagePrompts)
	mux.HandleFunc("POST /sessions/{id}/images", s.handleUploadImages)
	mux.HandleFunc("POST /sessions/{id}/publish", s.handlePublish)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

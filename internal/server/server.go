// Package server provides the HTTP REST API for the voiceloop engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mkuiper/voiceloop/internal/feedback"
	"github.com/mkuiper/voiceloop/internal/interview"
	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/synthesis"
	"github.com/mkuiper/voiceloop/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      store.Store
	generator  llm.Generator
	synth      *synthesis.Synthesizer
	engine     *interview.Engine
	recorder   *feedback.Recorder
	validator  *validator.Validate
	closeStore func()
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
}

// New creates a server backed by Postgres when DatabaseURL is set, and by
// the in-memory store otherwise.
func New(cfg Config) (*Server, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var st store.Store
	var closeStore func()
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		st = pg
		closeStore = pg.Close
	} else {
		st = store.NewMemory()
	}

	s := NewWithDeps(cfg, st, client)
	s.closeStore = closeStore
	return s, nil
}

// NewWithDeps wires a server from explicit collaborators. Tests use this to
// inject the in-memory store and a stub generator.
func NewWithDeps(cfg Config, st store.Store, generator llm.Generator) *Server {
	s := &Server{
		store:     st,
		generator: generator,
		synth:     synthesis.New(generator, st),
		engine:    interview.NewEngine(),
		recorder:  feedback.NewRecorder(st),
		validator: validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Foundation interview
	mux.HandleFunc("GET /interview/questions", s.handleListQuestions)
	mux.HandleFunc("GET /interview/next", s.handleNextQuestion)
	mux.HandleFunc("POST /answers", s.handleUpsertAnswer)
	mux.HandleFunc("GET /answers", s.handleListAnswers)

	// Example records
	mux.HandleFunc("POST /examples", s.handleAddExample)
	mux.HandleFunc("GET /examples", s.handleListExamples)

	// Profile synthesis
	mux.HandleFunc("POST /profiles/synthesize", s.handleSynthesize)
	mux.HandleFunc("GET /profiles/latest", s.handleLatestProfile)

	// Drafts and quality
	mux.HandleFunc("POST /drafts", s.handleCreateDraft)
	mux.HandleFunc("GET /drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)

	// Feedback
	mux.HandleFunc("POST /drafts/{id}/feedback", s.handleAddFeedback)
	mux.HandleFunc("GET /drafts/{id}/feedback", s.handleListFeedback)

	return mux
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if s.closeStore != nil {
		s.closeStore()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
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

// scopeFromQuery extracts the scope from query parameters. The workspace is
// required on every scoped route.
func (s *Server) scopeFromQuery(r *http.Request) (types.Scope, error) {
	scope := types.Scope{
		WorkspaceID: r.URL.Query().Get("workspace"),
		ProjectID:   r.URL.Query().Get("project"),
	}
	if scope.WorkspaceID == "" {
		return types.Scope{}, fmt.Errorf("workspace query parameter is required")
	}
	return scope, nil
}

// decodeAndValidate decodes a JSON request body and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if err := s.validator.Struct(dst); err != nil {
		return fmt.Errorf("%s", extractValidationErrors(err))
	}
	return nil
}

// extractValidationErrors converts validator errors to a readable message.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}

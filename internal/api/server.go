package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/services"
	"github.com/terra-clan/ia-booster/internal/state"
)

const maxBodyBytes = 1 << 20

// Recommender produces an analysis for a set of answers
type Recommender interface {
	Recommend(ctx context.Context, answers models.Answers) models.AnalysisResult
}

// Chatter answers chat messages
type Chatter interface {
	Reply(ctx context.Context, history []models.ChatMessage, message string) (chat.Reply, error)
	ReplyToConversation(ctx context.Context, conversation []models.ChatMessage) (chat.Reply, error)
}

// CatalogSource provides the current tool catalog
type CatalogSource interface {
	Load(ctx context.Context) catalog.Catalog
}

// Dependencies groups the services the API is built on
type Dependencies struct {
	Advisor  Recommender
	Chat     Chatter
	Catalog  CatalogSource
	State    *state.Service
	Registry *services.Registry
	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer
}

// Server represents the HTTP API server
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	advisor  Recommender
	chat     Chatter
	catalog  CatalogSource
	state    *state.Service
	registry *services.Registry
	recorder metrics.Recorder
	gatherer prometheus.Gatherer
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, deps Dependencies) *Server {
	s := &Server{
		config:   cfg,
		advisor:  deps.Advisor,
		chat:     deps.Chat,
		catalog:  deps.Catalog,
		state:    deps.State,
		registry: deps.Registry,
		recorder: deps.Recorder,
		gatherer: deps.Gatherer,
	}
	if s.registry == nil {
		s.registry = services.NewRegistry()
	}
	if s.recorder == nil {
		s.recorder = metrics.Nop()
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache", "Content-Disposition"},
		MaxAge:         300,
	}))

	// Probes and metrics
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Websocket chat runs without the request timeout
	r.Get("/api/chat/ws", s.handleChatWS)

	r.Group(func(r chi.Router) {
		// LLM calls are bounded by their own timeout; this is the outer guard
		r.Use(middleware.Timeout(60 * time.Second))

		// Front-end contract
		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/chat", s.handleChat)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/questions", func(r chi.Router) {
				r.Get("/", s.handleListQuestions)
				r.Post("/validate", s.handleValidateAnswers)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", s.handleListCategories)
				r.Get("/domains/{domain}", s.handleDomainTools)
				r.Get("/{category}", s.handleGetCategory)
			})

			r.Route("/report", func(r chi.Router) {
				r.Post("/pdf", s.handleReportPDF)
				r.Post("/html", s.handleReportHTML)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Post("/", s.handleCreateClient)

				r.Route("/{clientID}", func(r chi.Router) {
					r.Use(s.clientIDMiddleware)

					r.Delete("/", s.handleResetClient)

					r.Get("/answers", s.handleGetAnswers)
					r.Put("/answers", s.handlePutAnswers)
					r.Patch("/answers", s.handlePatchAnswer)
					r.Delete("/answers", s.handleDeleteAnswers)

					r.Get("/result", s.handleGetResult)
					r.Delete("/result", s.handleDeleteResult)
					r.Post("/analysis", s.handleClientAnalysis)
					r.Get("/report.pdf", s.handleClientReportPDF)

					r.Get("/chat", s.handleGetChat)
					r.Put("/chat", s.handlePutChat)
					r.Delete("/chat", s.handleDeleteChat)
					r.Post("/chat/messages", s.handlePostChatMessage)
				})
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, engine calls, output serialization.
// The API NEVER performs estimation logic.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"buildcost/core/estimate"
	"buildcost/internal/errors"
	"buildcost/internal/logging"
)

// Options configure the server
type Options struct {
	Version      string
	MaxBodyBytes int64
	Timeout      time.Duration
	Logger       *zap.Logger
}

// Server is the API server
type Server struct {
	handler *Handler
	router  chi.Router
	version string
	logger  *zap.Logger
	started time.Time
}

// NewServer creates a new API server around an estimation engine
func NewServer(engine *estimate.Engine, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Named("api")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	s := &Server{
		handler: NewHandler(engine, opts.MaxBodyBytes),
		router:  chi.NewRouter(),
		version: opts.Version,
		logger:  opts.Logger,
		started: time.Now(),
	}
	s.registerRoutes(opts.Timeout)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(timeout time.Duration) {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate", s.handler.Estimate)
		r.Post("/diff", s.handler.Diff)

		r.Route("/geometry", func(r chi.Router) {
			r.Post("/area", s.handler.Area)
			r.Post("/volume", s.handler.Volume)
			r.Post("/tile-area", s.handler.TileArea)
			r.Post("/plot-area", s.handler.PlotArea)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Post("/wall", s.handler.Wall)
			r.Post("/plaster", s.handler.Plaster)
			r.Post("/concrete", s.handler.Concrete)
		})

		r.Get("/catalogs", s.handler.ListCatalogs)
		r.Get("/catalogs/{kind}", s.handler.GetCatalog)
		r.Get("/catalogs/{kind}/{name}", s.handler.GetMaterial)
	})
}

// requestLogger logs each request through zap
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			s.logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "buildcost",
		"api_version": "v1",
	}, http.StatusOK)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code, message string, status int) {
	writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

// writeDomainError maps a typed error onto an HTTP status
func writeDomainError(w http.ResponseWriter, err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch e.Type {
	case errors.TypeInput, errors.TypeParsing, errors.TypeValidation, errors.TypeNotSupported:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	}
	code := string(e.Type)
	if e.Code != "" {
		code = e.Code
	}
	writeError(w, code, e.Message, status)
}

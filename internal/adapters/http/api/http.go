// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drillmeet/scoresheet/internal/domain/judging"
	"github.com/drillmeet/scoresheet/internal/domain/model"
	"github.com/drillmeet/scoresheet/internal/gen"
	"github.com/drillmeet/scoresheet/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	SaveTemplate(ctx context.Context, t model.Template) (model.Template, error)
	GetTemplate(ctx context.Context, id string) (model.Template, error)
	ListTemplates(ctx context.Context) ([]model.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, e model.Event) (model.Event, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.Event, error)
	ListEvents(ctx context.Context, f model.Filter) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	Matrix(ctx context.Context, f model.Filter) (judging.Matrix, error)
	GenerateTemplate(ctx context.Context, documentText string) (gen.Result, error)
}

// StatsProvider exposes service statistics for the /stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	templateHandler *TemplatesHandler
	eventsHandler   *EventsHandler
	matrixHandler   *MatrixHandler
	generateHandler *GenerateHandler

	corsAllowedOrigins []string
	maxListLimit       int
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithCORSAllowedOrigins sets the origins allowed by the CORS layer.
func WithCORSAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsAllowedOrigins = origins
		}
	}
}

// WithMaxListLimit caps list endpoint result counts.
func WithMaxListLimit(limit int) ServerOption {
	return func(s *Server) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		corsAllowedOrigins: []string{"*"},
		maxListLimit:       500,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.templateHandler = NewTemplatesHandler(deps)
	s.eventsHandler = NewEventsHandler(deps, s.maxListLimit)
	s.matrixHandler = NewMatrixHandler(deps)
	s.generateHandler = NewGenerateHandler(deps)
	return s
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.templateHandler.HandleList, "templates"))
		r.Post("/", MetricsMiddleware(s.templateHandler.HandleSave, "templates"))
		r.Post("/generate", MetricsMiddleware(s.generateHandler.HandleGenerate, "generate"))
		r.Get("/{id}", MetricsMiddleware(s.templateHandler.HandleGet, "templates"))
		r.Delete("/{id}", MetricsMiddleware(s.templateHandler.HandleDelete, "templates"))
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.eventsHandler.HandleList, "events"))
		r.Post("/", MetricsMiddleware(s.eventsHandler.HandleCreate, "events"))
		r.Get("/{id}", MetricsMiddleware(s.eventsHandler.HandleGet, "events"))
		r.Put("/{id}", MetricsMiddleware(s.eventsHandler.HandleUpdate, "events"))
		r.Delete("/{id}", MetricsMiddleware(s.eventsHandler.HandleDelete, "events"))
	})

	r.Get("/matrix", MetricsMiddleware(s.matrixHandler.HandleGet, "matrix"))
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, "validation", err)
	case isConflict(err):
		writeError(w, http.StatusConflict, "conflict", err)
	case isUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", NewKind(op, ErrInternal))
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

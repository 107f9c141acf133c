package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"net/http"
	"program-portal-go/internal/model"
	"program-portal-go/internal/programs"
	"time"
)

type ProgramService interface {
	List(ctx context.Context) ([]model.ProgramSummary, error)
	Detail(ctx context.Context, slug string) (model.ProgramDetail, error)
}

// CachePolicy lets shared caches serve a response for MaxAge and then keep
// serving it for StaleWhileRevalidate while they refetch in the background.
type CachePolicy struct {
	MaxAge               time.Duration
	StaleWhileRevalidate time.Duration
}

func (p CachePolicy) Header() string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d",
		int(p.MaxAge.Seconds()), int(p.StaleWhileRevalidate.Seconds()))
}

type Server struct {
	port        int
	programs    ProgramService
	configErr   error
	cache       CachePolicy
	corsOrigins []string
	newRelic    *newrelic.Application
	httpServer  *http.Server
}

type Option func(*Server)

func WithPrograms(svc ProgramService) Option {
	return func(s *Server) { s.programs = svc }
}

// WithConfigError makes every API request fail with a configuration error.
func WithConfigError(err error) Option {
	return func(s *Server) { s.configErr = err }
}

func WithCachePolicy(p CachePolicy) Option {
	return func(s *Server) { s.cache = p }
}

func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

func WithNewRelic(app *newrelic.Application) Option {
	return func(s *Server) { s.newRelic = app }
}

func NewServer(port int, opts ...Option) *Server {
	s := &Server{
		port: port,
		cache: CachePolicy{
			MaxAge:               60 * time.Second,
			StaleWhileRevalidate: 300 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.programs == nil && s.configErr == nil {
		s.configErr = ErrStoreNotConfigured
	}
	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(notFound)

	router.HandleFunc(newrelic.WrapHandleFunc(s.newRelic, "/programs", s.requireStore(s.getPrograms))).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	var handler http.Handler = router
	handler = s.logRequests(handler)
	handler = withRequestID(handler)

	if len(s.corsOrigins) > 0 {
		handler = cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		})(handler)
	}

	return handler
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%v:%v", address, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) getPrograms(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	if slug == "" {
		items, err := s.programs.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", s.cache.Header())
		writeJSON(w, http.StatusOK, ListResponse{Items: items})
		return
	}

	detail, err := s.programs.Detail(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", s.cache.Header())
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

// writeError turns any service error into one of the public error responses.
// Upstream details are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, programs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	default:
		log.WithError(err).
			WithField("request_id", requestID(r.Context())).
			WithField("query", r.URL.RawQuery).
			Error("loading programs")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgUpstream})
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

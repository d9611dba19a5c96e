package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/kosuke/pkg/engine"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "engine-service"

// maxBodyBytes bounds request bodies; every valid request is a few dozen bytes.
const maxBodyBytes = 64 << 10

// Server serves the example engine over HTTP.
type Server struct {
	doc      *openapi3.T
	version  string
	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	now      func() time.Time

	calculateSchema *openapi3.Schema
	convertSchema   *openapi3.Schema
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers the request counter on reg and serves reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithVersion sets the build version reported by the root endpoint.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithClock overrides the time source used by the health endpoint.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewHandler creates the HTTP handler for the engine service. It fails when
// the embedded OpenAPI document does not load.
func NewHandler(ctx context.Context, opts ...Option) (http.Handler, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		doc:     doc,
		version: doc.Info.Version,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kosuke_engine_requests_total",
		Help: "Engine API requests by operation and status code.",
	}, []string{"operation", "code"})
	if err := s.registry.Register(s.requests); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if s.calculateSchema, err = requestSchema(doc, "CalculateRequest"); err != nil {
		return nil, err
	}
	if s.convertSchema, err = requestSchema(doc, "ConvertRequest"); err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Post("/calculate", s.Calculate)
	r.Post("/convert", s.Convert)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(RawSpec())
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// InfoResponse is returned by GET /.
type InfoResponse struct {
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	APIVersion string            `json:"api_version"`
	Endpoints  map[string]string `json:"endpoints"`
}

// CalculateRequest is the body of POST /calculate.
type CalculateRequest struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation"`
}

// CalculateResponse echoes the operands next to the result.
type CalculateResponse struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
}

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from_currency"`
	To     string  `json:"to_currency"`
}

// ConvertResponse carries the converted amount rounded to cents.
type ConvertResponse struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from_currency"`
	To              string  `json:"to_currency"`
	ConvertedAmount float64 `json:"converted_amount"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, "health", http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	s.respond(w, "root", http.StatusOK, InfoResponse{
		Message:    "Engine Service API",
		Version:    s.version,
		APIVersion: s.doc.Info.Version,
		Endpoints: map[string]string{
			"health":    "/health",
			"calculate": "/calculate",
			"convert":   "/convert",
			"docs":      "/openapi.yaml",
			"metrics":   "/metrics",
		},
	})
}

// Calculate handles POST /calculate.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var body CalculateRequest
	if err := s.decode(r, s.calculateSchema, &body); err != nil {
		s.fail(w, "calculate", http.StatusBadRequest, err)
		return
	}

	op, err := engine.ParseOperation(body.Operation)
	if err != nil {
		s.fail(w, "calculate", http.StatusBadRequest, err)
		return
	}
	result, err := engine.Calculate(body.A, body.B, op)
	if err != nil {
		s.fail(w, "calculate", statusFor(err), err)
		return
	}

	s.respond(w, "calculate", http.StatusOK, CalculateResponse{
		A:         body.A,
		B:         body.B,
		Operation: string(op),
		Result:    result,
	})
}

// Convert handles POST /convert.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if err := s.decode(r, s.convertSchema, &body); err != nil {
		s.fail(w, "convert", http.StatusBadRequest, err)
		return
	}

	from, err := engine.ParseCurrency(body.From)
	if err != nil {
		s.fail(w, "convert", http.StatusBadRequest, err)
		return
	}
	to, err := engine.ParseCurrency(body.To)
	if err != nil {
		s.fail(w, "convert", http.StatusBadRequest, err)
		return
	}
	converted, err := engine.Convert(body.Amount, from, to)
	if err != nil {
		s.fail(w, "convert", statusFor(err), err)
		return
	}

	s.respond(w, "convert", http.StatusOK, ConvertResponse{
		Amount:          body.Amount,
		From:            string(from),
		To:              string(to),
		ConvertedAmount: converted,
	})
}

// decode reads a JSON body, checks it against schema and fills dst.
func (s *Server) decode(r *http.Request, schema *openapi3.Schema, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return errors.New("invalid JSON body")
	}
	if err := schema.VisitJSON(generic); err != nil {
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			return schemaValidationError(schemaErr)
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func schemaValidationError(err *openapi3.SchemaError) error {
	path := err.JSONPointer()
	if len(path) == 0 {
		return fmt.Errorf("invalid request: %s", err.Reason)
	}
	return fmt.Errorf("invalid request field %q: %s", path[len(path)-1], err.Reason)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrDivisionByZero), errors.Is(err, engine.ErrNegativeAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUnknownOperation), errors.Is(err, engine.ErrUnknownCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, operation string, status int, err error) {
	s.logger.Warn("engine request rejected", "operation", operation, "status", status, "err", err)
	s.respond(w, operation, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) respond(w http.ResponseWriter, operation string, status int, v any) {
	s.requests.WithLabelValues(operation, fmt.Sprint(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "operation", operation, "err", err)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("engine service listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

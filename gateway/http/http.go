// Package http provides the HTTP gateway for the fact pipeline: synchronous
// fact validation plus read-only schema browsing endpoints.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RAraghavarora/lisdf/component"
	"github.com/RAraghavarora/lisdf/errors"
	"github.com/RAraghavarora/lisdf/fact"
	"github.com/RAraghavarora/lisdf/message"
	"github.com/RAraghavarora/lisdf/schema"
)

// Config holds the gateway configuration.
type Config struct {
	Name            string `json:"name"`
	Addr            string `json:"addr"`
	ReadTimeout     string `json:"read_timeout,omitempty"`
	WriteTimeout    string `json:"write_timeout,omitempty"`
	MaxRequestSize  int64  `json:"max_request_size,omitempty"`
	EnableCORS      bool   `json:"enable_cors,omitempty"`
	AcceptedSubject string `json:"accepted_subject"`
	RejectedSubject string `json:"rejected_subject"`
}

// DefaultConfig returns the default gateway configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "gateway",
		Addr:            ":8080",
		ReadTimeout:     "10s",
		WriteTimeout:    "10s",
		MaxRequestSize:  1 << 20, // 1 MiB
		AcceptedSubject: "lisdf.fact.accepted",
		RejectedSubject: "lisdf.fact.rejected",
	}
}

// Gateway serves the validation API over HTTP. Facts posted to /v1/validate
// are checked synchronously; the result is returned to the caller and, when
// a NATS client is wired, also published on the result subjects so streaming
// consumers see gateway traffic too.
type Gateway struct {
	config    Config
	deps      component.Dependencies
	logger    *slog.Logger
	validator *fact.Validator

	readTimeout  time.Duration
	writeTimeout time.Duration

	server      *http.Server
	lifecycleMu sync.Mutex
	mu          sync.RWMutex
	running     atomic.Bool
	startTime   time.Time

	requestsTotal   atomic.Uint64
	requestsSuccess atomic.Uint64
	requestsFailed  atomic.Uint64
	bytesReceived   atomic.Uint64
	bytesSent       atomic.Uint64
	lastActivity    atomic.Value // time.Time
}

var _ component.LifecycleComponent = (*Gateway)(nil)

// NewGateway creates an HTTP gateway from raw JSON configuration. The
// schema dependency is mandatory.
func NewGateway(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, errors.WrapInvalid(err, "Gateway", "NewGateway", "parse config")
		}
	}

	if config.Addr == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Gateway", "NewGateway", "addr is required")
	}
	if deps.Schema == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Gateway", "NewGateway",
			"schema dependency is required")
	}

	readTimeout, err := parseTimeout(config.ReadTimeout, 10*time.Second)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Gateway", "NewGateway", "parse read_timeout")
	}
	writeTimeout, err := parseTimeout(config.WriteTimeout, 10*time.Second)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Gateway", "NewGateway", "parse write_timeout")
	}
	if config.MaxRequestSize <= 0 {
		config.MaxRequestSize = 1 << 20
	}

	g := &Gateway{
		config:       config,
		deps:         deps,
		logger:       deps.GetLoggerWithComponent(config.Name),
		validator:    fact.NewValidator(deps.Schema),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
	g.lastActivity.Store(time.Time{})
	return g, nil
}

func parseTimeout(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

// Register registers the HTTP gateway factory with a component registry.
func Register(registry *component.Registry) error {
	return registry.RegisterFactory("http-gateway", &component.Registration{
		Name:        "http-gateway",
		Type:        "gateway",
		Description: "HTTP API for synchronous fact validation and schema browsing",
		Version:     "1.0.0",
		Schema:      configSchema(),
		Factory:     NewGateway,
	})
}

// Initialize prepares the gateway. All validation happens in NewGateway.
func (g *Gateway) Initialize() error {
	return nil
}

// Start begins serving the HTTP API.
func (g *Gateway) Start(ctx context.Context) error {
	g.lifecycleMu.Lock()
	defer g.lifecycleMu.Unlock()

	if g.running.Load() {
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Gateway", "Start", "lifecycle check")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "Gateway", "Start", "context already cancelled")
	}

	server := &http.Server{
		Addr:         g.config.Addr,
		Handler:      g.Handler(),
		ReadTimeout:  g.readTimeout,
		WriteTimeout: g.writeTimeout,
	}

	g.mu.Lock()
	g.server = server
	g.startTime = time.Now()
	g.mu.Unlock()
	g.running.Store(true)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			g.logger.Error("gateway server failed", "error", err)
			g.running.Store(false)
		}
	}()

	g.logger.Info("gateway started", "addr", g.config.Addr)
	return nil
}

// Stop shuts the HTTP server down gracefully.
func (g *Gateway) Stop(timeout time.Duration) error {
	g.lifecycleMu.Lock()
	defer g.lifecycleMu.Unlock()

	if !g.running.Load() {
		return nil
	}
	g.running.Store(false)

	g.mu.Lock()
	server := g.server
	g.server = nil
	g.mu.Unlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.WrapTransient(err, "Gateway", "Stop", "server shutdown")
		}
	}

	g.logger.Info("gateway stopped",
		"requests", g.requestsTotal.Load(), "failed", g.requestsFailed.Load())
	return nil
}

// Handler returns the gateway's HTTP handler. Exposed so the routes can be
// exercised without binding a listener, or mounted in another server.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/validate", g.withRequestID(g.handleValidate))
	mux.HandleFunc("/v1/schema/types", g.withRequestID(g.handleTypes))
	mux.HandleFunc("/v1/schema/predicates", g.withRequestID(g.handlePredicates))
	mux.HandleFunc("/v1/schema/constructors", g.withRequestID(g.handleConstructors))
	mux.HandleFunc("/health", g.handleHealth)
	return mux
}

// withRequestID tags every response with a request ID for tracing and
// records request counters.
func (g *Gateway) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = newRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)

		g.requestsTotal.Add(1)
		g.lastActivity.Store(time.Now())

		if g.config.EnableCORS {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}

// newRequestID generates a 16-hex-character request ID.
func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// validateRequest is the body of POST /v1/validate.
type validateRequest struct {
	Fact fact.Fact `json:"fact"`
}

// handleValidate checks one fact against the schema and returns the result.
func (g *Gateway) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(r.Body, g.config.MaxRequestSize+1))
	if err != nil {
		g.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if int64(len(body)) > g.config.MaxRequestSize {
		g.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", g.config.MaxRequestSize))
		return
	}
	g.bytesReceived.Add(uint64(len(body)))

	var req validateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		g.writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	payload := message.NewFactPayload(req.Fact)
	result := g.check(w.Header().Get("X-Request-ID"), payload)

	g.publishResult(r.Context(), result)
	g.writeJSON(w, http.StatusOK, result)
}

// check runs payload and schema validation and builds the result.
func (g *Gateway) check(factID string, payload *message.FactPayload) *message.ResultPayload {
	result := &message.ResultPayload{
		FactID:    factID,
		Fact:      payload.Fact,
		Validated: time.Now().UnixMilli(),
	}

	err := payload.Validate()
	if err == nil {
		err = g.validator.Validate(payload.Fact)
	}

	if err == nil {
		result.Status = message.StatusAccepted
		return result
	}

	result.Status = message.StatusRejected
	result.Variant = classify(err)
	result.Detail = err.Error()
	return result
}

// classify maps a validation error to its rejection variant.
func classify(err error) string {
	var (
		unknownErr *fact.UnknownPredicateError
		arityErr   *fact.ArityError
		typeErr    *fact.TypeMismatchError
	)

	switch {
	case stderrors.As(err, &unknownErr):
		return message.VariantUnknownPredicate
	case stderrors.As(err, &arityErr):
		return message.VariantArity
	case stderrors.As(err, &typeErr):
		return message.VariantTypeMismatch
	default:
		// Malformed payloads and literal failures both read as shape problems.
		return message.VariantShapeMismatch
	}
}

// publishResult mirrors the synchronous result onto the result subjects so
// streaming consumers see gateway traffic. Best effort: failures are logged
// but never surface to the HTTP caller.
func (g *Gateway) publishResult(ctx context.Context, result *message.ResultPayload) {
	if g.deps.NATSClient == nil {
		return
	}

	subject := g.config.AcceptedSubject
	if result.Status == message.StatusRejected {
		subject = g.config.RejectedSubject
	}

	envelope := message.NewBaseMessage(message.ValidationResult, result, g.config.Name)
	data, err := json.Marshal(envelope)
	if err != nil {
		g.logger.Error("failed to marshal result envelope", "error", err)
		return
	}

	if err := g.deps.NATSClient.Publish(ctx, subject, data); err != nil {
		g.logger.Warn("failed to publish gateway result", "subject", subject, "error", err)
	}
}

// typesResponse is the body of GET /v1/schema/types.
type typesResponse struct {
	Object []string `json:"object,omitempty"`
	Value  []string `json:"value,omitempty"`
}

func (g *Gateway) handleTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s := g.validator.Schema()
	switch r.URL.Query().Get("category") {
	case "":
		g.writeJSON(w, http.StatusOK, typesResponse{
			Object: s.TypeNames(schema.CategoryObject),
			Value:  s.TypeNames(schema.CategoryValue),
		})
	case "object":
		g.writeJSON(w, http.StatusOK, typesResponse{Object: s.TypeNames(schema.CategoryObject)})
	case "value":
		g.writeJSON(w, http.StatusOK, typesResponse{Value: s.TypeNames(schema.CategoryValue)})
	default:
		g.writeError(w, http.StatusBadRequest, "category must be object or value")
	}
}

func (g *Gateway) handlePredicates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s := g.validator.Schema()

	if name := r.URL.Query().Get("name"); name != "" {
		sig, ok := s.SignatureOf(name)
		if !ok {
			g.writeError(w, http.StatusNotFound, "predicate not found")
			return
		}
		g.writeJSON(w, http.StatusOK, sig)
		return
	}

	names := s.PredicateNames()
	signatures := make([]schema.PredicateSignature, 0, len(names))
	for _, name := range names {
		if sig, ok := s.SignatureOf(name); ok {
			signatures = append(signatures, sig)
		}
	}
	g.writeJSON(w, http.StatusOK, map[string]any{"predicates": signatures})
}

// constructorEntry is one element of the /v1/schema/constructors response.
type constructorEntry struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

func (g *Gateway) handleConstructors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	constructors := g.validator.Schema().Constructors()
	entries := make([]constructorEntry, 0, len(constructors))
	for _, c := range constructors {
		entries = append(entries, constructorEntry{Type: c.Type.Name, Label: c.Label})
	}
	g.writeJSON(w, http.StatusOK, map[string]any{"constructors": entries})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	code := http.StatusOK
	if !g.running.Load() {
		status = "stopped"
		code = http.StatusServiceUnavailable
	}
	g.writeJSON(w, code, map[string]string{"status": status})
}

func (g *Gateway) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		g.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		g.requestsFailed.Add(1)
		return
	}

	g.bytesSent.Add(uint64(len(data)))
	g.requestsSuccess.Add(1)
}

func (g *Gateway) writeError(w http.ResponseWriter, statusCode int, msg string) {
	g.requestsFailed.Add(1)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	data, _ := json.Marshal(map[string]any{"error": msg, "status": statusCode})
	_, _ = w.Write(data)
}

// Meta returns component metadata.
func (g *Gateway) Meta() component.Metadata {
	return component.Metadata{
		Name:        g.config.Name,
		Type:        "gateway",
		Description: fmt.Sprintf("HTTP validation API on %s", g.config.Addr),
		Version:     "1.0.0",
	}
}

// InputPorts returns no input ports; the gateway is request driven.
func (g *Gateway) InputPorts() []component.Port {
	return []component.Port{}
}

// OutputPorts returns the HTTP endpoint and the mirrored result subjects.
func (g *Gateway) OutputPorts() []component.Port {
	contract := &component.InterfaceContract{Type: "message.ResultPayload", Version: "v1"}
	return []component.Port{
		{
			Name:        "api",
			Direction:   component.DirectionOutput,
			Required:    true,
			Description: fmt.Sprintf("HTTP API at http://%s/v1", g.config.Addr),
			Config:      component.HTTPPort{Addr: g.config.Addr, Path: "/v1"},
		},
		{
			Name:        "accepted",
			Direction:   component.DirectionOutput,
			Required:    false,
			Description: "Mirrored accepted results",
			Config:      component.NATSPort{Subject: g.config.AcceptedSubject, Interface: contract},
		},
		{
			Name:        "rejected",
			Direction:   component.DirectionOutput,
			Required:    false,
			Description: "Mirrored rejected results",
			Config:      component.NATSPort{Subject: g.config.RejectedSubject, Interface: contract},
		},
	}
}

// ConfigSchema returns the configuration schema.
func (g *Gateway) ConfigSchema() component.ConfigSchema {
	return configSchema()
}

func configSchema() component.ConfigSchema {
	return component.ConfigSchema{
		Properties: map[string]component.PropertySchema{
			"name": {
				Type:        "string",
				Description: "Instance name used in logs",
				Default:     "gateway",
			},
			"addr": {
				Type:        "string",
				Description: "Listen address for the HTTP API",
				Default:     ":8080",
			},
			"read_timeout": {
				Type:        "string",
				Description: "HTTP read timeout, e.g. 10s",
				Default:     "10s",
			},
			"write_timeout": {
				Type:        "string",
				Description: "HTTP write timeout, e.g. 10s",
				Default:     "10s",
			},
			"max_request_size": {
				Type:        "int",
				Description: "Maximum request body size in bytes",
				Default:     1 << 20,
			},
			"enable_cors": {
				Type:        "bool",
				Description: "Send permissive CORS headers",
				Default:     false,
			},
		},
	}
}

// Health returns current health status.
func (g *Gateway) Health() component.HealthStatus {
	g.mu.RLock()
	startTime := g.startTime
	g.mu.RUnlock()

	running := g.running.Load()
	var uptime time.Duration
	if running {
		uptime = time.Since(startTime)
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(g.requestsFailed.Load()),
		Uptime:     uptime,
	}
}

// DataFlow returns current data flow metrics.
func (g *Gateway) DataFlow() component.FlowMetrics {
	g.mu.RLock()
	startTime := g.startTime
	g.mu.RUnlock()

	flow := component.FlowMetrics{}
	if last, ok := g.lastActivity.Load().(time.Time); ok {
		flow.LastActivity = last
	}

	total := g.requestsTotal.Load()
	if total > 0 {
		flow.ErrorRate = float64(g.requestsFailed.Load()) / float64(total)
	}
	if g.running.Load() {
		if uptime := time.Since(startTime).Seconds(); uptime > 0 {
			flow.MessagesPerSecond = float64(total) / uptime
			flow.BytesPerSecond = float64(g.bytesReceived.Load()+g.bytesSent.Load()) / uptime
		}
	}

	return flow
}

// Package factcheck implements the fact validation processor. It consumes
// submitted facts from NATS, checks them against the deployment schema, and
// publishes an accepted or rejected result for every submission.
package factcheck

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RAraghavarora/lisdf/component"
	"github.com/RAraghavarora/lisdf/errors"
	"github.com/RAraghavarora/lisdf/fact"
	"github.com/RAraghavarora/lisdf/message"
	"github.com/RAraghavarora/lisdf/metric"
	"github.com/RAraghavarora/lisdf/schema"
)

// Default subjects for the fact pipeline.
const (
	DefaultInputSubject    = "lisdf.fact.submitted"
	DefaultAcceptedSubject = "lisdf.fact.accepted"
	DefaultRejectedSubject = "lisdf.fact.rejected"
)

// Config holds the processor configuration. When StreamName is set the
// processor consumes submissions through a durable JetStream consumer and
// publishes results with stream acknowledgement; otherwise it uses core
// NATS subscriptions.
type Config struct {
	Name            string `json:"name"`
	InputSubject    string `json:"input_subject"`
	AcceptedSubject string `json:"accepted_subject"`
	RejectedSubject string `json:"rejected_subject"`
	StreamName      string `json:"stream_name,omitempty"`
}

// DefaultConfig returns the default processor configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "factcheck",
		InputSubject:    DefaultInputSubject,
		AcceptedSubject: DefaultAcceptedSubject,
		RejectedSubject: DefaultRejectedSubject,
	}
}

// Validate checks the configuration for completeness.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", "name is required")
	}
	if c.InputSubject == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", "input_subject is required")
	}
	if c.AcceptedSubject == "" || c.RejectedSubject == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", "result subjects are required")
	}
	if c.AcceptedSubject == c.RejectedSubject {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"accepted and rejected subjects must differ")
	}
	return nil
}

// Processor validates submitted facts against the deployment schema.
type Processor struct {
	config    Config
	deps      component.Dependencies
	validator *fact.Validator
	metrics   *checkMetrics
	core      *metric.Metrics

	// Lifecycle
	lifecycleMu sync.Mutex
	running     bool
	shutdown    chan struct{}
	startTime   time.Time

	// Counters for health and flow reporting
	received     atomic.Int64
	accepted     atomic.Int64
	rejected     atomic.Int64
	errorCount   atomic.Int64
	lastActivity atomic.Value // time.Time

	lastErrMu sync.Mutex
	lastErr   string
}

// NewProcessor creates a fact validation processor from raw JSON
// configuration. The schema dependency is mandatory; everything else
// degrades gracefully.
func NewProcessor(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, errors.WrapInvalid(err, "Processor", "NewProcessor", "parse config")
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if deps.Schema == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Processor", "NewProcessor",
			"schema dependency is required")
	}

	p := &Processor{
		config:    config,
		deps:      deps,
		validator: fact.NewValidator(deps.Schema),
	}
	p.lastActivity.Store(time.Time{})

	if deps.MetricsRegistry != nil {
		metrics, err := newCheckMetrics(deps.MetricsRegistry, config.Name)
		if err != nil {
			return nil, errors.Wrap(err, "Processor", "NewProcessor", "register metrics")
		}
		p.metrics = metrics
		p.core = deps.MetricsRegistry.CoreMetrics()
	}

	return p, nil
}

// Register registers the factcheck factory with a component registry.
func Register(registry *component.Registry) error {
	return registry.RegisterFactory("factcheck", &component.Registration{
		Name:        "factcheck",
		Type:        "processor",
		Description: "Validates submitted facts against the deployment schema",
		Version:     "1.0.0",
		Schema:      configSchema(),
		Factory:     NewProcessor,
	})
}

// Initialize prepares the processor. Validation is stateless, so this only
// reports schema size to the metrics layer.
func (p *Processor) Initialize() error {
	if p.core != nil {
		s := p.validator.Schema()
		types := len(s.TypeNames(schema.CategoryObject)) + len(s.TypeNames(schema.CategoryValue))
		p.core.RecordSchemaSize(types, len(s.PredicateNames()))
	}
	return nil
}

// Start subscribes to the input subject and begins validating facts.
func (p *Processor) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.running {
		return errors.WrapInvalid(
			fmt.Errorf("processor already running"),
			"Processor", "Start", "lifecycle check")
	}
	if p.deps.NATSClient == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Processor", "Start",
			"NATS client dependency is required")
	}

	p.shutdown = make(chan struct{})

	if p.config.StreamName != "" {
		err := p.deps.NATSClient.ConsumeStream(ctx, p.config.StreamName, p.config.InputSubject,
			func(data []byte) { p.handleMessage(ctx, data) })
		if err != nil {
			return errors.WrapTransient(err, "Processor", "Start",
				fmt.Sprintf("consume %s from stream %s", p.config.InputSubject, p.config.StreamName))
		}
	} else {
		if err := p.deps.NATSClient.Subscribe(ctx, p.config.InputSubject, p.handleMessage); err != nil {
			return errors.WrapTransient(err, "Processor", "Start",
				fmt.Sprintf("subscribe to %s", p.config.InputSubject))
		}
	}

	p.running = true
	p.startTime = time.Now()

	p.deps.GetLoggerWithComponent(p.config.Name).Info("processor started",
		"input", p.config.InputSubject,
		"stream", p.config.StreamName,
		"accepted", p.config.AcceptedSubject,
		"rejected", p.config.RejectedSubject)

	return nil
}

// Stop halts message processing. The NATS subscription itself is owned by
// the client and torn down when it drains.
func (p *Processor) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.running {
		return nil
	}

	close(p.shutdown)
	p.running = false

	p.deps.GetLoggerWithComponent(p.config.Name).Info("processor stopped",
		"received", p.received.Load(),
		"accepted", p.accepted.Load(),
		"rejected", p.rejected.Load(),
		"uptime", time.Since(p.startTime).Round(time.Second))

	_ = timeout // no worker pool to await; subscription handlers are short-lived
	return nil
}

// handleMessage validates one submitted fact and publishes the result.
func (p *Processor) handleMessage(ctx context.Context, data []byte) {
	select {
	case <-p.shutdown:
		return
	default:
	}

	start := time.Now()
	p.received.Add(1)
	p.lastActivity.Store(start)

	logger := p.deps.GetLoggerWithComponent(p.config.Name)

	var envelope message.BaseMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		p.recordError("parse", err)
		logger.Warn("dropping unparseable submission", "error", err)
		return
	}

	payload, ok := envelope.Payload().(*message.FactPayload)
	if !ok {
		p.recordError("payload", fmt.Errorf("unexpected payload type %s", envelope.Type().String()))
		logger.Warn("dropping submission with wrong payload type", "type", envelope.Type().String())
		return
	}

	if p.core != nil {
		p.core.RecordFactReceived(p.config.Name, payload.Fact.Predicate)
	}

	result, subject := p.check(envelope.ID(), payload)
	duration := time.Since(start)

	p.metrics.recordValidation(p.config.Name, result.Status == message.StatusAccepted, duration)
	p.metrics.updateAcceptRate(p.accepted.Load(), p.received.Load())
	if p.core != nil {
		p.core.RecordFactValidated(p.config.Name, result.Status, result.Variant)
		p.core.RecordValidationDuration(p.config.Name, "check", duration)
	}

	out := message.NewBaseMessage(message.ValidationResult, result, p.config.Name)
	outData, err := json.Marshal(out)
	if err != nil {
		p.recordError("marshal", err)
		logger.Error("failed to marshal validation result", "fact_id", envelope.ID(), "error", err)
		return
	}

	if err := p.publishResult(ctx, subject, outData); err != nil {
		p.recordError("publish", err)
		logger.Error("failed to publish validation result",
			"fact_id", envelope.ID(), "subject", subject, "error", err)
		return
	}

	if p.core != nil {
		p.core.RecordResultPublished(p.config.Name, subject)
	}

	logger.Debug("fact validated",
		"fact_id", envelope.ID(),
		"predicate", payload.Fact.Predicate,
		"status", result.Status,
		"variant", result.Variant,
		"duration", duration)
}

// publishResult delivers one validation result. In stream mode results go
// through JetStream so the broker acknowledges persistence; core NATS is
// fire-and-forget.
func (p *Processor) publishResult(ctx context.Context, subject string, data []byte) error {
	if p.config.StreamName != "" {
		return p.deps.NATSClient.PublishToStream(ctx, subject, data)
	}
	return p.deps.NATSClient.Publish(ctx, subject, data)
}

// check validates a submitted fact and builds the result payload plus the
// subject it should be published on.
func (p *Processor) check(factID string, payload *message.FactPayload) (*message.ResultPayload, string) {
	result := &message.ResultPayload{
		FactID:    factID,
		Fact:      payload.Fact,
		Validated: time.Now().UnixMilli(),
	}

	err := payload.Validate()
	if err == nil {
		err = p.validator.Validate(payload.Fact)
	}

	if err == nil {
		result.Status = message.StatusAccepted
		p.accepted.Add(1)
		return result, p.config.AcceptedSubject
	}

	result.Status = message.StatusRejected
	result.Variant = classify(err)
	result.Detail = err.Error()
	p.rejected.Add(1)
	return result, p.config.RejectedSubject
}

// classify maps a validation error to its rejection variant.
func classify(err error) string {
	var (
		unknownErr *fact.UnknownPredicateError
		arityErr   *fact.ArityError
		typeErr    *fact.TypeMismatchError
		shapeErr   *fact.ShapeMismatchError
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
		_ = stderrors.As(err, &shapeErr)
		return message.VariantShapeMismatch
	}
}

// recordError tracks a processing error for health reporting and metrics.
func (p *Processor) recordError(errorType string, err error) {
	p.errorCount.Add(1)
	p.metrics.recordError(p.config.Name, errorType)
	if p.core != nil {
		p.core.RecordError(p.config.Name, errorType)
	}

	p.lastErrMu.Lock()
	p.lastErr = err.Error()
	p.lastErrMu.Unlock()
}

// Meta returns component metadata.
func (p *Processor) Meta() component.Metadata {
	return component.Metadata{
		Name:        p.config.Name,
		Type:        "processor",
		Description: "Validates submitted facts against the deployment schema",
		Version:     "1.0.0",
	}
}

// InputPorts returns the subjects this processor consumes.
func (p *Processor) InputPorts() []component.Port {
	contract := &component.InterfaceContract{Type: "message.FactPayload", Version: "v1"}

	var portConfig component.Portable = component.NATSPort{
		Subject:   p.config.InputSubject,
		Interface: contract,
	}
	if p.config.StreamName != "" {
		portConfig = component.JetStreamPort{
			StreamName:   p.config.StreamName,
			Subjects:     []string{p.config.InputSubject},
			ConsumerName: p.config.Name,
			Interface:    contract,
		}
	}

	return []component.Port{
		{
			Name:        "facts",
			Direction:   component.DirectionInput,
			Required:    true,
			Description: "Submitted facts awaiting validation",
			Config:      portConfig,
		},
	}
}

// OutputPorts returns the subjects this processor publishes results on.
func (p *Processor) OutputPorts() []component.Port {
	contract := &component.InterfaceContract{Type: "message.ResultPayload", Version: "v1"}
	return []component.Port{
		{
			Name:        "accepted",
			Direction:   component.DirectionOutput,
			Required:    true,
			Description: "Facts that passed schema validation",
			Config:      component.NATSPort{Subject: p.config.AcceptedSubject, Interface: contract},
		},
		{
			Name:        "rejected",
			Direction:   component.DirectionOutput,
			Required:    true,
			Description: "Facts that failed schema validation",
			Config:      component.NATSPort{Subject: p.config.RejectedSubject, Interface: contract},
		},
	}
}

// ConfigSchema returns the configuration schema.
func (p *Processor) ConfigSchema() component.ConfigSchema {
	return configSchema()
}

func configSchema() component.ConfigSchema {
	return component.ConfigSchema{
		Properties: map[string]component.PropertySchema{
			"name": {
				Type:        "string",
				Description: "Instance name used in logs and metrics",
				Default:     "factcheck",
			},
			"input_subject": {
				Type:        "string",
				Description: "Subject to consume submitted facts from",
				Default:     DefaultInputSubject,
			},
			"accepted_subject": {
				Type:        "string",
				Description: "Subject accepted results are published on",
				Default:     DefaultAcceptedSubject,
			},
			"rejected_subject": {
				Type:        "string",
				Description: "Subject rejected results are published on",
				Default:     DefaultRejectedSubject,
			},
			"stream_name": {
				Type:        "string",
				Description: "JetStream stream to consume from; empty uses core NATS",
			},
		},
	}
}

// Health returns current health status.
func (p *Processor) Health() component.HealthStatus {
	p.lifecycleMu.Lock()
	running := p.running
	startTime := p.startTime
	p.lifecycleMu.Unlock()

	p.lastErrMu.Lock()
	lastErr := p.lastErr
	p.lastErrMu.Unlock()

	var uptime time.Duration
	if running {
		uptime = time.Since(startTime)
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(p.errorCount.Load()),
		LastError:  lastErr,
		Uptime:     uptime,
	}
}

// DataFlow returns current data flow metrics.
func (p *Processor) DataFlow() component.FlowMetrics {
	p.lifecycleMu.Lock()
	running := p.running
	startTime := p.startTime
	p.lifecycleMu.Unlock()

	flow := component.FlowMetrics{}
	if last, ok := p.lastActivity.Load().(time.Time); ok {
		flow.LastActivity = last
	}

	received := p.received.Load()
	if running && received > 0 {
		elapsed := time.Since(startTime).Seconds()
		if elapsed > 0 {
			flow.MessagesPerSecond = float64(received) / elapsed
		}
		flow.ErrorRate = float64(p.errorCount.Load()) / float64(received)
	}

	return flow
}

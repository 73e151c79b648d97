// Package main implements the entry point for the LISDF fact validation
// service. The service loads a strongly typed schema of robot-scene
// vocabulary, validates submitted facts against it, and publishes
// accept/reject results over NATS, HTTP, and WebSocket surfaces.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/RAraghavarora/lisdf/component"
	"github.com/RAraghavarora/lisdf/config"
	"github.com/RAraghavarora/lisdf/errors"
	httpgateway "github.com/RAraghavarora/lisdf/gateway/http"
	"github.com/RAraghavarora/lisdf/health"
	"github.com/RAraghavarora/lisdf/metric"
	"github.com/RAraghavarora/lisdf/natsclient"
	"github.com/RAraghavarora/lisdf/output/websocket"
	"github.com/RAraghavarora/lisdf/processor/factcheck"
	"github.com/RAraghavarora/lisdf/schema"
)

// Build information constants
const (
	Version   = "1.0.0"
	BuildTime = "dev"
	appName   = "lisdf"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := loadConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	deploymentSchema, err := cfg.BuildSchema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	slog.Info("Schema loaded",
		"object_types", len(deploymentSchema.TypeNames(schema.CategoryObject)),
		"value_types", len(deploymentSchema.TypeNames(schema.CategoryValue)),
		"predicates", len(deploymentSchema.PredicateNames()))

	ctx := context.Background()
	natsClient, err := createNATSClient(cfg, logger)
	if err != nil {
		return err
	}
	if err := connectToNATS(ctx, natsClient); err != nil {
		return err
	}
	defer func() { _ = natsClient.Close(ctx) }()

	natsClient.OnHealthChange(func(healthy bool) {
		if healthy {
			slog.Info("NATS connection healthy")
		} else {
			slog.Warn("NATS connection unhealthy")
		}
	})

	streamName, err := ensureStream(ctx, cfg, natsClient)
	if err != nil {
		return err
	}

	metricsRegistry, metricsServer := startMetrics(cfg)
	if metricsServer != nil {
		defer func() { _ = metricsServer.Stop() }()
	}

	deps := component.Dependencies{
		NATSClient:      natsClient,
		MetricsRegistry: metricsRegistry,
		Logger:          logger,
		Schema:          deploymentSchema,
	}

	registry := component.NewRegistry()
	if err := registerFactories(registry); err != nil {
		return err
	}

	components, err := createComponents(cfg, registry, deps, streamName)
	if err != nil {
		return err
	}

	return runWithSignalHandling(ctx, components, cliCfg.ShutdownTimeout)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting LISDF (typed fact validation)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// loadConfiguration loads, merges, and validates configuration. An empty
// config path runs on defaults plus environment overrides.
func loadConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(true)
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// createNATSClient builds the NATS client from configuration.
func createNATSClient(cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	opts := []natsclient.ClientOption{
		natsclient.WithName(cfg.Service.Name),
		natsclient.WithMaxReconnects(cfg.NATS.MaxReconnects),
		natsclient.WithLogger(logger),
	}
	if cfg.NATS.ReconnectWait > 0 {
		opts = append(opts, natsclient.WithReconnectWait(cfg.NATS.ReconnectWait))
	}
	if cfg.NATS.Username != "" {
		opts = append(opts, natsclient.WithCredentials(cfg.NATS.Username, cfg.NATS.Password))
	}
	if cfg.NATS.Token != "" {
		opts = append(opts, natsclient.WithToken(cfg.NATS.Token))
	}

	natsClient, err := natsclient.NewClient(cfg.NATS.URLs[0], opts...)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}
	return natsClient, nil
}

// connectToNATS establishes the NATS connection, retrying transient
// failures on the standard backoff schedule before giving up.
func connectToNATS(ctx context.Context, natsClient *natsclient.Client) error {
	retry := errors.DefaultRetryConfig()

	var err error
	for attempt := 0; ; attempt++ {
		slog.Info("Connecting to NATS", "attempt", attempt+1)
		err = natsClient.Connect(ctx)
		if err == nil {
			break
		}
		if !retry.ShouldRetry(err, attempt) {
			return fmt.Errorf("connect to NATS: %w", err)
		}

		delay := retry.BackoffDelay(attempt)
		slog.Warn("NATS connection failed, retrying", "error", err, "delay", delay)
		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to NATS: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := natsClient.WaitForConnection(connCtx); err != nil {
		return fmt.Errorf("NATS connection timeout: %w", err)
	}

	return nil
}

// ensureStream looks up the fact stream and creates it when absent, so
// submissions survive restarts of the validation pipeline. Returns the
// stream name, or "" when JetStream is disabled.
func ensureStream(ctx context.Context, cfg *config.Config, natsClient *natsclient.Client) (string, error) {
	if !cfg.NATS.JetStream.Enabled {
		return "", nil
	}

	streamName := cfg.NATS.JetStream.StreamName
	if streamName == "" {
		streamName = "LISDF-FACTS"
	}

	if _, err := natsClient.GetStream(ctx, streamName); err == nil {
		slog.Info("JetStream stream exists", "stream", streamName)
		return streamName, nil
	}

	maxAge, err := cfg.NATS.JetStream.MaxAgeDuration()
	if err != nil {
		return "", fmt.Errorf("parse jetstream max_age: %w", err)
	}

	_, err = natsClient.CreateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"lisdf.fact.>"},
		MaxAge:   maxAge,
	})
	if err != nil {
		return "", fmt.Errorf("create stream %s: %w", streamName, err)
	}

	slog.Info("JetStream stream created", "stream", streamName, "max_age", maxAge)
	return streamName, nil
}

// startMetrics creates the metrics registry and, when enabled, serves the
// Prometheus endpoint in the background.
func startMetrics(cfg *config.Config) (*metric.MetricsRegistry, *metric.Server) {
	if !cfg.Metrics.Enabled {
		slog.Info("Metrics disabled")
		return nil, nil
	}

	registry := metric.NewMetricsRegistry()
	server := metric.NewServer(cfg.Metrics.Addr, cfg.Metrics.Path, registry)

	go func() {
		slog.Info("Metrics server starting", "address", server.Address())
		if err := server.Start(); err != nil {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	return registry, server
}

// registerFactories registers all component factories.
func registerFactories(registry *component.Registry) error {
	if err := factcheck.Register(registry); err != nil {
		return fmt.Errorf("register factcheck: %w", err)
	}
	if err := websocket.Register(registry); err != nil {
		return fmt.Errorf("register websocket: %w", err)
	}
	if err := httpgateway.Register(registry); err != nil {
		return fmt.Errorf("register http gateway: %w", err)
	}

	factories := registry.ListFactories()
	slog.Info("Component factories registered", "count", len(factories), "factories", factories)
	return nil
}

// namedComponent pairs an instance name with its lifecycle handle. Slice
// order is start order; Stop runs in reverse.
type namedComponent struct {
	name string
	comp component.LifecycleComponent
}

// createComponents instantiates the enabled components. Outputs come first
// so no results are dropped while the processor spins up.
func createComponents(
	cfg *config.Config,
	registry *component.Registry,
	deps component.Dependencies,
	streamName string,
) ([]namedComponent, error) {
	var components []namedComponent

	create := func(factory, instance string, rawConfig json.RawMessage) error {
		comp, err := registry.CreateComponent(factory, instance, rawConfig, deps)
		if err != nil {
			return fmt.Errorf("create %s: %w", instance, err)
		}

		lc, ok := comp.(component.LifecycleComponent)
		if !ok {
			return fmt.Errorf("component %s does not implement lifecycle", instance)
		}

		components = append(components, namedComponent{name: instance, comp: lc})
		slog.Info("Component created", "name", instance, "factory", factory)
		return nil
	}

	if cfg.WebSocket.Enabled {
		raw, _ := json.Marshal(map[string]any{
			"addr": cfg.WebSocket.Addr,
			"path": cfg.WebSocket.Path,
		})
		if err := create("websocket", "websocket", raw); err != nil {
			return nil, err
		}
	}

	if cfg.Gateway.Enabled {
		raw, _ := json.Marshal(map[string]any{
			"addr":          cfg.Gateway.Addr,
			"read_timeout":  cfg.Gateway.ReadTimeout.String(),
			"write_timeout": cfg.Gateway.WriteTimeout.String(),
		})
		if err := create("http-gateway", "gateway", raw); err != nil {
			return nil, err
		}
	}

	var factcheckRaw json.RawMessage
	if streamName != "" {
		factcheckRaw, _ = json.Marshal(map[string]any{"stream_name": streamName})
	}
	if err := create("factcheck", "factcheck", factcheckRaw); err != nil {
		return nil, err
	}

	return components, nil
}

// startComponents initializes and starts every component in order.
func startComponents(ctx context.Context, components []namedComponent) error {
	for _, nc := range components {
		if err := nc.comp.Initialize(); err != nil {
			return fmt.Errorf("initialize %s: %w", nc.name, err)
		}
	}

	for _, nc := range components {
		if err := nc.comp.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", nc.name, err)
		}
		slog.Info("Component started", "name", nc.name)
	}

	return nil
}

// stopComponents stops components in reverse start order, continuing past
// individual failures so every component gets its shutdown window.
func stopComponents(components []namedComponent, timeout time.Duration) error {
	var firstErr error
	for i := len(components) - 1; i >= 0; i-- {
		nc := components[i]
		if err := nc.comp.Stop(timeout); err != nil {
			slog.Error("Component stop failed", "name", nc.name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("stop %s: %w", nc.name, err)
			}
			continue
		}
		slog.Info("Component stopped", "name", nc.name)
	}
	return firstErr
}

// monitorHealth periodically polls the watched components and logs when
// the aggregate leaves the healthy state.
func monitorHealth(ctx context.Context, monitor *health.Monitor) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			aggregate := monitor.ObserveAll(appName)
			if !aggregate.IsHealthy() {
				slog.Warn("System health degraded",
					"status", aggregate.Status, "message", aggregate.Message)
			}
		}
	}
}

// runWithSignalHandling starts components and blocks until shutdown.
func runWithSignalHandling(
	ctx context.Context,
	components []namedComponent,
	shutdownTimeout time.Duration,
) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	if err := startComponents(signalCtx, components); err != nil {
		// Roll back anything that did start.
		_ = stopComponents(components, shutdownTimeout)
		return err
	}
	slog.Info("LISDF started successfully", "components", len(components))

	monitor := health.NewMonitor()
	for _, nc := range components {
		monitor.Watch(nc.name, nc.comp)
	}
	go monitorHealth(signalCtx, monitor)

	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	if err := stopComponents(components, shutdownTimeout); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("LISDF shutdown complete")
	return nil
}

// Package websocket streams validation results to connected clients. The
// output subscribes to the result subjects on NATS and broadcasts every
// message to all WebSocket connections.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RAraghavarora/lisdf/component"
	"github.com/RAraghavarora/lisdf/errors"
)

// Config holds configuration for the WebSocket output component.
type Config struct {
	Name     string   `json:"name"`
	Addr     string   `json:"addr"`
	Path     string   `json:"path"`
	Subjects []string `json:"subjects"`
}

// DefaultConfig returns the default output configuration: both result
// subjects streamed from one endpoint.
func DefaultConfig() Config {
	return Config{
		Name:     "websocket",
		Addr:     ":8081",
		Path:     "/ws/results",
		Subjects: []string{"lisdf.fact.accepted", "lisdf.fact.rejected"},
	}
}

// Envelope wraps every frame sent to clients so they can distinguish
// result data from future control frames.
type Envelope struct {
	Type      string          `json:"type"` // currently always "result"
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Timestamp int64           `json:"timestamp"` // Unix milliseconds
	Payload   json.RawMessage `json:"payload"`
}

// clientInfo tracks one connected WebSocket client.
type clientInfo struct {
	conn        *websocket.Conn
	connectedAt time.Time
	closed      atomic.Bool
	closeOnce   sync.Once
	writeMu     sync.Mutex // gorilla/websocket panics on concurrent writes
}

// Output is a WebSocket server broadcasting validation results.
type Output struct {
	config  Config
	deps    component.Dependencies
	logger  *slog.Logger
	metrics *wsMetrics

	server    *http.Server
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]*clientInfo
	clientsMu sync.RWMutex

	// Lifecycle
	lifecycleMu sync.Mutex
	mu          sync.RWMutex
	running     bool
	shutdown    chan struct{}
	wg          *sync.WaitGroup
	startTime   time.Time

	// Counters
	messageID    atomic.Uint64
	messagesSent atomic.Int64
	bytesSent    atomic.Int64
	errorCount   atomic.Int64
	lastActivity atomic.Value // time.Time
}

var _ component.LifecycleComponent = (*Output)(nil)

// NewOutput creates a WebSocket output component from raw JSON configuration.
func NewOutput(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, errors.WrapInvalid(err, "Output", "NewOutput", "parse config")
		}
	}

	o := &Output{
		config: config,
		deps:   deps,
		logger: deps.GetLoggerWithComponent(config.Name),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*clientInfo),
	}
	o.lastActivity.Store(time.Time{})

	if deps.MetricsRegistry != nil {
		metrics, err := newWSMetrics(deps.MetricsRegistry)
		if err != nil {
			return nil, errors.Wrap(err, "Output", "NewOutput", "register metrics")
		}
		o.metrics = metrics
	}

	return o, nil
}

// Register registers the websocket output factory with a component registry.
func Register(registry *component.Registry) error {
	return registry.RegisterFactory("websocket", &component.Registration{
		Name:        "websocket",
		Type:        "output",
		Description: "Streams validation results to WebSocket clients",
		Version:     "1.0.0",
		Schema:      configSchema(),
		Factory:     NewOutput,
	})
}

// Initialize validates the configuration before the server starts.
func (o *Output) Initialize() error {
	if o.config.Addr == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Output", "Initialize", "addr cannot be empty")
	}
	if o.config.Path == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Output", "Initialize", "path cannot be empty")
	}
	if len(o.config.Subjects) == 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Output", "Initialize", "subjects cannot be empty")
	}
	return nil
}

// Start begins serving WebSocket clients and subscribing to result subjects.
func (o *Output) Start(ctx context.Context) error {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "Output", "Start", "context already cancelled")
	}

	o.shutdown = make(chan struct{})
	o.wg = &sync.WaitGroup{}

	mux := http.NewServeMux()
	mux.HandleFunc(o.config.Path, o.handleWebSocket)
	o.server = &http.Server{
		Addr:         o.config.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// NATS client is optional so the server can be exercised in isolation.
	if o.deps.NATSClient != nil {
		for _, subject := range o.config.Subjects {
			subj := subject
			err := o.deps.NATSClient.Subscribe(ctx, subj, func(msgCtx context.Context, data []byte) {
				o.handleResult(msgCtx, subj, data)
			})
			if err != nil {
				close(o.shutdown)
				o.shutdown = nil
				o.server = nil
				return errors.WrapTransient(err, "Output", "Start",
					fmt.Sprintf("subscribe to %s", subj))
			}
		}
	}

	o.running = true
	o.startTime = time.Now()

	o.wg.Add(2)
	go o.runServer(o.wg)
	go o.maintainClients(ctx, o.wg)

	o.logger.Info("websocket output started",
		"addr", o.config.Addr, "path", o.config.Path, "subjects", o.config.Subjects)

	return nil
}

// Stop shuts the server down and closes all client connections.
func (o *Output) Stop(timeout time.Duration) error {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()

	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return nil
	}
	o.running = false

	if o.shutdown != nil {
		close(o.shutdown)
	}
	server := o.server
	wg := o.wg
	o.mu.Unlock()

	// Shut down the listener first so runServer can return.
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			o.logger.Warn("server shutdown error", "error", err)
		}
	}

	if wg != nil {
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(timeout):
			o.logger.Warn("goroutines did not exit within timeout", "timeout", timeout)
		}
	}

	o.closeAllClients()

	o.mu.Lock()
	o.server = nil
	o.shutdown = nil
	o.wg = nil
	o.mu.Unlock()

	o.logger.Info("websocket output stopped",
		"messages_sent", o.messagesSent.Load(), "bytes_sent", o.bytesSent.Load())

	return nil
}

// runServer blocks in ListenAndServe until shutdown.
func (o *Output) runServer(wg *sync.WaitGroup) {
	defer wg.Done()

	o.mu.RLock()
	server := o.server
	o.mu.RUnlock()

	if server == nil {
		return
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		o.errorCount.Add(1)
		o.metrics.recordError("listen")
		o.logger.Error("websocket server failed", "error", err)
	}
}

// handleResult broadcasts one validation result to all connected clients.
func (o *Output) handleResult(ctx context.Context, subject string, data []byte) {
	select {
	case <-ctx.Done():
		return
	case <-o.shutdown:
		return
	default:
	}

	o.mu.RLock()
	running := o.running
	o.mu.RUnlock()
	if !running {
		return
	}

	o.lastActivity.Store(time.Now())
	o.metrics.recordReceived(subject)

	envelope := Envelope{
		Type:      "result",
		ID:        o.nextMessageID(),
		Subject:   subject,
		Timestamp: time.Now().UnixMilli(),
		Payload:   json.RawMessage(data),
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		o.errorCount.Add(1)
		o.metrics.recordError("marshal")
		return
	}

	o.broadcast(subject, frame)
}

// broadcast sends a frame to every connected client. Dead clients are
// removed as write failures surface.
func (o *Output) broadcast(subject string, frame []byte) {
	start := time.Now()

	o.clientsMu.RLock()
	snapshot := make([]*clientInfo, 0, len(o.clients))
	for _, info := range o.clients {
		if !info.closed.Load() {
			snapshot = append(snapshot, info)
		}
	}
	o.clientsMu.RUnlock()

	for _, info := range snapshot {
		if err := o.sendToClient(info, frame); err != nil {
			o.removeClient(info)
			o.errorCount.Add(1)
			o.metrics.recordError("client_send")
			continue
		}
		o.messagesSent.Add(1)
		o.bytesSent.Add(int64(len(frame)))
		o.metrics.recordSent(subject, len(frame))
	}

	o.metrics.recordBroadcast(subject, time.Since(start))
}

// sendToClient writes one frame with a deadline, serializing writes per
// connection.
func (o *Output) sendToClient(info *clientInfo, frame []byte) error {
	info.writeMu.Lock()
	defer info.writeMu.Unlock()

	_ = info.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return info.conn.WriteMessage(websocket.TextMessage, frame)
}

// handleWebSocket upgrades an HTTP request and registers the client.
func (o *Output) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := o.upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.errorCount.Add(1)
		o.metrics.recordError("upgrade")
		return
	}

	info := &clientInfo{conn: conn, connectedAt: time.Now()}

	o.clientsMu.Lock()
	o.clients[conn] = info
	count := len(o.clients)
	o.clientsMu.Unlock()

	o.metrics.recordConnect(count)
	o.logger.Debug("client connected", "remote", r.RemoteAddr, "clients", count)

	o.mu.RLock()
	wg := o.wg
	o.mu.RUnlock()
	if wg == nil {
		// Stop ran between accept and registration.
		o.removeClient(info)
		return
	}

	wg.Add(1)
	go o.readClient(info, wg)
}

// readClient drains inbound frames so pings are answered and close frames
// are noticed. Clients are not expected to send application data.
func (o *Output) readClient(info *clientInfo, wg *sync.WaitGroup) {
	defer wg.Done()
	defer o.removeClient(info)

	// Shutdown closes the connection, which surfaces here as a read error.
	for {
		_ = info.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if _, _, err := info.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// removeClient unregisters a client exactly once and closes its connection.
func (o *Output) removeClient(info *clientInfo) {
	info.closeOnce.Do(func() {
		info.closed.Store(true)

		o.clientsMu.Lock()
		delete(o.clients, info.conn)
		count := len(o.clients)
		o.clientsMu.Unlock()

		o.metrics.recordDisconnect(count)
		_ = info.conn.Close()
	})
}

// closeAllClients drops every connection during shutdown.
func (o *Output) closeAllClients() {
	o.clientsMu.Lock()
	clients := o.clients
	o.clients = make(map[*websocket.Conn]*clientInfo)
	o.clientsMu.Unlock()

	for _, info := range clients {
		info.closed.Store(true)
		_ = info.conn.Close()
	}
}

// maintainClients pings connected clients so dead connections are culled.
func (o *Output) maintainClients(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.shutdown:
			return
		case <-ticker.C:
			o.pingClients()
		}
	}
}

func (o *Output) pingClients() {
	o.clientsMu.RLock()
	snapshot := make([]*clientInfo, 0, len(o.clients))
	for _, info := range o.clients {
		if !info.closed.Load() {
			snapshot = append(snapshot, info)
		}
	}
	o.clientsMu.RUnlock()

	for _, info := range snapshot {
		info.writeMu.Lock()
		err := info.conn.WriteMessage(websocket.PingMessage, nil)
		info.writeMu.Unlock()

		if err != nil {
			o.removeClient(info)
			o.errorCount.Add(1)
		}
	}
}

func (o *Output) nextMessageID() string {
	return fmt.Sprintf("msg-%d-%d", time.Now().UnixMilli(), o.messageID.Add(1))
}

// ClientCount returns the number of currently connected clients.
func (o *Output) ClientCount() int {
	o.clientsMu.RLock()
	defer o.clientsMu.RUnlock()
	return len(o.clients)
}

// Meta returns component metadata.
func (o *Output) Meta() component.Metadata {
	return component.Metadata{
		Name:        o.config.Name,
		Type:        "output",
		Description: fmt.Sprintf("WebSocket server on %s%s streaming validation results", o.config.Addr, o.config.Path),
		Version:     "1.0.0",
	}
}

// InputPorts returns the result subjects this output consumes.
func (o *Output) InputPorts() []component.Port {
	ports := make([]component.Port, len(o.config.Subjects))
	for i, subject := range o.config.Subjects {
		ports[i] = component.Port{
			Name:        fmt.Sprintf("results_%d", i),
			Direction:   component.DirectionInput,
			Required:    false,
			Description: fmt.Sprintf("Validation results from %s", subject),
			Config: component.NATSPort{
				Subject:   subject,
				Interface: &component.InterfaceContract{Type: "message.ResultPayload", Version: "v1"},
			},
		}
	}
	return ports
}

// OutputPorts returns the WebSocket endpoint this output serves.
func (o *Output) OutputPorts() []component.Port {
	return []component.Port{
		{
			Name:        "stream",
			Direction:   component.DirectionOutput,
			Required:    false,
			Description: fmt.Sprintf("WebSocket endpoint at ws://%s%s", o.config.Addr, o.config.Path),
			Config:      component.WebSocketPort{Addr: o.config.Addr, Path: o.config.Path},
		},
	}
}

// ConfigSchema returns the configuration schema.
func (o *Output) ConfigSchema() component.ConfigSchema {
	return configSchema()
}

func configSchema() component.ConfigSchema {
	return component.ConfigSchema{
		Properties: map[string]component.PropertySchema{
			"name": {
				Type:        "string",
				Description: "Instance name used in logs and metrics",
				Default:     "websocket",
			},
			"addr": {
				Type:        "string",
				Description: "Listen address for the WebSocket server",
				Default:     ":8081",
			},
			"path": {
				Type:        "string",
				Description: "HTTP path the WebSocket endpoint is served on",
				Default:     "/ws/results",
			},
			"subjects": {
				Type:        "string",
				Description: "NATS subjects to stream, comma-separated in JSON array form",
			},
		},
	}
}

// Health returns current health status.
func (o *Output) Health() component.HealthStatus {
	o.mu.RLock()
	running := o.running
	serverUp := o.server != nil
	startTime := o.startTime
	o.mu.RUnlock()

	var uptime time.Duration
	if running {
		uptime = time.Since(startTime)
	}

	return component.HealthStatus{
		Healthy:    running && serverUp,
		LastCheck:  time.Now(),
		ErrorCount: int(o.errorCount.Load()),
		Uptime:     uptime,
	}
}

// DataFlow returns current data flow metrics.
func (o *Output) DataFlow() component.FlowMetrics {
	o.mu.RLock()
	running := o.running
	startTime := o.startTime
	o.mu.RUnlock()

	flow := component.FlowMetrics{}
	if last, ok := o.lastActivity.Load().(time.Time); ok {
		flow.LastActivity = last
	}

	messages := o.messagesSent.Load()
	if running {
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			flow.MessagesPerSecond = float64(messages) / elapsed
			flow.BytesPerSecond = float64(o.bytesSent.Load()) / elapsed
		}
	}
	if messages > 0 {
		flow.ErrorRate = float64(o.errorCount.Load()) / float64(messages)
	}

	return flow
}

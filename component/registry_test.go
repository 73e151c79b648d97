package component

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeComponent is a minimal Discoverable for registry tests.
type fakeComponent struct {
	name  string
	ports []Port
}

func (f *fakeComponent) Meta() Metadata {
	return Metadata{Name: f.name, Type: "processor", Version: "1.0.0"}
}
func (f *fakeComponent) InputPorts() []Port  { return f.ports }
func (f *fakeComponent) OutputPorts() []Port { return nil }
func (f *fakeComponent) ConfigSchema() ConfigSchema {
	return ConfigSchema{Properties: map[string]PropertySchema{}}
}
func (f *fakeComponent) Health() HealthStatus {
	return HealthStatus{Healthy: true, LastCheck: time.Now()}
}
func (f *fakeComponent) DataFlow() FlowMetrics { return FlowMetrics{} }

func fakeFactory(name string, ports ...Port) Factory {
	return func(_ json.RawMessage, _ Dependencies) (Discoverable, error) {
		return &fakeComponent{name: name, ports: ports}, nil
	}
}

func TestRegisterFactory(t *testing.T) {
	r := NewRegistry()

	reg := &Registration{
		Name:    "factcheck",
		Type:    "processor",
		Factory: fakeFactory("factcheck"),
	}
	require.NoError(t, r.RegisterFactory("factcheck", reg))

	tests := []struct {
		name         string
		factoryName  string
		registration *Registration
	}{
		{"empty name", "", reg},
		{"nil registration", "x", nil},
		{"nil factory", "x", &Registration{Name: "x", Type: "processor"}},
		{"missing type", "x", &Registration{Name: "x", Factory: fakeFactory("x")}},
		{"duplicate", "factcheck", reg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, r.RegisterFactory(tt.factoryName, tt.registration))
		})
	}

	assert.Equal(t, []string{"factcheck"}, r.ListFactories())
}

func TestCreateComponent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFactory("factcheck", &Registration{
		Name: "factcheck", Type: "processor", Factory: fakeFactory("factcheck"),
	}))

	comp, err := r.CreateComponent("factcheck", "factcheck-main", nil, Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, "factcheck", comp.Meta().Name)

	got, exists := r.GetInstance("factcheck-main")
	require.True(t, exists)
	assert.Same(t, comp, got)

	// Unknown factory and duplicate instance both fail.
	_, err = r.CreateComponent("nope", "other", nil, Dependencies{})
	assert.Error(t, err)
	_, err = r.CreateComponent("factcheck", "factcheck-main", nil, Dependencies{})
	assert.Error(t, err)
}

func TestCreateComponent_ResourceConflict(t *testing.T) {
	r := NewRegistry()

	wsPort := Port{
		Name:      "results",
		Direction: DirectionOutput,
		Config:    WebSocketPort{Addr: ":8081", Path: "/ws/results"},
	}
	require.NoError(t, r.RegisterFactory("websocket", &Registration{
		Name: "websocket", Type: "output", Factory: fakeFactory("websocket", wsPort),
	}))

	_, err := r.CreateComponent("websocket", "ws-a", nil, Dependencies{})
	require.NoError(t, err)

	_, err = r.CreateComponent("websocket", "ws-b", nil, Dependencies{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already claimed")

	// Removing the owner releases the resource.
	require.True(t, r.RemoveInstance("ws-a"))
	_, err = r.CreateComponent("websocket", "ws-b", nil, Dependencies{})
	assert.NoError(t, err)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateCreated, "created"},
		{StateInitialized, "initialized"},
		{StateStarted, "started"},
		{StateStopped, "stopped"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestPort_ResourceIDs(t *testing.T) {
	tests := []struct {
		name      string
		port      Portable
		id        string
		exclusive bool
	}{
		{"nats", NATSPort{Subject: "lisdf.fact.submitted"}, "nats:lisdf.fact.submitted", false},
		{"jetstream by stream", JetStreamPort{StreamName: "LISDF-FACTS"}, "jetstream:LISDF-FACTS", false},
		{"jetstream by subject", JetStreamPort{Subjects: []string{"lisdf.fact.>"}}, "jetstream:lisdf.fact.>", false},
		{"jetstream unknown", JetStreamPort{}, "jetstream:unknown", false},
		{"websocket", WebSocketPort{Addr: ":8081", Path: "/ws/results"}, "websocket::8081/ws/results", true},
		{"http", HTTPPort{Addr: ":8080"}, "http::8080", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, tt.port.ResourceID())
			assert.Equal(t, tt.exclusive, tt.port.IsExclusive())
		})
	}
}

func TestIsLifecycleComponent(t *testing.T) {
	assert.False(t, IsLifecycleComponent(&fakeComponent{}))

	_, ok := AsLifecycleComponent(&fakeComponent{})
	assert.False(t, ok)
}

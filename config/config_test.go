package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "lisdf", cfg.Service.Name)
	assert.Equal(t, []string{"nats://localhost:4222"}, cfg.NATS.URLs)
	assert.Equal(t, -1, cfg.NATS.MaxReconnects)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.True(t, cfg.NATS.JetStream.Enabled)
	assert.Equal(t, "LISDF-FACTS", cfg.NATS.JetStream.StreamName)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, ":8080", cfg.Gateway.Addr)
	assert.Equal(t, "/ws/results", cfg.WebSocket.Path)
}

func TestLoader_FileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"service": {"name": "lisdf-test", "environment": "test"},
		"nats": {"urls": ["nats://nats-1:4222", "nats://nats-2:4222"], "reconnect_wait": "5s"},
		"gateway": {"addr": ":18080", "read_timeout": "30s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoader()
	loader.AddLayer(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "lisdf-test", cfg.Service.Name)
	assert.Equal(t, "test", cfg.Service.Environment)
	assert.Equal(t, []string{"nats://nats-1:4222", "nats://nats-2:4222"}, cfg.NATS.URLs)
	assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, ":18080", cfg.Gateway.Addr)
	assert.Equal(t, 30*time.Second, cfg.Gateway.ReadTimeout)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.True(t, cfg.NATS.JetStream.Enabled)
}

func TestLoader_LaterLayerWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.json")
	override := filepath.Join(dir, "override.json")
	require.NoError(t, os.WriteFile(base, []byte(`{"service": {"name": "base", "instance_id": "a"}}`), 0o600))
	require.NoError(t, os.WriteFile(override, []byte(`{"service": {"name": "override"}}`), 0o600))

	loader := NewLoader()
	loader.AddLayer(base)
	loader.AddLayer(override)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.Service.Name)
	// Nested keys untouched by the later layer survive.
	assert.Equal(t, "a", cfg.Service.InstanceID)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("LISDF_SERVICE_NAME", "from-env")
	t.Setenv("LISDF_NATS_URLS", "nats://a:4222,nats://b:4222")
	t.Setenv("LISDF_GATEWAY_ENABLED", "false")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Service.Name)
	assert.Equal(t, []string{"nats://a:4222", "nats://b:4222"}, cfg.NATS.URLs)
	assert.False(t, cfg.Gateway.Enabled)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader()
	loader.AddLayer("/nonexistent/config.json")
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.Service.Name = "" },
			wantErr: "service.name is required",
		},
		{
			name:    "service name with spaces",
			mutate:  func(c *Config) { c.Service.Name = "bad name" },
			wantErr: "not valid for NATS subjects",
		},
		{
			name:    "no nats urls",
			mutate:  func(c *Config) { c.NATS.URLs = nil },
			wantErr: "nats.urls is required",
		},
		{
			name:    "bad jetstream max age",
			mutate:  func(c *Config) { c.NATS.JetStream.MaxAge = "soon" },
			wantErr: "max_age",
		},
		{
			name:    "missing declarations file",
			mutate:  func(c *Config) { c.Schema.DeclarationsFile = "/nope/decls.json" },
			wantErr: "declarations_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewLoader().getDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateNormalizesName(t *testing.T) {
	cfg := NewLoader().getDefaults()
	cfg.Service.Name = "LISDF"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "lisdf", cfg.Service.Name)
}

func TestSafeConfig(t *testing.T) {
	original := NewLoader().getDefaults()
	sc := NewSafeConfig(original)

	// Get returns a copy; mutating it does not affect the stored config.
	snapshot := sc.Get()
	snapshot.Service.Name = "mutated"
	assert.Equal(t, "lisdf", sc.Get().Service.Name)

	updated := NewLoader().getDefaults()
	updated.Service.Name = "updated"
	require.NoError(t, sc.Update(updated))
	assert.Equal(t, "updated", sc.Get().Service.Name)

	assert.Error(t, sc.Update(nil))

	invalid := NewLoader().getDefaults()
	invalid.Service.Name = ""
	assert.Error(t, sc.Update(invalid))
}

func TestParseDurationWithDays(t *testing.T) {
	d, err := parseDurationWithDays("14d")
	require.NoError(t, err)
	assert.Equal(t, 14*24*time.Hour, d)

	d, err = parseDurationWithDays("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = parseDurationWithDays("fortnight")
	assert.Error(t, err)
}

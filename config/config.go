package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Config represents the complete application configuration: service
// identity, NATS connectivity, the HTTP surfaces (metrics, gateway,
// websocket), and the schema declaration source.
type Config struct {
	Version   string          `json:"version"` // Semantic version (e.g., "1.0.0")
	Service   ServiceConfig   `json:"service"`
	NATS      NATSConfig      `json:"nats"`
	Metrics   MetricsConfig   `json:"metrics,omitempty"`
	Gateway   GatewayConfig   `json:"gateway,omitempty"`
	WebSocket WebSocketConfig `json:"websocket,omitempty"`
	Schema    SchemaConfig    `json:"schema,omitempty"`
}

// ServiceConfig defines the service identity stamped into message metadata.
type ServiceConfig struct {
	Name        string `json:"name"`                  // e.g., "lisdf"
	InstanceID  string `json:"instance_id,omitempty"` // e.g., "dev-local", "cell-3"
	Environment string `json:"environment,omitempty"` // "prod", "dev", "test"
}

// NATSConfig defines NATS connection settings.
type NATSConfig struct {
	URLs          []string        `json:"urls,omitempty"`
	MaxReconnects int             `json:"max_reconnects,omitempty"`
	ReconnectWait time.Duration   `json:"reconnect_wait,omitempty"`
	Username      string          `json:"username,omitempty"`
	Password      string          `json:"password,omitempty"`
	Token         string          `json:"token,omitempty"`
	JetStream     JetStreamConfig `json:"jetstream,omitempty"`
}

// JetStreamConfig for JetStream settings.
type JetStreamConfig struct {
	Enabled    bool   `json:"enabled"`
	StreamName string `json:"stream_name,omitempty"` // defaults to "LISDF-FACTS"
	MaxAge     string `json:"max_age,omitempty"`     // e.g., "24h", "14d"
}

// MaxAgeDuration parses the configured stream retention, accepting day
// suffixes ("14d") in addition to time.ParseDuration units. Zero means no
// retention was configured.
func (j JetStreamConfig) MaxAgeDuration() (time.Duration, error) {
	if j.MaxAge == "" {
		return 0, nil
	}
	return parseDurationWithDays(j.MaxAge)
}

// MetricsConfig defines the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"` // defaults to ":9090"
	Path    string `json:"path,omitempty"` // defaults to "/metrics"
}

// GatewayConfig defines the HTTP validation gateway.
type GatewayConfig struct {
	Enabled      bool          `json:"enabled"`
	Addr         string        `json:"addr,omitempty"` // defaults to ":8080"
	ReadTimeout  time.Duration `json:"read_timeout,omitempty"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty"`
}

// WebSocketConfig defines the validation-result broadcast endpoint.
type WebSocketConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"` // defaults to ":8081"
	Path    string `json:"path,omitempty"` // defaults to "/ws/results"
}

// SchemaConfig defines where extra schema declarations come from. The
// built-in vocabulary is always loaded; DeclarationsFile layers
// deployment-specific types and predicates on top.
type SchemaConfig struct {
	DeclarationsFile string `json:"declarations_file,omitempty"`
}

// SafeConfig provides thread-safe access to configuration.
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper.
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SafeConfig{config: cfg}
}

// Get returns a deep copy of the current configuration.
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation.
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	// JSON round trip for deep copy; fall back to shallow copy on error.
	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}

	return &clone
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Service.Name == "" {
		return errors.New("service.name is required")
	}

	c.Service.Name = strings.ToLower(c.Service.Name)

	if !isValidNATSSubjectPart(c.Service.Name) {
		return fmt.Errorf(
			"service.name '%s' is not valid for NATS subjects (must be alphanumeric with dots, dashes, underscores)",
			c.Service.Name,
		)
	}

	if len(c.NATS.URLs) == 0 {
		return errors.New("nats.urls is required")
	}

	if c.NATS.JetStream.MaxAge != "" {
		if _, err := parseDurationWithDays(c.NATS.JetStream.MaxAge); err != nil {
			return fmt.Errorf("nats.jetstream.max_age: %w", err)
		}
	}

	if c.Schema.DeclarationsFile != "" {
		if _, err := os.Stat(c.Schema.DeclarationsFile); err != nil {
			return fmt.Errorf("schema.declarations_file: %w", err)
		}
	}

	return nil
}

// isValidNATSSubjectPart checks if a string is valid for use in NATS subjects.
// Valid characters are alphanumeric, dots, dashes, and underscores.
func isValidNATSSubjectPart(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '-' && r != '_' && r != '.' {
			return false
		}
	}
	return true
}

// parseDurationWithDays parses durations that may include days (e.g., "14d").
func parseDurationWithDays(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days := strings.TrimSuffix(s, "d")
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/actuatorkit/observe"
	"github.com/jonwraymond/actuatorkit/probe"
)

// minInterval is the smallest accepted monitor interval. Anything shorter
// turns the monitor into a busy loop against the registered probes.
const minInterval = 100 * time.Millisecond

// Config is the root YAML configuration for an actuator core.
type Config struct {
	// Registry configures probe batch execution.
	Registry RegistryConfig `yaml:"registry"`

	// Monitor configures the background re-check loop.
	Monitor MonitorConfig `yaml:"monitor"`

	// Observe configures tracing, metrics and logging.
	Observe ObserveConfig `yaml:"observe"`
}

// RegistryConfig configures probe batch execution.
type RegistryConfig struct {
	// Timeout is the deadline for one probe batch (e.g. "10s").
	Timeout Duration `yaml:"timeout"`

	// Parallel runs the probes of a batch concurrently.
	Parallel bool `yaml:"parallel"`

	// Coalesce shares an in-flight batch with concurrent callers.
	Coalesce bool `yaml:"coalesce"`
}

// MonitorConfig configures the background re-check loop.
type MonitorConfig struct {
	// Interval is the cadence of scheduled re-checks (e.g. "10s").
	Interval Duration `yaml:"interval"`
}

// ObserveConfig configures the observability stack.
type ObserveConfig struct {
	// ServiceName identifies the service in traces and metrics.
	ServiceName string `yaml:"service_name"`

	// Version is the service version reported as a resource attribute.
	Version string `yaml:"version"`

	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is one of "otlp", "stdout", "none".
	Exporter string `yaml:"exporter"`

	// SamplePct is the trace sampling ratio, 0.0 to 1.0.
	SamplePct float64 `yaml:"sample_pct"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is one of "otlp", "prometheus", "stdout", "none".
	Exporter string `yaml:"exporter"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, contains unknown fields,
// or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables in the data are expanded before decoding, and a
// `${VAR}` reference to an unset variable is an error. Unknown fields are
// rejected. Defaults are applied for the registry timeout (10s), the
// monitor interval (10s) and the log level ("info").
func Parse(data []byte) (*Config, error) {
	expanded, err := expandEnvStrict(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = Duration(10 * time.Second)
	}
	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = Duration(10 * time.Second)
	}
	if c.Observe.Logging.Level == "" {
		c.Observe.Logging.Level = "info"
	}
}

// Validate checks the configuration for out-of-range or inconsistent values.
func (c *Config) Validate() error {
	if c.Registry.Timeout.Duration() <= 0 {
		return fmt.Errorf("registry: timeout must be positive, got %s", c.Registry.Timeout.Duration())
	}

	if c.Monitor.Interval.Duration() < minInterval {
		return fmt.Errorf("monitor: interval must be at least %s, got %s", minInterval, c.Monitor.Interval.Duration())
	}

	if c.Observe.ServiceName != "" {
		oc := c.observeConfig()
		if err := oc.Validate(); err != nil {
			return fmt.Errorf("observe: %w", err)
		}
	}

	return nil
}

// RegistryOptions converts the registry section into probe batch options.
func (c *Config) RegistryOptions() probe.Config {
	return probe.Config{
		Timeout:  c.Registry.Timeout.Duration(),
		Parallel: c.Registry.Parallel,
		Coalesce: c.Registry.Coalesce,
	}
}

// MonitorOptions converts the monitor section into monitor options.
func (c *Config) MonitorOptions() probe.MonitorConfig {
	return probe.MonitorConfig{
		Interval: c.Monitor.Interval.Duration(),
	}
}

// ObserveOptions converts the observe section into observability options.
func (c *Config) ObserveOptions() observe.Config {
	return c.observeConfig()
}

func (c *Config) observeConfig() observe.Config {
	return observe.Config{
		ServiceName: c.Observe.ServiceName,
		Version:     c.Observe.Version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Observe.Tracing.Enabled,
			Exporter:  c.Observe.Tracing.Exporter,
			SamplePct: c.Observe.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Observe.Metrics.Enabled,
			Exporter: c.Observe.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.Observe.Logging.Enabled,
			Level:   c.Observe.Logging.Level,
		},
	}
}

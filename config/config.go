// Package config provides configuration loading and hot reload for the
// toolscope service.
//
// Configuration is read from a YAML file with ${VAR} expansion, then
// TOOLSCOPE_* environment variables are applied on top, then defaults fill
// anything still unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks an invalid configuration.
var ErrConfiguration = errors.New("configuration error")

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sandbox SandboxConfig `yaml:"sandbox"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
	Tools   []ToolConfig  `yaml:"tools"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SandboxConfig contains the execution defaults exposed to snippets.
type SandboxConfig struct {
	Language      string          `yaml:"language"`
	Timeout       time.Duration   `yaml:"timeout"`
	MaxToolCalls  int             `yaml:"max_tool_calls"`
	MaxChainSteps int             `yaml:"max_chain_steps"`
	Flags         map[string]bool `yaml:"flags"`
}

// CatalogConfig controls how the global namespace is flattened.
type CatalogConfig struct {
	Strict      bool   `yaml:"strict"`    // Reject names that are empty or contain "."
	MaxDepth    int    `yaml:"max_depth"` // 0 means unlimited
	Placeholder string `yaml:"placeholder"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MCPConfig controls the MCP endpoint.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Name    string `yaml:"name"`
}

// ToolConfig declares a tool served by the built-in local backend. Declared
// tools return Response when called.
type ToolConfig struct {
	Namespace   string        `yaml:"namespace"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Summary     string        `yaml:"summary"`
	Notes       string        `yaml:"notes"`
	Tags        []string      `yaml:"tags"`
	Params      []ParamConfig `yaml:"params"`
	Response    any           `yaml:"response"`
}

// ParamConfig declares a tool parameter.
type ParamConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // JSON schema type
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// ID returns the "namespace:name" tool ID.
func (t ToolConfig) ID() string {
	return t.Namespace + ":" + t.Name
}

// InputSchema builds a JSON schema object from Params. It returns nil when
// no parameters are declared.
func (t ToolConfig) InputSchema() map[string]any {
	if len(t.Params) == 0 {
		return nil
	}
	props := make(map[string]any, len(t.Params))
	required := make([]any, 0, len(t.Params))
	for _, p := range t.Params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Load reads configuration from a YAML file.
// Environment variables in the format ${VAR} are expanded, and TOOLSCOPE_*
// variables override file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finish(&cfg)
}

// LoadFromEnv builds a configuration from defaults and TOOLSCOPE_*
// environment variables only.
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadWithFallback loads path when it exists and falls back to
// LoadFromEnv otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOOLSCOPE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TOOLSCOPE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("TOOLSCOPE_SANDBOX_LANGUAGE"); v != "" {
		cfg.Sandbox.Language = v
	}
	if v := os.Getenv("TOOLSCOPE_SANDBOX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sandbox.Timeout = d
		}
	}
	if v := os.Getenv("TOOLSCOPE_SANDBOX_MAX_TOOL_CALLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sandbox.MaxToolCalls = n
		}
	}
	// Comma-separated names; "name=false" clears a flag.
	if v := os.Getenv("TOOLSCOPE_SANDBOX_FLAGS"); v != "" {
		if cfg.Sandbox.Flags == nil {
			cfg.Sandbox.Flags = make(map[string]bool)
		}
		for _, item := range strings.Split(v, ",") {
			name, val, hasVal := strings.Cut(strings.TrimSpace(item), "=")
			if name == "" {
				continue
			}
			cfg.Sandbox.Flags[name] = !hasVal || parseBool(val)
		}
	}

	if v := os.Getenv("TOOLSCOPE_CATALOG_STRICT"); v != "" {
		cfg.Catalog.Strict = parseBool(v)
	}
	if v := os.Getenv("TOOLSCOPE_CATALOG_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.MaxDepth = n
		}
	}

	if v := os.Getenv("TOOLSCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TOOLSCOPE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("TOOLSCOPE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("TOOLSCOPE_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}

	if v := os.Getenv("TOOLSCOPE_MCP_ENABLED"); v != "" {
		cfg.MCP.Enabled = parseBool(v)
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Sandbox.Language == "" {
		cfg.Sandbox.Language = "go"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.MCP.Path == "" {
		cfg.MCP.Path = "/mcp"
	}
	if cfg.MCP.Name == "" {
		cfg.MCP.Name = "toolscope"
	}
}

var validParamTypes = map[string]bool{
	"string": true, "number": true, "integer": true, "boolean": true,
	"object": true, "array": true, "null": true,
}

// Validate checks cfg for invalid values. Errors wrap ErrConfiguration.
func Validate(cfg *Config) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...))
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		fail("server.port must be between 0 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Sandbox.Timeout < 0 {
		fail("sandbox.timeout must not be negative")
	}
	if cfg.Sandbox.MaxToolCalls < 0 {
		fail("sandbox.max_tool_calls must not be negative")
	}
	if cfg.Sandbox.MaxChainSteps < 0 {
		fail("sandbox.max_chain_steps must not be negative")
	}

	if cfg.Catalog.MaxDepth < 0 {
		fail("catalog.max_depth must not be negative")
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		fail("logging.level %q is not a valid level", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		fail("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		fail("metrics.path must start with '/'")
	}
	if !strings.HasPrefix(cfg.MCP.Path, "/") {
		fail("mcp.path must start with '/'")
	}

	seen := make(map[string]bool, len(cfg.Tools))
	for i, tool := range cfg.Tools {
		if tool.Namespace == "" {
			fail("tools[%d].namespace is required", i)
		}
		if tool.Name == "" {
			fail("tools[%d].name is required", i)
		}
		if seen[tool.ID()] {
			fail("tools[%d]: duplicate tool %s", i, tool.ID())
		}
		seen[tool.ID()] = true
		for j, p := range tool.Params {
			if p.Name == "" {
				fail("tools[%d].params[%d].name is required", i, j)
			}
			if !validParamTypes[p.Type] {
				fail("tools[%d].params[%d].type %q is not a JSON schema type", i, j, p.Type)
			}
		}
	}

	return errors.Join(errs...)
}

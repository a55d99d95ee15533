package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bitsbytes/blog/internal/errors"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPagesDir is the directory holding page fragments.
	DefaultPagesDir = "content"

	// DefaultStaticPrefix is the URL prefix for the embedded stylesheet.
	DefaultStaticPrefix = "/static/"

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "blog"

	// DefaultTracerName names the OpenTelemetry tracer.
	DefaultTracerName = "blog"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultReloadDebounce coalesces bursts of file events in dev mode.
	DefaultReloadDebounce = "100ms"
)

// FileNames lists the configuration files Load looks for, in order.
var FileNames = []string{"blog.json", "blog.yaml", "blog.yml"}

// Environment variables that override file values.
const (
	EnvHost     = "BLOG_HOST"
	EnvPort     = "BLOG_PORT"
	EnvLogLevel = "BLOG_LOG_LEVEL"
)

// Config is the complete blog server configuration.
type Config struct {
	// Server contains listener settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Pages configures where page fragments come from.
	Pages PagesConfig `json:"pages" yaml:"pages"`

	// Static configures stylesheet serving.
	Static StaticConfig `json:"static" yaml:"static"`

	// Metrics configures Prometheus exposition.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// Log configures the slog handler.
	Log LogConfig `json:"log" yaml:"log"`

	// Dev contains live-reload settings used when Server.Dev is set.
	Dev DevConfig `json:"dev" yaml:"dev"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// ShutdownTimeout is a duration string such as "10s".
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`

	// Dev enables live reload.
	Dev bool `json:"dev,omitempty" yaml:"dev,omitempty"`
}

// PagesConfig selects the page source. When Bucket is set pages are
// read from S3, otherwise from Dir.
type PagesConfig struct {
	Dir      string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Prefix is the URL prefix for static files (default: "/static/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`

	// Addr serves metrics on a separate listener when set.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DevConfig contains development settings.
type DevConfig struct {
	// Watch lists extra directories to watch besides Pages.Dir.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Debounce is a duration string such as "100ms".
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Pages: PagesConfig{
			Dir: DefaultPagesDir,
		},
		Static: StaticConfig{
			Prefix: DefaultStaticPrefix,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Name: DefaultTracerName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Dev: DevConfig{
			Debounce: DefaultReloadDebounce,
		},
	}
}

// Load reads configuration from the specified directory. The first of
// FileNames that exists is used; if none exists the defaults are
// returned. Environment overrides are applied in both cases.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := New()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. The format
// is chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Check the --config flag or omit it to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	cfg.configPath = path
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration data in the format named by ext (".json",
// ".yaml" or ".yml") on top of the defaults.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := New()

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E101").
				WithDetail("Failed to parse JSON: " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E101").
				WithDetail("Failed to parse YAML: " + err.Error()).
				WithSuggestion("Check indentation and that values are quoted where needed")
		}
	default:
		return nil, errors.New("E103").
			WithDetail("Unknown extension " + strconv.Quote(ext))
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(wd)
}

// ApplyEnv overrides fields from environment variables read with lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E102").
				WithDetail(EnvPort + " must be a number, got " + strconv.Quote(v)).
				Wrap(err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for fields a file left empty.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Pages.Dir == "" {
		c.Pages.Dir = DefaultPagesDir
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = DefaultStaticPrefix
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.Name == "" {
		c.Tracing.Name = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Dev.Debounce == "" {
		c.Dev.Debounce = DefaultReloadDebounce
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil || d < 0 {
		return invalid("server.shutdownTimeout must be a duration such as \"10s\", got " + strconv.Quote(c.Server.ShutdownTimeout))
	}
	if d, err := time.ParseDuration(c.Dev.Debounce); err != nil || d < 0 {
		return invalid("dev.debounce must be a duration such as \"100ms\", got " + strconv.Quote(c.Dev.Debounce))
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") || !strings.HasSuffix(c.Static.Prefix, "/") {
		return invalid("static.prefix must start and end with '/', got " + strconv.Quote(c.Static.Prefix))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with '/', got " + strconv.Quote(c.Metrics.Path))
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" && strings.HasPrefix(c.Metrics.Path, c.Static.Prefix) {
		return invalid("metrics.path must not live under static.prefix")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" && slices.Contains(reservedPaths, c.Metrics.Path) {
		return invalid("metrics.path " + strconv.Quote(c.Metrics.Path) + " is reserved on the page listener")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level must be one of debug, info, warn, error, got " + strconv.Quote(c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

// reservedPaths are routes the page listener mounts itself: the page
// catch-all root, the health check and the dev reload socket.
var reservedPaths = []string{"/", "/healthz", "/_blog/reload"}

func invalid(detail string) error {
	return errors.New("E102").WithDetail(detail)
}

// Addr returns the host:port the page listener binds.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the page listener.
func (c *Config) URL() string {
	return "http://" + c.Addr()
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultShutdownTimeout)
	}
	return d
}

// ReloadDebounce returns the parsed live-reload debounce interval.
func (c *Config) ReloadDebounce() time.Duration {
	d, err := time.ParseDuration(c.Dev.Debounce)
	if err != nil {
		d, _ = time.ParseDuration(DefaultReloadDebounce)
	}
	return d
}

// UsesS3 reports whether pages come from an S3 bucket.
func (c *Config) UsesS3() bool {
	return c.Pages.Bucket != ""
}

// WatchDirs returns the directories the dev watcher observes.
func (c *Config) WatchDirs() []string {
	dirs := make([]string, 0, len(c.Dev.Watch)+1)
	if !c.UsesS3() {
		dirs = append(dirs, c.Pages.Dir)
	}
	return append(dirs, c.Dev.Watch...)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/env/v11"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when the config is nil.
var ErrNilConfig = errors.New("nil config")

// HTTPConfig is the configuration for the admin HTTP server.
type HTTPConfig struct {
	// Enabled is whether or not the HTTP server is enabled.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled is whether or not the stats server is enabled.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// DefaultWebhookTimeout is the per-delivery timeout used when none is
// configured.
const DefaultWebhookTimeout = 5 * time.Second

// DefaultWebhookMaxInFlight is the delivery concurrency cap used when none
// is configured.
const DefaultWebhookMaxInFlight = 16

// WebhookConfig is the configuration for outgoing webhook deliveries.
type WebhookConfig struct {
	// Timeout is the per-delivery request timeout. Extended duration
	// units are accepted, e.g. "5s", "1m30s".
	Timeout string `env:"TIMEOUT" yaml:"timeout"`

	// MaxInFlight is the maximum number of deliveries in flight at once.
	MaxInFlight int `env:"MAX_IN_FLIGHT" yaml:"max_in_flight"`

	// EnforceScope restricts issue and pull-request events to
	// subscriptions registered for all events. When disabled, every
	// event goes to every subscription of the project.
	EnforceScope bool `env:"ENFORCE_SCOPE" yaml:"enforce_scope"`

	// AllowInternal permits deliveries to loopback and private network
	// addresses. Leave disabled outside development.
	AllowInternal bool `env:"ALLOW_INTERNAL" yaml:"allow_internal"`

	// AllowedHosts restricts delivery destinations to hosts matching at
	// least one of these glob patterns. Empty means any host.
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:"," yaml:"allowed_hosts"`
}

// RequestTimeout returns the parsed per-delivery timeout.
func (c WebhookConfig) RequestTimeout() time.Duration {
	if d, err := duration.Parse(c.Timeout); err == nil && d > 0 {
		return d
	}

	return DefaultWebhookTimeout
}

// Concurrency returns the delivery concurrency cap.
func (c WebhookConfig) Concurrency() int {
	if c.MaxInFlight < 1 {
		return DefaultWebhookMaxInFlight
	}

	return c.MaxInFlight
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	SweepOrphans string `env:"SWEEP_ORPHANS" yaml:"sweep_orphans"`
}

// Config is the configuration for Drydock.
type Config struct {
	// Name is the name of the server instance.
	Name string `env:"NAME" yaml:"name"`

	// PublicURL is the public base URL of the hosting site. Project,
	// commit, issue, and pull-request links in notification payloads
	// are derived from it.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// HTTP is the configuration for the admin HTTP API.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Webhook is the outgoing delivery configuration.
	Webhook WebhookConfig `envPrefix:"WEBHOOK_" yaml:"webhook"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// Locale is the locale used to resolve notification message text.
	Locale string `env:"LOCALE" yaml:"locale"`

	// DataPath is the path to the directory where Drydock will store
	// its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	envs = append(envs, []string{
		fmt.Sprintf("DRYDOCK_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("DRYDOCK_NAME=%s", c.Name),
		fmt.Sprintf("DRYDOCK_PUBLIC_URL=%s", c.PublicURL),
		fmt.Sprintf("DRYDOCK_LOCALE=%s", c.Locale),
		fmt.Sprintf("DRYDOCK_HTTP_ENABLED=%t", c.HTTP.Enabled),
		fmt.Sprintf("DRYDOCK_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("DRYDOCK_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("DRYDOCK_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("DRYDOCK_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("DRYDOCK_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("DRYDOCK_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("DRYDOCK_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("DRYDOCK_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("DRYDOCK_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("DRYDOCK_WEBHOOK_TIMEOUT=%s", c.Webhook.Timeout),
		fmt.Sprintf("DRYDOCK_WEBHOOK_MAX_IN_FLIGHT=%d", c.Webhook.MaxInFlight),
		fmt.Sprintf("DRYDOCK_WEBHOOK_ENFORCE_SCOPE=%t", c.Webhook.EnforceScope),
		fmt.Sprintf("DRYDOCK_WEBHOOK_ALLOW_INTERNAL=%t", c.Webhook.AllowInternal),
		fmt.Sprintf("DRYDOCK_WEBHOOK_ALLOWED_HOSTS=%s", strings.Join(c.Webhook.AllowedHosts, ",")),
		fmt.Sprintf("DRYDOCK_JOBS_SWEEP_ORPHANS=%s", c.Jobs.SweepOrphans),
	}...)

	return envs
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("DRYDOCK_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("DRYDOCK_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "DRYDOCK_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment
// variables. This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the DRYDOCK_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("DRYDOCK_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string { // nolint:revive
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(filepath.Join(c.DataPath, "config.yaml"))
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:      "Drydock",
		PublicURL: "http://localhost:23230",
		DataPath:  DefaultDataPath(),
		HTTP: HTTPConfig{
			Enabled:    true,
			ListenAddr: ":23230",
		},
		Stats: StatsConfig{
			Enabled:    false,
			ListenAddr: "localhost:23233",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "drydock.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Webhook: WebhookConfig{
			Timeout:     "5s",
			MaxInFlight: DefaultWebhookMaxInFlight,
		},
		Jobs: JobsConfig{
			SweepOrphans: "@daily",
		},
		Locale: "en",
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	c.DB.Driver = strings.ToLower(c.DB.Driver)
	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.Webhook.Timeout != "" {
		if _, err := duration.Parse(c.Webhook.Timeout); err != nil {
			return fmt.Errorf("invalid webhook timeout %q: %w", c.Webhook.Timeout, err)
		}
	}

	for _, pattern := range c.Webhook.AllowedHosts {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid webhook allowed host pattern %q: %w", pattern, err)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	API       APIConfig
	Mock      MockConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Settings  SettingsConfig
	Scheduler SchedulerConfig
	Server    ServerConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name     string
	Env      string
	TenantID string
}

// APIConfig holds the live backend connection settings. An empty BaseURL
// puts the client into mock mode.
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Requests per second allowed against the live backend; 0 disables
	// client-side rate limiting.
	RateLimit float64
}

// MockConfig holds the mock gateway settings
type MockConfig struct {
	DelayMin time.Duration
	DelayMax time.Duration
	Seed     int64
}

// CacheConfig holds the query cache staleness windows
type CacheConfig struct {
	ListTTL   time.Duration
	DetailTTL time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SettingsConfig selects the settings storage backend
type SettingsConfig struct {
	Backend string // memory, file, redis
	Path    string // file backend only
}

// SchedulerConfig holds the follow-up reminder scheduler configuration
type SchedulerConfig struct {
	Enabled      bool
	CronSchedule string
}

// ServerConfig holds the dev backend server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DBPath       string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string // OTEL Collector endpoint (e.g., "localhost:4317")
	ServiceName       string
	Insecure          bool // Use insecure (non-TLS) connection (development only)
	ExportInterval    time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BIZDASH_ prefix (e.g., BIZDASH_API_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BIZDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			TenantID: v.GetString("app.tenant_id"),
		},
		API: APIConfig{
			BaseURL:   v.GetString("api.base_url"),
			Token:     v.GetString("api.token"),
			Timeout:   v.GetDuration("api.timeout"),
			RateLimit: v.GetFloat64("api.rate_limit"),
		},
		Mock: MockConfig{
			DelayMin: v.GetDuration("mock.delay_min"),
			DelayMax: v.GetDuration("mock.delay_max"),
			Seed:     v.GetInt64("mock.seed"),
		},
		Cache: CacheConfig{
			ListTTL:   v.GetDuration("cache.list_ttl"),
			DetailTTL: v.GetDuration("cache.detail_ttl"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Settings: SettingsConfig{
			Backend: v.GetString("settings.backend"),
			Path:    v.GetString("settings.path"),
		},
		Scheduler: SchedulerConfig{
			Enabled:      v.GetBool("scheduler.enabled"),
			CronSchedule: v.GetString("scheduler.cron_schedule"),
		},
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			DBPath:       v.GetString("server.db_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			ExportInterval:    v.GetDuration("telemetry.export_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bizdash"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.TenantID == "" {
		cfg.App.TenantID = "tenant-dev"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Mock.DelayMin == 0 {
		cfg.Mock.DelayMin = 300 * time.Millisecond
	}
	if cfg.Mock.DelayMax == 0 {
		cfg.Mock.DelayMax = 1200 * time.Millisecond
	}
	if cfg.Cache.ListTTL == 0 {
		cfg.Cache.ListTTL = 2 * time.Minute
	}
	if cfg.Cache.DetailTTL == 0 {
		cfg.Cache.DetailTTL = 2 * time.Minute
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Settings.Backend == "" {
		cfg.Settings.Backend = "memory"
	}
	if cfg.Settings.Path == "" {
		cfg.Settings.Path = "settings.json"
	}
	if cfg.Scheduler.CronSchedule == "" {
		// Every 15 minutes during working hours.
		cfg.Scheduler.CronSchedule = "0/15 9-18 * * *"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = "bizdash.db"
	}
	if cfg.Log.Level == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Level = "info"
		} else {
			cfg.Log.Level = "debug"
		}
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.ExportInterval == 0 {
		cfg.Telemetry.ExportInterval = 15 * time.Second
	}
}

// validate checks the configuration for invalid combinations
func (c *Config) validate() error {
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
		}
	}
	switch c.Settings.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("settings.backend %q is not one of memory, file, redis", c.Settings.Backend)
	}
	if c.Mock.DelayMax < c.Mock.DelayMin {
		return fmt.Errorf("mock.delay_max must not be below mock.delay_min")
	}
	if c.IsProduction() {
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required in production")
		}
		if c.API.Token == "" {
			return fmt.Errorf("api.token is required in production")
		}
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// MockMode reports whether the client should run against the mock gateway.
// Decided once at startup: no base URL configured, or explicitly in
// development.
func (c *Config) MockMode() bool {
	return c.API.BaseURL == "" || c.IsDevelopment()
}

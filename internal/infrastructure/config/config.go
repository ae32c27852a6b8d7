package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
	StoreDriverSQL    = "sql"
)

// Database drivers
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

// Archive drivers
const (
	ArchiveDriverS3         = "s3"
	ArchiveDriverFilesystem = "filesystem"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Gate      GateConfig
	PDF       PDFConfig
	Archive   ArchiveConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
	HSTSEnabled      bool // only behind HTTPS
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// CatalogConfig points at the base catalog CSV
type CatalogConfig struct {
	Path string
}

// StoreConfig selects the key-value store holding setup overrides
type StoreConfig struct {
	Driver    string // memory, redis, sql
	KeyPrefix string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DatabaseConfig holds database connection settings for the sql store driver
type DatabaseConfig struct {
	Driver             string // sqlite, postgres
	Path               string // sqlite file
	Host               string
	Port               int
	User               string
	Password           string
	DBName             string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    int // in minutes
	ConnMaxIdleTime    int // in minutes
	AutoMigrate        bool
	SlowQueryThreshold time.Duration
}

// GateConfig holds the shared passphrase for operator screens.
// PassphraseHash (bcrypt) takes precedence over Passphrase when both are set.
type GateConfig struct {
	Passphrase     string
	PassphraseHash string
}

// PDFConfig holds headless Chrome settings for the order document
type PDFConfig struct {
	RemoteURL  string // ws:// URL of a running Chrome; empty starts a local one
	Timeout    time.Duration
	Headless   bool
	NoSandbox  bool
	DisableGPU bool
}

// ArchiveConfig controls optional archiving of generated exports
type ArchiveConfig struct {
	Enabled           bool
	Driver            string // s3, filesystem
	Dir               string
	Bucket            string
	Region            string
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	UsePathStyle      bool
	Prefix            string
	PresignExpiration time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled               bool
	CollectorEndpoint     string
	SamplingRatio         float64
	ServiceName           string
	Insecure              bool
	MetricsEnabled        bool
	MetricsExportInterval time.Duration
	DBTraceEnabled        bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ORDERPAD_ prefix (e.g., ORDERPAD_GATE_PASSPHRASE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ORDERPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setBoolDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			HSTSEnabled:      v.GetBool("http.hsts_enabled"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
		Store: StoreConfig{
			Driver:    strings.ToLower(v.GetString("store.driver")),
			KeyPrefix: v.GetString("store.key_prefix"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			Driver:             strings.ToLower(v.GetString("database.driver")),
			Path:               v.GetString("database.path"),
			Host:               v.GetString("database.host"),
			Port:               v.GetInt("database.port"),
			User:               v.GetString("database.user"),
			Password:           v.GetString("database.password"),
			DBName:             v.GetString("database.dbname"),
			SSLMode:            v.GetString("database.sslmode"),
			MaxOpenConns:       v.GetInt("database.max_open_conns"),
			MaxIdleConns:       v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime:    v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime:    v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:        v.GetBool("database.auto_migrate"),
			SlowQueryThreshold: v.GetDuration("database.slow_query_threshold"),
		},
		Gate: GateConfig{
			Passphrase:     v.GetString("gate.passphrase"),
			PassphraseHash: v.GetString("gate.passphrase_hash"),
		},
		PDF: PDFConfig{
			RemoteURL:  v.GetString("pdf.remote_url"),
			Timeout:    v.GetDuration("pdf.timeout"),
			Headless:   v.GetBool("pdf.headless"),
			NoSandbox:  v.GetBool("pdf.no_sandbox"),
			DisableGPU: v.GetBool("pdf.disable_gpu"),
		},
		Archive: ArchiveConfig{
			Enabled:           v.GetBool("archive.enabled"),
			Driver:            strings.ToLower(v.GetString("archive.driver")),
			Dir:               v.GetString("archive.dir"),
			Bucket:            v.GetString("archive.bucket"),
			Region:            v.GetString("archive.region"),
			Endpoint:          v.GetString("archive.endpoint"),
			AccessKeyID:       v.GetString("archive.access_key_id"),
			SecretAccessKey:   v.GetString("archive.secret_access_key"),
			UsePathStyle:      v.GetBool("archive.use_path_style"),
			Prefix:            v.GetString("archive.prefix"),
			PresignExpiration: v.GetDuration("archive.presign_expiration"),
		},
		Telemetry: TelemetryConfig{
			Enabled:               v.GetBool("telemetry.enabled"),
			CollectorEndpoint:     v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:         v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:           v.GetString("telemetry.service_name"),
			Insecure:              v.GetBool("telemetry.insecure"),
			MetricsEnabled:        v.GetBool("telemetry.metrics_enabled"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
			DBTraceEnabled:        v.GetBool("telemetry.db_trace_enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setBoolDefaults registers defaults for booleans whose zero value is not the default
func setBoolDefaults(v *viper.Viper) {
	v.SetDefault("pdf.headless", true)
	v.SetDefault("pdf.disable_gpu", true)
	v.SetDefault("database.auto_migrate", true)
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "orderpad"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second // PDF rendering can be slow on a cold browser
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 2 << 20
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID", "X-Passphrase"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "data/inventory.csv"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverMemory
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "orderpad:"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DatabaseDriverSQLite
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/orderpad.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "orderpad"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 5
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.SlowQueryThreshold == 0 {
		cfg.Database.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PDF.Timeout == 0 {
		cfg.PDF.Timeout = 30 * time.Second
	}
	if cfg.Archive.Driver == "" {
		cfg.Archive.Driver = ArchiveDriverFilesystem
	}
	if cfg.Archive.Dir == "" {
		cfg.Archive.Dir = "data/exports"
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "us-east-1"
	}
	if cfg.Archive.Prefix == "" {
		cfg.Archive.Prefix = "exports/"
	}
	if cfg.Archive.PresignExpiration == 0 {
		cfg.Archive.PresignExpiration = 15 * time.Minute
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverRedis, StoreDriverSQL:
	default:
		return fmt.Errorf("store.driver must be one of memory, redis, sql, got %q", c.Store.Driver)
	}

	switch c.Database.Driver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Gate.Passphrase == "" && c.Gate.PassphraseHash == "" {
		return fmt.Errorf("gate.passphrase or gate.passphrase_hash is required")
	}

	if c.Archive.Enabled {
		switch c.Archive.Driver {
		case ArchiveDriverFilesystem:
		case ArchiveDriverS3:
			if c.Archive.Bucket == "" {
				return fmt.Errorf("archive.bucket is required when archive.driver is s3")
			}
		default:
			return fmt.Errorf("archive.driver must be s3 or filesystem, got %q", c.Archive.Driver)
		}
	}

	if c.App.Env == "production" {
		if c.Gate.PassphraseHash == "" {
			return fmt.Errorf("gate.passphrase_hash is required in production (plain gate.passphrase is for development)")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Database.Driver == DatabaseDriverPostgres && c.Database.SSLMode == "disable" && c.Store.Driver == StoreDriverSQL {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the postgres connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

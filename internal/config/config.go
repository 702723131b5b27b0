package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcalc/internal/policy"

	"github.com/BurntSushi/toml"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsHost string `toml:"metrics_host"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage of accounts and saved results: postgres or sqlite
	Storage      string `toml:"storage"`
	PostgresHost string `toml:"postgres_host"`
	PostgresPort string `toml:"postgres_port"`
	PostgresDB   string `toml:"postgres_db"`
	PostgresUser string `toml:"postgres_user"`
	SQLitePath   string `toml:"sqlite_path"`
	// redis (login sessions, rate limits)
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// http
	AllowedOrigins    []string `toml:"allowed_origins"`
	ShareTTL          Duration `toml:"share_ttl"`
	SessionTTL        Duration `toml:"session_ttl"`
	EmbedRatePerSec   float64  `toml:"embed_rate_per_sec"`
	EmbedBurst        int      `toml:"embed_burst"`
	LoginRatePerMin   int      `toml:"login_rate_per_min"`
	SaveRatePerMin    int      `toml:"save_rate_per_min"`
	GeoIPCacheSizeMiB int      `toml:"geoip_cache_size_mib"`

	Policy policy.Thresholds `toml:"policy"`
}

// Duration is a time.Duration written as "72h" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section of the given env,
// with defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "fitcalc.db"
	}
	if c.ShareTTL.Duration == 0 {
		c.ShareTTL.Duration = 30 * 24 * time.Hour
	}
	if c.SessionTTL.Duration == 0 {
		c.SessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.EmbedRatePerSec == 0 {
		c.EmbedRatePerSec = 2
	}
	if c.EmbedBurst == 0 {
		c.EmbedBurst = 20
	}
	if c.LoginRatePerMin == 0 {
		c.LoginRatePerMin = 10
	}
	if c.SaveRatePerMin == 0 {
		c.SaveRatePerMin = 60
	}
	if c.GeoIPCacheSizeMiB == 0 {
		c.GeoIPCacheSizeMiB = 1
	}
	c.Policy = c.Policy.WithDefaults()
}

func (c *Config) validate() error {
	var errs []error
	switch c.Storage {
	case StorageSQLite:
	case StoragePostgres:
		if c.PostgresHost == "" || c.PostgresDB == "" {
			errs = append(errs, errors.New("postgres storage needs postgres_host and postgres_db"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage [%s]", c.Storage))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.EmbedBurst < 1 || c.EmbedRatePerSec < 0 {
		errs = append(errs, errors.New("invalid embed rate limit"))
	}
	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

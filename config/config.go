package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Sweeper    SweeperConfig    `yaml:"sweeper"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Sectors    []string         `yaml:"sectors"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds the admin credential pair and token settings.
type AuthConfig struct {
	AdminEmail      string `yaml:"admin_email"`
	AdminPassword   string `yaml:"admin_password"`
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

// AlertsConfig holds the alert rule thresholds. The upstream deployments
// never agreed on these values, so they are configurable with defaults.
type AlertsConfig struct {
	FrequentThreshold        int     `yaml:"frequent_threshold"`
	FrequentWindowDays       int     `yaml:"frequent_window_days"`
	UrgentThreshold          int     `yaml:"urgent_threshold"`
	AvailabilityFloorPercent float64 `yaml:"availability_floor_percent"`
	StaleOpenDays            int     `yaml:"stale_open_days"`
	PreventiveWindowDays     int     `yaml:"preventive_window_days"`
}

// SweeperConfig holds the background alert sweeper configuration.
type SweeperConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	SuppressSeconds int           `yaml:"suppress_seconds"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 8 * 60
	}

	if cfg.Alerts.FrequentThreshold <= 0 {
		cfg.Alerts.FrequentThreshold = 3
	}
	if cfg.Alerts.FrequentWindowDays <= 0 {
		cfg.Alerts.FrequentWindowDays = 182
	}
	if cfg.Alerts.UrgentThreshold <= 0 {
		cfg.Alerts.UrgentThreshold = 2
	}
	if cfg.Alerts.AvailabilityFloorPercent <= 0 {
		cfg.Alerts.AvailabilityFloorPercent = 75
	}
	if cfg.Alerts.StaleOpenDays <= 0 {
		cfg.Alerts.StaleOpenDays = 7
	}
	if cfg.Alerts.PreventiveWindowDays <= 0 {
		cfg.Alerts.PreventiveWindowDays = 182
	}

	if cfg.Sweeper.IntervalSeconds <= 0 {
		cfg.Sweeper.IntervalSeconds = 600
	}
	cfg.Sweeper.Interval = time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second
	if cfg.Sweeper.SuppressSeconds <= 0 {
		// Default to one sweep interval so a still-firing alert is pushed at
		// most once per cycle boundary, not on every sweep.
		cfg.Sweeper.SuppressSeconds = cfg.Sweeper.IntervalSeconds
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}

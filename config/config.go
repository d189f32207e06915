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
	Alerting   AlertingConfig   `yaml:"alerting"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	LogLevel   string           `yaml:"log_level"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	APIKey          string  `yaml:"api_key"` // Shared key booths present on the ping endpoint
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

// AlertingConfig holds the thresholds and cadences of the alerting sweeps.
// Sweep cadence and staleness threshold are deliberately independent knobs.
type AlertingConfig struct {
	StaleThresholdMinutes     int `yaml:"stale_threshold_minutes"`      // Sweep staleness threshold
	ListStaleThresholdMinutes int `yaml:"list_stale_threshold_minutes"` // On-demand dashboard threshold
	StaleSweepMinutes         int `yaml:"stale_sweep_minutes"`
	ModeSweepMinutes          int `yaml:"mode_sweep_minutes"`
	ModeThresholdHours        int `yaml:"mode_threshold_hours"`
	RetentionDays             int `yaml:"retention_days"`
	RetentionSweepHours       int `yaml:"retention_sweep_hours"`
	SuppressionMinutes        int `yaml:"suppression_minutes"` // 0 keeps re-alerting every sweep

	StaleThreshold     time.Duration `yaml:"-"`
	ListStaleThreshold time.Duration `yaml:"-"`
	StaleSweepInterval time.Duration `yaml:"-"`
	ModeSweepInterval  time.Duration `yaml:"-"`
	ModeThreshold      time.Duration `yaml:"-"`
	Retention          time.Duration `yaml:"-"`
	RetentionInterval  time.Duration `yaml:"-"`
	Suppression        time.Duration `yaml:"-"`
}

// TelegramConfig holds the chat-alert channel settings. An empty token
// disables the channel.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// PushConfig holds the VAPID keys for staff web push notifications.
// Empty keys disable the channel.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the push notification worker pool.
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

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	a := &cfg.Alerting
	if a.StaleThresholdMinutes <= 0 {
		a.StaleThresholdMinutes = 30
	}
	if a.ListStaleThresholdMinutes <= 0 {
		a.ListStaleThresholdMinutes = 15
	}
	if a.StaleSweepMinutes <= 0 {
		a.StaleSweepMinutes = 5
	}
	if a.ModeSweepMinutes <= 0 {
		a.ModeSweepMinutes = 60
	}
	if a.ModeThresholdHours <= 0 {
		a.ModeThresholdHours = 24
	}
	if a.RetentionDays <= 0 {
		a.RetentionDays = 3
	}
	if a.RetentionSweepHours <= 0 {
		a.RetentionSweepHours = 24
	}
	if a.SuppressionMinutes < 0 {
		a.SuppressionMinutes = 0
	}

	a.StaleThreshold = time.Duration(a.StaleThresholdMinutes) * time.Minute
	a.ListStaleThreshold = time.Duration(a.ListStaleThresholdMinutes) * time.Minute
	a.StaleSweepInterval = time.Duration(a.StaleSweepMinutes) * time.Minute
	a.ModeSweepInterval = time.Duration(a.ModeSweepMinutes) * time.Minute
	a.ModeThreshold = time.Duration(a.ModeThresholdHours) * time.Hour
	a.Retention = time.Duration(a.RetentionDays) * 24 * time.Hour
	a.RetentionInterval = time.Duration(a.RetentionSweepHours) * time.Hour
	a.Suppression = time.Duration(a.SuppressionMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

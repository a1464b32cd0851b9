package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the MySQL DSN. Times are stored and read as UTC.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

func (j *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpMinutes) * time.Minute
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailDeliveryConfig struct {
	RatePerSecond         float64 `mapstructure:"rate_per_second"`
	MaxRetries            uint    `mapstructure:"max_retries"`
	BreakerMaxFailures    uint32  `mapstructure:"breaker_max_failures"`
	BreakerTimeoutSeconds int     `mapstructure:"breaker_timeout_seconds"`
}

type EmailConfig struct {
	Enabled      bool                `mapstructure:"enabled"`
	SMTPHost     string              `mapstructure:"smtp_host"`
	SMTPPort     int                 `mapstructure:"smtp_port"`
	SMTPUser     string              `mapstructure:"smtp_user"`
	SMTPPassword string              `mapstructure:"smtp_password"`
	FromAddress  string              `mapstructure:"from_address"`
	FromName     string              `mapstructure:"from_name"`
	BaseURL      string              `mapstructure:"base_url"`
	Delivery     EmailDeliveryConfig `mapstructure:"delivery"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type NotificationConfig struct {
	RetentionDays           int             `mapstructure:"retention_days"`
	DispatchIntervalSeconds int             `mapstructure:"dispatch_interval_seconds"`
	DispatchBatchSize       int             `mapstructure:"dispatch_batch_size"`
	CleanupCron             string          `mapstructure:"cleanup_cron"`
	UnreadCacheTTLSeconds   int             `mapstructure:"unread_cache_ttl_seconds"`
	RateLimit               RateLimitConfig `mapstructure:"rate_limit"`
	TemplateOverridesPath   string          `mapstructure:"template_overrides_path"`
	MarkdownCacheSize       int             `mapstructure:"markdown_cache_size"`
}

func (n *NotificationConfig) DispatchInterval() time.Duration {
	return time.Duration(n.DispatchIntervalSeconds) * time.Second
}

func (n *NotificationConfig) UnreadCacheTTL() time.Duration {
	return time.Duration(n.UnreadCacheTTLSeconds) * time.Second
}

func (n *NotificationConfig) Retention() time.Duration {
	return time.Duration(n.RetentionDays) * 24 * time.Hour
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

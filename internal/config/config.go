package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP server
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateLimitEvery time.Duration `mapstructure:"rate_limit_window"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`

	// Storage
	StoreDriver string `mapstructure:"store_driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	Namespace   string `mapstructure:"namespace"`

	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`

	// Redis is optional. An empty address disables caching, distributed rate
	// limiting and pub/sub notifications.
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	NotifyChannel string        `mapstructure:"notify_channel"`

	// Calendar
	Timezone string `mapstructure:"timezone"`
	Locale   string `mapstructure:"locale"`

	// Insights
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	GeminiBaseURL   string        `mapstructure:"gemini_base_url"`
	InsightModel    string        `mapstructure:"insight_model"`
	QuickModel      string        `mapstructure:"quick_model"`
	InsightTimeout  time.Duration `mapstructure:"insight_timeout"`
	ReminderEvery   time.Duration `mapstructure:"reminder_interval"`
	NotifyIcon      string        `mapstructure:"notify_icon"`
	NotificationsOn bool          `mapstructure:"notifications"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// envAliases keeps the bare variable names used by existing deployments
// working next to the KANSO_ prefixed ones.
var envAliases = map[string]string{
	"port":           "PORT",
	"db_host":        "DB_HOST",
	"db_port":        "DB_PORT",
	"db_user":        "DB_USER",
	"db_password":    "DB_PASSWORD",
	"db_name":        "DB_NAME",
	"redis_addr":     "REDIS_ADDR",
	"redis_password": "REDIS_PASSWORD",
	"gemini_api_key": "API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 30*time.Second)
	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_limit_window", time.Minute)
	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("store_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "kanso.db")
	v.SetDefault("namespace", "kanso_")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "kanso")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("notify_channel", "kanso:notifications")

	v.SetDefault("timezone", "Local")
	v.SetDefault("locale", "en")

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("insight_model", "gemini-3-pro-preview")
	v.SetDefault("quick_model", "gemini-3-flash-preview")
	v.SetDefault("insight_timeout", 30*time.Second)
	v.SetDefault("reminder_interval", 30*time.Second)
	v.SetDefault("notify_icon", "/icon.png")
	v.SetDefault("notifications", true)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads an optional .env file, then environment variables (KANSO_
// prefix or the bare aliases), then the YAML file at path if one is given
// or KANSO_CONFIG points at one.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KANSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "KANSO_"+strings.ToUpper(key), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path == "" {
		path = os.Getenv("KANSO_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q", c.Port))
	}

	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("unknown store driver %q", c.StoreDriver))
	}

	if c.StoreDriver == DriverSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		problems = append(problems, "sqlite_path is required for the sqlite driver")
	}
	if c.StoreDriver == DriverPostgres && c.DBUser == "" {
		problems = append(problems, "db_user is required for the postgres driver")
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("unknown timezone %q", c.Timezone))
	}

	if c.RateLimit < 1 {
		problems = append(problems, "rate_limit must be positive")
	}
	if c.ReminderEvery <= 0 {
		problems = append(problems, "reminder_interval must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves the configured timezone used to derive calendar days.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

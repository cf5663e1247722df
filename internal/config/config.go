package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the analysis API address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config holds all application configuration.
type Config struct {
	Client ClientConfig
	Poll   PollConfig
	Server ServerConfig
	CORS   CORSConfig
	Store  StoreConfig
	DB     DBConfig
	S3     S3Config
	Queue  QueueConfig
	Log    LogConfig
}

// ClientConfig holds settings for calling the analysis API.
type ClientConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	UserAgent   string `mapstructure:"user_agent"`
}

// Timeout returns the per-request timeout; zero means none beyond the caller's context.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// PollConfig holds job status polling settings.
type PollConfig struct {
	IntervalSecs int `mapstructure:"interval_secs"`
	TimeoutSecs  int `mapstructure:"timeout_secs"`
}

// Interval returns the polling interval, defaulting to 2s.
func (p *PollConfig) Interval() time.Duration {
	if p.IntervalSecs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(p.IntervalSecs) * time.Second
}

// Timeout returns the overall polling deadline, defaulting to 10m.
func (p *PollConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// ServerConfig holds HTTP server settings for the development backend.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects the persistence backend for documents and jobs.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "postgres"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings. An empty Bucket selects in-memory storage.
type S3Config struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	SamplesBucket  string `mapstructure:"samples_bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	UploadPrefix   string `mapstructure:"upload_prefix"`
	CustomerPrefix string `mapstructure:"customer_prefix"`
	MaxFileSizeMB  int64  `mapstructure:"max_file_size_mb"`
}

// SampleBucket returns the bucket holding sample documents.
func (s *S3Config) SampleBucket() string {
	if s.SamplesBucket != "" {
		return s.SamplesBucket
	}
	return s.Bucket
}

// QueueConfig holds analysis job worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the PARSEAI_ prefix.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PARSEAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Client defaults
	v.SetDefault("client.base_url", DefaultBaseURL)
	v.SetDefault("client.timeout_secs", 0)
	v.SetDefault("client.user_agent", "parseai")

	// Poll defaults
	v.SetDefault("poll.interval_secs", 2)
	v.SetDefault("poll.timeout_secs", 600)

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("store.driver", "memory")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "parseai")
	v.SetDefault("db.password", "parseai_secret")
	v.SetDefault("db.name", "parseai_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.samples_bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.upload_prefix", "uploads")
	v.SetDefault("s3.customer_prefix", "customers")
	v.SetDefault("s3.max_file_size_mb", 16)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 1)
	v.SetDefault("queue.concurrency", 4)

	// Log defaults
	v.SetDefault("log.level", "info")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"client.base_url":          "PARSEAI_CLIENT_BASE_URL",
		"client.timeout_secs":      "PARSEAI_CLIENT_TIMEOUT_SECS",
		"client.user_agent":        "PARSEAI_CLIENT_USER_AGENT",
		"poll.interval_secs":       "PARSEAI_POLL_INTERVAL_SECS",
		"poll.timeout_secs":        "PARSEAI_POLL_TIMEOUT_SECS",
		"server.port":              "PARSEAI_SERVER_PORT",
		"server.read_timeout":      "PARSEAI_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PARSEAI_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PARSEAI_SERVER_ENVIRONMENT",
		"cors.allowed_origins":     "PARSEAI_CORS_ALLOWED_ORIGINS",
		"store.driver":             "PARSEAI_STORE_DRIVER",
		"db.host":                  "PARSEAI_DB_HOST",
		"db.port":                  "PARSEAI_DB_PORT",
		"db.user":                  "PARSEAI_DB_USER",
		"db.password":              "PARSEAI_DB_PASSWORD",
		"db.name":                  "PARSEAI_DB_NAME",
		"db.sslmode":               "PARSEAI_DB_SSLMODE",
		"db.max_open":              "PARSEAI_DB_MAX_OPEN",
		"db.max_idle":              "PARSEAI_DB_MAX_IDLE",
		"s3.region":                "PARSEAI_S3_REGION",
		"s3.bucket":                "PARSEAI_S3_BUCKET",
		"s3.samples_bucket":        "PARSEAI_S3_SAMPLES_BUCKET",
		"s3.endpoint":              "PARSEAI_S3_ENDPOINT",
		"s3.access_key":            "PARSEAI_S3_ACCESS_KEY",
		"s3.secret_key":            "PARSEAI_S3_SECRET_KEY",
		"s3.upload_prefix":         "PARSEAI_S3_UPLOAD_PREFIX",
		"s3.customer_prefix":       "PARSEAI_S3_CUSTOMER_PREFIX",
		"s3.max_file_size_mb":      "PARSEAI_S3_MAX_FILE_SIZE_MB",
		"queue.poll_interval_secs": "PARSEAI_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "PARSEAI_QUEUE_CONCURRENCY",
		"log.level":                "PARSEAI_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PARSEAI_API_URL mirrors the dashboard's environment setting and wins
	// unless PARSEAI_CLIENT_BASE_URL is set explicitly.
	baseURL := v.GetString("client.base_url")
	if apiURL := os.Getenv("PARSEAI_API_URL"); apiURL != "" && os.Getenv("PARSEAI_CLIENT_BASE_URL") == "" {
		baseURL = apiURL
	}
	cfg.Client = ClientConfig{
		BaseURL:     baseURL,
		TimeoutSecs: v.GetInt("client.timeout_secs"),
		UserAgent:   v.GetString("client.user_agent"),
	}
	cfg.Poll = PollConfig{
		IntervalSecs: v.GetInt("poll.interval_secs"),
		TimeoutSecs:  v.GetInt("poll.timeout_secs"),
	}

	// Hosting platforms set PORT. Use it if PARSEAI_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PARSEAI_SERVER_PORT") == "" {
		serverPort = ":" + port
	}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}
	cfg.Store = StoreConfig{Driver: v.GetString("store.driver")}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:         v.GetString("s3.region"),
		Bucket:         v.GetString("s3.bucket"),
		SamplesBucket:  v.GetString("s3.samples_bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		UploadPrefix:   v.GetString("s3.upload_prefix"),
		CustomerPrefix: v.GetString("s3.customer_prefix"),
		MaxFileSizeMB:  v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Log = LogConfig{Level: v.GetString("log.level")}

	if cfg.Store.Driver != "memory" && cfg.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

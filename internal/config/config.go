package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Predictor PredictorConfig
	Upstream  UpstreamConfig
	Batch     BatchConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// PredictorConfig holds settings for the outbound prediction client.
// APIBaseURL is the base the client posts "/predict" to; by default it is
// this server's own relay.
type PredictorConfig struct {
	APIBaseURL  string `mapstructure:"api_base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// UpstreamConfig holds the fixed address of the external ML predictor that
// the relay forwards to.
type UpstreamConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// BatchConfig holds batch upload limits and session state retention.
type BatchConfig struct {
	MaxSize       int           `mapstructure:"max_size"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	StateTTL      time.Duration `mapstructure:"state_ttl"`
}

// AuthConfig holds the single operator credential and session token settings.
type AuthConfig struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	PasswordHash string        `mapstructure:"password_hash"`
	Secret       string        `mapstructure:"secret"`
	TokenExpiry  time.Duration `mapstructure:"token_expiry"`
	Issuer       string        `mapstructure:"issuer"`
}

// StorageConfig holds optional S3 archiving of exported results.
type StorageConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ArchiveEnabled reports whether exported results should be archived to S3.
func (s *StorageConfig) ArchiveEnabled() bool {
	return s.Provider == "s3" && s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CARPRICE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARPRICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Predictor client defaults
	v.SetDefault("predictor.api_base_url", "http://localhost:8080/api")
	v.SetDefault("predictor.timeout_secs", 60)

	// Upstream relay defaults
	v.SetDefault("upstream.base_url", "http://mlflow-fastapi-app-1:8005")
	v.SetDefault("upstream.timeout_secs", 30)

	// Batch defaults
	v.SetDefault("batch.max_size", 100)
	v.SetDefault("batch.max_file_size_mb", 5)
	v.SetDefault("batch.state_ttl", "2h")

	// Auth defaults
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password", "admin123")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "carprice")

	// Storage defaults
	v.SetDefault("storage.provider", "none")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "info")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "CARPRICE_SERVER_PORT",
		"server.read_timeout":    "CARPRICE_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "CARPRICE_SERVER_WRITE_TIMEOUT",
		"server.environment":     "CARPRICE_SERVER_ENVIRONMENT",
		"predictor.api_base_url": "CARPRICE_PREDICTOR_API_BASE_URL",
		"predictor.timeout_secs": "CARPRICE_PREDICTOR_TIMEOUT_SECS",
		"upstream.base_url":      "CARPRICE_UPSTREAM_BASE_URL",
		"upstream.timeout_secs":  "CARPRICE_UPSTREAM_TIMEOUT_SECS",
		"batch.max_size":         "CARPRICE_BATCH_MAX_SIZE",
		"batch.max_file_size_mb": "CARPRICE_BATCH_MAX_FILE_SIZE_MB",
		"batch.state_ttl":        "CARPRICE_BATCH_STATE_TTL",
		"auth.username":          "CARPRICE_AUTH_USERNAME",
		"auth.password":          "CARPRICE_AUTH_PASSWORD",
		"auth.password_hash":     "CARPRICE_AUTH_PASSWORD_HASH",
		"auth.secret":            "CARPRICE_AUTH_SECRET",
		"auth.token_expiry":      "CARPRICE_AUTH_TOKEN_EXPIRY",
		"auth.issuer":            "CARPRICE_AUTH_ISSUER",
		"storage.provider":       "CARPRICE_STORAGE_PROVIDER",
		"storage.region":         "CARPRICE_STORAGE_REGION",
		"storage.bucket":         "CARPRICE_STORAGE_BUCKET",
		"storage.endpoint":       "CARPRICE_STORAGE_ENDPOINT",
		"storage.access_key":     "CARPRICE_STORAGE_ACCESS_KEY",
		"storage.secret_key":     "CARPRICE_STORAGE_SECRET_KEY",
		"storage.presign_expiry": "CARPRICE_STORAGE_PRESIGN_EXPIRY",
		"log.level":              "CARPRICE_LOG_LEVEL",
		"cors.allowed_origins":   "CARPRICE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if CARPRICE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARPRICE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Predictor = PredictorConfig{
		APIBaseURL:  strings.TrimRight(v.GetString("predictor.api_base_url"), "/"),
		TimeoutSecs: v.GetInt("predictor.timeout_secs"),
	}
	cfg.Upstream = UpstreamConfig{
		BaseURL:     strings.TrimRight(v.GetString("upstream.base_url"), "/"),
		TimeoutSecs: v.GetInt("upstream.timeout_secs"),
	}
	cfg.Batch = BatchConfig{
		MaxSize:       v.GetInt("batch.max_size"),
		MaxFileSizeMB: v.GetInt64("batch.max_file_size_mb"),
		StateTTL:      v.GetDuration("batch.state_ttl"),
	}
	cfg.Auth = AuthConfig{
		Username:     v.GetString("auth.username"),
		Password:     v.GetString("auth.password"),
		PasswordHash: v.GetString("auth.password_hash"),
		Secret:       v.GetString("auth.secret"),
		TokenExpiry:  v.GetDuration("auth.token_expiry"),
		Issuer:       v.GetString("auth.issuer"),
	}
	cfg.Storage = StorageConfig{
		Provider:      v.GetString("storage.provider"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		PresignExpiry: v.GetInt64("storage.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

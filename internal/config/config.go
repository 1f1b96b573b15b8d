package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var (
	ErrMissingJWTSecret     = errors.New("JWT_SECRET environment variable is required")
	ErrMissingSessionSecret = errors.New("SESSION_SECRET environment variable is required")
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionStore  string
	SessionName   string
	SessionSecret string
	JWTSecret     string
	Origin        string
	Frontend      string

	// Image storage
	ImageStore  string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "puzzleuser"),
		DBPassword:    getEnv("DB_PASSWORD", "puzzlepassword"),
		DBName:        getEnv("DB_NAME", "puzzles"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionStore:  getEnv("SESSION_STORE", "redis"),
		SessionName:   getEnv("SESSION_NAME", "puzzle_session"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		Origin:        getEnv("ORIGIN", ""),
		Frontend:      getEnv("FRONTEND", ""),
		ImageStore:    getEnv("IMAGE_STORE", "database"),
		S3Bucket:      getEnv("S3_BUCKET", "puzzle-images"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.SessionSecret == "" {
		return ErrMissingSessionSecret
	}
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	switch c.ImageStore {
	case "database", "s3":
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.ImageStore)
	}
	return nil
}

// Production reports whether the server runs in gin release mode.
func (c *Config) Production() bool {
	return c.GinMode == "release"
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range []string{c.Origin, c.Frontend} {
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

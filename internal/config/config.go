package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by the api, frontend and CLI commands.
type Config struct {
	// API server
	AppHost     string
	AppPort     string
	LogLevel    string
	SwaggerHost string

	// Frontend server
	FrontendHost      string
	FrontendPort      string
	BackendBaseURL    string
	HTTPClientTimeout time.Duration

	// Database
	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Redis stats cache, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	// Kafka transaction events, disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string

	parseErrors []string
}

// Load reads the env file at path, if it exists, and then the process environment.
// Variables already set in the environment take precedence over the file.
func Load(path string) *Config {
	_ = godotenv.Load(path)

	c := &Config{}

	c.AppHost = getEnv("APP_HOST", "localhost")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.AppHost+":"+c.AppPort)

	c.FrontendHost = getEnv("FRONTEND_HOST", "localhost")
	c.FrontendPort = getEnv("FRONTEND_PORT", "8081")
	c.BackendBaseURL = getEnv("BACKEND_BASE_URL", "http://"+c.AppHost+":"+c.AppPort)
	c.HTTPClientTimeout = c.getSeconds("HTTP_CLIENT_TIMEOUT_SECOND", 10)

	c.DBDriver = getEnv("DB_DRIVER", "sqlite")
	c.DBDSN = getEnv("DB_DSN", "file:finance.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	c.DBMaxOpenConns = c.getInt("DB_MAX_OPEN_CONNS", 16)
	c.DBMaxIdleConns = c.getInt("DB_MAX_IDLE_CONNS", 8)

	c.RedisAddr = getEnv("REDIS_ADDR", "")
	c.RedisPassword = getEnv("REDIS_PASSWORD", "")
	c.RedisDB = c.getInt("REDIS_DB", 0)
	c.StatsCacheTTL = c.getSeconds("STATS_CACHE_TTL_SECOND", 60)

	c.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	c.KafkaTopic = getEnv("KAFKA_TOPIC", "transactions")

	return c
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := append([]string(nil), c.parseErrors...)

	for key, port := range map[string]string{"APP_PORT": c.AppPort, "FRONTEND_PORT": c.FrontendPort} {
		if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
			errs = append(errs, fmt.Sprintf("invalid %s '%s': must be a number between 1 and 65535", key, port))
		}
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid APP_LOG_LEVEL '%s': %v", c.LogLevel, err))
	}

	if c.DBDriver != "sqlite" && c.DBDriver != "pgx" {
		errs = append(errs, fmt.Sprintf("invalid DB_DRIVER '%s': must be one of [sqlite pgx]", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, "DB_DSN cannot be empty")
	}
	if c.DBMaxOpenConns < 1 {
		errs = append(errs, fmt.Sprintf("invalid DB_MAX_OPEN_CONNS %d: must be at least 1", c.DBMaxOpenConns))
	}
	if c.DBMaxIdleConns < 0 {
		errs = append(errs, fmt.Sprintf("invalid DB_MAX_IDLE_CONNS %d: must not be negative", c.DBMaxIdleConns))
	}

	if u, err := url.Parse(c.BackendBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid BACKEND_BASE_URL '%s': must be an absolute http(s) URL", c.BackendBaseURL))
	}
	if c.HTTPClientTimeout <= 0 {
		errs = append(errs, "HTTP_CLIENT_TIMEOUT_SECOND must be positive")
	}

	if c.RedisAddr != "" && c.StatsCacheTTL <= 0 {
		errs = append(errs, "STATS_CACHE_TTL_SECOND must be positive when REDIS_ADDR is set")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, "KAFKA_TOPIC cannot be empty when KAFKA_BROKERS is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func (c *Config) getInt(key string, defaultValue int) int {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.parseErrors = append(c.parseErrors, fmt.Sprintf("invalid %s '%s': must be a number", key, raw))
		return defaultValue
	}
	return v
}

func (c *Config) getSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(c.getInt(key, defaultValue)) * time.Second
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

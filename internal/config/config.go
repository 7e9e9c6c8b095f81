package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Store drivers
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigins []string

	// AuthRequireForMutations puts catalog and loan mutations behind authentication.
	// On by default. false restores open mutations, only the borrower listing checks identity.
	AuthRequireForMutations bool
}

type StoreConfig struct {
	Driver string // mongo, postgres, memory
}

type MongoConfig struct {
	URI             string
	Database        string
	BooksCollection string
	LoansCollection string
	ConnectTimeout  time.Duration
	MaxPoolSize     int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

type JWTConfig struct {
	Secret       string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "BookOcean API"),
			Environment:             getEnv("APP_ENV", "development"),
			Port:                    getEnv("PORT", getEnv("APP_PORT", "5000")),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			CORSOrigins:             getEnvList("CORS_ORIGINS", []string{"*"}),
			AuthRequireForMutations: getEnvBool("AUTH_REQUIRE_FOR_MUTATIONS", true),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		},
		Mongo: MongoConfig{
			URI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:        getEnv("MONGO_DB", "BookOceanDB"),
			BooksCollection: getEnv("MONGO_BOOKS_COLLECTION", "books"),
			LoansCollection: getEnv("MONGO_LOANS_COLLECTION", "borrowed"),
			ConnectTimeout:  getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:     getEnvInt("MONGO_MAX_POOL_SIZE", 50),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bookocean"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "bookocean"),
			TTL:      getEnvDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:       getEnv("ACCESS_TOKEN_SECRET", getEnv("JWT_SECRET", defaultJWTSecret)),
			SessionTTL:   getEnvDuration("JWT_SESSION_TTL", 6*time.Hour),
			CookieName:   getEnv("JWT_COOKIE_NAME", "token"),
			CookieSecure: getEnvBool("JWT_COOKIE_SECURE", false),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo, postgres or memory)", c.Store.Driver)
	}

	if c.JWT.SessionTTL <= 0 {
		return fmt.Errorf("JWT_SESSION_TTL must be positive")
	}
	if c.JWT.CookieName == "" {
		return fmt.Errorf("JWT_COOKIE_NAME must not be empty")
	}

	// Secure cookies go out as SameSite=None, only named origins may carry them
	if c.JWT.CookieSecure && AllowsAnyOrigin(c.App.CORSOrigins) {
		return fmt.Errorf("CORS_ORIGINS must list explicit origins when JWT_COOKIE_SECURE is true")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("ACCESS_TOKEN_SECRET must be set in production")
		}
		if c.Store.Driver == StorePostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// AllowsAnyOrigin reports whether origins means every origin: empty or containing "*"
func AllowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Store drivers.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

const envDevelopment = "development"

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Social   SocialConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	ExposeInternalErrors  bool
	ResetURL              string
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Driver string
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI                   string
	Database              string
	Collection            string
	ConnectTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	AccessTokenTTLMinutes   int
	PasswordResetTTLMinutes int
	BcryptCost              int
}

// SMTPConfig configures the outbound mail transport.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSPolicy string
}

// SocialConfig enables social-login providers. A provider with an empty
// client id stays disabled.
type SocialConfig struct {
	GoogleClientID string
	GoogleJWKSURL  string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	appEnv := getEnv("APP_ENV", envDevelopment)

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "alumni-connect"),
			Env:                   appEnv,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			ExposeInternalErrors:  getEnvAsBool("APP_EXPOSE_INTERNAL_ERRORS", appEnv == envDevelopment),
			ResetURL:              getEnv("APP_RESET_URL", "http://localhost:3000/reset-password"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
		},
		Mongo: MongoConfig{
			URI:                   getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database:              getEnv("MONGO_DATABASE", "alumni"),
			Collection:            getEnv("MONGO_COLLECTION", "users"),
			ConnectTimeoutSeconds: getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", bcrypt.DefaultCost),
		},
		SMTP: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			From:      getEnv("SMTP_FROM", "noreply@alumniconnect.com"),
			TLSPolicy: strings.ToLower(getEnv("SMTP_TLS_POLICY", "opportunistic")),
		},
		Social: SocialConfig{
			GoogleClientID: os.Getenv("SOCIAL_GOOGLE_CLIENT_ID"),
			GoogleJWKSURL:  getEnv("SOCIAL_GOOGLE_JWKS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.JWTSecret = "dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required outside development"))
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	switch c.SMTP.TLSPolicy {
	case "mandatory", "opportunistic", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown SMTP_TLS_POLICY %q", c.SMTP.TLSPolicy))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the service runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == envDevelopment
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout returns the Mongo connect timeout.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.ConnectTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// PasswordResetTTL returns the lifetime of password reset tokens.
func (a AuthConfig) PasswordResetTTL() time.Duration {
	if a.PasswordResetTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.PasswordResetTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"os"
	"strconv"
)

// Store drivers supported for application/notification persistence.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Attachment backends supported for resume binaries.
const (
	AttachmentBackendInline = "inline"
	AttachmentBackendMinIO  = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	AppName            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnMaxIdleTimeSec int
	ConnectTimeoutSec  int
}

// MongoConfig holds MongoDB settings used when STORE_DRIVER=mongo.
type MongoConfig struct {
	URI        string
	Database   string
	TimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds the settings used to verify upstream-issued bearer tokens.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// RedisConfig holds the connection settings of the shared rate limiter.
// An empty Addr selects the in-process limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds how many submissions one actor may send per window.
type RateLimitConfig struct {
	SubmitLimit     int
	SubmitWindowSec int
}

// PolicyConfig holds access-control switches.
type PolicyConfig struct {
	RestrictLookupByEmail bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost           string
	Port              string
	Timezone          string
	LogLevel          string
	StoreDriver       string
	AttachmentBackend string
	MaxUploadBytes    int
	Database          DatabaseConfig
	Mongo             MongoConfig
	MinIO             MinIOConfig
	Auth              AuthConfig
	Redis             RedisConfig
	RateLimit         RateLimitConfig
	Policy            PolicyConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		Port:              getEnv("PORT", "8080"), // default only for non-sensitive value
		Timezone:          getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StoreDriver:       getEnv("STORE_DRIVER", StoreDriverPostgres),
		AttachmentBackend: getEnv("ATTACHMENT_BACKEND", AttachmentBackendInline),
		MaxUploadBytes:    getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			AppName:            getEnv("DB_APPLICATION_NAME", "applyapi"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnMaxIdleTimeSec: getEnvInt("DB_CONN_MAX_IDLE_TIME_SEC", 60),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DATABASE", "applyapi"),
			TimeoutSec: getEnvInt("MONGO_TIMEOUT_SEC", 10),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			SubmitLimit:     getEnvInt("SUBMIT_RATE_LIMIT", 10),
			SubmitWindowSec: getEnvInt("SUBMIT_RATE_WINDOW_SEC", 60),
		},
		Policy: PolicyConfig{
			RestrictLookupByEmail: getEnvBool("RESTRICT_LOOKUP_BY_EMAIL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

package config

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Storage strategy names accepted in STORAGE_STRATEGY.
const (
	StrategyBrowser = "browser"
	StrategyRemote  = "remote"
	StrategyLocal   = "local"
)

// Object store backends accepted in OBJECT_STORE_BACKEND.
const (
	BackendMinIO = "minio"
	BackendS3    = "s3"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Configured reports whether enough settings are present to attempt a connection.
func (c DatabaseConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Name != ""
}

// ObjectStoreConfig selects the object storage backend used by the remote strategy.
type ObjectStoreConfig struct {
	Backend      string
	URLExpirySec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// S3Config holds object storage settings for AWS S3 (or any endpoint speaking the S3 API).
type S3Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// KVConfig points at the key/value slot store used by the browser and local strategies.
// DSN "file:..." selects the embedded SQLite driver, "libsql://..." a remote libSQL database.
type KVConfig struct {
	DSN string
}

// HostConfig holds the settings shared by the host process and its client.
type HostConfig struct {
	URL         string
	Port        string
	Secret      string
	BaseDir     string
	TokenTTLSec int
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Strategy    string
	Log         LogConfig
	Database    DatabaseConfig
	ObjectStore ObjectStoreConfig
	MinIO       MinIOConfig
	S3          S3Config
	KV          KVConfig
	Host        HostConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Strategy: getEnv("STORAGE_STRATEGY", StrategyLocal),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		ObjectStore: ObjectStoreConfig{
			Backend:      getEnv("OBJECT_STORE_BACKEND", BackendMinIO),
			URLExpirySec: getEnvInt("OBJECT_STORE_URL_EXPIRY_SEC", 900),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "pdf-files"),
			Region:    getEnv("MINIO_REGION", "us-east-1"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		S3: S3Config{
			Region:       getEnv("S3_REGION", "us-east-1"),
			Bucket:       getEnv("S3_BUCKET", "pdf-files"),
			BaseEndpoint: getEnv("S3_BASE_ENDPOINT", ""),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
		},
		KV: KVConfig{
			DSN: getEnv("KV_DSN", "file:docshelf.db"),
		},
		Host: HostConfig{
			URL:         getEnv("HOST_URL", "http://127.0.0.1:8765"),
			Port:        getEnv("HOST_PORT", "8765"),
			Secret:      getEnv("HOST_SECRET", ""),
			BaseDir:     getEnv("HOST_BASE_DIR", "pdf-files"),
			TokenTTLSec: getEnvInt("HOST_TOKEN_TTL_SEC", 60),
		},
	}
}

// Validate checks the settings required by the selected storage strategy.
func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Strategy, validation.Required,
			validation.In(StrategyBrowser, StrategyRemote, StrategyLocal)),
	); err != nil {
		return err
	}

	switch c.Strategy {
	case StrategyBrowser:
		return validation.ValidateStruct(&c.KV, validation.Field(&c.KV.DSN, validation.Required))
	case StrategyLocal:
		if err := validation.ValidateStruct(&c.KV, validation.Field(&c.KV.DSN, validation.Required)); err != nil {
			return err
		}
		return c.Host.ValidateClient()
	default:
		return c.validateRemote()
	}
}

func (c *AppConfig) validateRemote() error {
	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Host, validation.Required),
		validation.Field(&c.Database.User, validation.Required),
		validation.Field(&c.Database.Name, validation.Required),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.ObjectStore,
		validation.Field(&c.ObjectStore.Backend, validation.Required, validation.In(BackendMinIO, BackendS3)),
		validation.Field(&c.ObjectStore.URLExpirySec, validation.Min(1)),
	); err != nil {
		return err
	}
	// open-external is delegated to the host process
	return c.Host.ValidateClient()
}

// ValidateClient checks the settings needed to talk to the host process.
func (h *HostConfig) ValidateClient() error {
	return validation.ValidateStruct(h,
		validation.Field(&h.URL, validation.Required),
		validation.Field(&h.Secret, validation.Required, validation.Length(16, 0)),
		validation.Field(&h.TokenTTLSec, validation.Min(1)),
	)
}

// ValidateServer checks the settings needed to run the host process.
func (h *HostConfig) ValidateServer() error {
	return validation.ValidateStruct(h,
		validation.Field(&h.Port, validation.Required),
		validation.Field(&h.Secret, validation.Required, validation.Length(16, 0)),
		validation.Field(&h.BaseDir, validation.Required),
	)
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

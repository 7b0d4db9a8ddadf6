package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Storage backend: "mongo" or "memory"
	StorageBackend string `json:"storage_backend"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Collection names
	UserCollection     string `json:"mongo_user_collection"`
	OtpCodeCollection  string `json:"mongo_otp_code_collection"`
	ReportCollection   string `json:"mongo_report_collection"`
	AuditLogCollection string `json:"mongo_audit_log_collection"`

	IndexMaintenanceInterval time.Duration `json:"index_maintenance_interval"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Object store configuration
	S3ServiceURL    string        `json:"s3_service_url"`
	S3Region        string        `json:"s3_region"`
	S3AccessKey     string        `json:"-"`
	S3SecretKey     string        `json:"-"`
	S3Bucket        string        `json:"s3_bucket"`
	S3PublicURLBase string        `json:"s3_public_url_base"`
	UploadURLTTL    time.Duration `json:"upload_url_ttl"`

	// Token configuration
	JWTKey      string        `json:"-"`
	JWTIssuer   string        `json:"jwt_issuer"`
	JWTAudience string        `json:"jwt_audience"`
	TokenTTL    time.Duration `json:"token_ttl"`

	// OTP configuration
	OtpSecret     string        `json:"-"`
	OtpTTL        time.Duration `json:"otp_ttl"`
	OtpRateLimit  int           `json:"otp_rate_limit"`
	OtpRateWindow time.Duration `json:"otp_rate_window"`

	// Moderation worker configuration
	ModerationInterval  time.Duration `json:"moderation_interval"`
	ModerationBatchSize int           `json:"moderation_batch_size"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	SeedDevUsers bool `json:"seed_dev_users"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	indexInterval, err := time.ParseDuration(getEnvOrDefault("INDEX_MAINTENANCE_INTERVAL", "1h"))
	if err != nil {
		return fmt.Errorf("invalid INDEX_MAINTENANCE_INTERVAL: %w", err)
	}

	uploadTTL, err := time.ParseDuration(getEnvOrDefault("UPLOAD_URL_TTL", "15m"))
	if err != nil {
		return fmt.Errorf("invalid UPLOAD_URL_TTL: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnvOrDefault("TOKEN_TTL", "12h"))
	if err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(getEnvOrDefault("OTP_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_TTL: %w", err)
	}

	otpRateLimit, err := strconv.Atoi(getEnvOrDefault("OTP_RATE_LIMIT", "5"))
	if err != nil {
		return fmt.Errorf("invalid OTP_RATE_LIMIT: %w", err)
	}
	if otpRateLimit < 2 {
		return fmt.Errorf("invalid OTP_RATE_LIMIT: must allow at least 2 requests per window")
	}

	otpRateWindow, err := time.ParseDuration(getEnvOrDefault("OTP_RATE_WINDOW", "10m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_RATE_WINDOW: %w", err)
	}

	moderationInterval, err := time.ParseDuration(getEnvOrDefault("MODERATION_INTERVAL", "20s"))
	if err != nil {
		return fmt.Errorf("invalid MODERATION_INTERVAL: %w", err)
	}

	moderationBatch, err := strconv.Atoi(getEnvOrDefault("MODERATION_BATCH_SIZE", "20"))
	if err != nil || moderationBatch < 1 {
		return fmt.Errorf("invalid MODERATION_BATCH_SIZE: %q", os.Getenv("MODERATION_BATCH_SIZE"))
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	environment := getEnvOrDefault("ENVIRONMENT", "development")

	seedDevUsers, err := strconv.ParseBool(getEnvOrDefault("SEED_DEV_USERS", strconv.FormatBool(environment != "production")))
	if err != nil {
		return fmt.Errorf("invalid SEED_DEV_USERS: %w", err)
	}

	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", "mongo"))
	if backend != "mongo" && backend != "memory" {
		return fmt.Errorf("invalid STORAGE_BACKEND: %q", backend)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: environment,

		StorageBackend: backend,

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "civicreport"),

		// Collection names
		UserCollection:     getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		OtpCodeCollection:  getEnvOrDefault("MONGODB_OTP_CODE_COLLECTION", "otp_codes"),
		ReportCollection:   getEnvOrDefault("MONGODB_REPORT_COLLECTION", "reports"),
		AuditLogCollection: getEnvOrDefault("MONGODB_AUDIT_LOG_COLLECTION", "audit_logs"),

		IndexMaintenanceInterval: indexInterval,

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Object store configuration
		S3ServiceURL:    getEnvOrDefault("S3_SERVICE_URL", "http://localhost:9000"),
		S3Region:        getEnvOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey:     getEnvOrDefault("S3_ACCESS_KEY", "minio"),
		S3SecretKey:     getEnvOrDefault("S3_SECRET_KEY", "minio123"),
		S3Bucket:        getEnvOrDefault("S3_BUCKET", "civicreport"),
		S3PublicURLBase: getEnvOrDefault("S3_PUBLIC_URL_BASE", "http://localhost:9000"),
		UploadURLTTL:    uploadTTL,

		// Token configuration
		JWTKey:      getEnvOrDefault("JWT_KEY", "dev-secret-key"),
		JWTIssuer:   getEnvOrDefault("JWT_ISSUER", "civicreport"),
		JWTAudience: getEnvOrDefault("JWT_AUDIENCE", "civicreport"),
		TokenTTL:    tokenTTL,

		// OTP configuration
		OtpSecret:     getEnvOrDefault("OTP_SECRET", "otp-secret"),
		OtpTTL:        otpTTL,
		OtpRateLimit:  otpRateLimit,
		OtpRateWindow: otpRateWindow,

		// Moderation worker configuration
		ModerationInterval:  moderationInterval,
		ModerationBatchSize: moderationBatch,

		// Tracing configuration
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		SeedDevUsers: seedDevUsers,
	}

	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c != nil && c.Environment == "production"
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

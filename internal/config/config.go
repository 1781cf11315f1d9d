package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	// CAS single sign-on.
	CASServerURL string
	ServiceURL   string // public base URL of this service, used for CAS callbacks
	RedirectURL  string // where to send the browser after a successful login

	// Session tokens.
	JWTSecret string
	JWTExpiry time.Duration

	// Identifier hashing.
	HashKey string

	// Static allow-list; not stored in the database.
	SuperAdminEmails []string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Profiles        string
	Communities     string
	CommunityAdmins string
	Identifiers     string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Profiles:        getEnv("DYNAMO_TABLE_PROFILES", "user_profiles"),
			Communities:     getEnv("DYNAMO_TABLE_COMMUNITIES", "communities"),
			CommunityAdmins: getEnv("DYNAMO_TABLE_COMMUNITY_ADMINS", "community_admins"),
			Identifiers:     getEnv("DYNAMO_TABLE_IDENTIFIERS", "identifiers"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "alumni-connect-icons"),

		CASServerURL: getEnv("CAS_SERVER_URL", ""),
		ServiceURL:   getEnv("SERVICE_URL", "http://localhost:3000"),
		RedirectURL:  getEnv("REDIRECT_URL", "/home"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		HashKey: getEnv("HASH_KEY", ""),

		SuperAdminEmails: splitList(getEnv("SUPER_ADMIN_EMAILS", "")),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// splitList parses a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

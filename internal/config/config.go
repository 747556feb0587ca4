package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSRegion      string
	SMSEnabled     bool

	MailDriver   string // "smtp" | "ses"
	MailFrom     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	SessionSecret     string
	AdminSessionTTL   time.Duration
	UserSessionTTL    time.Duration
	OTPTTL            time.Duration

	GoogleClientID   string
	GoogleMapsAPIKey string
	GooglePlacesURL  string
	NominatimURL     string

	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool // honour X-Forwarded-For / X-Real-Ip for client addresses
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	OTPs     string
	Profiles string
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("APP_PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AWSRegion:      getEnv("AWS_REGION", "ap-south-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			OTPs:     getEnv("DYNAMO_TABLE_OTPS", "email_otps"),
			Profiles: getEnv("DYNAMO_TABLE_PROFILES", "profiles"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", ""),
		SNSRegion:    getEnv("SNS_REGION", "ap-south-1"),
		SMSEnabled:   getEnvBool("SMS_ENABLED", false),

		MailDriver:   getEnv("MAIL_DRIVER", "smtp"),
		MailFrom:     getEnv("MAIL_FROM", "Raatap <team@raatap.com>"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		AdminSessionTTL:   getEnvDuration("ADMIN_SESSION_TTL", 24*time.Hour),
		UserSessionTTL:    getEnvDuration("USER_SESSION_TTL", 7*24*time.Hour),
		OTPTTL:            getEnvDuration("OTP_TTL", 10*time.Minute),

		GoogleClientID:   getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		GooglePlacesURL:  getEnv("GOOGLE_PLACES_URL", "https://maps.googleapis.com/maps/api/place/autocomplete/json"),
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the storefront reads from the environment
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	ClientURL   string
	CORSOrigins []string
	Storage     string
	UploadDir   string

	MongoDBConfig MongoDBConfig
	JWTConfig     JWTConfig
	EmailConfig   EmailConfig
	GoogleConfig  GoogleConfig

	AdminSecret string
	AgentSecret string

	SecureCookies   bool
	RateLimit       int
	RateBurst       int
	CleanupInterval time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type EmailConfig struct {
	Provider string
	Sender   string
	APIKey   string
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// A missing .env is fine, deployments inject variables directly
	_ = godotenv.Load()

	conf := Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ClientURL:   strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:4173,http://localhost:5173")),
		Storage:     getEnv("STORAGE", "mongo"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		MongoDBConfig: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "ecommerce"),
		},
		JWTConfig: JWTConfig{
			Secret:             os.Getenv("JWT_SECRET"),
			AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
		},
		EmailConfig: EmailConfig{
			Provider: getEnv("EMAIL_PROVIDER", "log"),
			Sender:   getEnv("EMAIL_SENDER", "E-Commerce App <website@resend.dev>"),
			APIKey:   os.Getenv("EMAIL_API_KEY"),
			SMTPHost: os.Getenv("SMTP_HOST"),
			SMTPPort: getInt("SMTP_PORT", 587),
			SMTPUser: os.Getenv("SMTP_USERNAME"),
			SMTPPass: os.Getenv("SMTP_PASSWORD"),
		},
		GoogleConfig: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		AdminSecret:     os.Getenv("ADMIN_SECRET_KEY"),
		AgentSecret:     os.Getenv("AGENT_SECRET_KEY"),
		SecureCookies:   getBool("SECURE_COOKIES", false),
		RateLimit:       getInt("RATE_LIMIT_PER_SECOND", 5),
		RateBurst:       getInt("RATE_LIMIT_BURST", 10),
		CleanupInterval: getDuration("CLEANUP_INTERVAL", 15*time.Minute),
	}

	if conf.JWTConfig.Secret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment variables")
	}
	if conf.Environment == "production" {
		conf.SecureCookies = true
	}

	return &conf, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

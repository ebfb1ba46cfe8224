package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

// Enabled reports whether enough settings are present to mirror uploads to R2.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type Config struct {
	DB_URL       string
	Port         string
	JWTSecret    string
	TokenTTL     time.Duration // zero means tokens never expire
	BcryptCost   int
	Environment  string
	ClientOrigin string
	UploadDir    string
	DefaultCover string
	MaxUploadMB  int64
	LogDir       string
	LogLevel     string
	CorsConfig   cors.Options
	R2           R2Config
}

func (c Config) IsProd() bool {
	return c.Environment == "production"
}

// Load reads the env file (ENV_FILE or .env) and builds the process config.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	cfg := Config{
		DB_URL:       getEnv("DB_URL", ""),
		Port:         getEnv("PORT", "4000"),
		JWTSecret:    getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		TokenTTL:     getDuration("TOKEN_TTL", 0),
		BcryptCost:   getInt("BCRYPT_COST", 10),
		Environment:  getEnv("ENV", "development"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		DefaultCover: getEnv("DEFAULT_COVER", "uploads/default/default.jpg"),
		MaxUploadMB:  int64(getInt("MAX_UPLOAD_MB", 10)),
		LogDir:       getEnv("LOG_DIR", "logs"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
		},
	}
	cfg.CorsConfig = CorsConfig(cfg.ClientOrigin)
	return cfg
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

// CorsConfig allows a single browser origin with credentials so the token cookie is sent.
func CorsConfig(origin string) cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration
	PromptsFile  string
	Breaker      BreakerConfig

	LibraryStore  string
	LocalStoreDir string
	DatabaseURL   string
	AWSRegion     string
	S3Bucket      string
	S3Prefix      string
	MinIO         MinIOConfig

	SessionCacheSize  int
	MaxUploadBytes    int64
	AnalyzeRatePerMin float64
	AnalyzeBurst      int
}

// BreakerConfig tunes the circuit breaker in front of the generative endpoint.
type BreakerConfig struct {
	FailureRatio float64
	MinRequests  uint32
	Interval     time.Duration
	OpenTimeout  time.Duration
}

// MinIOConfig addresses an S3-compatible MinIO deployment.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Existing
	// variables are never overridden.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		LLMProvider:  normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		GeminiAPIKey: firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   time.Duration(getInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		PromptsFile:  getEnv("PROMPTS_FILE", ""),
		Breaker: BreakerConfig{
			FailureRatio: getFloat("BREAKER_FAILURE_RATIO", 0.6),
			MinRequests:  uint32(getInt("BREAKER_MIN_REQUESTS", 5)),
			Interval:     time.Duration(getInt("BREAKER_INTERVAL_SECONDS", 60)) * time.Second,
			OpenTimeout:  time.Duration(getInt("BREAKER_OPEN_SECONDS", 30)) * time.Second,
		},

		LibraryStore:  normalizeStoreType(getEnv("LIBRARY_STORE", "local")),
		LocalStoreDir: getEnv("LOCAL_STORE_DIR", "./data"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AWSRegion:     getEnv("AWS_REGION", ""),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Prefix:      getEnv("S3_PREFIX", ""),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "tejai-library"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},

		SessionCacheSize:  getInt("SESSION_CACHE_SIZE", 512),
		MaxUploadBytes:    int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),
		AnalyzeRatePerMin: getFloat("ANALYZE_RATE_PER_MIN", 12),
		AnalyzeBurst:      getInt("ANALYZE_BURST", 4),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	default:
		return "none"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory", "mem":
		return "memory"
	case "postgres", "pg":
		return "postgres"
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}

// IsDevLike reports whether env tolerates degraded fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	TemplatesDir string
	StaticDir    string

	// Drafting gateway
	GeminiAPIKey string
	GeminiModel  string
	DraftTimeout time.Duration
	DraftRPS     float64
	DraftBurst   int

	SessionTTL time.Duration

	// Admin area is open when AdminPassword is empty.
	AdminEmail    string
	AdminPassword string
}

// AdminAuth reports whether the admin area requires a login.
func (c Config) AdminAuth() bool { return c.AdminPassword != "" }

func Load() Config {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	cfg := Config{
		Port:          env("PORT", "8080"),
		DBDSN:         env("DB_DSN", ":memory:"),
		LogFile:       os.Getenv("LOG_FILE"),
		TemplatesDir:  env("TEMPLATES_DIR", "./web/templates"),
		StaticDir:     env("STATIC_DIR", "./web/static"),
		GeminiAPIKey:  apiKey,
		GeminiModel:   env("GEMINI_MODEL", "gemini-2.5-flash"),
		DraftTimeout:  envDuration("DRAFT_TIMEOUT", 30*time.Second),
		DraftRPS:      envFloat("DRAFT_RPS", 0.5),
		DraftBurst:    envInt("DRAFT_BURST", 2),
		SessionTTL:    envDuration("SESSION_TTL", 2*time.Hour),
		AdminEmail:    env("ADMIN_EMAIL", "admin@porcelanhistorie.cz"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TEMPLATES_DIR=%s GEMINI_MODEL=%s GEMINI_API_KEY=%s ADMIN_AUTH=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TemplatesDir, cfg.GeminiModel, setOrUnset(cfg.GeminiAPIKey), cfg.AdminAuth())
	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return d
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("[config] ignoring %s=%q", key, v)
		return def
	}
	return f
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring %s=%q", key, v)
		return def
	}
	return n
}

func setOrUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return "set"
}

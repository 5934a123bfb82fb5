package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	InputPath  string
	OutputPath string

	TargetDomain string
	SearchURL    string

	DatabaseURL string
	RedisURL    string
	MetricsPort string

	MaxConcurrent  int
	RateDelay      time.Duration
	RetryCount     int
	InitialTimeout time.Duration
	MaxTimeout     time.Duration
	BackoffFactor  float64
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		InputPath:      getEnv("SCRAPER_INPUT", "Other.xlsx"),
		OutputPath:     getEnv("SCRAPER_OUTPUT", "dogtasCom.xlsx"),
		TargetDomain:   getEnv("TARGET_DOMAIN", "dogtas.com"),
		SearchURL:      getEnv("SEARCH_URL", "https://www.google.com/search"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		MaxConcurrent:  getInt("SCRAPER_MAX_CONCURRENT", 2),
		RateDelay:      getDuration("SCRAPER_RATE_DELAY", 2*time.Second),
		RetryCount:     getInt("SCRAPER_RETRY_COUNT", 3),
		InitialTimeout: getDuration("SCRAPER_INITIAL_TIMEOUT", 20*time.Second),
		MaxTimeout:     getDuration("SCRAPER_MAX_TIMEOUT", 90*time.Second),
		BackoffFactor:  getFloat("SCRAPER_BACKOFF_FACTOR", 2),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			return t
		}
	}
	return d
}

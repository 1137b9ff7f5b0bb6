package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// SimulateLatency turns the artificial delays on or off
	SimulateLatency bool
	LoadDelay       time.Duration // loading the built-in sample
	UploadDelay     time.Duration // after a batch passes validation
	IndexDelay      time.Duration // per record during an indexing pass
	AnswerDelay     time.Duration // before an answer is returned

	SampleEmailsFile string // optional JSON batch replacing the built-in sample
	MaxUploadBytes   int64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		SimulateLatency:  getBool("SIMULATE_LATENCY", true),
		LoadDelay:        getDuration("LOAD_DELAY", 2*time.Second),
		UploadDelay:      getDuration("UPLOAD_DELAY", 1500*time.Millisecond),
		IndexDelay:       getDuration("INDEX_DELAY", 800*time.Millisecond),
		AnswerDelay:      getDuration("ANSWER_DELAY", 2*time.Second),
		SampleEmailsFile: getEnv("SAMPLE_EMAILS_FILE", ""),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", 10<<20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by LIFO_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("LIFO_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LLMProvider returns the configured completion provider.
// Defaults to "openai" if not set. Valid values: openai, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// ChatModel returns the completion model used for both the primary
// answer and insight extraction.
func ChatModel() string {
	m := os.Getenv("CHAT_MODEL")
	if m == "" {
		return "gpt-4o-mini"
	}
	return m
}

// FirebaseProjectID addresses the Firestore project holding profiles
// and conversation logs. Empty disables the profile store entirely.
func FirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

// FirebaseAppID namespaces the per-user sub-collections
// (artifacts/{appID}/users/{userID}/...). Empty disables
// personalization and insight extraction without failing the chat flow.
func FirebaseAppID() string {
	return os.Getenv("FIREBASE_APP_ID")
}

// StorageBackend returns the profile/conversation storage backend.
// Defaults to "firestore" if not set. Valid values: firestore, memory
func StorageBackend() string {
	b := os.Getenv("STORAGE_BACKEND")
	if b == "" {
		return "firestore"
	}
	return b
}

// SummaryOfferThreshold is the turn count at or above which an
// interview answer gets the summary-offer suffix appended.
// Defaults to 3 if not set.
func SummaryOfferThreshold() int {
	n, err := strconv.Atoi(os.Getenv("SUMMARY_OFFER_THRESHOLD"))
	if err != nil || n <= 0 {
		return 3
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

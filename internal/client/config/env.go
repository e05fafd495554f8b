package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "ACCESSDOC_"

// parseEnv loads dotenvFile (if it exists) into the process environment
// without overriding variables that are already set, then overlays the
// ACCESSDOC_* variables onto cfg. Malformed numbers are ignored.
func parseEnv(cfg *Config, dotenvFile string) {
	if dotenvFile != "" {
		if _, err := os.Stat(dotenvFile); err == nil {
			_ = godotenv.Load(dotenvFile)
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "API_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envPrefix + "DB"); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "SPEECH_COMMAND"); ok {
		cfg.SpeechCommand = v
	}
	if v, ok := os.LookupEnv(envPrefix + "STATUS_INTERVAL"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StatusCheckInterval = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "TIMEOUT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
}

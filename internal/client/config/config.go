package config

import "time"

// Config holds runtime settings for the accessdoc client.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	StatusCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
	SpeechCommand       string
}

// LoadDefaults populates c with defaults matching a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DatabasePath = "accessdoc.db"
	c.StatusCheckInterval = 30 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.SpeechCommand = ""
}

// LoadConfig builds a Config from defaults, environment, JSON and flags,
// in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

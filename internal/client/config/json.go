package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/accessdoc/internal/flagx"
	"github.com/dmitrijs2005/accessdoc/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer-free fields
// with zero values are treated as "not set" and leave cfg untouched.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	DatabasePath        string          `json:"database_path"`
	StatusCheckInterval *timex.Duration `json:"status_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            string          `json:"log_level"`
	SpeechCommand       string          `json:"speech_command"`
}

// parseJson overlays cfg with the file named by -c/-config or
// ACCESSDOC_CONFIG. It panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(envPrefix + "CONFIG")
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.StatusCheckInterval != nil {
		cfg.StatusCheckInterval = jc.StatusCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.SpeechCommand != "" {
		cfg.SpeechCommand = jc.SpeechCommand
	}
}

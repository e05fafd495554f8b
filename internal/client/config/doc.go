// Package config loads runtime configuration for the accessdoc client.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (".env" in the working directory) and ACCESSDOC_*
//     environment variables.
//  3. Optional JSON file selected with -c / -config (or ACCESSDOC_CONFIG).
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the document-processing API
//	-d string   path of the local SQLite database
//	-i int      API status check interval (seconds, 0 disables)
//	-t int      per-request timeout (seconds, 0 means none)
//	-l string   log level (debug, info, warn, error)
//	-s string   speech engine binary (espeak-ng, espeak, ...)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "database_path": "accessdoc.db",
//	  "status_check_interval": "30s",
//	  "request_timeout": "0s",
//	  "log_level": "info",
//	  "speech_command": ""
//	}
package config

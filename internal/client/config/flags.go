package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/accessdoc/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags listed
// here are looked at; anything else in os.Args is ignored. It panics on a
// malformed value.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t", "-l", "-s"})

	fs := flag.NewFlagSet("accessdoc", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the document API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.SpeechCommand, "s", cfg.SpeechCommand, "speech engine binary")
	interval := fs.Int("i", int(cfg.StatusCheckInterval.Seconds()), "status check interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StatusCheckInterval = time.Duration(*interval) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

package config

import (
	"github.com/lambda-feedback/offload/offload"
	"github.com/lambda-feedback/offload/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Offload is the offload host configuration
	Offload offload.Config `conf:"offload"`
}

// DefaultConfig holds the defaults for all config keys.
var DefaultConfig = mergeDefaults(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	},
	conf.MergeDefaults("offload", offload.DefaultConfig),
)

// CliMap maps root flag names to nested config keys.
var CliMap = map[string]string{
	"offload":           "offload.enabled",
	"max-streams":       "offload.max_streams",
	"acquire-timeout":   "offload.acquire_timeout",
	"clock-interval":    "offload.clock.interval",
	"clock-layout":      "offload.clock.layout",
	"redis-server":      "offload.redis.server",
	"redis-buffer-size": "offload.redis.buffer_size",
	"redis-route":       "offload.redis.route",
}

func mergeDefaults(maps ...conf.DefaultConfig) conf.DefaultConfig {
	return conf.MergeDefaults("", maps...)
}

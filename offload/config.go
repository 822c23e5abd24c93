package offload

import (
	"time"

	"github.com/lambda-feedback/offload/util/conf"
)

type Config struct {
	// Enabled allows handing requests to streaming engines. Hosts that
	// buffer responses must run with offloading disabled.
	Enabled bool `conf:"enabled"`

	// MaxStreams is the maximum number of concurrently offloaded streams
	MaxStreams int `conf:"max_streams"`

	// AcquireTimeout is how long a request waits for a free stream slot
	AcquireTimeout time.Duration `conf:"acquire_timeout"`

	// Clock is the configuration of the clock engine
	Clock ClockConfig `conf:"clock"`

	// Redis is the configuration of the redis pub/sub engine
	Redis RedisConfig `conf:"redis"`
}

type ClockConfig struct {
	// Interval is the time between two clock events
	Interval time.Duration `conf:"interval"`

	// Layout is the time layout of clock events
	Layout string `conf:"layout"`
}

type RedisConfig struct {
	// Server is the default redis address
	Server string `conf:"server"`

	// BufferSize is the number of messages buffered per subscription
	BufferSize int `conf:"buffer_size"`

	// Route is an optional http route pattern with a {channel} wildcard,
	// which subscribes the client to the matched channel.
	Route string `conf:"route"`
}

var DefaultConfig = conf.DefaultConfig{
	"enabled":           true,
	"max_streams":       1024,
	"acquire_timeout":   "100ms",
	"clock.interval":    "1s",
	"clock.layout":      time.RFC3339,
	"redis.server":      "127.0.0.1:6379",
	"redis.buffer_size": 100,
	"redis.route":       "",
}

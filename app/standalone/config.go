package standalone

import (
	"github.com/lambda-feedback/offload/internal/server"
	"github.com/lambda-feedback/offload/offload"
)

type Config struct {
	// HttpConfig represents the configuration for the HTTP server.
	HttpConfig server.HttpConfig `conf:",squash"`

	// Offload is the offload host configuration.
	Offload offload.Config `conf:"offload"`
}

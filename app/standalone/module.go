package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/offload/handler"
	"github.com/lambda-feedback/offload/internal/server"
	"github.com/lambda-feedback/offload/offload"
	"github.com/lambda-feedback/offload/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide offload host
		offload.Module(),
		// provide handlers
		handler.Module(config.Offload),
		// provide server
		server.Module(config.HttpConfig),
	)
}

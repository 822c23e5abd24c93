package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/offload/handler"
	"github.com/lambda-feedback/offload/offload"
	"github.com/lambda-feedback/offload/util/logging"
)

func Module(config Config, offloadConfig offload.Config) fx.Option {
	// lambda responses are buffered, streams could never complete
	offloadConfig.Enabled = false

	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// disable offloading for the host in this module
		fx.Decorate(disableOffload),
		// provide offload host
		offload.Module(),
		// provide handlers
		handler.Module(offloadConfig),
		// provide handler
		fx.Provide(NewLifecycleHandler),
		// invoke handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}

func disableOffload(config offload.Config) offload.Config {
	config.Enabled = false
	return config
}

package offload

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/offload/util/logging"
)

// Module provides the offload host and its engines.
func Module() fx.Option {
	return fx.Module(
		"offload",
		// rename logger for module
		logging.DecorateLogger("offload"),
		// provide engines
		fx.Provide(ProvideClockEngine),
		fx.Provide(NewLifecycleRedisEngine),
		// provide engine registry
		fx.Provide(NewEngineRegistry),
		// provide host
		fx.Provide(NewLifecycleHost),
	)
}

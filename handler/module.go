package handler

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/offload/offload"
)

func Module(config offload.Config) fx.Option {
	options := []fx.Option{
		// use the offload host as offloader
		fx.Provide(func(host *offload.Host) Offloader { return host }),
		// provide handlers
		fx.Provide(NewOffloadHandler),
		// provide routes
		fx.Provide(NewRootRoute),
	}

	if config.Redis.Route != "" {
		options = append(options,
			fx.Provide(NewSubscribeHandler),
			fx.Provide(NewSubscribeRoute(config.Redis.Route)),
		)
	}

	return fx.Module("handler", options...)
}

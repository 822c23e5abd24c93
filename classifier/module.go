package classifier

import "go.uber.org/fx"

// Module provides the request classifier.
func Module() fx.Option {
	return fx.Module(
		"classifier",

		// provide classifier
		fx.Provide(New),
	)
}

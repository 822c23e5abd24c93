package cmd

import (
	"time"

	"github.com/lambda-feedback/offload/app"
	"github.com/lambda-feedback/offload/app/standalone"
	"github.com/lambda-feedback/offload/config"
	"github.com/lambda-feedback/offload/internal/server"
	"github.com/lambda-feedback/offload/util/conf"
	"github.com/lambda-feedback/offload/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultReadHeaderTimeout = 10 * time.Second

var (
	serveCmdDescription = `The serve command starts a http server and classifies every
	incoming request. Plain requests are answered directly, marked
	requests are handed to the matching stream engine.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and listen for requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.DurationFlag{
				Name:     "read-header-timeout",
				Usage:    "The time allowed to read request headers.",
				Value:    defaultReadHeaderTimeout,
				Category: "http",
				EnvVars:  []string{"HTTP_READ_HEADER_TIMEOUT"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	appConfig, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg := standalone.Config{
		HttpConfig: server.HttpConfig{
			Host:              ctx.String("host"),
			Port:              ctx.Int("port"),
			H2c:               ctx.Bool("h2c"),
			ReadHeaderTimeout: ctx.Duration("read-header-timeout"),
		},
		Offload: appConfig.Offload,
	}

	log.Info("starting http server",
		zap.String("host", cfg.HttpConfig.Host),
		zap.Int("port", cfg.HttpConfig.Port),
		zap.Bool("offload", cfg.Offload.Enabled),
	)

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}

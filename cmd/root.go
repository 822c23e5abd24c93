package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lambda-feedback/offload/config"
	"github.com/lambda-feedback/offload/internal/shell"
	"github.com/lambda-feedback/offload/util/conf"
	"github.com/lambda-feedback/offload/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "offload"
	appUsage = `A request classifier that answers plain requests directly and
hands selected requests to long-lived event stream engines.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Args:            true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a json or .env file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
			// offload flags
			&cli.BoolFlag{
				Name:     "offload",
				Usage:    "hand marked requests to stream engines.",
				Value:    true,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_ENABLED"},
			},
			&cli.IntFlag{
				Name:     "max-streams",
				Usage:    "the maximum number of concurrent streams.",
				Value:    1024,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_MAX_STREAMS"},
			},
			&cli.DurationFlag{
				Name:     "acquire-timeout",
				Usage:    "how long a request waits for a free stream slot.",
				Value:    100 * time.Millisecond,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_ACQUIRE_TIMEOUT"},
			},
			&cli.DurationFlag{
				Name:     "clock-interval",
				Usage:    "the interval between two clock events.",
				Value:    time.Second,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_CLOCK_INTERVAL"},
			},
			&cli.StringFlag{
				Name:     "clock-layout",
				Usage:    "the time layout of clock events.",
				Value:    time.RFC3339,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_CLOCK_LAYOUT"},
			},
			&cli.StringFlag{
				Name:     "redis-server",
				Usage:    "the default redis server of the sse-redis engine.",
				Value:    "127.0.0.1:6379",
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_REDIS_SERVER"},
			},
			&cli.IntFlag{
				Name:     "redis-buffer-size",
				Usage:    "the number of messages buffered per redis subscription.",
				Value:    100,
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_REDIS_BUFFER_SIZE"},
			},
			&cli.StringFlag{
				Name:     "redis-route",
				Usage:    "serve redis subscriptions on this route, e.g. /events/{channel}.",
				Category: "offload",
				EnvVars:  []string{"OFFLOAD_REDIS_ROUTE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config from defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli:      ctx,
				CliMap:   config.CliMap,
				Defaults: config.DefaultConfig,
				FileName: ctx.Path("config"),
				Log:      log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code
	if exitErr, ok := shell.AsExitError(err); ok {
		return exitErr.ExitCode
	}

	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	// otherwise, exit with exit code 1
	return 1
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lambda-feedback/offload/classifier"
	"github.com/lambda-feedback/offload/config"
	"github.com/lambda-feedback/offload/offload"
	"github.com/lambda-feedback/offload/util/conf"
	"github.com/lambda-feedback/offload/util/logging"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	routesCmd = &cli.Command{
		Name:   "routes",
		Usage:  "Print the dispatch table and the stream engines.",
		Action: routesAction,
	}
)

func routesAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	return printRoutes(ctx.App.Writer, cfg.Offload, log)
}

func printRoutes(w io.Writer, cfg offload.Config, log *zap.Logger) error {
	routes := tablewriter.NewWriter(w)
	routes.SetHeader([]string{"Path", "Offload", "Status", "Headers", "Body"})
	routes.SetAutoWrapText(false)

	for _, info := range classifier.Table() {
		path := info.Path
		if path == "" {
			path = "*"
		}

		routes.Append([]string{
			path,
			info.Result.Offload,
			formatStatus(info.Result.StatusCode),
			formatHeaders(info.Result.Headers),
			formatBody(info.Result.Body),
		})
	}

	routes.Render()

	clock := offload.NewClockEngine(cfg.Clock)
	redis := offload.NewRedisEngine(cfg.Redis, log)
	defer redis.Close()

	registry, err := offload.NewRegistry(clock, redis)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)

	engines := tablewriter.NewWriter(w)
	engines.SetHeader([]string{"Engine", "Enabled"})

	for _, name := range registry.Names() {
		engines.Append([]string{name, strconv.FormatBool(cfg.Enabled)})
	}

	engines.Render()

	return nil
}

func formatStatus(code int) string {
	if code == 0 {
		return "-"
	}

	return strconv.Itoa(code)
}

func formatHeaders(headers []classifier.Header) string {
	parts := make([]string, 0, len(headers))
	for _, h := range headers {
		parts = append(parts, h.Name+": "+h.Value)
	}

	return strings.Join(parts, ", ")
}

func formatBody(body [][]byte) string {
	var sb strings.Builder
	for _, chunk := range body {
		sb.Write(chunk)
	}

	return sb.String()
}

func init() {
	rootApp.Commands = append(rootApp.Commands, routesCmd)
}

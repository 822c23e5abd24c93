package shell_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/offload/internal/shell"
)

func TestExitError(t *testing.T) {
	err := fmt.Errorf("run: %w", shell.NewExitError(3))

	exitErr, ok := shell.AsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.True(t, shell.IsExitError(err))
	assert.Equal(t, "shell exited with 3", exitErr.Error())
}

func TestExitError_NotExitError(t *testing.T) {
	assert.False(t, shell.IsExitError(nil))
	assert.False(t, shell.IsExitError(assert.AnError))
}

func TestShell_Run(t *testing.T) {
	var stopped bool
	var appCtx context.Context

	s := shell.New(zaptest.NewLogger(t))

	err := s.Run(context.Background(),
		fx.Invoke(func(ctx context.Context, lc fx.Lifecycle, shutdowner fx.Shutdowner) {
			appCtx = ctx
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return shutdowner.Shutdown(fx.ExitCode(4))
				},
				OnStop: func(context.Context) error {
					stopped = true
					return nil
				},
			})
		}),
	)

	exitErr, ok := shell.AsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 4, exitErr.ExitCode)
	assert.True(t, stopped)
	assert.ErrorIs(t, appCtx.Err(), context.Canceled)
}

func TestShell_Run_StartFails(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	err := s.Run(context.Background(),
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return assert.AnError
				},
			})
		}),
	)

	exitErr, ok := shell.AsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode)
}

func TestShell_Run_InvalidGraph(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	err := s.Run(context.Background(), fx.Invoke(func(*testing.T) {}))

	exitErr, ok := shell.AsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode)
}

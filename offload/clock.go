package offload

import (
	"context"
	"fmt"
	"time"

	"github.com/lambda-feedback/offload/classifier"
)

// ClockEngine streams the current time.
type ClockEngine struct {
	config ClockConfig
	now    func() time.Time
}

var _ Engine = (*ClockEngine)(nil)

func NewClockEngine(config ClockConfig) *ClockEngine {
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	if config.Layout == "" {
		config.Layout = time.RFC3339
	}

	return &ClockEngine{
		config: config,
		now:    time.Now,
	}
}

func ProvideClockEngine(config Config) EngineResult {
	return AsEngine(NewClockEngine(config.Clock))
}

func (e *ClockEngine) Name() string {
	return classifier.ClockEngine
}

// Open accepts an optional interval, e.g. `interval=5s` or a bare `5s`.
func (e *ClockEngine) Open(_ context.Context, raw string) (Session, error) {
	args, err := ParseArgs(raw, "interval")
	if err != nil {
		return nil, err
	}

	interval := e.config.Interval
	if value, ok := args["interval"]; ok {
		interval, err = time.ParseDuration(value)
		if err != nil || interval <= 0 {
			return nil, fmt.Errorf("%w: interval %q", ErrInvalidArgs, value)
		}
	}

	return &clockSession{
		interval: interval,
		layout:   e.config.Layout,
		now:      e.now,
	}, nil
}

type clockSession struct {
	interval time.Duration
	layout   string
	now      func() time.Time
}

func (s *clockSession) Run(ctx context.Context, w *EventWriter) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := w.Send([]byte(s.now().Format(s.layout))); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *clockSession) Close() error {
	return nil
}

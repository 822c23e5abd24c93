package offload

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/offload/classifier"
)

type HostParams struct {
	fx.In

	// Context ends all running streams when it is done.
	Context context.Context

	Config   Config
	Registry *Registry
	Log      *zap.Logger
}

// Host hands offloaded requests to streaming engines.
type Host struct {
	ctx      context.Context
	enabled  bool
	registry *Registry
	pool     *streamPool
	log      *zap.Logger
}

func NewHost(params HostParams) (*Host, error) {
	pool, err := newStreamPool(params.Config.MaxStreams, params.Config.AcquireTimeout)
	if err != nil {
		return nil, err
	}

	return &Host{
		ctx:      params.Context,
		enabled:  params.Config.Enabled,
		registry: params.Registry,
		pool:     pool,
		log:      params.Log.Named("host"),
	}, nil
}

func NewLifecycleHost(params HostParams, lc fx.Lifecycle) (*Host, error) {
	host, err := NewHost(params)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			host.Shutdown()
			return nil
		},
	})

	return host, nil
}

// Offload serves an offloaded result. Staged headers are sent as they
// are, otherwise the connection is announced as an event stream. The call
// blocks until the stream ends.
func (h *Host) Offload(w http.ResponseWriter, r *http.Request, res classifier.Result) error {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("offload", res.Offload),
	)

	if !h.enabled {
		log.Warn("unable to offload request, offloading is disabled")
		if res.Staged() {
			if err := res.Write(w); err != nil {
				log.Debug("failed to write staged response", zap.Error(err))
			}
		} else {
			writeError(w, ErrOffloadDisabled)
		}
		return ErrOffloadDisabled
	}

	marker, err := ParseMarker(res.Offload)
	if err != nil {
		log.Debug("invalid marker", zap.Error(err))
		writeError(w, err)
		return err
	}

	engine, err := h.registry.Lookup(marker.Engine)
	if err != nil {
		log.Error("unknown engine", zap.Error(err))
		writeError(w, err)
		return err
	}

	slot, err := h.pool.acquire(r.Context())
	if err != nil {
		log.Warn("failed to acquire stream slot", zap.Error(err))
		writeError(w, err)
		return err
	}
	defer slot.Release()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// end the stream when the host shuts down
	stop := context.AfterFunc(h.ctx, cancel)
	defer stop()

	session, err := engine.Open(ctx, marker.Args)
	if err != nil {
		log.Debug("failed to open stream", zap.Error(err))
		writeError(w, err)
		return err
	}
	defer session.Close()

	if err := writeStreamHeaders(w, res.Response); err != nil {
		log.Debug("failed to write headers", zap.Error(err))
		return err
	}

	events := newResponseEventWriter(w)
	if err := events.Flush(); err != nil {
		log.Debug("failed to flush headers", zap.Error(err))
		return err
	}

	log = log.With(
		zap.String("engine", engine.Name()),
		zap.String("stream_id", uuid.NewString()),
		zap.Int64("slot", slot.Value().id),
	)

	log.Debug("stream opened")
	start := time.Now()

	err = session.Run(ctx, events)

	log.Info("stream closed",
		zap.Duration("duration", time.Since(start)),
		zap.String("bytes", humanize.Bytes(uint64(events.Written()))),
	)

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Debug("stream failed", zap.Error(err))
		return err
	}

	return nil
}

// Engines returns the names of the registered engines.
func (h *Host) Engines() []string {
	return h.registry.Names()
}

// ActiveStreams returns the number of running streams.
func (h *Host) ActiveStreams() int {
	return int(h.pool.active())
}

// Shutdown waits for running streams to end and closes the host.
func (h *Host) Shutdown() {
	h.log.Debug("shutting down", zap.Int("active_streams", h.ActiveStreams()))
	h.pool.close()
}

// writeStreamHeaders writes the staged status and headers, or the event
// stream defaults if nothing was staged.
func writeStreamHeaders(w http.ResponseWriter, staged classifier.Response) error {
	if !staged.Staged() {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
	}

	// offloaded responses carry no body, the engine writes it
	staged.Body = nil

	return staged.Write(w)
}

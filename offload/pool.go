package offload

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/puddle/v2"
)

// streamSlot is a permit for one offloaded stream.
type streamSlot struct {
	id int64
}

// streamPool bounds the number of concurrently offloaded streams.
type streamPool struct {
	pool    *puddle.Pool[*streamSlot]
	timeout time.Duration
}

func newStreamPool(maxStreams int, timeout time.Duration) (*streamPool, error) {
	if maxStreams <= 0 {
		return nil, fmt.Errorf("max streams must be positive, got %d", maxStreams)
	}

	var seq atomic.Int64

	pool, err := puddle.NewPool(&puddle.Config[*streamSlot]{
		Constructor: func(context.Context) (*streamSlot, error) {
			return &streamSlot{id: seq.Add(1)}, nil
		},
		Destructor: func(*streamSlot) {},
		MaxSize:    int32(maxStreams),
	})
	if err != nil {
		return nil, err
	}

	return &streamPool{
		pool:    pool,
		timeout: timeout,
	}, nil
}

// acquire waits up to the configured timeout for a free slot.
func (p *streamPool) acquire(ctx context.Context) (*puddle.Resource[*streamSlot], error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	slot, err := p.pool.Acquire(ctx)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, puddle.ErrClosedPool) {
		return nil, ErrStreamsExhausted
	}
	if err != nil {
		return nil, err
	}

	return slot, nil
}

// active returns the number of slots in use.
func (p *streamPool) active() int32 {
	return p.pool.Stat().AcquiredResources()
}

// close waits for all slots to be released and closes the pool.
func (p *streamPool) close() {
	p.pool.Close()
}

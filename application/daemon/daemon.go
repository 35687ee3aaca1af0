// Package daemon is the user-space policy daemon (spec.md §4.4): it
// owns the shared maps, consumes perf-ring events, performs
// proof-of-work verification, and serves the control socket.
package daemon

import (
	"context"
	"io"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"firewall/domain/events"
)

// EventSource is anything that yields decoded classifier events, one
// at a time, blocking until the next is available. infrastructure/ebpf.EventReader
// implements it against the real perf ring.
type EventSource interface {
	Read() (events.Event, uint64, error)
}

// Daemon holds the single async mutex serializing all map access
// (spec.md §5: "coarse but sufficient because command frequency is
// low and the consumer holds the lock only for the duration of one
// event's map updates").
type Daemon struct {
	maps   Maps
	target float64

	mu sync.Mutex
}

// New builds a Daemon that applies commands and events against maps,
// verifying proof-of-work against target difficulty.
func New(maps Maps, target float64) *Daemon {
	return &Daemon{maps: maps, target: target}
}

// Run spawns the event consumer and the command listener as two
// concurrent tasks (spec.md §4.4) and blocks until either fails or ctx
// is cancelled. Cancellation closes the listener, which unblocks
// Accept with an error, and closes src when it implements io.Closer
// (as infrastructure/ebpf.EventReader does), which makes the event
// consumer's blocked Read return an error.
func (d *Daemon) Run(ctx context.Context, src EventSource, listener net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.consumeEvents(ctx, src)
	})

	g.Go(func() error {
		<-ctx.Done()
		if c, ok := src.(io.Closer); ok {
			_ = c.Close()
		}
		return listener.Close()
	})

	g.Go(func() error {
		return d.acceptCommands(ctx, listener)
	})

	return g.Wait()
}

// consumeEvents drains src indefinitely, applying the event consumer
// policy to each record (spec.md §4.4). It returns when src.Read
// errors, which happens when the perf reader is closed during
// shutdown.
func (d *Daemon) consumeEvents(ctx context.Context, src EventSource) error {
	for {
		ev, _, err := src.Read()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		d.handleEvent(ev)
	}
}

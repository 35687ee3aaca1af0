package shutdown

import (
	"context"
	"os"
	"sync"

	palSignal "firewall/infrastructure/PAL/signal"
)

// Handler subscribes to the platform's shutdown signals and cancels
// the application context at most once, on signal delivery. If ctx is
// cancelled by other means first, the watcher stops without calling
// cancel. There is no graceful drain (spec.md §5):
// once the context is cancelled the process is expected to exit.
type Handler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	provider palSignal.Provider
	notifier Notifier

	once sync.Once
}

// NewHandler builds a Handler. cancel is invoked at most once, when a
// shutdown signal arrives; it is not invoked when ctx is cancelled by
// some other means.
func NewHandler(ctx context.Context, cancel context.CancelFunc, provider palSignal.Provider, notifier Notifier) *Handler {
	return &Handler{ctx: ctx, cancel: cancel, provider: provider, notifier: notifier}
}

// Handle registers the signal subscription and starts the watcher
// goroutine. Calling Handle more than once is a no-op.
func (h *Handler) Handle() {
	h.once.Do(func() {
		c := make(chan os.Signal, 1)
		h.notifier.Notify(c, h.provider.ShutdownSignals()...)

		go func() {
			defer h.notifier.Stop(c)
			select {
			case <-c:
				h.cancel()
			case <-h.ctx.Done():
			}
		}()
	})
}

package shutdown

import (
	"os"
	"os/signal"
)

// Notifier abstracts os/signal so tests can substitute a mock without
// touching process-wide signal state.
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type osNotifier struct{}

// NewNotifier returns a Notifier backed by the real os/signal package.
func NewNotifier() Notifier { return osNotifier{} }

func (osNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (osNotifier) Stop(c chan<- os.Signal)                     { signal.Stop(c) }

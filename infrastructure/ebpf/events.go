package ebpf

import (
	"errors"
	"fmt"

	"github.com/cilium/ebpf/perf"

	"firewall/domain/events"
)

// EventReader drains the perf ring the classifier publishes to,
// decoding each per-CPU record into a domain/events.Event. It never
// blocks the classifier: overflowing the ring drops the oldest
// record and the reader surfaces the drop count via LostSamples.
type EventReader struct {
	rd *perf.Reader
}

// NewEventReader opens a perf reader over the classifier's events
// map.
func NewEventReader(l *Loaded) (*EventReader, error) {
	rd, err := perf.NewReader(l.objs.Events, 4096)
	if err != nil {
		return nil, fmt.Errorf("ebpf: open perf reader: %w", err)
	}
	return &EventReader{rd: rd}, nil
}

// Close releases the perf ring.
func (r *EventReader) Close() error { return r.rd.Close() }

// Read blocks until the next record is available, decodes it, and
// returns it. lost reports how many records were dropped before this
// one due to ring overflow (spec.md §4.2); it is non-zero only when
// the consumer fell behind.
func (r *EventReader) Read() (ev events.Event, lost uint64, err error) {
	for {
		record, err := r.rd.Read()
		if err != nil {
			if errors.Is(err, perf.ErrClosed) {
				return events.Event{}, 0, err
			}
			return events.Event{}, 0, fmt.Errorf("ebpf: read perf record: %w", err)
		}
		if record.LostSamples > 0 {
			lost = record.LostSamples
		}
		if len(record.RawSample) == 0 {
			continue
		}
		ev, err := events.UnmarshalEvent(record.RawSample)
		if err != nil {
			return events.Event{}, lost, fmt.Errorf("ebpf: decode event record: %w", err)
		}
		return ev, lost, nil
	}
}

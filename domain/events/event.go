// Package events defines the kernel→user notification carried over the
// perf ring: a tagged union over an EndpointPair plus one of
// ReceivedPow, NotEnoughBytesForPow or BlockedReusingPow (spec.md §3,
// §6). The wire record is fixed-size so the C classifier and the Go
// daemon agree on layout bit-for-bit.
package events

import (
	"encoding/binary"
	"fmt"

	"firewall/domain/network"
)

// Kind discriminates the Event union. Values match the 4-byte
// little-endian discriminant spec.md §6 mandates for the kernel→user
// record (the original xdp_module/src/lib.rs PowBytes used the same
// little-endian convention for its own inner discriminant).
type Kind uint32

const (
	KindReceivedPow Kind = iota
	KindNotEnoughBytesForPow
	KindBlockedReusingPow
)

func (k Kind) String() string {
	switch k {
	case KindReceivedPow:
		return "ReceivedPow"
	case KindNotEnoughBytesForPow:
		return "NotEnoughBytesForPow"
	case KindBlockedReusingPow:
		return "BlockedReusingPow"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// recordSize is the fixed wire size: 12 bytes for the pair, 4 bytes for
// the discriminant, 60 bytes of payload (the largest variant,
// ReceivedPow's PoW stamp padded to 60, or the two 6-byte endpoints of
// BlockedReusingPow padded the same way).
const recordSize = 12 + 4 + 60

// Event is the kernel→user notification. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Event struct {
	Pair network.EndpointPair
	Kind Kind

	// PowStamp is valid when Kind == KindReceivedPow.
	PowStamp network.PowStamp

	// AlreadyConnected/TryConnect are valid when Kind == KindBlockedReusingPow.
	AlreadyConnected network.Endpoint
	TryConnect       network.Endpoint
}

// NewReceivedPow builds a ReceivedPow event for pair carrying stamp.
func NewReceivedPow(pair network.EndpointPair, stamp network.PowStamp) Event {
	return Event{Pair: pair, Kind: KindReceivedPow, PowStamp: stamp}
}

// NewNotEnoughBytesForPow builds a NotEnoughBytesForPow event for pair.
func NewNotEnoughBytesForPow(pair network.EndpointPair) Event {
	return Event{Pair: pair, Kind: KindNotEnoughBytesForPow}
}

// NewBlockedReusingPow builds a BlockedReusingPow event: a public key
// already bound to alreadyConnected was presented again from tryConnect.
func NewBlockedReusingPow(pair network.EndpointPair, alreadyConnected, tryConnect network.Endpoint) Event {
	return Event{
		Pair:             pair,
		Kind:             KindBlockedReusingPow,
		AlreadyConnected: alreadyConnected,
		TryConnect:       tryConnect,
	}
}

// MarshalBinary renders the event as the fixed-size record the
// classifier would enqueue on the perf ring.
func (e Event) MarshalBinary() []byte {
	buf := make([]byte, recordSize)
	copy(buf[0:12], e.Pair.MarshalBinary())
	binary.LittleEndian.PutUint32(buf[12:16], uint32(e.Kind))

	switch e.Kind {
	case KindReceivedPow:
		copy(buf[16:16+network.PowStampSize], e.PowStamp[:])
	case KindBlockedReusingPow:
		copy(buf[16:20], e.AlreadyConnected.IPv4[:])
		copy(buf[20:22], e.AlreadyConnected.Port[:])
		copy(buf[22:26], e.TryConnect.IPv4[:])
		copy(buf[26:28], e.TryConnect.Port[:])
	case KindNotEnoughBytesForPow:
		// no payload
	}
	return buf
}

// UnmarshalEvent parses a fixed-size record back into an Event.
func UnmarshalEvent(buf []byte) (Event, error) {
	if len(buf) != recordSize {
		return Event{}, fmt.Errorf("event: need %d bytes, got %d", recordSize, len(buf))
	}
	pair, err := network.EndpointPairFromBytes(buf[0:12])
	if err != nil {
		return Event{}, err
	}
	kind := Kind(binary.LittleEndian.Uint32(buf[12:16]))

	e := Event{Pair: pair, Kind: kind}
	switch kind {
	case KindReceivedPow:
		copy(e.PowStamp[:], buf[16:16+network.PowStampSize])
	case KindBlockedReusingPow:
		copy(e.AlreadyConnected.IPv4[:], buf[16:20])
		copy(e.AlreadyConnected.Port[:], buf[20:22])
		copy(e.TryConnect.IPv4[:], buf[22:26])
		copy(e.TryConnect.Port[:], buf[26:30])
	case KindNotEnoughBytesForPow:
		// no payload
	default:
		return Event{}, fmt.Errorf("event: unknown kind %d", kind)
	}
	return e, nil
}

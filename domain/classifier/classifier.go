// Package classifier is the pure-Go reference model of the per-packet
// decision the in-kernel XDP program makes (spec.md §4.1). The real
// classifier runs restricted-environment C loaded via
// infrastructure/ebpf and cannot be exercised by a Go test; this
// package implements the identical algorithm against the MapStore seam
// so spec.md §8's property tests (P4-P8) and end-to-end scenarios can
// run deterministically in-process.
package classifier

import (
	"firewall/domain/events"
	"firewall/domain/network"
)

// Verdict is the classifier's per-packet decision. Modelled on the
// filter.Response idiom (an iota enum of Drop/Accept) seen in
// tailscale's wgengine/filter package: a small closed enum, not a bool,
// so call sites read as a decision rather than a condition. Here the
// values are Pass (the zero value) and Drop.
type Verdict int

const (
	Pass Verdict = iota
	Drop
)

func (v Verdict) String() string {
	if v == Drop {
		return "DROP"
	}
	return "PASS"
}

// Classify runs the full per-packet algorithm against frame (a raw
// Ethernet frame) and maps. It returns the verdict and, when the
// algorithm produced one, the event that would be enqueued on the perf
// ring — Classify also pushes that event onto maps via PushEvent, so
// callers that only care about the verdict can ignore the return.
func Classify(frame []byte, maps MapStore) (Verdict, *events.Event) {
	h := parseHeader(frame)
	if !h.ok {
		return Pass, nil
	}

	pair := network.EndpointPair{
		Remote: network.Endpoint{IPv4: h.srcIP, Port: be16(h.srcPort)},
		Local:  network.Endpoint{IPv4: h.dstIP, Port: be16(h.dstPort)},
	}

	// Step 3: unconditional blacklist.
	if maps.BlacklistContains(pair.Remote.IPv4) {
		return Drop, nil
	}

	// Step 4: only traffic for the protected node's listening port.
	if !maps.NodeContains(portOf(pair.Local)) {
		return Pass, nil
	}

	// Step 5: only remotes the node declared intent toward.
	if !maps.PendingPeersContains(pair.Remote) {
		return Pass, nil
	}

	// Step 6: handshake hasn't started yet (pure ACK or similar).
	if h.payloadOff >= len(frame) {
		return Pass, nil
	}

	// Step 7: PoW already sampled for this flow.
	status := maps.StatusGet(pair)
	if status.Has(network.StatusPowSent) {
		return Pass, nil
	}

	// Step 8: mark sampled. A full status map is a silent, recoverable
	// failure (I5) — proceed as if it were set either way.
	maps.StatusSet(pair, status.Set(network.StatusPowSent))

	// Step 9: the handshake prefix must be fully present.
	available := len(frame) - h.payloadOff
	if available < network.HandshakePrefixSize {
		ev := events.NewNotEnoughBytesForPow(pair)
		maps.StatusSet(pair, status.Set(network.StatusPowSent).Set(network.StatusBlocked))
		maps.PushEvent(ev)
		return Drop, &ev
	}

	window := frame[h.payloadOff : h.payloadOff+network.HandshakePrefixSize]
	var pk network.PublicKey
	copy(pk[:], window[4:36])
	var stamp network.PowStamp
	copy(stamp[:], window[4:60])

	existing, found := maps.PeersGet(pk)
	switch {
	case !found:
		maps.PeersInsert(pk, pair.Remote)
		ev := events.NewReceivedPow(pair, stamp)
		maps.PushEvent(ev)
		return Pass, &ev
	case existing != pair.Remote:
		ev := events.NewBlockedReusingPow(pair, existing, pair.Remote)
		maps.StatusSet(pair, status.Set(network.StatusPowSent).Set(network.StatusBlocked))
		maps.PushEvent(ev)
		return Drop, &ev
	default:
		return Pass, nil
	}
}

func be16(v uint16) [2]byte {
	return [2]byte{byte(v >> 8), byte(v)}
}

func portOf(ep network.Endpoint) uint16 {
	return uint16(ep.Port[0])<<8 | uint16(ep.Port[1])
}

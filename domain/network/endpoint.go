// Package network defines the wire-level value types shared by the
// in-kernel classifier and the policy daemon: endpoints, connection
// status, and peer public keys. Every type here is a plain fixed-size
// value so it can be mirrored bit-for-bit by the restricted C program
// loaded into the kernel (see infrastructure/ebpf/classifier.c).
package network

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Endpoint is a 4-byte IPv4 address plus a 2-byte port, stored exactly
// as it appears on the wire (big-endian / network byte order). Two
// older classifier variants stored these little-endian; this rewrite
// standardizes on wire order per spec.md's recommendation and applies
// it uniformly on both sides.
type Endpoint struct {
	IPv4 [4]byte
	Port [2]byte
}

// EndpointFromAddrPort converts a parsed netip.AddrPort into wire order.
// Only IPv4 is supported; IPv6 is rejected (Non-goal).
func EndpointFromAddrPort(ap netip.AddrPort) (Endpoint, error) {
	addr := ap.Addr()
	if !addr.Is4() && !addr.Is4In6() {
		return Endpoint{}, fmt.Errorf("endpoint: ipv6 not supported: %s", ap)
	}
	var ep Endpoint
	ep.IPv4 = addr.As4()
	binary.BigEndian.PutUint16(ep.Port[:], ap.Port())
	return ep, nil
}

// AddrPort renders the endpoint as a human-readable netip.AddrPort.
func (e Endpoint) AddrPort() netip.AddrPort {
	addr := netip.AddrFrom4(e.IPv4)
	port := binary.BigEndian.Uint16(e.Port[:])
	return netip.AddrPortFrom(addr, port)
}

// Addr returns just the IPv4 address part.
func (e Endpoint) Addr() netip.Addr {
	return netip.AddrFrom4(e.IPv4)
}

func (e Endpoint) String() string {
	return e.AddrPort().String()
}

// EndpointPair is the per-connection key: local (the protected node's
// side) and remote (the peer's side), in that order. Field order
// matters: it must match the 12-byte on-wire record local(6)+remote(6)
// produced by the classifier (spec.md §6).
type EndpointPair struct {
	Local  Endpoint
	Remote Endpoint
}

// MarshalBinary lays the pair out as local(6 bytes) || remote(6 bytes).
func (p EndpointPair) MarshalBinary() []byte {
	buf := make([]byte, 12)
	copy(buf[0:4], p.Local.IPv4[:])
	copy(buf[4:6], p.Local.Port[:])
	copy(buf[6:10], p.Remote.IPv4[:])
	copy(buf[10:12], p.Remote.Port[:])
	return buf
}

// EndpointPairFromBytes is the inverse of MarshalBinary. buf must be
// exactly 12 bytes.
func EndpointPairFromBytes(buf []byte) (EndpointPair, error) {
	if len(buf) != 12 {
		return EndpointPair{}, fmt.Errorf("endpoint pair: need 12 bytes, got %d", len(buf))
	}
	var p EndpointPair
	copy(p.Local.IPv4[:], buf[0:4])
	copy(p.Local.Port[:], buf[4:6])
	copy(p.Remote.IPv4[:], buf[6:10])
	copy(p.Remote.Port[:], buf[10:12])
	return p, nil
}

// Package command defines the control-socket command union (spec.md
// §4.3): Block, Unblock, FilterLocalPort, FilterRemoteAddr and
// Disconnected. Wire encoding lives in infrastructure/codec; this
// package only holds the parsed, typed representation.
package command

import (
	"fmt"
	"net/netip"

	"firewall/domain/network"
)

// Tag is the single-byte wire discriminant, matching spec.md §4.3.
type Tag uint8

const (
	TagBlock           Tag = 0x01
	TagUnblock         Tag = 0x02
	TagFilterLocalPort Tag = 0x03
	TagFilterRemoteAddr Tag = 0x04
	TagDisconnected    Tag = 0x05
)

func (t Tag) String() string {
	switch t {
	case TagBlock:
		return "Block"
	case TagUnblock:
		return "Unblock"
	case TagFilterLocalPort:
		return "FilterLocalPort"
	case TagFilterRemoteAddr:
		return "FilterRemoteAddr"
	case TagDisconnected:
		return "Disconnected"
	default:
		return fmt.Sprintf("Tag(0x%02x)", uint8(t))
	}
}

// Command is the parsed form of a single control-socket frame. Exactly
// one field set is meaningful, selected by Tag.
type Command struct {
	Tag Tag

	IP        netip.Addr     // Block, Unblock
	Port      uint16         // FilterLocalPort
	RemoteAddr netip.AddrPort // FilterRemoteAddr, Disconnected
	PublicKey network.PublicKey // Disconnected
}

// Block builds a Block(ip) command.
func Block(ip netip.Addr) Command { return Command{Tag: TagBlock, IP: ip} }

// Unblock builds an Unblock(ip) command.
func Unblock(ip netip.Addr) Command { return Command{Tag: TagUnblock, IP: ip} }

// FilterLocalPort builds a FilterLocalPort(port) command.
func FilterLocalPort(port uint16) Command {
	return Command{Tag: TagFilterLocalPort, Port: port}
}

// FilterRemoteAddr builds a FilterRemoteAddr(addr) command.
func FilterRemoteAddr(addr netip.AddrPort) Command {
	return Command{Tag: TagFilterRemoteAddr, RemoteAddr: addr}
}

// Disconnected builds a Disconnected(addr, pk) command.
func Disconnected(addr netip.AddrPort, pk network.PublicKey) Command {
	return Command{Tag: TagDisconnected, RemoteAddr: addr, PublicKey: pk}
}

// Equal reports whether two commands carry the same tag and payload.
// Used by the codec's round-trip tests.
func (c Command) Equal(other Command) bool {
	if c.Tag != other.Tag {
		return false
	}
	switch c.Tag {
	case TagBlock, TagUnblock:
		return c.IP == other.IP
	case TagFilterLocalPort:
		return c.Port == other.Port
	case TagFilterRemoteAddr:
		return c.RemoteAddr == other.RemoteAddr
	case TagDisconnected:
		return c.RemoteAddr == other.RemoteAddr && c.PublicKey == other.PublicKey
	default:
		return false
	}
}

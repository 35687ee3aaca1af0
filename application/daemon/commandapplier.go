package daemon

import (
	"fmt"
	"log"
	"net/netip"

	"firewall/domain/command"
	"firewall/domain/events"
	"firewall/domain/network"
)

// applyCommand mutates the shared maps according to c (spec.md §4.4).
// Any IPv6 payload was already rejected by the codec; this is the
// single mutation point and is always called under d.mu.
func (d *Daemon) applyCommand(c command.Command) {
	switch c.Tag {
	case command.TagBlock:
		d.blacklist(c.IP, events.ReasonEventFromTezedge)
	case command.TagUnblock:
		ip, err := toIPv4(c.IP)
		if err != nil {
			log.Printf("daemon: unblock: %v", err)
			return
		}
		if err := d.maps.BlacklistDelete(ip); err != nil {
			log.Printf("daemon: unblock %s: %v", c.IP, err)
		}
	case command.TagFilterLocalPort:
		if err := d.maps.NodeSet(c.Port); err != nil {
			log.Printf("daemon: set node port %d: %v", c.Port, err)
		}
	case command.TagFilterRemoteAddr:
		ep, err := network.EndpointFromAddrPort(c.RemoteAddr)
		if err != nil {
			log.Printf("daemon: filter-remote %s: %v", c.RemoteAddr, err)
			return
		}
		if !d.maps.PendingPeersInsert(ep) {
			log.Printf("daemon: pending_peers map full, dropped %s", c.RemoteAddr)
		}
	case command.TagDisconnected:
		if err := d.maps.PeersDelete(c.PublicKey); err != nil {
			log.Printf("daemon: disconnected %s: %v", c.RemoteAddr, err)
		}
		ep, err := network.EndpointFromAddrPort(c.RemoteAddr)
		if err != nil {
			log.Printf("daemon: disconnected %s: %v", c.RemoteAddr, err)
			return
		}
		// Bounds the pending_peers capacity-exhaustion path documented
		// in DESIGN.md: without this delete, a remote that disconnects
		// before ever presenting a handshake leaves its entry behind
		// forever.
		if err := d.maps.PendingPeersDelete(ep); err != nil {
			log.Printf("daemon: pending_peers delete %s: %v", c.RemoteAddr, err)
		}
	default:
		log.Printf("daemon: unsupported command tag 0x%02x", byte(c.Tag))
	}
}

// blacklist inserts ip into the blacklist map, logging the reason and
// any I5 capacity failure.
func (d *Daemon) blacklist(ip netip.Addr, reason events.Reason) {
	v4, err := toIPv4(ip)
	if err != nil {
		log.Printf("daemon: blacklist %s: %v", ip, err)
		return
	}
	if !d.maps.BlacklistInsert(v4) {
		log.Printf("daemon: blacklist map full, dropped %s (reason=%s)", ip, reason)
		return
	}
	log.Printf("daemon: blacklisted %s (reason=%s)", ip, reason)
}

func toIPv4(ip netip.Addr) ([4]byte, error) {
	if !ip.Is4() {
		return [4]byte{}, fmt.Errorf("daemon: %s is not an ipv4 address", ip)
	}
	return ip.As4(), nil
}

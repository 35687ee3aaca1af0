package daemon

import "firewall/domain/network"

// Maps is the subset of the shared map layer the daemon mutates in
// response to commands and events (spec.md §4.4). infrastructure/ebpf.Maps
// implements it against the real kernel maps; tests implement it
// against the pure-Go domain/classifier.MemStore.
type Maps interface {
	// BlacklistInsert returns false on I5 capacity exhaustion.
	BlacklistInsert(ip [4]byte) bool
	BlacklistDelete(ip [4]byte) error

	// NodeSet replaces the sole `node` entry.
	NodeSet(port uint16) error

	PendingPeersInsert(ep network.Endpoint) bool
	PendingPeersDelete(ep network.Endpoint) error

	PeersDelete(pk network.PublicKey) error
}

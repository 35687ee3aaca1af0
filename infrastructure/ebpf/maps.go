package ebpf

import (
	"encoding/binary"
	"errors"

	cilium "github.com/cilium/ebpf"

	"firewall/domain/network"
)

// Maps is the production-side counterpart of domain/classifier's
// MapStore: typed accessors over the real kernel maps, used by the
// daemon to apply commands and observe I5 capacity failures. The
// classifier itself never goes through this type — it runs in-kernel
// and reads/writes the same maps directly.
type Maps struct {
	objs *ClassifierObjects
}

func newMaps(objs *ClassifierObjects) *Maps {
	return &Maps{objs: objs}
}

var sentinel = uint8(1)

// BlacklistInsert adds ip to the blacklist map. A false return means
// the map was at capacity (I5); the daemon logs this and proceeds.
func (m *Maps) BlacklistInsert(ip [4]byte) bool {
	key := ip // wire-order bytes, as classifier.c copies them into its __u32 key
	err := m.objs.Blacklist.Update(&key, &sentinel, cilium.UpdateAny)
	return !errors.Is(err, cilium.ErrMapFull)
}

// BlacklistDelete removes ip from the blacklist, used by Unblock.
func (m *Maps) BlacklistDelete(ip [4]byte) error {
	key := ip
	return m.objs.Blacklist.Delete(&key)
}

// NodeSet replaces the sole `node` entry with port, deleting whatever
// was there before (spec.md §3: "single entry, replaced on command").
func (m *Maps) NodeSet(port uint16) error {
	var key uint16
	var val uint8
	iter := m.objs.Node.Iterate()
	for iter.Next(&key, &val) {
		_ = m.objs.Node.Delete(&key)
	}
	// The classifier keys `node` by the port's wire-order bytes.
	var wire [2]byte
	binary.BigEndian.PutUint16(wire[:], port)
	return m.objs.Node.Update(&wire, &sentinel, cilium.UpdateAny)
}

// PendingPeersInsert adds ep to pending_peers, in wire byte order.
func (m *Maps) PendingPeersInsert(ep network.Endpoint) bool {
	err := m.objs.PendingPeers.Update(&ep, &sentinel, cilium.UpdateAny)
	return !errors.Is(err, cilium.ErrMapFull)
}

// PendingPeersDelete removes ep, bounding the capacity-exhaustion path
// documented in DESIGN.md's open-question decision.
func (m *Maps) PendingPeersDelete(ep network.Endpoint) error {
	return m.objs.PendingPeers.Delete(&ep)
}

// PeersDelete removes the peers[pk] binding, used by Disconnected.
func (m *Maps) PeersDelete(pk network.PublicKey) error {
	return m.objs.Peers.Delete(&pk)
}

// PeersLookup returns the endpoint currently bound to pk, if any.
func (m *Maps) PeersLookup(pk network.PublicKey) (network.Endpoint, bool) {
	var ep network.Endpoint
	if err := m.objs.Peers.Lookup(&pk, &ep); err != nil {
		return network.Endpoint{}, false
	}
	return ep, true
}

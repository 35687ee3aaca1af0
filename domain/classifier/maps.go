package classifier

import (
	"firewall/domain/events"
	"firewall/domain/network"
)

// Capacities for the bounded shared maps (spec.md §3). These are hard
// caps: insertion past capacity is a recoverable, silent failure (I5).
const (
	BlacklistCapacity    = 1024
	PeersCapacity        = 1024
	PendingPeersCapacity = 1024
	NodeCapacity         = 1
	StatusCapacity       = 4096
	EventsCapacity       = 256
)

// MapStore is the fixed key/value interface the classifier reads and
// writes. In production this is backed by real eBPF maps
// (infrastructure/ebpf); for property and scenario tests it is backed
// by MemStore below. The split exists because the real classifier runs
// in-kernel and cannot be unit-tested directly — this interface is the
// seam that lets the same algorithm (Classify, in this package) run
// against a deterministic in-memory model.
type MapStore interface {
	BlacklistContains(ip [4]byte) bool
	// BlacklistInsert returns false if the map is at capacity; the
	// packet must NOT be dropped as a result (I5).
	BlacklistInsert(ip [4]byte) bool

	NodeContains(port uint16) bool

	PendingPeersContains(ep network.Endpoint) bool

	PeersGet(pk network.PublicKey) (network.Endpoint, bool)
	// PeersInsert returns false if the map is at capacity.
	PeersInsert(pk network.PublicKey, ep network.Endpoint) bool

	StatusGet(pair network.EndpointPair) network.Status
	// StatusSet returns false if the map is at capacity; on failure the
	// classifier must proceed as if the in-memory status were set
	// (permissive: never propagate the failure as a drop).
	StatusSet(pair network.EndpointPair, status network.Status) bool

	// PushEvent enqueues an event on the (per-CPU, in this model
	// per-store) perf ring. Lossy: when full, the oldest record is
	// dropped to make room, mirroring the classifier's perf ring
	// producer, which never blocks.
	PushEvent(e events.Event)
}

// MemStore is a deterministic in-memory MapStore used by tests and by
// the scenario harness. It is not used in production: real map storage
// and lookup happens inside the kernel via infrastructure/ebpf.
type MemStore struct {
	blacklist    map[[4]byte]struct{}
	node         map[uint16]struct{}
	pendingPeers map[network.Endpoint]struct{}
	peers        map[network.PublicKey]network.Endpoint
	status       map[network.EndpointPair]network.Status

	events []events.Event
}

// NewMemStore returns an empty MemStore at declared capacity.
func NewMemStore() *MemStore {
	return &MemStore{
		blacklist:    make(map[[4]byte]struct{}),
		node:         make(map[uint16]struct{}),
		pendingPeers: make(map[network.Endpoint]struct{}),
		peers:        make(map[network.PublicKey]network.Endpoint),
		status:       make(map[network.EndpointPair]network.Status),
	}
}

func (m *MemStore) BlacklistContains(ip [4]byte) bool {
	_, ok := m.blacklist[ip]
	return ok
}

func (m *MemStore) BlacklistInsert(ip [4]byte) bool {
	if _, ok := m.blacklist[ip]; ok {
		return true
	}
	if len(m.blacklist) >= BlacklistCapacity {
		return false
	}
	m.blacklist[ip] = struct{}{}
	return true
}

func (m *MemStore) BlacklistDelete(ip [4]byte) {
	delete(m.blacklist, ip)
}

func (m *MemStore) NodeContains(port uint16) bool {
	_, ok := m.node[port]
	return ok
}

// NodeSet replaces the sole `node` entry, matching its single-entry
// lifecycle (spec.md §3).
func (m *MemStore) NodeSet(port uint16) {
	m.node = map[uint16]struct{}{port: {}}
}

func (m *MemStore) PendingPeersContains(ep network.Endpoint) bool {
	_, ok := m.pendingPeers[ep]
	return ok
}

func (m *MemStore) PendingPeersInsert(ep network.Endpoint) bool {
	if _, ok := m.pendingPeers[ep]; ok {
		return true
	}
	if len(m.pendingPeers) >= PendingPeersCapacity {
		return false
	}
	m.pendingPeers[ep] = struct{}{}
	return true
}

func (m *MemStore) PendingPeersDelete(ep network.Endpoint) {
	delete(m.pendingPeers, ep)
}

func (m *MemStore) PeersGet(pk network.PublicKey) (network.Endpoint, bool) {
	ep, ok := m.peers[pk]
	return ep, ok
}

func (m *MemStore) PeersInsert(pk network.PublicKey, ep network.Endpoint) bool {
	if _, ok := m.peers[pk]; ok {
		m.peers[pk] = ep
		return true
	}
	if len(m.peers) >= PeersCapacity {
		return false
	}
	m.peers[pk] = ep
	return true
}

func (m *MemStore) PeersDelete(pk network.PublicKey) {
	delete(m.peers, pk)
}

func (m *MemStore) StatusGet(pair network.EndpointPair) network.Status {
	return m.status[pair]
}

func (m *MemStore) StatusSet(pair network.EndpointPair, status network.Status) bool {
	if _, ok := m.status[pair]; !ok && len(m.status) >= StatusCapacity {
		return false
	}
	m.status[pair] = status
	return true
}

func (m *MemStore) PushEvent(e events.Event) {
	if len(m.events) >= EventsCapacity {
		m.events = m.events[1:]
	}
	m.events = append(m.events, e)
}

// DrainEvents returns and clears all events pushed so far, in FIFO
// order, mirroring how the daemon polls the perf ring.
func (m *MemStore) DrainEvents() []events.Event {
	drained := m.events
	m.events = nil
	return drained
}

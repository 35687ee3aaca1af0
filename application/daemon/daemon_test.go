package daemon

import (
	"net/netip"
	"testing"

	"firewall/domain/classifier"
	"firewall/domain/command"
	"firewall/domain/events"
	"firewall/domain/network"
)

// memMaps adapts classifier.MemStore (which never fails deletes) to
// the daemon's Maps interface, for deterministic in-process scenario
// tests — the real classifier runs in-kernel and cannot be exercised
// by a Go test directly.
type memMaps struct {
	store *classifier.MemStore
}

func (m memMaps) BlacklistInsert(ip [4]byte) bool { return m.store.BlacklistInsert(ip) }
func (m memMaps) BlacklistDelete(ip [4]byte) error {
	m.store.BlacklistDelete(ip)
	return nil
}
func (m memMaps) NodeSet(port uint16) error {
	m.store.NodeSet(port)
	return nil
}
func (m memMaps) PendingPeersInsert(ep network.Endpoint) bool {
	return m.store.PendingPeersInsert(ep)
}
func (m memMaps) PendingPeersDelete(ep network.Endpoint) error {
	m.store.PendingPeersDelete(ep)
	return nil
}
func (m memMaps) PeersDelete(pk network.PublicKey) error {
	m.store.PeersDelete(pk)
	return nil
}

func newTestDaemon(store *classifier.MemStore, target float64) *Daemon {
	return New(memMaps{store: store}, target)
}

// Scenario 1: a blacklisted remote is dropped with no event and no
// status mutation, regardless of daemon involvement.
func TestScenario1_BlacklistedSourceDropped(t *testing.T) {
	store := classifier.NewMemStore()
	store.BlacklistInsert([4]byte{10, 0, 0, 7})

	frame := classifier.BuildFrame([4]byte{10, 0, 0, 7}, [4]byte{127, 0, 0, 1}, 1024, 9732, nil)
	v, ev := classifier.Classify(frame, store)
	if v != classifier.Drop || ev != nil {
		t.Fatalf("want DROP/no-event, got %s %+v", v, ev)
	}
}

// Scenario 2: a valid PoW handshake yields one ReceivedPow event; the
// daemon's verification succeeds and peers[pk] binds to the remote.
func TestScenario2_ValidHandshakeBindsPeer(t *testing.T) {
	store := classifier.NewMemStore()
	store.NodeSet(9732)
	remote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	store.PendingPeersInsert(remote)

	pk := classifier.PubKey(0xAB)
	payload := classifier.HandshakePayload([4]byte{}, pk, [24]byte{})
	frame := classifier.BuildFrame(remote.IPv4, [4]byte{127, 0, 0, 1}, 4000, 9732, payload)

	v, ev := classifier.Classify(frame, store)
	if v != classifier.Pass {
		t.Fatalf("want PASS, got %s", v)
	}
	if ev == nil || ev.Kind != events.KindReceivedPow {
		t.Fatalf("want ReceivedPow, got %+v", ev)
	}

	// Daemon verifies PoW at target 0.0: every digest is accepted
	// (threshold collapses to the full 2^256 range), so the binding is
	// never undone by a blacklist.
	d := newTestDaemon(store, 0.0)
	d.handleEvent(*ev)

	if store.BlacklistContains(remote.IPv4) {
		t.Fatalf("valid PoW must not blacklist the remote")
	}
	if ep, ok := store.PeersGet(pk); !ok || ep != remote {
		t.Fatalf("peers[pk]: want %s, got %s (found=%v)", remote, ep, ok)
	}
}

// Scenario 3: an invalid PoW stamp causes the daemon to blacklist the
// remote; a subsequent segment from that remote is then DROP.
func TestScenario3_InvalidPoWBlacklistsRemote(t *testing.T) {
	store := classifier.NewMemStore()
	store.NodeSet(9732)
	remote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	store.PendingPeersInsert(remote)

	pk := classifier.PubKey(0xCD)
	payload := classifier.HandshakePayload([4]byte{}, pk, [24]byte{})
	frame := classifier.BuildFrame(remote.IPv4, [4]byte{127, 0, 0, 1}, 4000, 9732, payload)

	_, ev := classifier.Classify(frame, store)
	if ev == nil {
		t.Fatal("want event")
	}

	// target 256.0 rejects every digest, modeling "invalid PoW".
	d := newTestDaemon(store, 256.0)
	d.handleEvent(*ev)

	if !store.BlacklistContains(remote.IPv4) {
		t.Fatalf("invalid PoW must blacklist the remote")
	}

	frame2 := classifier.BuildFrame(remote.IPv4, [4]byte{127, 0, 0, 1}, 4000, 9732, payload)
	v2, ev2 := classifier.Classify(frame2, store)
	if v2 != classifier.Drop {
		t.Fatalf("subsequent segment from blacklisted remote: want DROP, got %s", v2)
	}
	if ev2 != nil {
		t.Fatalf("blacklisted packet must not emit an event")
	}
}

// Scenario 4: a reused PublicKey from a second remote is DROP at the
// classifier with a BlockedReusingPow event; the daemon blacklists the
// later remote.
func TestScenario4_ReusedKeyBlacklistsLaterRemote(t *testing.T) {
	store := classifier.NewMemStore()
	store.NodeSet(9732)
	first := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	second := network.Endpoint{IPv4: [4]byte{10, 0, 0, 9}, Port: be16(4100)}
	store.PendingPeersInsert(first)
	store.PendingPeersInsert(second)

	pk := classifier.PubKey(0xEF)
	payload := classifier.HandshakePayload([4]byte{}, pk, [24]byte{})

	frame1 := classifier.BuildFrame(first.IPv4, [4]byte{127, 0, 0, 1}, 4000, 9732, payload)
	classifier.Classify(frame1, store)

	frame2 := classifier.BuildFrame(second.IPv4, [4]byte{127, 0, 0, 1}, 4100, 9732, payload)
	v2, ev2 := classifier.Classify(frame2, store)
	if v2 != classifier.Drop {
		t.Fatalf("want DROP, got %s", v2)
	}
	if ev2 == nil || ev2.Kind != events.KindBlockedReusingPow {
		t.Fatalf("want BlockedReusingPow, got %+v", ev2)
	}
	if ev2.AlreadyConnected != first || ev2.TryConnect != second {
		t.Fatalf("unexpected event payload: %+v", ev2)
	}

	d := newTestDaemon(store, 26.0)
	d.handleEvent(*ev2)

	if !store.BlacklistContains(second.IPv4) {
		t.Fatalf("reused-key remote must be blacklisted")
	}
	if store.BlacklistContains(first.IPv4) {
		t.Fatalf("the original holder must not be blacklisted")
	}
}

// Scenario 5: Block then Unblock over the control socket leaves the
// blacklist transiently containing, then not containing, the address.
func TestScenario5_BlockThenUnblock(t *testing.T) {
	store := classifier.NewMemStore()
	d := newTestDaemon(store, 26.0)

	addr := netip.MustParseAddr("192.168.1.1")
	d.applyCommand(command.Block(addr))
	if !store.BlacklistContains(addr.As4()) {
		t.Fatalf("Block must blacklist the address")
	}

	d.applyCommand(command.Unblock(addr))
	if store.BlacklistContains(addr.As4()) {
		t.Fatalf("Unblock must remove the address")
	}
}

// Scenario 6 (command session handling) is covered at the codec layer
// (TestDecodeWrongTag) and at the listener layer: an unknown tag is
// session-fatal per spec.md §4.3/§7, which commandlistener.go's
// serveCommandConn enforces by closing the connection without
// affecting the accept loop — not re-modeled here since it requires no
// daemon-level map state.

func be16(v uint16) [2]byte {
	return [2]byte{byte(v >> 8), byte(v)}
}

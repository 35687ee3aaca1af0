package classifier

import (
	"testing"

	"firewall/domain/events"
	"firewall/domain/network"
)

var (
	nodeIP   = [4]byte{127, 0, 0, 1}
	nodePort = uint16(9732)
)

func validPow() [24]byte {
	// The classifier never validates the PoW itself (that's the
	// daemon's job, infrastructure/pow) — any 24 bytes exercise the
	// "handshake present" path.
	return [24]byte{}
}

// P4: once an IP is blacklisted, every subsequent packet with that
// source IP is DROP regardless of other state.
func TestBlacklistedSourceAlwaysDrops(t *testing.T) {
	m := NewMemStore()
	remote := [4]byte{10, 0, 0, 7}
	m.BlacklistInsert(remote)

	frame := BuildFrame(remote, nodeIP, 1024, nodePort, nil)
	v, ev := Classify(frame, m)
	if v != Drop {
		t.Fatalf("want DROP, got %s", v)
	}
	if ev != nil {
		t.Fatalf("want no event, got %+v", ev)
	}
	if len(m.DrainEvents()) != 0 {
		t.Fatalf("blacklisted packet must not touch status/events")
	}
}

// P5: a packet whose local port isn't the node's is PASS, with no
// event and no status mutation.
func TestWrongLocalPortPassesWithoutState(t *testing.T) {
	m := NewMemStore()
	m.NodeSet(nodePort)
	remote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	m.PendingPeersInsert(remote)

	frame := BuildFrame(remote.IPv4, nodeIP, 4000, nodePort+1, nil)
	v, ev := Classify(frame, m)
	if v != Pass {
		t.Fatalf("want PASS, got %s", v)
	}
	if ev != nil {
		t.Fatalf("want no event, got %+v", ev)
	}
	pair := network.EndpointPair{
		Remote: remote,
		Local:  network.Endpoint{IPv4: nodeIP, Port: be16(nodePort + 1)},
	}
	if m.StatusGet(pair) != 0 {
		t.Fatalf("status must be untouched")
	}
}

// P6: a single flow emitting a handshake payload of >=60 bytes
// delivers exactly one event; later packets of the same flow produce
// none.
func TestSingleFlowEmitsOneEvent(t *testing.T) {
	m := NewMemStore()
	m.NodeSet(nodePort)
	remoteIP := [4]byte{10, 0, 0, 8}
	remote := network.Endpoint{IPv4: remoteIP, Port: be16(4000)}
	m.PendingPeersInsert(remote)

	pk := PubKey(0xAB)
	payload := HandshakePayload([4]byte{}, pk, validPow())

	frame := BuildFrame(remoteIP, nodeIP, 4000, nodePort, payload)
	v, ev := Classify(frame, m)
	if v != Pass {
		t.Fatalf("want PASS, got %s", v)
	}
	if ev == nil || ev.Kind != events.KindReceivedPow {
		t.Fatalf("want ReceivedPow event, got %+v", ev)
	}

	// Second packet of the same flow: PoW already sampled.
	v2, ev2 := Classify(frame, m)
	if v2 != Pass {
		t.Fatalf("want PASS, got %s", v2)
	}
	if ev2 != nil {
		t.Fatalf("want no event on repeat packet, got %+v", ev2)
	}

	if got := len(m.DrainEvents()); got != 1 {
		t.Fatalf("want exactly 1 event total, got %d", got)
	}
}

// P7: two concurrent flows from different remotes presenting the same
// PublicKey — exactly one produces ReceivedPow, the later one produces
// BlockedReusingPow and is DROP.
func TestReusedPublicKeyBlocksSecondFlow(t *testing.T) {
	m := NewMemStore()
	m.NodeSet(nodePort)

	firstRemote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	secondRemote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 9}, Port: be16(4100)}
	m.PendingPeersInsert(firstRemote)
	m.PendingPeersInsert(secondRemote)

	pk := PubKey(0xCD)
	payload := HandshakePayload([4]byte{}, pk, validPow())

	frame1 := BuildFrame(firstRemote.IPv4, nodeIP, 4000, nodePort, payload)
	v1, ev1 := Classify(frame1, m)
	if v1 != Pass || ev1 == nil || ev1.Kind != events.KindReceivedPow {
		t.Fatalf("first flow: want PASS+ReceivedPow, got %s %+v", v1, ev1)
	}

	frame2 := BuildFrame(secondRemote.IPv4, nodeIP, 4100, nodePort, payload)
	v2, ev2 := Classify(frame2, m)
	if v2 != Drop {
		t.Fatalf("second flow: want DROP, got %s", v2)
	}
	if ev2 == nil || ev2.Kind != events.KindBlockedReusingPow {
		t.Fatalf("second flow: want BlockedReusingPow, got %+v", ev2)
	}
	if ev2.AlreadyConnected != firstRemote || ev2.TryConnect != secondRemote {
		t.Fatalf("unexpected BlockedReusingPow payload: %+v", ev2)
	}
}

// P8: a packet whose payload is present but shorter than 60 bytes at
// the declared offset produces NotEnoughBytesForPow and is DROP.
func TestShortHandshakeDropsWithEvent(t *testing.T) {
	m := NewMemStore()
	m.NodeSet(nodePort)
	remote := network.Endpoint{IPv4: [4]byte{10, 0, 0, 8}, Port: be16(4000)}
	m.PendingPeersInsert(remote)

	frame := BuildFrame(remote.IPv4, nodeIP, 4000, nodePort, []byte{1, 2, 3})
	v, ev := Classify(frame, m)
	if v != Drop {
		t.Fatalf("want DROP, got %s", v)
	}
	if ev == nil || ev.Kind != events.KindNotEnoughBytesForPow {
		t.Fatalf("want NotEnoughBytesForPow, got %+v", ev)
	}
}

func TestNonTCPFramePasses(t *testing.T) {
	m := NewMemStore()
	frame := make([]byte, 34)
	frame[12], frame[13] = 0x08, 0x06 // ARP, not IPv4
	v, ev := Classify(frame, m)
	if v != Pass || ev != nil {
		t.Fatalf("want PASS/no-event for non-IPv4 frame, got %s %+v", v, ev)
	}
}

func TestNotPendingPeerPasses(t *testing.T) {
	m := NewMemStore()
	m.NodeSet(nodePort)
	// remote not inserted into pending_peers
	frame := BuildFrame([4]byte{10, 0, 0, 50}, nodeIP, 4000, nodePort, HandshakePayload([4]byte{}, PubKey(1), validPow()))
	v, ev := Classify(frame, m)
	if v != Pass || ev != nil {
		t.Fatalf("want PASS/no-event, got %s %+v", v, ev)
	}
	if len(m.DrainEvents()) != 0 {
		t.Fatalf("no event should have been enqueued")
	}
}

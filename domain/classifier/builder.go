package classifier

import "firewall/domain/network"

// BuildFrame assembles a minimal Ethernet+IPv4+TCP frame carrying
// payload, for use by tests and by the daemon's scenario harness. No
// checksums are computed: the classifier never inspects them.
func BuildFrame(srcIP, dstIP [4]byte, srcPort, dstPort uint16, payload []byte) []byte {
	const ihl = 20
	const doff = 20

	frame := make([]byte, ethHeaderLen+ihl+doff+len(payload))

	// Ethernet: dst(6) src(6) ethertype(2).
	frame[12] = 0x08
	frame[13] = 0x00

	ip := frame[ethHeaderLen:]
	ip[0] = 0x40 | (ihl / 4) // version 4, IHL in 32-bit words
	copy(ip[12:16], srcIP[:])
	copy(ip[16:20], dstIP[:])
	ip[9] = ipProtoTCP

	tcp := frame[ethHeaderLen+ihl:]
	tcp[0] = byte(srcPort >> 8)
	tcp[1] = byte(srcPort)
	tcp[2] = byte(dstPort >> 8)
	tcp[3] = byte(dstPort)
	tcp[12] = byte(doff/4) << 4

	copy(frame[ethHeaderLen+ihl+doff:], payload)
	return frame
}

// HandshakePayload builds a 60-byte handshake prefix: a 4-byte
// preamble, the 32-byte public key and a 24-byte PoW suffix, matching
// the layout spec.md's GLOSSARY describes. extra bytes (if any) are
// appended past the 60-byte prefix, as a real handshake message would
// carry more than just the prefix.
func HandshakePayload(preamble [4]byte, pk network.PublicKey, suffix [24]byte, extra ...byte) []byte {
	buf := make([]byte, 0, 60+len(extra))
	buf = append(buf, preamble[:]...)
	buf = append(buf, pk[:]...)
	buf = append(buf, suffix[:]...)
	buf = append(buf, extra...)
	return buf
}

// PubKey returns a PublicKey filled with a single repeated byte, handy
// for building distinct literal keys in tests.
func PubKey(fill byte) network.PublicKey {
	var pk network.PublicKey
	for i := range pk {
		pk[i] = fill
	}
	return pk
}

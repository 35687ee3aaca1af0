package classifier

// Bounds-checked Ethernet/IPv4/TCP header access. Every read here is
// length-checked before the slice is touched, and there is no
// unbounded loop or allocation — this mirrors the restricted execution
// environment the real classifier runs in (spec.md §9): "the classifier
// is one straight-line function with bounded map calls and length-
// checked buffer reads."

const (
	ethHeaderLen  = 14
	ethTypeIPv4   = 0x0800
	ipProtoTCP    = 6
)

// header is the result of parsing a frame's Ethernet/IPv4/TCP headers
// far enough to classify it. ok is false when the frame is not an IPv4
// TCP segment, or is too short to contain full headers — both cases
// are a parse failure that yields PASS per spec.md §4.1 step 1.
type header struct {
	ok         bool
	srcIP      [4]byte
	dstIP      [4]byte
	srcPort    uint16
	dstPort    uint16
	payloadOff int
}

func parseHeader(frame []byte) header {
	if len(frame) < ethHeaderLen+20 {
		return header{}
	}
	ethType := uint16(frame[12])<<8 | uint16(frame[13])
	if ethType != ethTypeIPv4 {
		return header{}
	}

	ipStart := ethHeaderLen
	versionIHL := frame[ipStart]
	version := versionIHL >> 4
	if version != 4 {
		return header{}
	}
	ihl := int(versionIHL&0x0F) * 4
	if ihl < 20 {
		return header{}
	}
	if len(frame) < ipStart+ihl+20 {
		return header{}
	}
	proto := frame[ipStart+9]
	if proto != ipProtoTCP {
		return header{}
	}

	var h header
	copy(h.srcIP[:], frame[ipStart+12:ipStart+16])
	copy(h.dstIP[:], frame[ipStart+16:ipStart+20])

	tcpStart := ipStart + ihl
	h.srcPort = uint16(frame[tcpStart])<<8 | uint16(frame[tcpStart+1])
	h.dstPort = uint16(frame[tcpStart+2])<<8 | uint16(frame[tcpStart+3])
	doff := int(frame[tcpStart+12]>>4) * 4
	if doff < 20 {
		return header{}
	}

	h.ok = true
	h.payloadOff = tcpStart + doff
	return h
}

// Package codec implements the control-socket wire format (spec.md
// §4.3): a length-prefixed, tag-discriminated binary frame.
//
//	tag:u8 | length:u32 (big-endian) | payload[length]
//
// Decode is written to be called repeatedly against a growing buffer,
// the way the teacher's stream readers peel frames off of a
// bufio.Reader: it never blocks and never consumes partial input.
package codec

import (
	"encoding/binary"
	"net"
	"net/netip"

	"firewall/domain/command"
	"firewall/domain/network"
)

const headerSize = 1 + 4 // tag + big-endian u32 length

// Encode serializes c into its wire frame.
func Encode(c command.Command) ([]byte, error) {
	var payload []byte
	switch c.Tag {
	case command.TagBlock, command.TagUnblock:
		if !c.IP.Is4() {
			return nil, command.ErrUnsupportedV6{}
		}
		payload = []byte(c.IP.String())
	case command.TagFilterLocalPort:
		payload = make([]byte, 2)
		binary.BigEndian.PutUint16(payload, c.Port)
	case command.TagFilterRemoteAddr:
		if !c.RemoteAddr.Addr().Is4() {
			return nil, command.ErrUnsupportedV6{}
		}
		payload = []byte(c.RemoteAddr.String())
	case command.TagDisconnected:
		if !c.RemoteAddr.Addr().Is4() {
			return nil, command.ErrUnsupportedV6{}
		}
		addrStr := []byte(c.RemoteAddr.String())
		payload = make([]byte, 4+len(addrStr)+network.PublicKeySize)
		binary.BigEndian.PutUint32(payload, uint32(len(addrStr)))
		copy(payload[4:], addrStr)
		copy(payload[4+len(addrStr):], c.PublicKey[:])
	default:
		return nil, command.ErrWrongTag{Tag: byte(c.Tag)}
	}

	frame := make([]byte, headerSize+len(payload))
	frame[0] = byte(c.Tag)
	binary.BigEndian.PutUint32(frame[1:5], uint32(len(payload)))
	copy(frame[headerSize:], payload)
	return frame, nil
}

// Decode parses exactly one frame from the front of buf. On success it
// returns the command and the number of bytes consumed. On
// command.ErrUnderflow the buffer held a strict prefix of a frame;
// callers must retain buf unmodified and retry once more bytes arrive.
// Any other error is session-fatal per spec.md §4.3 / §7.
func Decode(buf []byte) (command.Command, int, error) {
	if len(buf) < headerSize {
		return command.Command{}, 0, command.ErrUnderflow{}
	}
	tag := command.Tag(buf[0])
	length := binary.BigEndian.Uint32(buf[1:5])
	total := headerSize + int(length)
	if len(buf) < total {
		return command.Command{}, 0, command.ErrUnderflow{}
	}
	payload := buf[headerSize:total]

	switch tag {
	case command.TagBlock:
		ip, err := parseIP(payload)
		if err != nil {
			return command.Command{}, 0, err
		}
		return command.Block(ip), total, nil
	case command.TagUnblock:
		ip, err := parseIP(payload)
		if err != nil {
			return command.Command{}, 0, err
		}
		return command.Unblock(ip), total, nil
	case command.TagFilterLocalPort:
		if len(payload) != 2 {
			return command.Command{}, 0, command.ErrDeserialize{Reason: "FilterLocalPort: want 2 bytes"}
		}
		port := binary.BigEndian.Uint16(payload)
		return command.FilterLocalPort(port), total, nil
	case command.TagFilterRemoteAddr:
		addr, err := parseAddrPort(payload)
		if err != nil {
			return command.Command{}, 0, err
		}
		return command.FilterRemoteAddr(addr), total, nil
	case command.TagDisconnected:
		c, err := decodeDisconnected(payload)
		if err != nil {
			return command.Command{}, 0, err
		}
		return c, total, nil
	default:
		return command.Command{}, 0, command.ErrWrongTag{Tag: byte(tag)}
	}
}

func decodeDisconnected(payload []byte) (command.Command, error) {
	if len(payload) < 4 {
		return command.Command{}, command.ErrDeserialize{Reason: "Disconnected: truncated sub-record length"}
	}
	strLen := int(binary.BigEndian.Uint32(payload))
	rest := payload[4:]
	if len(rest) != strLen+network.PublicKeySize {
		return command.Command{}, command.ErrDeserialize{Reason: "Disconnected: sub-record length mismatch"}
	}
	addr, err := parseAddrPort(rest[:strLen])
	if err != nil {
		return command.Command{}, err
	}
	var pk network.PublicKey
	copy(pk[:], rest[strLen:])
	return command.Disconnected(addr, pk), nil
}

func parseIP(payload []byte) (netip.Addr, error) {
	ip, err := netip.ParseAddr(string(payload))
	if err != nil {
		return netip.Addr{}, command.ErrAddrParse{Cause: err}
	}
	if ip.Is6() && !ip.Is4In6() {
		return netip.Addr{}, command.ErrUnsupportedV6{}
	}
	return ip.Unmap(), nil
}

func parseAddrPort(payload []byte) (netip.AddrPort, error) {
	host, portStr, err := net.SplitHostPort(string(payload))
	if err != nil {
		return netip.AddrPort{}, command.ErrAddrParse{Cause: err}
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.AddrPort{}, command.ErrAddrParse{Cause: err}
	}
	if addr.Is6() && !addr.Is4In6() {
		return netip.AddrPort{}, command.ErrUnsupportedV6{}
	}
	port, err := netip.ParseAddrPort(addr.Unmap().String() + ":" + portStr)
	if err != nil {
		return netip.AddrPort{}, command.ErrAddrParse{Cause: err}
	}
	return port, nil
}

package daemon

import (
	"context"
	"errors"
	"log"
	"net"

	"firewall/domain/command"
	"firewall/infrastructure/codec"
)

// acceptCommands runs the command listener's accept loop (spec.md
// §4.4): each accepted connection gets an independent decoding task;
// a malformed frame ends that session without touching the others.
func (d *Daemon) acceptCommands(ctx context.Context, listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go d.serveCommandConn(conn)
	}
}

// serveCommandConn reads framed commands off conn until the peer
// closes it or a frame fails to parse (session-fatal, spec.md §7).
func (d *Daemon) serveCommandConn(conn net.Conn) {
	defer conn.Close()

	var buf []byte
	chunk := make([]byte, 4096)
	for {
		c, consumed, err := tryDecode(buf)
		if err == nil {
			buf = buf[consumed:]
			d.mu.Lock()
			d.applyCommand(c)
			d.mu.Unlock()
			continue
		}
		if _, underflow := err.(command.ErrUnderflow); !underflow {
			log.Printf("daemon: command session closed: %v", err)
			return
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			continue
		}
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Printf("daemon: command session read: %v", err)
			}
			return
		}
	}
}

func tryDecode(buf []byte) (command.Command, int, error) {
	if len(buf) == 0 {
		return command.Command{}, 0, command.ErrUnderflow{}
	}
	return codec.Decode(buf)
}

// Package client implements the one-shot control client (spec.md
// §4.5): connect, write exactly one framed command, close.
package client

import (
	"fmt"

	"firewall/domain/command"
	"firewall/infrastructure/codec"
	"firewall/infrastructure/controlsocket"
)

// Send dials the daemon's control socket at path, writes c, and
// closes the connection. A write error is the caller's cue to exit
// non-zero (spec.md §4.5).
func Send(path string, c command.Command) error {
	conn, err := controlsocket.Dial(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	frame, err := codec.Encode(c)
	if err != nil {
		return fmt.Errorf("client: encode command: %w", err)
	}
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("client: write command: %w", err)
	}
	return nil
}

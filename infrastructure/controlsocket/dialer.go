package controlsocket

import (
	"fmt"
	"net"
)

// Dial connects to the daemon's control socket at path. The control
// client is one-shot (spec.md §4.5): callers write exactly one frame
// and close.
func Dial(path string) (net.Conn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("controlsocket: dial %q: %w", path, err)
	}
	return conn, nil
}

// Package controlsocket implements the daemon's command channel: a
// local stream socket that accepts framed commands (spec.md §4.4).
package controlsocket

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Listen binds a unix stream socket at path. Any stale socket file
// left behind by a previous run is removed first; after bind, file
// permissions are relaxed to world-readable/writable so an
// unprivileged node process can connect (spec.md §6).
func Listen(path string) (net.Listener, error) {
	if err := removeStale(path); err != nil {
		return nil, fmt.Errorf("controlsocket: remove stale socket: %w", err)
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("controlsocket: listen on %q: %w", path, err)
	}

	if err := unix.Chmod(path, 0o666); err != nil {
		l.Close()
		return nil, fmt.Errorf("controlsocket: relax permissions on %q: %w", path, err)
	}
	return l, nil
}

func removeStale(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

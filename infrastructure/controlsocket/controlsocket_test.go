package controlsocket

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListenRemovesStaleSocketAndRelaxesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "firewall.sock")

	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Listen(path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o666 {
		t.Fatalf("want mode 0666, got %v", info.Mode().Perm())
	}
}

func TestDialConnectsToListener(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "firewall.sock")

	l, err := Listen(path)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := l.Accept()
		if err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	conn, err := Dial(path)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	conn.Close()
	<-accepted
}

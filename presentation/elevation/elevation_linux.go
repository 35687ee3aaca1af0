// Package elevation checks whether the running process has the
// privilege the daemon needs to attach an XDP program and touch the
// shared maps. Only an effective user id of 0 counts as elevated; a
// non-root process holding the needed capabilities is not recognised.
package elevation

import "os"

// IsElevated reports whether the current process is running as root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// Hint returns a human-readable suggestion to show the operator when
// IsElevated is false.
func Hint() string {
	return "run firewalld as root"
}

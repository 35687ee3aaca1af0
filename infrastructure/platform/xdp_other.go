//go:build !linux

package platform

// XDPSupported is always false outside Linux: there is no XDP hook to
// attach to.
func XDPSupported() bool { return false }

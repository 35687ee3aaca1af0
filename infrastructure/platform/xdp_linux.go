package platform

// XDPSupported reports whether this build can attach an XDP program.
// XDP is a Linux-only facility (spec.md §9: "the classifier executes
// in a restricted environment" provided by the Linux kernel).
func XDPSupported() bool { return true }

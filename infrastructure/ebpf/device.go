package ebpf

import "net"

// interfaceByName resolves device to its kernel interface index, the
// form link.AttachXDP requires.
func interfaceByName(device string) (int, error) {
	iface, err := net.InterfaceByName(device)
	if err != nil {
		return 0, err
	}
	return iface.Index, nil
}

// Package ebpf loads the compiled XDP classifier, attaches it to a
// network device, and exposes its shared maps and perf ring to the
// policy daemon. This is the only package that talks to the kernel;
// domain/classifier holds the same algorithm as a pure-Go reference
// model for testing (it is never linked into the daemon binary).
package ebpf

import (
	"fmt"

	"github.com/cilium/ebpf"
	"github.com/cilium/ebpf/link"
	"github.com/cilium/ebpf/rlimit"
)

// Loaded holds everything the daemon needs once the classifier is
// attached: the typed map wrappers and a handle to detach on
// shutdown.
type Loaded struct {
	objs ClassifierObjects
	link link.Link

	Maps *Maps
}

// Attach loads the embedded classifier object, attaches it as XDP to
// device in generic (SKB) mode, and returns the loaded handle. Any
// failure here is fatal to the daemon (spec.md §7).
func Attach(device string) (*Loaded, error) {
	if err := rlimit.RemoveMemlock(); err != nil {
		return nil, fmt.Errorf("ebpf: remove memlock rlimit: %w", err)
	}

	var objs ClassifierObjects
	if err := loadClassifierObjects(&objs, nil); err != nil {
		return nil, fmt.Errorf("ebpf: load classifier objects: %w", err)
	}

	iface, err := interfaceByName(device)
	if err != nil {
		objs.Close()
		return nil, fmt.Errorf("ebpf: lookup device %q: %w", device, err)
	}

	l, err := link.AttachXDP(link.XDPOptions{
		Program:   objs.Classify,
		Interface: iface,
		Flags:     link.XDPGenericMode,
	})
	if err != nil {
		objs.Close()
		return nil, fmt.Errorf("ebpf: attach xdp to %q: %w", device, err)
	}

	return &Loaded{
		objs: objs,
		link: l,
		Maps: newMaps(&objs),
	}, nil
}

// Close detaches the classifier and releases every map and program
// handle. The kernel maps and their contents disappear with it
// (spec.md §9: global state is tied to the daemon process).
func (l *Loaded) Close() error {
	linkErr := l.link.Close()
	objErr := l.objs.Close()
	if linkErr != nil {
		return linkErr
	}
	return objErr
}

// CollectionSpec exposes the raw embedded spec, so a caller can check
// that the embedded object parses without attaching anything to a
// real device.
func CollectionSpec() (*ebpf.CollectionSpec, error) {
	return loadClassifier()
}

package daemon

import (
	"log"

	"firewall/domain/events"
	"firewall/domain/network"
	"firewall/infrastructure/pow"
)

// handleEvent applies the event consumer's policy (spec.md §4.4):
//
//   - ReceivedPow: verify the stamp; blacklist the remote on failure.
//   - NotEnoughBytesForPow: blacklist the remote outright.
//   - BlockedReusingPow: blacklist the remote that attempted reuse;
//     the flow is already dropped at the classifier.
func (d *Daemon) handleEvent(ev events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch ev.Kind {
	case events.KindReceivedPow:
		if pow.Verify(ev.PowStamp, d.target) {
			return
		}
		d.blacklistEndpoint(ev.Pair.Remote, events.ReasonBadProofOfWork)
	case events.KindNotEnoughBytesForPow:
		d.blacklistEndpoint(ev.Pair.Remote, events.ReasonBadProofOfWork)
	case events.KindBlockedReusingPow:
		d.blacklistEndpoint(ev.TryConnect, events.ReasonAlreadyConnected)
	default:
		log.Printf("daemon: unknown event kind %v", ev.Kind)
	}
}

func (d *Daemon) blacklistEndpoint(ep network.Endpoint, reason events.Reason) {
	if !d.maps.BlacklistInsert(ep.IPv4) {
		log.Printf("daemon: blacklist map full, dropped %s (reason=%s)", ep, reason)
		return
	}
	log.Printf("daemon: blacklisted %s (reason=%s)", ep, reason)
}

package events

// Reason records why an IP was inserted into the blacklist. The
// original xdp_module carried an equivalent BlockingReason enum
// (NoBlocking/CommandLineArgument/BadProofOfWork/EventFromTezedge);
// this rewrite keeps it as a closed type attached to every insertion
// instead of a bare log string, so the daemon's log lines and any
// future inspection of the blacklist can distinguish "why" uniformly.
type Reason uint8

const (
	// ReasonCommandLineArgument: seeded at startup from -b/--blacklist.
	ReasonCommandLineArgument Reason = iota
	// ReasonBadProofOfWork: the handshake's PoW stamp failed verification,
	// or the handshake payload was too short to carry one.
	ReasonBadProofOfWork
	// ReasonAlreadyConnected: the presented PublicKey is already bound to
	// a different remote endpoint.
	ReasonAlreadyConnected
	// ReasonEventFromTezedge: blocked by an explicit Block command from
	// the node over the control socket.
	ReasonEventFromTezedge
)

func (r Reason) String() string {
	switch r {
	case ReasonCommandLineArgument:
		return "command-line-argument"
	case ReasonBadProofOfWork:
		return "bad-proof-of-work"
	case ReasonAlreadyConnected:
		return "already-connected"
	case ReasonEventFromTezedge:
		return "event-from-tezedge"
	default:
		return "unknown"
	}
}

package network

// PublicKeySize is the length of a peer's public key as carried in the
// handshake payload.
const PublicKeySize = 32

// PowStampSize is the length of the raw proof-of-work stamp handed to
// the daemon for verification (bytes [4:60) of the handshake payload).
const PowStampSize = 56

// HandshakePrefixSize is the number of leading payload bytes the
// classifier inspects: a 4-byte preamble, a 32-byte public key and a
// 24-byte PoW suffix (the PoW stamp proper spans bytes [4:60), i.e. the
// key plus the suffix, without the preamble).
const HandshakePrefixSize = 60

// PublicKey is the peer identifier carried in handshake bytes [4:36).
type PublicKey [PublicKeySize]byte

// PowStamp is the raw material handed to the daemon for Blake2b
// verification: handshake bytes [4:60).
type PowStamp [PowStampSize]byte

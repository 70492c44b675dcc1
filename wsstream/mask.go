package wsstream

import (
	"crypto/rand"
	"encoding/binary"
)

// maskKind tags the three mask states a frame head can carry
// (RFC 6455 Section 5.3).
type maskKind uint8

const (
	// maskNone means the mask bit is clear: no key follows, payload is
	// not masked. Used for server-to-client frames.
	maskNone maskKind = iota
	// maskSkip means the mask bit is set but the key is all zeros: a
	// client satisfies "clients must mask" without paying for the XOR,
	// since XOR-ing with a zero key is a no-op.
	maskSkip
	// maskKey means the mask bit is set and the key is non-zero.
	maskKey
)

// Mask is a frame head's masking state: none, a zero ("skip") key, or
// a concrete non-zero key.
type Mask struct {
	kind maskKind
	key  [4]byte
}

// NoMask is the server-side mask state: no key, no XOR.
var NoMask = Mask{kind: maskNone}

// SkipMask declares the mask bit with an all-zero key: the protocol is
// satisfied but no XOR work is needed, since XOR-ing with zero is the
// identity.
var SkipMask = Mask{kind: maskSkip}

// NewKeyMask wraps a concrete, non-zero mask key.
func NewKeyMask(key [4]byte) Mask { return Mask{kind: maskKey, key: key} }

// IsSet reports whether the mask bit would be set on the wire for m.
func (m Mask) IsSet() bool { return m.kind != maskNone }

// Key returns the XOR key for m and whether the payload needs masking
// at all (false for both [NoMask] and [SkipMask]).
func (m Mask) Key() (key [4]byte, needsXOR bool) {
	if m.kind != maskKey {
		return [4]byte{}, false
	}
	return m.key, true
}

// maskFromByte parses the mask bit of a frame head's second byte. A
// set bit decodes to maskSkip; the frame decoder downgrades it to a
// concrete maskKey once the key bytes are available and found non-zero.
func maskFromByte(b byte) (Mask, error) {
	switch b & 0x80 {
	case 0x80:
		return SkipMask, nil
	case 0x00:
		return NoMask, nil
	default:
		return Mask{}, ErrIllegalMask
	}
}

// flag returns the mask-bit byte to OR into a frame head's second byte.
func (m Mask) flag() byte {
	if m.kind == maskNone {
		return 0x00
	}
	return 0x80
}

// NewMaskKey returns a fresh, cryptographically random 32-bit mask key.
//
// spec.md explicitly places the choice of random source out of scope
// beyond "returns cryptographically adequate 16 random bytes" (for the
// handshake key) and, by the same reasoning, 4 random bytes here;
// crypto/rand satisfies both without pulling in a third-party RNG.
func NewMaskKey() [4]byte {
	var key [4]byte
	_, _ = rand.Read(key[:])
	return key
}

// ApplyMask XORs key into buf byte by byte, cycling through the 4 key
// bytes. It is its own inverse: applying it twice with the same key
// restores the original bytes.
func ApplyMask(key [4]byte, buf []byte) {
	for i := range buf {
		buf[i] ^= key[i&3]
	}
}

// ApplyMaskOffset behaves like [ApplyMask], but treats buf as starting
// at byte offset off of the masked region instead of byte 0, so the
// key cycles from phase off%4. RFC 6455 Section 5.3 indexes the mask
// by position within the payload, not within whatever transport read
// happened to deliver a given chunk of it; a payload split across
// several reads must resume masking at the phase the prior chunk left
// off, not restart at phase 0.
func ApplyMaskOffset(key [4]byte, off int, buf []byte) {
	for i := range buf {
		buf[i] ^= key[(off+i)&3]
	}
}

// ApplyMaskWordwise is bitwise equivalent to [ApplyMask] but XORs 8 and
// then 4 bytes at a time via [encoding/binary.NativeEndian], falling
// back to per-byte XOR for the final 0-3 byte remainder. Grounded on
// the chunked masking in pascaldekloe/websocket's frame reader, which
// takes the same "native uint64, then uint32, then tail" approach.
func ApplyMaskWordwise(key [4]byte, buf []byte) {
	k32 := binary.NativeEndian.Uint32(key[:])
	k64 := uint64(k32)<<32 | uint64(k32)

	for len(buf) >= 8 {
		v := binary.NativeEndian.Uint64(buf) ^ k64
		binary.NativeEndian.PutUint64(buf, v)
		buf = buf[8:]
	}
	if len(buf) >= 4 {
		v := binary.NativeEndian.Uint32(buf) ^ k32
		binary.NativeEndian.PutUint32(buf, v)
		buf = buf[4:]
	}
	for i := range buf {
		buf[i] ^= key[i]
	}
}

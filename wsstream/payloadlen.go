package wsstream

// lengthKind tags which on-wire encoding a PayloadLen uses.
type lengthKind uint8

const (
	lengthStandard  lengthKind = iota // 7-bit, 0-125
	lengthExtended16                 // 126: 16-bit big-endian follows
	lengthExtended64                 // 127: 64-bit big-endian follows
)

// PayloadLen is a frame payload length tagged by its minimal on-wire
// encoding (RFC 6455 Section 5.2).
type PayloadLen struct {
	kind lengthKind
	n    uint64
}

// NewPayloadLen chooses the minimum encoding for n.
func NewPayloadLen(n uint64) PayloadLen {
	switch {
	case n < 126:
		return PayloadLen{kind: lengthStandard, n: n}
	case n < 65536:
		return PayloadLen{kind: lengthExtended16, n: n}
	default:
		return PayloadLen{kind: lengthExtended64, n: n}
	}
}

// lengthFromFlag reads the 7-bit length flag of a frame head's second
// byte. A flag of 126 or 127 yields an Extended16 or Extended64
// PayloadLen whose number is still 0: the caller must read 2 or 8
// extra bytes to learn the real length.
func lengthFromFlag(b byte) PayloadLen {
	switch b & 0x7f {
	case 126:
		return PayloadLen{kind: lengthExtended16}
	case 127:
		return PayloadLen{kind: lengthExtended64}
	default:
		return PayloadLen{kind: lengthStandard, n: uint64(b & 0x7f)}
	}
}

// Num returns the decoded payload length.
func (p PayloadLen) Num() uint64 { return p.n }

// flag returns the byte to OR into a frame head's length field.
func (p PayloadLen) flag() byte {
	switch p.kind {
	case lengthExtended16:
		return 126
	case lengthExtended64:
		return 127
	default:
		return byte(p.n)
	}
}

// encodedExtraBytes is the number of bytes, beyond the 2-byte head,
// needed to carry the extended length (0, 2, or 8).
func (p PayloadLen) encodedExtraBytes() int {
	switch p.kind {
	case lengthExtended16:
		return 2
	case lengthExtended64:
		return 8
	default:
		return 0
	}
}

package wsstream

import "encoding/binary"

// FrameHead is the 2-14 byte RFC 6455 frame header that precedes a
// frame's payload.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-------+-+-------------+-------------------------------+
//	|F|R|R|R| opcode|M| Payload len |    Extended payload length    |
//	|I|S|S|S|  (4)  |A|     (7)     |             (16/64)           |
//	|N|V|V|V|       |S|             |   (if payload len==126/127)   |
//	| |1|2|3|       |K|             |                               |
//	+-+-+-+-+-------+-+-------------+ - - - - - - - - - - - - - - - +
//	|     Extended payload length continued, if payload len == 127  |
//	+ - - - - - - - - - - - - - - - +-------------------------------+
//	|                               |Masking-key, if MASK set to 1  |
//	+-------------------------------+-------------------------------+
//	| Masking-key (continued)       |          Payload Data         |
//	+-------------------------------- - - - - - - - - - - - - - - - +
type FrameHead struct {
	Fin    Fin
	OpCode OpCode
	Mask   Mask
	Length PayloadLen
}

// EncodedLen returns the exact number of bytes Encode will write: 2 +
// {0,2,8} extended-length bytes + {0,4} mask-key bytes, always <= 14.
func (h FrameHead) EncodedLen() int {
	n := 2 + h.Length.encodedExtraBytes()
	if h.Mask.IsSet() {
		n += 4
	}
	return n
}

// Encode writes h to buf, returning the number of bytes written.
// Returns [ErrNotEnoughCapacity] if buf is shorter than [FrameHead.EncodedLen].
func (h FrameHead) Encode(buf []byte) (int, error) {
	n := h.EncodedLen()
	if len(buf) < n {
		return 0, ErrNotEnoughCapacity
	}
	h.EncodeUnchecked(buf)
	return n, nil
}

// EncodeUnchecked writes h to buf without a capacity check. The caller
// must guarantee buf has at least [headCapacity] (14) bytes; calling
// it on a shorter buffer is undefined (it will panic from an
// out-of-bounds slice write, not silently corrupt memory, but the
// contract is the same one spec.md §4.2 describes for lightws's
// unsafe variant: the caller owns the guarantee).
func (h FrameHead) EncodeUnchecked(buf []byte) {
	_ = buf[1] // bounds check hint, like the teacher's header[1] writes

	buf[0] = byte(h.Fin) | byte(h.OpCode)
	buf[1] = h.Mask.flag() | h.Length.flag()
	pos := 2

	switch h.Length.kind {
	case lengthExtended16:
		binary.BigEndian.PutUint16(buf[pos:], uint16(h.Length.n))
		pos += 2
	case lengthExtended64:
		binary.BigEndian.PutUint64(buf[pos:], h.Length.n)
		pos += 8
	}

	if key, ok := h.Mask.Key(); h.Mask.IsSet() {
		if ok {
			copy(buf[pos:pos+4], key[:])
		} else {
			copy(buf[pos:pos+4], []byte{0, 0, 0, 0})
		}
	}
}

// DecodeFrameHead parses a FrameHead from the front of buf, returning
// the head and the number of bytes consumed. Returns
// [ErrNotEnoughData] if buf does not yet hold a complete head.
func DecodeFrameHead(buf []byte) (FrameHead, int, error) {
	if len(buf) < 2 {
		return FrameHead{}, 0, ErrNotEnoughData
	}

	fin, err := finFromByte(buf[0])
	if err != nil {
		return FrameHead{}, 0, err
	}
	opcode, err := opcodeFromByte(buf[0])
	if err != nil {
		return FrameHead{}, 0, err
	}
	mask, err := maskFromByte(buf[1])
	if err != nil {
		return FrameHead{}, 0, err
	}
	length := lengthFromFlag(buf[1])

	n := 2
	switch length.kind {
	case lengthExtended16:
		if len(buf)-n < 2 {
			return FrameHead{}, 0, ErrNotEnoughData
		}
		length = PayloadLen{kind: lengthExtended16, n: uint64(binary.BigEndian.Uint16(buf[n : n+2]))}
		n += 2
	case lengthExtended64:
		if len(buf)-n < 8 {
			return FrameHead{}, 0, ErrNotEnoughData
		}
		length = PayloadLen{kind: lengthExtended64, n: binary.BigEndian.Uint64(buf[n : n+8])}
		n += 8
	}

	if mask.kind != maskNone {
		if len(buf)-n < 4 {
			return FrameHead{}, 0, ErrNotEnoughData
		}
		var key [4]byte
		copy(key[:], buf[n:n+4])
		if key == ([4]byte{}) {
			mask = SkipMask
		} else {
			mask = NewKeyMask(key)
		}
		n += 4
	}

	return FrameHead{Fin: fin, OpCode: opcode, Mask: mask, Length: length}, n, nil
}

package wsstream

// maxControlPayload is the largest legal control-frame payload
// (RFC 6455 Section 5.5), and also the capacity of a [PingBuffer].
const maxControlPayload = 125

// headCapacity is the largest possible frame head: 2 (base) + 8
// (64-bit extended length) + 4 (mask key).
const headCapacity = 14

// fixedBuffer is a fixed-capacity inline buffer with independent read
// and write cursors. It backs both [HeadBuffer] (capacity 14, holding
// a frame head that straddled two transport calls) and [PingBuffer]
// (capacity 125, holding the most recent ping payload): both need the
// same "absorb a partial write, drain from the front" discipline, so
// one array-backed type serves both, sized to the larger of the two
// and logically capped per use.
//
// rd == wr means empty; wr == cap means full. Invariants
// (0 <= rd <= wr <= cap) are never checked at runtime — callers own
// them, matching the zero-allocation, zero-validation contract of the
// rest of this package's hot path.
type fixedBuffer struct {
	rd, wr uint8
	cap    uint8
	buf    [maxControlPayload]byte
}

func newFixedBuffer(capacity uint8) fixedBuffer {
	return fixedBuffer{cap: capacity}
}

// HeadBuffer holds a partial RFC 6455 frame head across transport
// reads or writes.
type HeadBuffer = fixedBuffer

func newHeadBuffer() HeadBuffer { return newFixedBuffer(headCapacity) }

// headBufferFromData builds a [HeadBuffer] pre-filled with data, used
// when a ProcessBuf span ends mid-head and the tail must be carried
// forward to the next transport read.
func headBufferFromData(data []byte) HeadBuffer {
	var h HeadBuffer
	h.cap = headCapacity
	copy(h.buf[:], data)
	h.wr = uint8(len(data))
	return h
}

// PingBuffer holds the most recently received ping payload.
type PingBuffer = fixedBuffer

func newPingBuffer() PingBuffer { return newFixedBuffer(maxControlPayload) }

// RdLeft is the number of unread bytes.
func (b *fixedBuffer) RdLeft() int { return int(b.wr - b.rd) }

// WrLeft is the remaining writable capacity.
func (b *fixedBuffer) WrLeft() int { return int(b.cap - b.wr) }

// IsEmpty reports whether the buffer holds no data.
func (b *fixedBuffer) IsEmpty() bool { return b.wr == 0 }

// Readable returns the unread portion of the buffer.
func (b *fixedBuffer) Readable() []byte { return b.buf[b.rd:b.wr] }

// Writable returns the unwritten portion of the buffer.
func (b *fixedBuffer) Writable() []byte { return b.buf[b.wr:b.cap] }

// AdvanceRd moves the read cursor forward by n bytes.
func (b *fixedBuffer) AdvanceRd(n int) { b.rd += uint8(n) }

// AdvanceWr moves the write cursor forward by n bytes.
func (b *fixedBuffer) AdvanceWr(n int) { b.wr += uint8(n) }

// SetWr sets the write cursor directly, used after an encoder has
// filled the buffer from index 0.
func (b *fixedBuffer) SetWr(n int) { b.wr = uint8(n) }

// Reset empties the buffer without clearing its backing bytes.
func (b *fixedBuffer) Reset() { b.rd, b.wr = 0, 0 }

// ReplaceWithData overwrites the buffer's contents with data and
// resets both cursors, discarding whatever was previously stored.
func (b *fixedBuffer) ReplaceWithData(data []byte) {
	copy(b.buf[:], data)
	b.rd = 0
	b.wr = uint8(len(data))
}

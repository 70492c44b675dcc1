// Package wsstream implements a zero-allocation RFC 6455 WebSocket codec
// and byte-stream engine, intended for proxy-style relays.
//
// Unlike a message-oriented WebSocket library, wsstream never buffers a
// frame's payload: a [Stream] reads and writes directly into a
// caller-supplied buffer, masking and compacting payload bytes in place.
// Frame heads, in contrast, may straddle two transport calls; a
// [Stream] absorbs a partial head into a small inline buffer and
// resumes on the next call.
//
// The package is organized leaves-first, matching the dependency order
// a reader should study it in:
//
//   - headbuffer.go   fixed inline buffers with independent cursors
//   - opcode.go       Fin / OpCode
//   - payloadlen.go   PayloadLen, the 7/16/64-bit length encoding
//   - mask.go         Mask and the XOR masking algorithm
//   - frame.go        FrameHead encode/decode
//   - role.go         Role: the four client/server masking behaviors
//   - state.go        ReadState / WriteState / HeartBeat
//   - stream.go       Stream: the read and write state machines
//   - handshake.go    the HTTP/1.1 Upgrade handshake codec
//   - endpoint.go     one blocking handshake exchange: Connect, Accept
//   - split.go        splitting a Stream into independent read/write halves
//
// What this package does not do: text-frame UTF-8 validation,
// permessage extensions, fragment reassembly across application reads,
// sending ping/pong on its own, close-frame reciprocation, or any
// active flow control beyond what the underlying transport already
// provides. Callers needing those build them on top.
package wsstream

package wsstream

import "errors"

// Frame-layer errors (RFC 6455 Section 5.2).
//
// Every decode step returns one of these directly; callers that wrap a
// [Stream] treat any frame error as fatal for that Stream (the engine
// never attempts recovery from a malformed frame).
var (
	// ErrIllegalFin is returned when the FIN/RSV nibble of a frame head
	// byte is neither 0x80 nor 0x00 (RSV1-3 bits set, which this engine
	// never negotiates an extension for).
	ErrIllegalFin = errors.New("wsstream: illegal fin/rsv bits")

	// ErrIllegalOpCode is returned for opcodes 0x3-0x7 and 0xB-0xF,
	// which RFC 6455 reserves.
	ErrIllegalOpCode = errors.New("wsstream: illegal opcode")

	// ErrIllegalMask is returned when the mask bit's byte value, after
	// masking off the low 7 length bits, is neither 0x80 nor 0x00.
	ErrIllegalMask = errors.New("wsstream: illegal mask bit")

	// ErrIllegalData is returned when a ping frame declares a payload
	// length over 125 bytes (RFC 6455 Section 5.5).
	ErrIllegalData = errors.New("wsstream: control frame payload too large")

	// ErrNotEnoughData signals that the buffer does not yet hold a
	// complete frame head or handshake message. The Stream read path and
	// the handshake receive loop treat it as transient and read more;
	// [RecvRequest] and [RecvResponse] return it only when the transport
	// ends before a complete message arrived.
	ErrNotEnoughData = errors.New("wsstream: not enough data")

	// ErrNotEnoughCapacity is returned by an encoder when the
	// destination buffer is smaller than the encoded size.
	ErrNotEnoughCapacity = errors.New("wsstream: not enough capacity")

	// ErrUnsupportedOpcode is returned for Text and Pong frames, which
	// this engine's read path rejects outright: text decoding (UTF-8
	// validation) is out of scope, and the engine never sends a ping of
	// its own, so it should never observe a pong.
	ErrUnsupportedOpcode = errors.New("wsstream: unsupported opcode")
)

// Handshake-layer errors (RFC 6455 Section 4).
var (
	ErrHTTPVersion           = errors.New("wsstream: handshake: unsupported HTTP version")
	ErrHTTPMethod            = errors.New("wsstream: handshake: method must be GET")
	ErrHTTPStatusCode        = errors.New("wsstream: handshake: status must be 101")
	ErrHTTPHost              = errors.New("wsstream: handshake: missing or empty host header")
	ErrUpgrade               = errors.New("wsstream: handshake: missing or invalid upgrade header")
	ErrConnection            = errors.New("wsstream: handshake: missing or invalid connection header")
	ErrSecWebSocketKey       = errors.New("wsstream: handshake: missing sec-websocket-key header")
	ErrSecWebSocketAccept    = errors.New("wsstream: handshake: sec-websocket-accept mismatch")
	ErrSecWebSocketVersion   = errors.New("wsstream: handshake: sec-websocket-version must be 13")
	ErrHTTPParse             = errors.New("wsstream: handshake: malformed HTTP message")
	ErrHostMismatch          = errors.New("wsstream: handshake: unexpected host")
	ErrPathMismatch          = errors.New("wsstream: handshake: unexpected path")
	ErrTooManyHeaders        = errors.New("wsstream: handshake: too many headers")
)

// Control errors.
var (
	// ErrSetMaskInWrite is returned by [Stream.SetMaskKey] when a write
	// is mid-frame: changing the mask key would corrupt the frame head
	// already committed to the wire.
	ErrSetMaskInWrite = errors.New("wsstream: cannot change mask key mid-write")

	// ErrWriteZero is the terminal write-side state after the
	// underlying transport accepted zero bytes. It is not a recoverable
	// error; [Stream.IsWriteZero] detects it without an error check.
	ErrWriteZero = errors.New("wsstream: write accepted zero bytes")
)

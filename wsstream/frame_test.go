package wsstream

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrameHeadRoundTrip(t *testing.T) {
	lengths := []uint64{0, 1, 125, 126, 65535, 65536, 1 << 32, 1<<32 + 1}
	masks := []Mask{NoMask, SkipMask, NewKeyMask([4]byte{1, 2, 3, 4})}
	ops := []OpCode{OpContinuation, OpText, OpBinary, OpClose, OpPing, OpPong}

	for _, length := range lengths {
		for _, mask := range masks {
			for _, op := range ops {
				want := FrameHead{Fin: FinSet, OpCode: op, Mask: mask, Length: NewPayloadLen(length)}

				buf := make([]byte, headCapacity)
				n, err := want.Encode(buf)
				if err != nil {
					t.Fatalf("Encode(%+v): %v", want, err)
				}
				if n != want.EncodedLen() {
					t.Fatalf("Encode(%+v) wrote %d bytes, EncodedLen() = %d", want, n, want.EncodedLen())
				}

				got, parsed, err := DecodeFrameHead(buf[:n])
				if err != nil {
					t.Fatalf("DecodeFrameHead: %v", err)
				}
				if parsed != n {
					t.Fatalf("DecodeFrameHead consumed %d bytes, want %d", parsed, n)
				}
				if diff := cmp.Diff(want, got, cmp.AllowUnexported(FrameHead{}, PayloadLen{}, Mask{})); diff != "" {
					t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}
}

func TestDecodeFrameHeadNotEnoughData(t *testing.T) {
	head := FrameHead{Fin: FinSet, OpCode: OpBinary, Mask: NewKeyMask([4]byte{9, 9, 9, 9}), Length: NewPayloadLen(70000)}
	buf := make([]byte, headCapacity)
	n, err := head.Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for i := 0; i < n; i++ {
		if _, _, err := DecodeFrameHead(buf[:i]); !errors.Is(err, ErrNotEnoughData) {
			t.Errorf("DecodeFrameHead(buf[:%d]) error = %v, want ErrNotEnoughData", i, err)
		}
	}
	if _, _, err := DecodeFrameHead(buf[:n]); err != nil {
		t.Errorf("DecodeFrameHead(buf[:%d]) (full head) error = %v, want nil", n, err)
	}
}

func TestEncodeNotEnoughCapacity(t *testing.T) {
	head := FrameHead{Fin: FinSet, OpCode: OpBinary, Mask: NewKeyMask([4]byte{1, 1, 1, 1}), Length: NewPayloadLen(1 << 40)}
	buf := make([]byte, head.EncodedLen()-1)
	if _, err := head.Encode(buf); !errors.Is(err, ErrNotEnoughCapacity) {
		t.Errorf("Encode error = %v, want ErrNotEnoughCapacity", err)
	}
}

func TestDecodeZeroMaskKeyCollapsesToSkip(t *testing.T) {
	head := FrameHead{Fin: FinSet, OpCode: OpBinary, Mask: NewKeyMask([4]byte{0, 0, 0, 0}), Length: NewPayloadLen(3)}
	buf := make([]byte, headCapacity)
	n, err := head.Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := DecodeFrameHead(buf[:n])
	if err != nil {
		t.Fatalf("DecodeFrameHead: %v", err)
	}
	if got.Mask.kind != maskSkip {
		t.Errorf("decoded mask kind = %v, want maskSkip (all-zero key collapses)", got.Mask.kind)
	}
}

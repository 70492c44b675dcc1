package wsstream

import (
	"bytes"
	"io"
	"testing"
)

// pairConn connects a Connect-side and an Accept-side test directly:
// each side's outbound bytes become the other side's inbound bytes, a
// Go stand-in for a loopback socket pair. Backed by io.Pipe so a Read
// genuinely blocks until its peer goroutine Writes, instead of racing
// against an empty buffer the way a plain bytes.Buffer pair would.
type pairConn struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func newPairConn() (client, server *pairConn) {
	clientToServerR, clientToServerW := io.Pipe()
	serverToClientR, serverToClientW := io.Pipe()
	client = &pairConn{r: serverToClientR, w: clientToServerW}
	server = &pairConn{r: clientToServerR, w: serverToClientW}
	return client, server
}

func (c *pairConn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *pairConn) Write(p []byte) (int, error) { return c.w.Write(p) }

func TestConnectAcceptRoundTrip(t *testing.T) {
	client, server := newPairConn()

	type result struct {
		stream *Stream[*pairConn]
		err    error
	}
	serverCh := make(chan result, 1)
	go func() {
		buf := make([]byte, 4096)
		s, err := Accept[*pairConn](server, buf, NewServerRole(), "example.com", "/ws")
		serverCh <- result{s, err}
	}()

	buf := make([]byte, 4096)
	clientStream, err := Connect[*pairConn](client, buf, NewStandardClientRole(), "example.com", "/ws")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	res := <-serverCh
	if res.err != nil {
		t.Fatalf("Accept: %v", res.err)
	}
	if clientStream == nil || res.stream == nil {
		t.Fatal("expected non-nil streams from both sides")
	}
}

func TestAcceptRejectsHostMismatch(t *testing.T) {
	client, server := newPairConn()

	buf := make([]byte, 4096)
	go func() {
		_, _ = Connect[*pairConn](client, buf, NewStandardClientRole(), "wrong.example.com", "/ws")
	}()

	serverBuf := make([]byte, 4096)
	if _, err := Accept[*pairConn](server, serverBuf, NewServerRole(), "example.com", "/ws"); err != ErrHostMismatch {
		t.Errorf("Accept error = %v, want ErrHostMismatch", err)
	}
}

func TestAcceptRejectsPathMismatch(t *testing.T) {
	client, server := newPairConn()

	clientBuf := make([]byte, 4096)
	go func() {
		_, _ = Connect[*pairConn](client, clientBuf, NewStandardClientRole(), "example.com", "/other")
	}()

	serverBuf := make([]byte, 4096)
	if _, err := Accept[*pairConn](server, serverBuf, NewServerRole(), "example.com", "/ws"); err != ErrPathMismatch {
		t.Errorf("Accept error = %v, want ErrPathMismatch", err)
	}
}

func TestConnectRejectsBadAccept(t *testing.T) {
	client, server := newPairConn()

	// Drain and answer the client's request with a bogus accept value
	// instead of going through Accept, to force DeriveAcceptKey
	// verification to fail on the client side.
	go func() {
		reqBuf := make([]byte, 4096)
		var storage [maxAllowHeaders]Header
		req := NewRequest(storage[:])
		if _, err := RecvRequest(server, reqBuf, req); err != nil {
			return
		}
		resp := &Response{SecAccept: []byte("not-the-right-accept-value==")}
		respBuf := make([]byte, 4096)
		_, _ = SendResponse(server, respBuf, resp)
	}()

	clientBuf := make([]byte, 4096)
	if _, err := Connect[*pairConn](client, clientBuf, NewStandardClientRole(), "example.com", "/ws"); err != ErrSecWebSocketAccept {
		t.Errorf("Connect error = %v, want ErrSecWebSocketAccept", err)
	}
}

func TestConnectedStreamsExchangeFrames(t *testing.T) {
	client, server := newPairConn()

	serverCh := make(chan *Stream[*pairConn], 1)
	go func() {
		buf := make([]byte, 4096)
		s, err := Accept[*pairConn](server, buf, NewServerRole(), "example.com", "/ws")
		if err != nil {
			serverCh <- nil
			return
		}
		serverCh <- s
	}()

	clientBuf := make([]byte, 4096)
	clientStream, err := Connect[*pairConn](client, clientBuf, NewStandardClientRole(), "example.com", "/ws")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	serverStream := <-serverCh
	if serverStream == nil {
		t.Fatal("Accept failed in goroutine")
	}

	payload := []byte("hello over a handshaked stream")
	// The client role masks payload in place; compare against a copy.
	want := append([]byte(nil), payload...)
	guardedClient := clientStream.Guard()
	// A pipe Write blocks until the peer reads, so the client writes
	// from its own goroutine while the server reads here.
	writeErr := make(chan error, 1)
	go func() {
		written := 0
		for written < len(payload) {
			n, werr := guardedClient.Write(payload[written:])
			if werr != nil {
				writeErr <- werr
				return
			}
			written += n
		}
		writeErr <- nil
	}()

	guardedServer := serverStream.Guard()
	readBuf := make([]byte, 256)
	var got []byte
	for len(got) < len(want) {
		n, rerr := guardedServer.Read(readBuf)
		if rerr != nil {
			t.Fatalf("server Read: %v", rerr)
		}
		got = append(got, readBuf[:n]...)
	}
	if werr := <-writeErr; werr != nil {
		t.Fatalf("client Write: %v", werr)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecvHandshakeNotEnoughCapacity(t *testing.T) {
	client, server := newPairConn()
	go func() {
		clientBuf := make([]byte, 4096)
		_, _ = Connect[*pairConn](client, clientBuf, NewStandardClientRole(), "example.com", "/ws")
	}()

	tinyBuf := make([]byte, 8)
	var storage [maxAllowHeaders]Header
	req := NewRequest(storage[:])
	if _, err := RecvRequest(server, tinyBuf, req); err != ErrNotEnoughCapacity {
		t.Errorf("RecvRequest error = %v, want ErrNotEnoughCapacity", err)
	}
}

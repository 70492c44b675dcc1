package wsstream

import "net"

// Split returns two Streams over the same net.Conn, one meant for
// reading and one for writing, each with its own independent read or
// write state.
//
// lightws gives its Rust Stream a try_clone (duplicating the
// underlying fd) because a borrowed TcpStream cannot be read from one
// thread and written from another without an owned duplicate. Go's
// net.Conn already documents concurrent use from multiple goroutines
// — "Multiple goroutines may invoke methods on a Conn simultaneously"
// — so no fd duplication is needed here: both returned Streams simply
// share the same conn, and the caller hands the read half to a reader
// goroutine and the write half to a writer goroutine.
func Split[Conn net.Conn](conn Conn, role Role) (reader *Stream[Conn], writer *Stream[Conn]) {
	return NewStream(conn, role), NewStream(conn, role)
}

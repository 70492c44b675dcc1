// Package metrics holds the small set of counters cmd/wsrelay and
// cmd/wsecho update: connections handled, frames relayed, bytes
// moved. It intentionally stays far simpler than a full metrics
// exporter — nothing in the retrieved example pack pulls in a
// Prometheus or OpenTelemetry client, so cmd/wsrelay surfaces these
// counters by logging a periodic snapshot instead of serving a scrape
// endpoint; cmd/wsecho updates them but does not log them.
package metrics

import "sync/atomic"

// Counters is a set of process-wide relay counters. The zero value is
// ready to use; all fields are safe for concurrent use.
type Counters struct {
	ConnectionsAccepted atomic.Int64
	ConnectionsActive   atomic.Int64
	FramesRelayed       atomic.Int64
	BytesRelayed        atomic.Int64
	HandshakeFailures   atomic.Int64
}

// Snapshot is a point-in-time copy of a Counters, suitable for logging
// or JSON encoding without further atomic reads.
type Snapshot struct {
	ConnectionsAccepted int64
	ConnectionsActive   int64
	FramesRelayed       int64
	BytesRelayed        int64
	HandshakeFailures   int64
}

// Snapshot reads every counter once and returns the result.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		ConnectionsAccepted: c.ConnectionsAccepted.Load(),
		ConnectionsActive:   c.ConnectionsActive.Load(),
		FramesRelayed:       c.FramesRelayed.Load(),
		BytesRelayed:        c.BytesRelayed.Load(),
		HandshakeFailures:   c.HandshakeFailures.Load(),
	}
}

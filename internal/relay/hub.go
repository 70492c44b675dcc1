// Package relay implements the connection registry cmd/wsrelay uses
// to fan one client's frames out to every other connected client.
// Adapted from the teacher's connection Hub (register/unregister/
// broadcast over a channel-driven event loop), rebuilt on top of
// wsstream.Stream instead of a full-message websocket.Conn: a relay
// client here is a net.Conn wrapped in a guarded Stream, and
// "broadcast" forwards whatever payload a single Read call returned,
// not a reassembled application message.
package relay

import (
	"net"
	"sync"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"

	"github.com/coregx/wsstream/pkg/metrics"
	"github.com/coregx/wsstream/wsstream"
)

// Client is one relayed connection: its handshaked Stream plus enough
// identity for logging.
type Client struct {
	ID     string
	Conn   net.Conn
	Stream *wsstream.Stream[net.Conn]
}

// NewClient wraps conn in a guarded Stream using role, ready to
// register with a Hub.
func NewClient(conn net.Conn, role wsstream.Role) *Client {
	return &Client{
		ID:     shortuuid.New(),
		Conn:   conn,
		Stream: wsstream.NewStream[net.Conn](conn, role).Guard(),
	}
}

// Close closes the underlying connection. Safe to call more than
// once; subsequent calls surface net.Conn's own "already closed"
// error, which callers in this package ignore.
func (c *Client) Close() error { return c.Conn.Close() }

// Hub manages the set of relayed clients and fans payloads out to all
// of them except the sender.
//
// Example Usage:
//
//	hub := relay.NewHub(metrics, log)
//	go hub.Run()
//	defer hub.Close()
//
//	hub.Register(client)
//	defer hub.Unregister(client)
//	hub.Broadcast(client, payload)
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg

	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
	mu     sync.RWMutex

	metrics *metrics.Counters
	log     zerolog.Logger
}

type broadcastMsg struct {
	from    *Client
	payload []byte
}

// NewHub creates a new relay Hub. Run must be started in a goroutine
// before Register, Unregister, or Broadcast are used.
func NewHub(m *metrics.Counters, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 256),
		done:       make(chan struct{}),
		metrics:    m,
		log:        log,
	}
}

// Run starts the Hub's event loop. It blocks until Close is called.
func (h *Hub) Run() {
	h.wg.Add(1)
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.ConnectionsActive.Add(1)
			h.log.Info().Str("client", client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				_ = client.Close()
				h.metrics.ConnectionsActive.Add(-1)
				h.log.Info().Str("client", client.ID).Msg("client unregistered")
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if client == msg.from {
					continue
				}
				go h.deliver(client, msg.payload)
			}
			h.mu.RUnlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) deliver(c *Client, payload []byte) {
	written := 0
	for written < len(payload) {
		n, err := c.Stream.Write(payload[written:])
		if err != nil || c.Stream.IsWriteZero() {
			h.log.Warn().Str("client", c.ID).Err(err).Msg("relay write failed, dropping client")
			h.Unregister(c)
			return
		}
		written += n
	}
	h.metrics.FramesRelayed.Add(1)
	h.metrics.BytesRelayed.Add(int64(len(payload)))
}

// Register adds a client to the Hub.
func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	h.mu.RUnlock()
	h.register <- client
}

// Unregister removes a client from the Hub and closes its connection.
// Safe to call more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	h.mu.RUnlock()
	h.unregister <- client
}

// Broadcast queues payload for delivery to every registered client
// except from. It returns once the message is queued; the queue holds
// 256 messages, and Broadcast blocks while it is full.
func (h *Hub) Broadcast(from *Client, payload []byte) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	h.mu.RUnlock()
	h.broadcast <- broadcastMsg{from: from, payload: payload}
}

// ClientCount returns the number of currently registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the Hub's event loop and disconnects all clients. Safe
// to call more than once.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.done)
	h.wg.Wait()

	h.mu.Lock()
	for client := range h.clients {
		_ = client.Close()
	}
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()

	close(h.register)
	close(h.unregister)
	close(h.broadcast)
	return nil
}

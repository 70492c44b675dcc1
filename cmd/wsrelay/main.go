// Command wsrelay accepts raw TCP connections, performs a WebSocket
// upgrade handshake on each, and relays the payload bytes of every
// Read from one client to every other connected client. It is a
// demonstration of wsstream
// wired into a small multi-client server, not part of the core codec
// engine.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
	"github.com/tzrikka/xdg"

	"github.com/coregx/wsstream/internal/relay"
	"github.com/coregx/wsstream/internal/relayconfig"
	"github.com/coregx/wsstream/pkg/metrics"
	"github.com/coregx/wsstream/wsstream"
)

const (
	configDirName  = "wsrelay"
	configFileName = "config.toml"
)

func main() {
	cmd := &cli.Command{
		Name:  "wsrelay",
		Usage: "relay WebSocket frames between connected clients",
		Flags: relayconfig.Flags(configFile()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, relayconfig.FromCommand(cmd))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wsrelay: %v\n", err)
		os.Exit(1)
	}
}

// configFile returns the path to wsrelay's TOML config file, creating
// an empty one on first run.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, configDirName, configFileName)
	if err != nil {
		// No config file available; flags still work via defaults,
		// environment variables, and command-line arguments.
		return altsrc.StringSourcer("")
	}
	return altsrc.StringSourcer(path)
}

func newLogger(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(ctx context.Context, cfg relayconfig.Config) error {
	log := newLogger(cfg.PrettyLog)
	counters := &metrics.Counters{}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}
	defer ln.Close()
	log.Info().Str("addr", cfg.ListenAddr).Str("path", cfg.Path).Msg("wsrelay listening")

	hub := relay.NewHub(counters, log)
	go hub.Run()
	defer hub.Close()

	go logMetricsPeriodically(ctx, log, counters)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		counters.ConnectionsAccepted.Add(1)
		go handleConn(conn, cfg, hub, counters, log)
	}
}

func handleConn(conn net.Conn, cfg relayconfig.Config, hub *relay.Hub, counters *metrics.Counters, log zerolog.Logger) {
	buf := make([]byte, 4096)
	stream, err := wsstream.Accept[net.Conn](conn, buf, wsstream.NewServerRole(), cfg.Host, cfg.Path)
	if err != nil {
		counters.HandshakeFailures.Add(1)
		log.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("handshake failed")
		_ = conn.Close()
		return
	}

	client := &relay.Client{ID: shortuuid.New(), Conn: conn, Stream: stream.Guard()}
	hub.Register(client)
	defer hub.Unregister(client)

	readBuf := make([]byte, 4096)
	for {
		n, err := client.Stream.Read(readBuf)
		if err != nil {
			log.Debug().Err(err).Str("client", client.ID).Msg("read failed, closing")
			return
		}
		if client.Stream.IsReadEnd() {
			return
		}
		if n == 0 {
			continue
		}
		payload := append([]byte(nil), readBuf[:n]...)
		hub.Broadcast(client, payload)
	}
}

func logMetricsPeriodically(ctx context.Context, log zerolog.Logger, counters *metrics.Counters) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := counters.Snapshot()
			log.Info().
				Int64("connections_active", s.ConnectionsActive).
				Int64("connections_accepted", s.ConnectionsAccepted).
				Int64("frames_relayed", s.FramesRelayed).
				Int64("bytes_relayed", s.BytesRelayed).
				Int64("handshake_failures", s.HandshakeFailures).
				Msg("relay metrics")
		}
	}
}

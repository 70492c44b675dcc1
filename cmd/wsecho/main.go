// Command wsecho accepts a WebSocket upgrade on each TCP connection
// and echoes back the payload bytes of every Read, unmodified, each
// Read's bytes going out as one new frame (incoming frame boundaries
// are not kept). It exists as a
// minimal demonstration of wsstream.Accept and Stream.Read/Write, the
// way the teacher repo ships its own echo-server example.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
	"github.com/tzrikka/xdg"

	"github.com/coregx/wsstream"
	"github.com/coregx/wsstream/internal/relayconfig"
	"github.com/coregx/wsstream/pkg/metrics"
)

func main() {
	cmd := &cli.Command{
		Name:  "wsecho",
		Usage: "echo every WebSocket frame back to its sender",
		Flags: relayconfig.Flags(configFile()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(relayconfig.FromCommand(cmd))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wsecho: %v\n", err)
		os.Exit(1)
	}
}

func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, "wsecho", "config.toml")
	if err != nil {
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

func run(cfg relayconfig.Config) error {
	log := newLogger(cfg.PrettyLog)
	counters := &metrics.Counters{}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}
	defer ln.Close()
	log.Info().Str("addr", cfg.ListenAddr).Str("path", cfg.Path).Msg("wsecho listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		counters.ConnectionsAccepted.Add(1)
		go echoConn(conn, cfg, counters, log)
	}
}

func echoConn(conn net.Conn, cfg relayconfig.Config, counters *metrics.Counters, log zerolog.Logger) {
	defer conn.Close()

	buf := make([]byte, 4096)
	stream, err := wsstream.Accept[net.Conn](conn, buf, wsstream.NewServerRole(), cfg.Host, cfg.Path)
	if err != nil {
		counters.HandshakeFailures.Add(1)
		log.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("handshake failed")
		return
	}
	counters.ConnectionsActive.Add(1)
	defer counters.ConnectionsActive.Add(-1)

	s := stream.Guard()
	readBuf := make([]byte, 4096)
	for {
		n, err := s.Read(readBuf)
		if err != nil {
			log.Debug().Err(err).Msg("read failed, closing")
			return
		}
		if s.IsReadEnd() {
			return
		}
		if n == 0 {
			continue
		}

		written := 0
		payload := readBuf[:n]
		for written < len(payload) {
			wn, werr := s.Write(payload[written:])
			if werr != nil || s.IsWriteZero() {
				log.Debug().Err(werr).Msg("write failed, closing")
				return
			}
			written += wn
		}
		counters.FramesRelayed.Add(1)
		counters.BytesRelayed.Add(int64(n))
	}
}

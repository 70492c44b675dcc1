// Package relayconfig defines the CLI flags shared by cmd/wsrelay and
// cmd/wsecho: listen address, upgrade path, expected Host header, and
// log format. Every flag can also be set via an environment variable
// or the TOML config file, following the layered-sources pattern
// internal/thrippy/flags.go uses in the retrieved example pack.
package relayconfig

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

const (
	// DefaultListenAddr is the default TCP address cmd/wsrelay and
	// cmd/wsecho bind to.
	DefaultListenAddr = "localhost:8080"
	// DefaultPath is the default upgrade path both servers accept.
	DefaultPath = "/ws"
)

// Flags returns the CLI flags common to both server binaries. path is
// the location of the TOML config file; each flag's value can also
// come from an environment variable or a matching [path] entry.
func Flags(path altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "listen-addr",
			Usage: "TCP address to accept WebSocket connections on",
			Value: DefaultListenAddr,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSRELAY_LISTEN_ADDR"),
				toml.TOML("server.listen_addr", path),
			),
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Host header required of an upgrade request",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSRELAY_HOST"),
				toml.TOML("server.host", path),
			),
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "HTTP path required of an upgrade request",
			Value: DefaultPath,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSRELAY_PATH"),
				toml.TOML("server.path", path),
			),
		},
		&cli.BoolFlag{
			Name:  "pretty-log",
			Usage: "human-readable console logging, instead of JSON",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WSRELAY_PRETTY_LOG"),
				toml.TOML("server.pretty_log", path),
			),
		},
	}
}

// Config is the resolved set of flags for one server run.
type Config struct {
	ListenAddr string
	Host       string
	Path       string
	PrettyLog  bool
}

// FromCommand reads a resolved [Config] out of cmd's flags, after
// cli.Command.Run has applied every configured source.
func FromCommand(cmd *cli.Command) Config {
	return Config{
		ListenAddr: cmd.String("listen-addr"),
		Host:       cmd.String("host"),
		Path:       cmd.String("path"),
		PrettyLog:  cmd.Bool("pretty-log"),
	}
}

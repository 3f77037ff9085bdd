// Package internal holds process-wide configuration sourced from
// command line flags and environment variables.
package internal

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Flag binds a command line flag to an environment variable fallback.
// Resolution order: explicit flag value, then environment variable,
// then the default.
type Flag struct {
	Name    string
	Env     string
	Default string
	Usage   string

	value string
}

// Resolve returns the effective value of the flag.
func (f *Flag) Resolve() string {
	if f.value != "" {
		return f.value
	}
	if v, ok := os.LookupEnv(f.Env); ok && v != "" {
		return v
	}
	return f.Default
}

// Flag definitions.
var (
	EnvFlag = Flag{
		Name:    "env",
		Env:     "ENV",
		Default: "dev",
		Usage:   "deployment environment (dev|prod)",
	}
	LogLevelFlag = Flag{
		Name:    "log-level",
		Env:     "LOG_LEVEL",
		Default: "info",
		Usage:   "log level (trace|debug|info|warn|error)",
	}
	LogFileFlag = Flag{
		Name:    "log-file",
		Env:     "LOG_FILE",
		Default: "",
		Usage:   "optional log file path; rotated automatically when set",
	}

	PortFlag = Flag{
		Name:    "port",
		Env:     "PORT",
		Default: "4000",
		Usage:   "UDP port the server listens on",
	}

	BoardWidthFlag = Flag{
		Name:    "board-width",
		Env:     "BOARD_WIDTH",
		Default: "80",
		Usage:   "playing field width in cells",
	}
	BoardHeightFlag = Flag{
		Name:    "board-height",
		Env:     "BOARD_HEIGHT",
		Default: "24",
		Usage:   "playing field height in cells",
	}

	ServerPingIntervalFlag = Flag{
		Name:    "ping-interval",
		Env:     "PING_INTERVAL",
		Default: "3s",
		Usage:   "interval between server heartbeat pings",
	}
	ServerReapIntervalFlag = Flag{
		Name:    "reap-interval",
		Env:     "REAP_INTERVAL",
		Default: "5s",
		Usage:   "interval between idle session sweeps",
	}
	SessionTimeoutFlag = Flag{
		Name:    "session-timeout",
		Env:     "SESSION_TIMEOUT",
		Default: "10s",
		Usage:   "idle duration after which a session is evicted",
	}
	ServerRenderFlag = Flag{
		Name:    "render",
		Env:     "RENDER",
		Default: "false",
		Usage:   "draw the board on the server terminal",
	}

	ClientHeartbeatIntervalFlag = Flag{
		Name:    "heartbeat-interval",
		Env:     "HEARTBEAT_INTERVAL",
		Default: "2s",
		Usage:   "interval between client heartbeats",
	}
	ClientServerAddrFlag = Flag{
		Name:    "server-addr",
		Env:     "SERVER_ADDR",
		Default: "127.0.0.1:4000",
		Usage:   "address of the server to connect to",
	}
	ClientDemoFlag = Flag{
		Name:    "demo",
		Env:     "DEMO",
		Default: "false",
		Usage:   "send a scripted message sequence instead of starting the interactive board",
	}
)

// RegisterCommandFlags registers the given flags on the command.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	for _, f := range flags {
		if f.Name == "" {
			return errors.New("flag name must not be empty")
		}
		cmd.PersistentFlags().StringVar(&f.value, f.Name, "", f.Usage)
	}
	return nil
}

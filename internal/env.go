package internal

import (
	"strconv"
	"time"

	"gameudp/internal/pkg/validate"

	"github.com/pkg/errors"
)

// Effective configuration values, populated by ValidateEnv.
var (
	Env      string
	LogLevel string
	LogFile  string

	Port uint16

	BoardWidth  uint32
	BoardHeight uint32

	ServerPingInterval time.Duration
	ServerReapInterval time.Duration
	SessionTimeout     time.Duration
	ServerRender       bool

	ClientHeartbeatInterval time.Duration
	ClientServerAddr        string
	ClientDemo              bool
)

type environment struct {
	Env      string `validate:"required,oneof=dev prod"`
	LogLevel string `validate:"required,oneof=trace debug info warn error"`

	Port uint16 `validate:"required"`

	BoardWidth  uint32 `validate:"required,gte=4"`
	BoardHeight uint32 `validate:"required,gte=6"`

	ServerPingInterval time.Duration `validate:"required,gt=0"`
	ServerReapInterval time.Duration `validate:"required,gt=0"`
	SessionTimeout     time.Duration `validate:"required,gt=0"`

	ClientHeartbeatInterval time.Duration `validate:"required,gt=0"`
	ClientServerAddr        string        `validate:"required,hostname_port"`
}

// ValidateEnv resolves all flags against the environment, validates the
// result and populates the package-level configuration values.
func ValidateEnv() error {
	port, err := strconv.ParseUint(PortFlag.Resolve(), 10, 16)
	if err != nil {
		return errors.Wrap(err, "parse port failed")
	}
	width, err := strconv.ParseUint(BoardWidthFlag.Resolve(), 10, 32)
	if err != nil {
		return errors.Wrap(err, "parse board width failed")
	}
	height, err := strconv.ParseUint(BoardHeightFlag.Resolve(), 10, 32)
	if err != nil {
		return errors.Wrap(err, "parse board height failed")
	}
	pingInterval, err := time.ParseDuration(ServerPingIntervalFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse ping interval failed")
	}
	reapInterval, err := time.ParseDuration(ServerReapIntervalFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse reap interval failed")
	}
	sessionTimeout, err := time.ParseDuration(SessionTimeoutFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse session timeout failed")
	}
	render, err := strconv.ParseBool(ServerRenderFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse render failed")
	}
	heartbeatInterval, err := time.ParseDuration(ClientHeartbeatIntervalFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse heartbeat interval failed")
	}
	demo, err := strconv.ParseBool(ClientDemoFlag.Resolve())
	if err != nil {
		return errors.Wrap(err, "parse demo failed")
	}

	env := environment{
		Env:                     EnvFlag.Resolve(),
		LogLevel:                LogLevelFlag.Resolve(),
		Port:                    uint16(port),
		BoardWidth:              uint32(width),
		BoardHeight:             uint32(height),
		ServerPingInterval:      pingInterval,
		ServerReapInterval:      reapInterval,
		SessionTimeout:          sessionTimeout,
		ClientHeartbeatInterval: heartbeatInterval,
		ClientServerAddr:        ClientServerAddrFlag.Resolve(),
	}
	if err := validate.Validate().Struct(env); err != nil {
		return errors.Wrap(err, "validate environment failed")
	}

	Env = env.Env
	LogLevel = env.LogLevel
	LogFile = LogFileFlag.Resolve()
	Port = env.Port
	BoardWidth = env.BoardWidth
	BoardHeight = env.BoardHeight
	ServerPingInterval = env.ServerPingInterval
	ServerReapInterval = env.ServerReapInterval
	SessionTimeout = env.SessionTimeout
	ServerRender = render
	ClientHeartbeatInterval = env.ClientHeartbeatInterval
	ClientServerAddr = env.ClientServerAddr
	ClientDemo = demo
	return nil
}

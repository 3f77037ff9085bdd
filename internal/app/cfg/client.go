package cfg

import (
	"time"

	"gameudp/internal"
	"gameudp/internal/app/apps"
)

// ClientCfg is configuration for the player client.
type ClientCfg struct {
	serverAddr string
	heartbeat  time.Duration
	demo       bool
}

// NewClientCfg creates a new ClientCfg from the given config.
func NewClientCfg(serverAddr string, heartbeat time.Duration, demo bool) *ClientCfg {
	return &ClientCfg{
		serverAddr: serverAddr,
		heartbeat:  heartbeat,
		demo:       demo,
	}
}

// ClientFromEnv creates a new ClientCfg from the current environment.
func ClientFromEnv() *ClientCfg {
	return &ClientCfg{
		serverAddr: internal.ClientServerAddr,
		heartbeat:  internal.ClientHeartbeatInterval,
		demo:       internal.ClientDemo,
	}
}

// ApplyClientApp applies the ClientCfg to a ClientApp.
func (cfg ClientCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.ServerAddr = cfg.serverAddr
	app.HeartbeatInterval = cfg.heartbeat
	app.Demo = cfg.demo
	return nil
}

package cfg

import (
	"time"

	"gameudp/internal"
	"gameudp/internal/app/apps"
)

// TimersCfg is configuration for the server's periodic tasks.
type TimersCfg struct {
	ping    time.Duration
	reap    time.Duration
	timeout time.Duration
}

// NewTimersCfg creates a new TimersCfg from the given config.
func NewTimersCfg(ping, reap, timeout time.Duration) *TimersCfg {
	return &TimersCfg{
		ping:    ping,
		reap:    reap,
		timeout: timeout,
	}
}

// TimersFromEnv creates a new TimersCfg from the current environment.
func TimersFromEnv() *TimersCfg {
	return &TimersCfg{
		ping:    internal.ServerPingInterval,
		reap:    internal.ServerReapInterval,
		timeout: internal.SessionTimeout,
	}
}

// ApplyServerApp applies the TimersCfg to a ServerApp.
func (cfg TimersCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.PingInterval = cfg.ping
	app.ReapInterval = cfg.reap
	app.SessionTimeout = cfg.timeout
	return nil
}

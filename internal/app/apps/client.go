package apps

import (
	"context"
	"time"

	"gameudp/internal"
	"gameudp/internal/pkg/client"
	"gameudp/internal/pkg/render"
	"gameudp/internal/pkg/validate"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp runs the interactive player client, or a scripted demo
// sequence when Demo is set.
type ClientApp struct {
	ServerAddr        string        `validate:"required,hostname_port"`
	HeartbeatInterval time.Duration `validate:"required,gt=0"`
	Demo              bool
}

// NewClientApp creates a new ClientApp. Fields left unset by the given
// configuration fall back to the environment.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if app.ServerAddr == "" {
		app.ServerAddr = internal.ClientServerAddr
	}
	if app.HeartbeatInterval == 0 {
		app.HeartbeatInterval = internal.ClientHeartbeatInterval
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// Run connects to the server and drives the client until ctx is cancelled
// or, in demo mode, until the scripted sequence completes.
func (app *ClientApp) Run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Demo {
		c, err := client.NewClient(
			client.WithServerAddr(app.ServerAddr),
			client.WithHeartbeatInterval(app.HeartbeatInterval),
		)
		if err != nil {
			return errors.Wrap(err, "create client failed")
		}
		if err := c.Connect(ctx); err != nil {
			return errors.Wrap(err, "connect client failed")
		}
		return errors.Wrap(c.RunDemo(ctx), "run demo failed")
	}

	board, err := render.NewBoard()
	if err != nil {
		return errors.Wrap(err, "create board failed")
	}
	defer board.Close()
	go board.Run(ctx)

	c, err := client.NewClient(
		client.WithServerAddr(app.ServerAddr),
		client.WithHeartbeatInterval(app.HeartbeatInterval),
		client.WithRenderSink(board),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	if err := c.Connect(ctx); err != nil {
		return errors.Wrap(err, "connect client failed")
	}

	go func() {
		for {
			ev := board.PollEvent()
			if ev == nil {
				return
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			var moveErr error
			switch key.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				cancel()
				return
			case tcell.KeyUp:
				moveErr = c.Move(0, -1)
			case tcell.KeyDown:
				moveErr = c.Move(0, 1)
			case tcell.KeyLeft:
				moveErr = c.Move(-1, 0)
			case tcell.KeyRight:
				moveErr = c.Move(1, 0)
			}
			if moveErr != nil {
				logger.WithError(moveErr).Warn("move failed")
			}
		}
	}()

	return errors.Wrap(c.Run(ctx), "run client failed")
}

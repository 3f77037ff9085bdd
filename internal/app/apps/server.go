package apps

import (
	"context"
	"time"

	"gameudp/internal"
	"gameudp/internal/pkg/render"
	"gameudp/internal/pkg/server"
	"gameudp/internal/pkg/session"
	"gameudp/internal/pkg/transport"
	"gameudp/internal/pkg/validate"
	"gameudp/internal/pkg/world"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp runs the authoritative game server.
type ServerApp struct {
	Port   uint16 `validate:"required"`
	Width  uint32 `validate:"required,gte=4"`
	Height uint32 `validate:"required,gte=6"`

	PingInterval   time.Duration `validate:"required,gt=0"`
	ReapInterval   time.Duration `validate:"required,gt=0"`
	SessionTimeout time.Duration `validate:"required,gt=0"`

	Render bool
}

// NewServerApp creates a new ServerApp. Fields left unset by the given
// configuration fall back to the environment.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if app.Port == 0 {
		app.Port = internal.Port
	}
	if app.Width == 0 {
		app.Width = internal.BoardWidth
	}
	if app.Height == 0 {
		app.Height = internal.BoardHeight
	}
	if app.PingInterval == 0 {
		app.PingInterval = internal.ServerPingInterval
	}
	if app.ReapInterval == 0 {
		app.ReapInterval = internal.ServerReapInterval
	}
	if app.SessionTimeout == 0 {
		app.SessionTimeout = internal.SessionTimeout
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Run binds the socket and serves until ctx is cancelled.
func (app *ServerApp) Run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, err := transport.Listen(app.Port)
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}

	registry, err := session.NewRegistry()
	if err != nil {
		return errors.Wrap(err, "create registry failed")
	}

	var sink render.Sink = render.Nop{}
	if app.Render {
		board, err := render.NewBoard()
		if err != nil {
			return errors.Wrap(err, "create board failed")
		}
		defer board.Close()
		go board.Run(ctx)
		go func() {
			// the board owns the terminal, so quitting happens here
			for {
				ev := board.PollEvent()
				if ev == nil {
					return
				}
				if key, ok := ev.(*tcell.EventKey); ok {
					if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC {
						cancel()
						return
					}
				}
			}
		}()
		sink = board
	}

	srv, err := server.NewServer(
		server.WithConn(conn),
		server.WithRegistry(registry),
		server.WithBounds(world.Bounds{Width: app.Width, Height: app.Height}),
		server.WithRenderSink(sink),
		server.WithIntervals(app.PingInterval, app.ReapInterval, app.SessionTimeout),
	)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}
	logger.WithFields(logrus.Fields{
		"addr":  conn.LocalAddr(),
		"board": [2]uint32{app.Width, app.Height},
	}).Info("server listening")
	return errors.Wrap(srv.Run(ctx), "run server failed")
}

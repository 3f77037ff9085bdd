package cfg

import (
	"gameudp/internal"
	"gameudp/internal/app/apps"
)

// BoardCfg is configuration for the board geometry and server rendering.
type BoardCfg struct {
	width  uint32
	height uint32
	render bool
}

// NewBoardCfg creates a new BoardCfg from the given config.
func NewBoardCfg(width, height uint32, render bool) *BoardCfg {
	return &BoardCfg{
		width:  width,
		height: height,
		render: render,
	}
}

// BoardFromEnv creates a new BoardCfg from the current environment.
func BoardFromEnv() *BoardCfg {
	return &BoardCfg{
		width:  internal.BoardWidth,
		height: internal.BoardHeight,
		render: internal.ServerRender,
	}
}

// ApplyServerApp applies the BoardCfg to a ServerApp.
func (cfg BoardCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Width = cfg.width
	app.Height = cfg.height
	app.Render = cfg.render
	return nil
}

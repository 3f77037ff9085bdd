// Package render draws the board state on a terminal.
//
// Rendering is a best-effort presentation sink: the protocol engine pushes
// read-only views and never waits on the screen. A dropped frame is
// harmless because the next state change produces a fresh view.
package render

import (
	"context"
	"fmt"

	"gameudp/internal/pkg/payload"
	"gameudp/internal/pkg/world"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Player is one player's drawable state.
type Player struct {
	Position payload.Position
	Number   uint32
}

// View is an immutable snapshot of everything the renderer needs.
type View struct {
	Players map[string]Player
	Bounds  world.Bounds
}

// Sink consumes views. Implementations must not block the caller.
type Sink interface {
	Notify(View)
}

// Nop discards views. Used by headless servers and in tests.
type Nop struct{}

// Notify implements Sink.
func (Nop) Notify(View) {}

// Board renders views on a tcell screen from its own goroutine.
type Board struct {
	screen tcell.Screen
	views  chan View
}

// NewBoard initializes the terminal screen.
func NewBoard() (*Board, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen failed")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen failed")
	}
	return &Board{
		screen: screen,
		views:  make(chan View, 1),
	}, nil
}

// Notify implements Sink. If a frame is already pending it is replaced
// by dropping the new one; the channel never blocks the protocol path.
func (b *Board) Notify(v View) {
	select {
	case b.views <- v:
	default:
	}
}

// Run consumes views and redraws until ctx is cancelled.
func (b *Board) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case v := <-b.views:
			b.draw(v)
		}
	}
}

// PollEvent blocks for the next terminal event. Returns nil once the
// screen is finalized.
func (b *Board) PollEvent() tcell.Event {
	return b.screen.PollEvent()
}

// Close restores the terminal.
func (b *Board) Close() {
	b.screen.Fini()
}

var playerStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	tcell.StyleDefault.Foreground(tcell.ColorAqua),
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

func (b *Board) draw(v View) {
	b.screen.Clear()
	halfW := int(v.Bounds.Width) / 2
	halfH := int(v.Bounds.Height) / 2
	for _, p := range v.Players {
		// world origin is the board center
		x := p.Position.X + halfW
		y := p.Position.Y + halfH
		style := playerStyles[int(p.Number)%len(playerStyles)]
		b.screen.SetContent(x, y, rune('0'+p.Number%10), nil, style)
	}
	status := fmt.Sprintf(" players: %d ", len(v.Players))
	for i, r := range status {
		b.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	b.screen.Show()
}

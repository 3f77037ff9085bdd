// Package world holds the board geometry and the movement validator.
package world

import "gameudp/internal/pkg/payload"

// Bounds is the playing field size, fixed at startup.
type Bounds struct {
	Width  uint32
	Height uint32
}

// Allows reports whether p is inside the board. The board is centered on
// the origin: x ranges over [-W/2, W/2) and y over [-H/2+2, H/2). The +2
// offset on the lower y bound reserves the top rows of the rendered board
// and is part of the established wire behavior; do not "fix" it.
func (b Bounds) Allows(p payload.Position) bool {
	halfW := int(b.Width) / 2
	halfH := int(b.Height) / 2
	if p.X < -halfW || p.X >= halfW {
		return false
	}
	if p.Y-2 < -halfH || p.Y >= halfH {
		return false
	}
	return true
}

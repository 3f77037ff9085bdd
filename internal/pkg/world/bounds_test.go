package world

import (
	"testing"

	"gameudp/internal/pkg/payload"

	"github.com/stretchr/testify/require"
)

func TestAllows(t *testing.T) {
	b := Bounds{Width: 80, Height: 24}
	cases := []struct {
		name string
		pos  payload.Position
		want bool
	}{
		{"origin", payload.Position{}, true},
		{"left edge inclusive", payload.Position{X: -40}, true},
		{"right edge exclusive", payload.Position{X: 40}, false},
		{"past left edge", payload.Position{X: -41}, false},
		{"just inside right", payload.Position{X: 39}, true},
		{"lower y inside offset", payload.Position{Y: -10}, true},
		{"lower y past offset", payload.Position{Y: -12}, false},
		{"lower y boundary", payload.Position{Y: -11}, false},
		{"upper y exclusive", payload.Position{Y: 12}, false},
		{"just under upper y", payload.Position{Y: 11}, true},
		{"z is unconstrained", payload.Position{Z: 1000}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, b.Allows(tc.pos))
		})
	}
}

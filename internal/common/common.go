// Package common holds value types and sentinel errors shared across the
// footwm packages.
package common

import (
	"errors"
	"fmt"
)

// Geometry is a rectangle in root-window coordinates. Equality is field-wise
// and copies are cheap; nothing owns a Geometry.
type Geometry struct {
	X, Y int
	W, H int
}

func (g Geometry) Eq(o Geometry) bool {
	return g.X == o.X && g.Y == o.Y && g.W == o.W && g.H == o.H
}

func (g Geometry) String() string {
	return fmt.Sprintf("Geometry(x=%d, y=%d, w=%d, h=%d)", g.X, g.Y, g.W, g.H)
}

// Point is a single coordinate pair, used for pointer queries.
type Point struct {
	X, Y int
}

var (
	// ErrNoDisplay is returned when the X display named by $DISPLAY could
	// not be opened.
	ErrNoDisplay = errors.New("footwm: no display")
	// ErrAnotherWmRunning is returned when installing as the window manager
	// fails because another process already holds SubstructureRedirect on
	// the root window.
	ErrAnotherWmRunning = errors.New("footwm: another window manager is running")
)

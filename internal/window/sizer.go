package window

import "github.com/footwm/footwm/internal/common"

// Sizer is a pure function from current geometry, the available root
// geometry, and size hints to a placement geometry. Sizers never mutate the
// window and never touch the server.
type Sizer func(current, available common.Geometry, hints SizeHints) common.Geometry

// HonourableMax is the default sizer for normal windows: a fixed-size window
// keeps its size, a PSize-only window is centered at its current size,
// anything else fills the available area. PResizeInc/PAspect/WinGravity are
// recognized on SizeHints but not enforced here (spec boundary, see
// DESIGN.md Open Question 4).
func HonourableMax(current, available common.Geometry, hints SizeHints) common.Geometry {
	if hints.HasMinSize() && hints.HasMaxSize() && hints.MinGeom.W == hints.MaxGeom.W && hints.MinGeom.H == hints.MaxGeom.H {
		return common.Geometry{X: available.X, Y: available.Y, W: hints.MinGeom.W, H: hints.MinGeom.H}
	}
	if hints.HasSize() {
		return center(current, available)
	}
	return available
}

// BrutalMax always returns the available geometry, ignoring hints entirely.
func BrutalMax(current, available common.Geometry, hints SizeHints) common.Geometry {
	return available
}

// Transient centers the window within available space but never changes its
// own width/height (original_source/footwm/window.py's TransientWindow
// wantedgeom setter ignores width/height changes; this sizer is the
// position-only equivalent applied fresh each redraw rather than as a
// stateful setter).
func Transient(current, available common.Geometry, hints SizeHints) common.Geometry {
	g := center(current, available)
	g.W, g.H = current.W, current.H
	return g
}

func center(current, available common.Geometry) common.Geometry {
	w, h := current.W, current.H
	if w <= 0 {
		w = available.W
	}
	if h <= 0 {
		h = available.H
	}
	x := available.X + (available.W-w)/2
	y := available.Y + (available.H-h)/2
	return common.Geometry{X: x, Y: y, W: w, H: h}
}

package reconcile

import (
	"github.com/jezek/xgb/xproto"

	"github.com/footwm/footwm/internal/common"
)

// mergeRequest applies the ConfigureRequest's value-mask bits over the
// window's last known geometry, honoring exactly what the client asked for
// (footwm does no tiling, so there's no placement policy to defend here --
// original_source/footwm/footwm.py's handle_configurerequest does the same).
func mergeRequest(current common.Geometry, e xproto.ConfigureRequestEvent) common.Geometry {
	g := current
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		g.X = int(e.X)
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		g.Y = int(e.Y)
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		g.W = int(e.Width)
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		g.H = int(e.Height)
	}
	return g
}

// geomOfRequest builds a geometry purely from the request when the window
// isn't known yet (e.g. a ConfigureRequest racing a CreateNotify).
func geomOfRequest(e xproto.ConfigureRequestEvent) common.Geometry {
	return common.Geometry{X: int(e.X), Y: int(e.Y), W: int(e.Width), H: int(e.Height)}
}

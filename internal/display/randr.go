package display

import (
	"github.com/jezek/xgb/randr"

	"github.com/footwm/footwm/internal/common"
)

// initRandr enables RandR on the connection; a server without the extension
// leaves primaryOutputGeometry falling back to the root window's geometry.
func (a *Adapter) initRandr() {
	randr.Init(a.X.Conn())
}

// primaryOutputGeometry asks RandR for the screen's connected outputs and
// returns the primary one's geometry, falling back to the single biggest
// connected output when no primary is set (spec.md's Non-goals exclude
// per-output placement, but a single-head WM still needs *a* rectangle to
// hand sizers -- grounded on store/root.go's PhysicalHeadsGet, trimmed to
// "biggest head wins, no hot corners, no struts").
func (a *Adapter) primaryOutputGeometry() (common.Geometry, bool) {
	root := a.RootWin()
	resources, err := randr.GetScreenResources(a.X.Conn(), root).Reply()
	if err != nil {
		return common.Geometry{}, false
	}
	primaryReply, _ := randr.GetOutputPrimary(a.X.Conn(), root).Reply()

	var primaryGeom, biggestGeom common.Geometry
	havePrimary, haveAny := false, false

	for _, output := range resources.Outputs {
		oinfo, err := randr.GetOutputInfo(a.X.Conn(), output, 0).Reply()
		if err != nil || oinfo.Connection != randr.ConnectionConnected || oinfo.Crtc == 0 {
			continue
		}
		cinfo, err := randr.GetCrtcInfo(a.X.Conn(), oinfo.Crtc, 0).Reply()
		if err != nil {
			continue
		}
		g := common.Geometry{X: int(cinfo.X), Y: int(cinfo.Y), W: int(cinfo.Width), H: int(cinfo.Height)}
		haveAny = true
		if g.W*g.H > biggestGeom.W*biggestGeom.H {
			biggestGeom = g
		}
		if primaryReply != nil && output == primaryReply.Output {
			primaryGeom = g
			havePrimary = true
		}
	}
	if havePrimary {
		return primaryGeom, true
	}
	return biggestGeom, haveAny
}

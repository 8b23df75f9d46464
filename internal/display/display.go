// Package display is the Display Adapter: connection setup, install-as-WM,
// the X error handler, and typed wrappers for the window requests the core
// makes. Other packages still use jezek/xgb/xproto types and requests and
// the xgbutil icccm/ewmh helpers directly where no wrapper exists here.
package display

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xprop"
	"github.com/jezek/xgbutil/xwindow"
	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/common"
)

// Adapter wraps the X connection. The display handle is always passed
// explicitly through constructors (Design Note: no module-level
// singletons).
type Adapter struct {
	X   *xgbutil.XUtil
	Log *logrus.Logger
}

// Open connects to displayName ("" means $DISPLAY).
func Open(displayName string, log *logrus.Logger) (*Adapter, error) {
	var X *xgbutil.XUtil
	var err error
	if displayName == "" {
		X, err = xgbutil.NewConn()
	} else {
		X, err = xgbutil.NewConnDisplay(displayName)
	}
	if err != nil {
		return nil, common.ErrNoDisplay
	}
	a := &Adapter{X: X, Log: log}
	X.ErrorHandlerSet(a.handleError)
	a.initRandr()
	return a, nil
}

// handleError is the process-wide X error handler: log and return, matching
// Xlib's non-fatal error contract (spec.md §4.A, §7).
func (a *Adapter) handleError(err xgb.Error) {
	a.Log.WithField("error", err).Warn("x request error")
}

// InstallAsWM requests SubstructureRedirect|SubstructureNotify|
// PropertyChange|StructureNotify on the root window. A BadAccess reply
// means another WM already owns substructure-redirect (grounded on
// driusan-dewm/main.go's TakeWMOwnership and original_source/footwm/
// display.py's install(), both of which detect the same condition via a
// checked request).
func (a *Adapter) InstallAsWM() error {
	root := a.X.RootWin()
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify)
	err := xproto.ChangeWindowAttributesChecked(a.X.Conn(), root, xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		return common.ErrAnotherWmRunning
	}
	return nil
}

func (a *Adapter) RootWin() xproto.Window { return a.X.RootWin() }

// RootGeometry returns the "available" rectangle sizers place windows
// within: the RandR primary output's geometry when the extension is usable,
// falling back to the root window's own geometry on a server without it
// (spec.md's Non-goals exclude multi-head placement, but a single rectangle
// is still required for every redraw).
func (a *Adapter) RootGeometry() common.Geometry {
	if g, ok := a.primaryOutputGeometry(); ok {
		return g
	}
	geom, err := xwindow.New(a.X, a.RootWin()).Geometry()
	if err != nil {
		a.Log.WithField("error", err).Warn("RootGeometry: query failed, using 0x0")
		return common.Geometry{}
	}
	return common.Geometry{X: geom.X(), Y: geom.Y(), W: geom.Width(), H: geom.Height()}
}

// Atom interns name, caching through xgbutil's own atom cache.
func (a *Adapter) Atom(name string) (xproto.Atom, error) {
	return xprop.Atm(a.X, name)
}

func (a *Adapter) QueryTree(w xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(a.X.Conn(), w).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

// WindowAttrs is the subset of XGetWindowAttributes the core needs.
type WindowAttrs struct {
	OverrideRedirect bool
	Geom             common.Geometry
	MapState         uint8
}

func (a *Adapter) GetWindowAttributes(w xproto.Window) (*WindowAttrs, error) {
	attr, err := xproto.GetWindowAttributes(a.X.Conn(), w).Reply()
	if err != nil {
		return nil, err
	}
	geom, err := xwindow.New(a.X, w).Geometry()
	if err != nil {
		return nil, err
	}
	return &WindowAttrs{
		OverrideRedirect: attr.OverrideRedirect,
		Geom:             common.Geometry{X: geom.X(), Y: geom.Y(), W: geom.Width(), H: geom.Height()},
		MapState:         attr.MapState,
	}, nil
}

func (a *Adapter) MapWindow(w xproto.Window)   { xproto.MapWindow(a.X.Conn(), w) }
func (a *Adapter) UnmapWindow(w xproto.Window) { xproto.UnmapWindow(a.X.Conn(), w) }

func (a *Adapter) MoveResizeWindow(w xproto.Window, g common.Geometry) {
	xwindow.New(a.X, w).MoveResize(g.X, g.Y, g.W, g.H)
}

func (a *Adapter) SelectInput(w xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(a.X.Conn(), w, xproto.CwEventMask, []uint32{mask})
}

func (a *Adapter) SetInputFocus(w xproto.Window) {
	xproto.SetInputFocus(a.X.Conn(), xproto.InputFocusPointerRoot, w, xproto.TimeCurrentTime)
}

// SendClientMessage sends a WM_PROTOCOLS-typed ClientMessage carrying atom
// as data.l[0] and CurrentTime as data.l[1] (WM_DELETE_WINDOW / WM_TAKE_FOCUS
// shape, ICCCM 4.2.8).
func (a *Adapter) SendClientMessage(w xproto.Window, protocolsAtom, atom xproto.Atom) error {
	data := xproto.ClientMessageDataUnionData32New([4]uint32{uint32(atom), uint32(xproto.TimeCurrentTime), 0, 0})
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocolsAtom,
		Data:   data,
	}
	return xproto.SendEventChecked(a.X.Conn(), false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (a *Adapter) Flush() { a.X.Conn().Sync() }

// NextEvent blocks for the next X event or error, returned as the tagged
// union jezek/xgb's transport already models -- the reconciler type-switches
// on the concrete event, and event types it does not list fall to the
// switch's default case (Design Note: tagged variant, not a dispatch map).
func (a *Adapter) NextEvent() (xgb.Event, xgb.Error, error) {
	return a.X.Conn().WaitForEvent()
}

func (a *Adapter) String() string {
	return fmt.Sprintf("display.Adapter(root=0x%08x)", a.RootWin())
}

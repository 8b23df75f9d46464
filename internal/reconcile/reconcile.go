// Package reconcile is the Event Reconciler (spec.md §4.G): it translates
// raw X events into Desktop Engine operations, preserving the invariants
// the engine promises between handlings. Dispatch is a Go type-switch over
// the concrete event types jezek/xgb's transport already hands back as a
// tagged union, rather than a map of function pointers (Design Note).
package reconcile

import (
	"context"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xprop"
	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/command"
	"github.com/footwm/footwm/internal/common"
	"github.com/footwm/footwm/internal/desktop"
	"github.com/footwm/footwm/internal/display"
	"github.com/footwm/footwm/internal/keyboard"
	"github.com/footwm/footwm/internal/protocol"
	"github.com/footwm/footwm/internal/window"
	"github.com/footwm/footwm/internal/wmroot"
)

// Reconciler owns the single-threaded event loop. It holds no lock and runs
// no goroutines of its own: spec.md §5's "no worker threads, no locks, no
// shared mutable state between threads" applies to this type specifically.
type Reconciler struct {
	Adapter  *display.Adapter
	Root     *wmroot.Root
	Engine   *desktop.Engine
	Protocol *protocol.EwmhWM
	Keyboard *keyboard.Map
	Log      *logrus.Logger
}

// Run blocks draining events until ctx is canceled or NextEvent fails.
// Every handler runs to completion before the next event is read (spec.md
// §5 ordering guarantees); a recovery barrier logs and continues past
// unexpected failures rather than propagating them into the loop (§7).
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, xerr, err := r.Adapter.NextEvent()
		if err != nil {
			return err
		}
		if xerr != nil {
			r.Log.WithField("error", xerr).Warn("x protocol error")
			continue
		}
		if ev == nil {
			continue
		}
		r.dispatch(ev)
	}
}

func (r *Reconciler) dispatch(ev xgb.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Log.WithField("panic", rec).Error("event handler panicked, continuing")
		}
	}()

	switch e := ev.(type) {
	case xproto.CreateNotifyEvent:
		r.handleCreateNotify(e)
	case xproto.ConfigureNotifyEvent:
		r.handleConfigureNotify(e)
	case xproto.ConfigureRequestEvent:
		r.handleConfigureRequest(e)
	case xproto.DestroyNotifyEvent:
		r.handleDestroyNotify(e)
	case xproto.MapRequestEvent:
		r.handleMapRequest(e)
	case xproto.MapNotifyEvent:
		r.handleMapNotify(e)
	case xproto.UnmapNotifyEvent:
		r.handleUnmapNotify(e)
	case xproto.ClientMessageEvent:
		r.handleClientMessage(e)
	case xproto.PropertyNotifyEvent:
		r.handlePropertyNotify(e)
	case xproto.MappingNotifyEvent:
		r.Keyboard.Rebuild()
	case xproto.KeyPressEvent:
		r.handleKeyPress(e)
	case xproto.FocusInEvent:
		r.Log.WithField("window", e.Event).Debug("focus in")
	case xproto.FocusOutEvent:
		r.Log.WithField("window", e.Event).Debug("focus out")
	default:
		// Unrecognized event types are tolerated (§7 internal invariant
		// violation policy): nothing to do, nothing to log at volume.
	}
}

func (r *Reconciler) handleCreateNotify(e xproto.CreateNotifyEvent) {
	if e.OverrideRedirect {
		// Present in no desktop stack, per invariant 3, but still worth
		// knowing about for window-tree completeness.
		r.Root.Insert(&window.Window{Id: e.Window, OverrideRedirect: true})
		return
	}
	w, _, err := protocol.ReadWindow(r.Adapter, e.Window)
	if err != nil {
		r.Log.WithFields(logrus.Fields{"window": e.Window, "error": err}).Debug("create_notify: read failed")
		return
	}
	r.Root.Insert(w)
}

// handleConfigureNotify drives geom -> wanted_geom reconciliation: only
// self-originated events (e.Event == e.Window) are acted on, and a mismatch
// re-issues the move-resize (original_source/footwm/footwm.py's
// handle_configurenotify).
func (r *Reconciler) handleConfigureNotify(e xproto.ConfigureNotifyEvent) {
	if e.Event != e.Window {
		return
	}
	w, ok := r.Root.Get(e.Window)
	if !ok {
		return
	}
	w.Geom = common.Geometry{X: int(e.X), Y: int(e.Y), W: int(e.Width), H: int(e.Height)}
	if !w.Geom.Eq(w.WantedGeom) {
		r.Log.WithFields(logrus.Fields{"window": w.Id, "have": w.Geom, "want": w.WantedGeom}).
			Debug("configure_notify: geometry mismatch, re-requesting")
		r.Adapter.MoveResizeWindow(w.Id, w.WantedGeom)
	}
}

// handleConfigureRequest honors the client's requested geometry verbatim;
// footwm does no tiling so there's no policy to override it with.
func (r *Reconciler) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	w, ok := r.Root.Get(e.Window)
	geom := geomOfRequest(e)
	if ok {
		geom = mergeRequest(w.Geom, e)
	}
	r.Adapter.MoveResizeWindow(e.Window, geom)
}

func (r *Reconciler) handleDestroyNotify(e xproto.DestroyNotifyEvent) {
	if e.Event != e.Window {
		return
	}
	r.Engine.UnmanageWindow(e.Window)
}

// handleMapRequest is the manage path: spec.md §4.E's manage_window,
// called on MapRequest (never override_redirect).
func (r *Reconciler) handleMapRequest(e xproto.MapRequestEvent) {
	w, ok := r.Root.Get(e.Window)
	if !ok {
		var err error
		w, _, err = protocol.ReadWindow(r.Adapter, e.Window)
		if err != nil {
			r.Log.WithFields(logrus.Fields{"window": e.Window, "error": err}).Debug("map_request: read failed")
			return
		}
		r.Root.Insert(w)
	}
	if w.OverrideRedirect {
		return
	}
	r.Adapter.SelectInput(w.Id, uint32(xproto.EventMaskEnterWindow|xproto.EventMaskFocusChange|xproto.EventMaskStructureNotify))
	r.Engine.ManageWindow(w)
}

// handleMapNotify confirms the map: wm_state becomes Normal only when the
// event is self-originated and the window is actually being managed
// (original_source/footwm/footwm.py's handle_mapnotify).
func (r *Reconciler) handleMapNotify(e xproto.MapNotifyEvent) {
	if e.Event != e.Window {
		return
	}
	w, ok := r.Root.Get(e.Window)
	if !ok {
		return
	}
	w.WmState = window.Normal
	r.Protocol.SetWmState(w.Id, uint32(window.Normal))
}

// handleUnmapNotify implements the two-branch state machine spec.md
// describes: a client withdrawing itself (ICCCM 4.1.4) unmaps the window
// and sends a synthetic UnmapNotify addressed to the *root* window, which
// this WM receives via its SubstructureRedirect subscription (e.Event ==
// root, e.Window == the client); the real, structural unmap the WM
// subscribed to directly on the window itself arrives with e.Event ==
// e.Window. Distinguishing on the addressed window, rather than a
// send_event bit jezek/xgb's typed events don't expose, is ICCCM's own
// mechanism for telling the two apart (original_source/footwm/footwm.py's
// handle_unmapnotify branches on e.send_event to the same effect). The
// server's own UnmapNotify is also reported to the root through the root's
// SubstructureNotify selection, so that copy takes the first branch too;
// its UnmapWindow is then a no-op, and the window is withdrawn when the
// copy addressed to the window itself arrives.
func (r *Reconciler) handleUnmapNotify(e xproto.UnmapNotifyEvent) {
	if e.FromConfigure {
		return
	}
	if e.Event == r.Adapter.RootWin() && e.Window != r.Adapter.RootWin() {
		// Client-initiated withdraw request: perform the unmap ourselves and
		// wait for the window's own UnmapNotify before treating it as
		// withdrawn.
		r.Adapter.UnmapWindow(e.Window)
		return
	}
	if e.Event != e.Window {
		return
	}
	w, ok := r.Root.Get(e.Window)
	if !ok {
		return
	}
	r.Engine.WithdrawWindow(w)
}

func (r *Reconciler) handleClientMessage(e xproto.ClientMessageEvent) {
	name, err := xprop.AtomName(r.Adapter.X, e.Type)
	if err != nil {
		return
	}
	data := e.Data.Data32
	switch name {
	case "_NET_ACTIVE_WINDOW":
		r.Engine.RaiseWindow(e.Window)
		r.Engine.Redraw()
	case "_NET_CLOSE_WINDOW":
		if w, ok := r.Root.Get(e.Window); ok {
			protocol.Close(r.Adapter, r.Log, w)
		}
	case "_NET_CURRENT_DESKTOP":
		if len(data) > 0 {
			r.Engine.SelectDesktop(int(data[0]))
		}
	case "_NET_WM_DESKTOP":
		if len(data) > 0 {
			r.Engine.SetWindowDesktop(e.Window, data[0])
		}
	}
}

func (r *Reconciler) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	name, err := xprop.AtomName(r.Adapter.X, e.Atom)
	if err != nil {
		return
	}
	if name != command.Atom {
		return
	}
	argv, err := command.Read(r.Adapter)
	if err != nil {
		r.Log.WithField("error", err).Debug("FOOT_COMMANDV: read failed")
		return
	}
	command.Dispatch(r.Log, r.Engine, argv)
}

func (r *Reconciler) handleKeyPress(e xproto.KeyPressEvent) {
	action, ok := r.Keyboard.Action(e.Detail, e.State)
	if !ok {
		r.Log.WithFields(logrus.Fields{"keycode": e.Detail, "state": e.State}).Debug("no action bound")
		return
	}
	r.Log.WithField("action", action).Debug("key press")
}


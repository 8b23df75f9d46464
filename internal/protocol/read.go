package protocol

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	"github.com/footwm/footwm/internal/display"
	"github.com/footwm/footwm/internal/window"
)

func getWmProtocols(a *display.Adapter, w xproto.Window) []xproto.Atom {
	protocols, err := icccm.WmProtocolsGet(a.X, w)
	if err != nil {
		return nil
	}
	out := make([]xproto.Atom, 0, len(protocols))
	for _, name := range protocols {
		if atom, err := a.Atom(name); err == nil {
			out = append(out, atom)
		}
	}
	return out
}

// ReadWindow builds a Window record from the server's current properties,
// mirroring original_source/footwm/window.py's BaseWindow/ClientWindow
// construction and store/client.go's GetInfo. hasWmState reports whether a
// prior WM left a WM_STATE property (used by managewindowp at import time).
func ReadWindow(a *display.Adapter, id xproto.Window) (w *window.Window, hasWmState bool, err error) {
	attrs, err := a.GetWindowAttributes(id)
	if err != nil {
		return nil, false, err
	}
	w = &window.Window{
		Id:               id,
		OverrideRedirect: attrs.OverrideRedirect,
		Geom:             attrs.Geom,
		WantedGeom:       attrs.Geom,
	}
	switch attrs.MapState {
	case 0:
		w.MapState = window.Unmapped
	case 1:
		w.MapState = window.Unviewable
	case 2:
		w.MapState = window.Viewable
	}

	if state, err := icccm.WmStateGet(a.X, id); err == nil && state != nil {
		hasWmState = true
		w.WmState = window.WmState(state.State)
	}

	resName, resClass := "", ""
	if cls, err := icccm.WmClassGet(a.X, id); err == nil {
		resName, resClass = cls.Instance, cls.Class
	}

	if name, err := icccm.WmNameGet(a.X, id); err == nil {
		w.Name = name
	}

	if tf, err := icccm.WmTransientForGet(a.X, id); err == nil && tf != 0 {
		w.TransientFor = tf
		w.HasTransientFor = true
	}

	var hints window.SizeHints
	if nh, err := icccm.WmNormalHintsGet(a.X, id); err == nil {
		hints = window.SizeHintsFromICCCM(nh)
	}

	var wmHints window.WmHints
	if h, err := icccm.WmHintsGet(a.X, id); err == nil && h != nil {
		wmHints.Input = h.Flags&icccm.HintInput != 0 && h.Input
	} else {
		// No WM_HINTS: ICCCM says assume input is wanted (4.1.7).
		wmHints.Input = true
	}

	protocols := WmProtocolNames(a, id)
	w.SetProperties(resName, resClass, protocols, hints, wmHints)
	return w, hasWmState, nil
}

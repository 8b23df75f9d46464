package protocol

import (
	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/display"
	"github.com/footwm/footwm/internal/window"
)

// Focus implements the ICCCM 4.1.7 input-model policy: locally-active
// windows (Input && WM_TAKE_FOCUS advertised) get the client message;
// passive windows (Input, no WM_TAKE_FOCUS) get XSetInputFocus; globally
// active / no-input windows are left alone (original_source/footwm/
// window.py's ClientWindow.focus mirrors exactly this fallback chain).
func Focus(a *display.Adapter, log *logrus.Logger, w *window.Window) {
	if !w.WmHints().Input {
		return
	}
	if atom, ok := w.HasProtocol("WM_TAKE_FOCUS"); ok {
		protocolsAtom, err := a.Atom("WM_PROTOCOLS")
		if err != nil {
			log.WithField("error", err).Warn("focus: WM_PROTOCOLS intern failed")
			return
		}
		if err := a.SendClientMessage(w.Id, protocolsAtom, atom); err != nil {
			log.WithFields(logrus.Fields{"window": w.Id, "error": err}).Warn("WM_TAKE_FOCUS failed")
			return
		}
		log.WithField("window", w.Id).Debug("WM_TAKE_FOCUS success")
		return
	}
	a.SetInputFocus(w.Id)
}

// Close implements the ICCCM close policy: deliver WM_DELETE_WINDOW if
// advertised, otherwise log and do nothing -- it never falls back to
// XDestroyWindow (spec.md §4.F, confirmed against original_source/footwm/
// window.py's ClientWindow.delete).
func Close(a *display.Adapter, log *logrus.Logger, w *window.Window) {
	atom, ok := w.HasProtocol("WM_DELETE_WINDOW")
	if !ok {
		log.WithField("window", w.Id).Debug("WM_DELETE_WINDOW not supported")
		return
	}
	protocolsAtom, err := a.Atom("WM_PROTOCOLS")
	if err != nil {
		log.WithField("error", err).Warn("close: WM_PROTOCOLS intern failed")
		return
	}
	if err := a.SendClientMessage(w.Id, protocolsAtom, atom); err != nil {
		log.WithFields(logrus.Fields{"window": w.Id, "error": err}).Warn("WM_DELETE_WINDOW failed")
		return
	}
	log.WithField("window", w.Id).Debug("WM_DELETE_WINDOW success")
}

// WmProtocolNames resolves a window's advertised WM_PROTOCOLS atoms to a
// name->atom table, used to populate Window.SetProperties.
func WmProtocolNames(a *display.Adapter, w xproto.Window) map[string]xproto.Atom {
	names := []string{"WM_DELETE_WINDOW", "WM_TAKE_FOCUS"}
	out := map[string]xproto.Atom{}
	advertised := getWmProtocols(a, w)
	for _, name := range names {
		atom, err := a.Atom(name)
		if err != nil {
			continue
		}
		for _, adv := range advertised {
			if adv == atom {
				out[name] = atom
				break
			}
		}
	}
	return out
}

// Package protocol is the ICCCM/EWMH Protocol Layer (spec.md §4.F): the
// advertised _NET_SUPPORTED subset, the supporting-WM-check lifecycle, the
// close/focus policies, and the property publication that keeps G4/G5
// holding. Split into EwmhClient (read-only, usable by cmd/footsh) and
// EwmhWM (adds the WM-authoritative setters), mirroring original_source/
// footwm/ewmh.py's EwmhClient/EwmhWM split.
package protocol

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/sirupsen/logrus"
)

// Supported is the EWMH subset advertised in _NET_SUPPORTED
// (spec.md §4.F). _NET_WM_FULL_PLACEMENT is advertised but never
// consulted, matching original_source/footwm/ewmh.py's own behavior
// (DESIGN.md).
var Supported = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_CLOSE_WINDOW",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_DESKTOP",
	"_NET_WM_FULL_PLACEMENT",
	"_NET_WM_NAME",
}

// EwmhClient is the read side: active window, client lists, desktop names.
// cmd/footsh uses exactly this type to query a running WM.
type EwmhClient struct {
	X   *xgbutil.XUtil
	Log *logrus.Logger
}

func NewEwmhClient(X *xgbutil.XUtil, log *logrus.Logger) *EwmhClient {
	return &EwmhClient{X: X, Log: log}
}

func (c *EwmhClient) ActiveWindow() xproto.Window {
	w, err := ewmh.ActiveWindowGet(c.X)
	if err != nil {
		c.Log.WithField("error", err).Debug("ActiveWindow: get failed")
		return 0
	}
	return w
}

func (c *EwmhClient) ClientList() []xproto.Window {
	wins, err := ewmh.ClientListGet(c.X)
	if err != nil {
		return nil
	}
	return wins
}

func (c *EwmhClient) ClientListStacking() []xproto.Window {
	wins, err := ewmh.ClientListStackingGet(c.X)
	if err != nil {
		return nil
	}
	return wins
}

func (c *EwmhClient) DesktopNames() []string {
	names, err := ewmh.DesktopNamesGet(c.X)
	if err != nil {
		return nil
	}
	return names
}

func (c *EwmhClient) NumberOfDesktops() uint {
	n, err := ewmh.NumberOfDesktopsGet(c.X)
	if err != nil {
		return 0
	}
	return n
}

// RequestActivate sends the _NET_ACTIVE_WINDOW client message a pager/menu
// uses to ask the WM to raise a window (§6 footsh activate).
func (c *EwmhClient) RequestActivate(w xproto.Window) {
	ewmh.ClientEvent(c.X, w, "_NET_ACTIVE_WINDOW", 2, 0, 0)
}

// RequestClose sends the _NET_CLOSE_WINDOW client message (§6 footsh close).
func (c *EwmhClient) RequestClose(w xproto.Window) {
	ewmh.CloseWindow(c.X, w)
}

// RequestSelectDesktop sends _NET_CURRENT_DESKTOP (§6 footsh desktops select).
func (c *EwmhClient) RequestSelectDesktop(index uint32) {
	ewmh.ClientEvent(c.X, c.X.RootWin(), "_NET_CURRENT_DESKTOP", int(index), 0)
}

// RequestWindowDesktop sends _NET_WM_DESKTOP (§6 footsh windows move).
func (c *EwmhClient) RequestWindowDesktop(w xproto.Window, index uint32) {
	ewmh.ClientEvent(c.X, w, "_NET_WM_DESKTOP", int(index), 2)
}

// EwmhWM is the WM-authoritative side: it publishes the properties
// EwmhClient reads elsewhere and owns the supporting-WM-check window.
type EwmhWM struct {
	*EwmhClient
	checkWin xproto.Window
}

func NewEwmhWM(X *xgbutil.XUtil, log *logrus.Logger) *EwmhWM {
	return &EwmhWM{EwmhClient: NewEwmhClient(X, log)}
}

// Install advertises _NET_SUPPORTED and creates the 1x1 invisible
// supporting-WM-check child window, per spec.md §4.F and
// original_source/footwm/ewmh.py's _installwmsupport/_initsupportingwmcheck.
func (w *EwmhWM) Install() error {
	if err := ewmh.SupportedSet(w.X, Supported); err != nil {
		return err
	}
	win, err := xproto.NewWindowId(w.X.Conn())
	if err != nil {
		return err
	}
	screen := w.X.Screen()
	err = xproto.CreateWindowChecked(w.X.Conn(), screen.RootDepth, win, w.X.RootWin(),
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, screen.RootVisual, 0, nil).Check()
	if err != nil {
		return err
	}
	w.checkWin = win
	if err := ewmh.SupportingWmCheckSet(w.X, w.X.RootWin(), win); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(w.X, win, win); err != nil {
		return err
	}
	return ewmh.WmNameSet(w.X, win, "footwm")
}

// Teardown destroys the supporting-WM-check window on orderly shutdown.
func (w *EwmhWM) Teardown() {
	if w.checkWin != 0 {
		xproto.DestroyWindow(w.X.Conn(), w.checkWin)
	}
}

func (w *EwmhWM) PublishActiveWindow(win xproto.Window) {
	ewmh.ActiveWindowSet(w.X, win)
}

func (w *EwmhWM) PublishClientList(wins []xproto.Window) {
	ewmh.ClientListSet(w.X, wins)
}

func (w *EwmhWM) PublishClientListStacking(wins []xproto.Window) {
	ewmh.ClientListStackingSet(w.X, wins)
}

func (w *EwmhWM) PublishDesktopNames(names []string) {
	ewmh.DesktopNamesSet(w.X, names)
}

// PublishNumberOfDesktops also republishes _NET_CURRENT_DESKTOP=0, which
// always holds (G4): selection is expressed by list reordering, not index.
func (w *EwmhWM) PublishNumberOfDesktops(n uint) {
	ewmh.NumberOfDesktopsSet(w.X, n)
	ewmh.CurrentDesktopSet(w.X, 0)
}

func (w *EwmhWM) SetWmDesktop(win xproto.Window, index uint32) {
	ewmh.WmDesktopSet(w.X, win, uint(index))
}

// SetWmState is the ICCCM WM_STATE setter, authoritative WM-side
// (spec.md §4.F).
func (w *EwmhWM) SetWmState(win xproto.Window, state uint32) {
	icccm.WmStateSet(w.X, win, &icccm.WmState{State: state})
}

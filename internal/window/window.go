// Package window holds the per-window record, its property cache, and the
// sizer policies that compute placement geometry.
package window

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	"github.com/footwm/footwm/internal/common"
)

// Wid is an X window id: opaque, comparable, hashable.
type Wid = xproto.Window

// MapState mirrors the three X map states the core cares about.
type MapState int

const (
	Unmapped MapState = iota
	Unviewable
	Viewable
)

// WmState is the ICCCM 4.1.3.1 window lifecycle state.
type WmState int

const (
	Withdrawn WmState = 0
	Normal    WmState = 1
	Iconic    WmState = 3
)

// SizeHints is the recognized subset of ICCCM WM_NORMAL_HINTS.
type SizeHints struct {
	Flags    uint32
	MinGeom  common.Geometry
	MaxGeom  common.Geometry
	WidthInc int
	HeightInc int
}

func (h SizeHints) has(flag uint32) bool { return h.Flags&flag != 0 }

func (h SizeHints) HasMinSize() bool  { return h.has(icccm.SizeHintPMinSize) }
func (h SizeHints) HasMaxSize() bool  { return h.has(icccm.SizeHintPMaxSize) }
func (h SizeHints) HasSize() bool     { return h.has(icccm.SizeHintPSize) }
func (h SizeHints) HasAspect() bool   { return h.has(icccm.SizeHintPAspect) }
func (h SizeHints) HasResizeInc() bool { return h.has(icccm.SizeHintPResizeInc) }
func (h SizeHints) HasWinGravity() bool { return h.has(icccm.SizeHintPWinGravity) }

func SizeHintsFromICCCM(nh *icccm.NormalHints) SizeHints {
	if nh == nil {
		return SizeHints{}
	}
	return SizeHints{
		Flags:     nh.Flags,
		MinGeom:   common.Geometry{W: int(nh.MinWidth), H: int(nh.MinHeight)},
		MaxGeom:   common.Geometry{W: int(nh.MaxWidth), H: int(nh.MaxHeight)},
		WidthInc:  int(nh.WidthInc),
		HeightInc: int(nh.HeightInc),
	}
}

// WmHints is the recognized subset of ICCCM WM_HINTS.
type WmHints struct {
	Input bool
}

// propCache holds properties that are read once and held until Invalidate is
// called explicitly (Design Note: an explicit per-window property cache,
// invalidated on the window's own lifecycle rather than on every
// PropertyNotify -- see DESIGN.md "Property caches" entry).
type propCache struct {
	loaded    bool
	resName   string
	resClass  string
	protocols map[string]xproto.Atom
	hints     SizeHints
	wmHints   WmHints
}

// Window is the per-window record. id/override_redirect/transient_for are
// set once at manage time; geom/wanted_geom/map_state/wm_state/desktop_index
// evolve as the reconciler runs.
type Window struct {
	Id                Wid
	OverrideRedirect  bool
	Geom              common.Geometry
	WantedGeom        common.Geometry
	MapState          MapState
	Name              string
	cache             propCache
	TransientFor      Wid
	HasTransientFor   bool
	DesktopIndex      uint32
	WmState           WmState

	// NetStates holds _NET_WM_STATE names. protocol.ReadWindow does not
	// fill it, and the engine never consults it.
	NetStates []string
	// MotifHintsLoaded marks Motif decoration hints as read. Nothing sets
	// it; the engine draws no decorations (Non-goal).
	MotifHintsLoaded bool
}

// ResName, ResClass, Protocols, SizeHints and WmHints are populated by
// SetProperties, which protocol.ReadWindow calls when it builds the record,
// and held until Invalidate.
func (w *Window) SetProperties(resName, resClass string, protocols map[string]xproto.Atom, hints SizeHints, wmHints WmHints) {
	w.cache.loaded = true
	w.cache.resName = resName
	w.cache.resClass = resClass
	w.cache.protocols = protocols
	w.cache.hints = hints
	w.cache.wmHints = wmHints
}

func (w *Window) ResName() string  { return w.cache.resName }
func (w *Window) ResClass() string { return w.cache.resClass }

func (w *Window) HasProtocol(name string) (xproto.Atom, bool) {
	if w.cache.protocols == nil {
		return 0, false
	}
	a, ok := w.cache.protocols[name]
	return a, ok
}

func (w *Window) SizeHints() SizeHints { return w.cache.hints }
func (w *Window) WmHints() WmHints     { return w.cache.wmHints }
func (w *Window) PropertiesLoaded() bool { return w.cache.loaded }

// Invalidate drops the cached properties; called only when the window is
// destroyed, per invariant 4.
func (w *Window) Invalidate() {
	w.cache = propCache{}
}

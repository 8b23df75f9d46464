// Package keyboard is the Keyboard Map (spec.md §4.B): resolving keysym
// names to keycodes/modifiers, and installing the power-set of grabs X
// requires so that NumLock/CapsLock don't break a binding.
package keyboard

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/keybind"
	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/display"
)

// Binding is one user-configured key binding, resolved from a string spec
// like "Control-Shift-Return" (keybind.ParseString's grammar).
type Binding struct {
	Spec        string
	Action      string
	IgnoreMods  uint16
}

// grabKey identifies one installed grab: a literal (keycode, modifier mask)
// pair, the key X dispatches KeyPress events by.
type grabKey struct {
	Keycode xproto.Keycode
	Mask    uint16
}

// Map owns the live grab table and the connection used to (re)install it.
type Map struct {
	a        *display.Adapter
	log      *logrus.Logger
	bindings []Binding
	table    map[grabKey]string
}

func New(a *display.Adapter, log *logrus.Logger) *Map {
	keybind.Initialize(a.X)
	return &Map{a: a, log: log, table: map[grabKey]string{}}
}

// DefaultIgnoreMods is CapsLock + NumLock, the modifiers whose state a user
// binding should not care about (original_source/footwm/kb.py resolves
// these by searching the modifier map for Caps_Lock/Num_Lock keysyms;
// xgbutil's keybind package already tracks NumLock's mask for us).
func DefaultIgnoreMods(a *display.Adapter) uint16 {
	return xproto.ModMaskLock | keybind.NumLockMask(a.X)
}

// Configure replaces the bound set and rebuilds+installs the grab table.
func (m *Map) Configure(bindings []Binding) {
	m.bindings = bindings
	m.Rebuild()
}

// Action returns the action bound to (keycode, modifier state), matching
// footkeys.py's _handle_keypress lookup.
func (m *Map) Action(keycode xproto.Keycode, state uint16) (string, bool) {
	action, ok := m.table[grabKey{Keycode: keycode, Mask: state}]
	return action, ok
}

// Rebuild ungrabs everything and reinstalls from the current binding set.
// Called once at startup and again on every MappingNotify (spec.md §4.B:
// "On MappingNotify, ungrab everything and rebuild the tables"), mirroring
// original_source/footwm/footkeys.py's FootKeys._rebuild.
func (m *Map) Rebuild() {
	m.ungrabAll()
	m.table = map[grabKey]string{}
	root := m.a.RootWin()
	for _, b := range m.bindings {
		mods, keycode, err := keybind.ParseString(m.a.X, b.Spec)
		if err != nil {
			m.log.WithFields(logrus.Fields{"spec": b.Spec, "error": err}).Warn("keybinding: could not resolve")
			continue
		}
		for _, ignoreSubset := range icsfactorial(splitMods(b.IgnoreMods)) {
			mask := mods | combine(ignoreSubset)
			gk := grabKey{Keycode: keycode, Mask: mask}
			m.table[gk] = b.Action
			m.grab(root, keycode, mask)
		}
		// The empty subset (no ignored modifiers active) always applies.
		gk := grabKey{Keycode: keycode, Mask: mods}
		m.table[gk] = b.Action
		m.grab(root, keycode, mods)
	}
}

func (m *Map) grab(root xproto.Window, keycode xproto.Keycode, mask uint16) {
	err := xproto.GrabKeyChecked(m.a.X.Conn(), true, root, mask, keycode,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
	if err != nil {
		m.log.WithFields(logrus.Fields{"keycode": keycode, "mask": mask, "error": err}).Warn("grab_key failed")
	}
}

func (m *Map) ungrabAll() {
	xproto.UngrabKey(m.a.X.Conn(), xproto.GrabAny, m.a.RootWin(), xproto.ModMaskAny)
}

// icsfactorial enumerates the non-empty subsets of mods, the set of subsets
// X needs one grab per, per spec.md §4.B step 3 and
// original_source/footwm/footkeys.py's icsfactorial. The empty subset is
// not included; Rebuild installs that grab separately.
func icsfactorial(mods []uint16) [][]uint16 {
	if len(mods) == 0 {
		return nil
	}
	var out [][]uint16
	n := len(mods)
	for mask := 1; mask < (1 << n); mask++ {
		var subset []uint16
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, mods[i])
			}
		}
		out = append(out, subset)
	}
	return out
}

func combine(mods []uint16) uint16 {
	var m uint16
	for _, mod := range mods {
		m |= mod
	}
	return m
}

func splitMods(mods uint16) []uint16 {
	var out []uint16
	for bit := uint16(1); bit != 0; bit <<= 1 {
		if mods&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

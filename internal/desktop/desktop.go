// Package desktop is the Desktop Engine: the ordered list of desktops, each
// holding a per-desktop MRU window stack, and the operations that keep the
// single fullscreen top-of-stack focus model consistent (spec.md §4.E).
package desktop

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/common"
	"github.com/footwm/footwm/internal/window"
	"github.com/footwm/footwm/internal/wmroot"
)

// UnassignedName is the name of the desktop that always exists and can
// never be deleted (G2).
const UnassignedName = "Unassigned"

// Desktop is an ordered MRU stack of windows under a unique name. stack[0]
// is the visible, topmost window.
type Desktop struct {
	Name  string
	Stack []window.Wid
}

// Ops is the capability set the engine needs from the rest of the WM: X
// requests (via the Display Adapter) and protocol property publication
// (via the Protocol Layer). Splitting this out lets the engine stay a pure
// state machine over these calls, testable without a real X connection
// (Design Note: capability-set composition instead of inheritance chains).
type Ops interface {
	MoveResize(id window.Wid, g common.Geometry)
	Map(id window.Wid)
	Unmap(id window.Wid)
	Focus(w *window.Window)
	SetWmState(id window.Wid, state window.WmState)
	SetWmDesktop(id window.Wid, index uint32)

	PublishActiveWindow(id window.Wid)
	PublishClientList(ids []window.Wid)
	PublishClientListStacking(ids []window.Wid)
	PublishDesktopNames(names []string)
	PublishNumberOfDesktops(n uint)
}

// SizerFor picks the placement policy for a window, keyed by WM_CLASS
// res_class (SPEC_FULL.md §4.C ADDENDUM). New replaces a nil SizerFor with
// one that always returns HonourableMax.
type SizerFor func(w *window.Window) window.Sizer

// Engine is the desktop/window state machine. It holds no X connection of
// its own; all server interaction goes through Ops.
type Engine struct {
	Root         *wmroot.Root
	RootGeometry func() common.Geometry
	Ops          Ops
	SizerFor     SizerFor
	Log          *logrus.Logger

	mu       sync.RWMutex
	desktops []*Desktop
}

// New creates an engine with the always-present Unassigned desktop current.
func New(root *wmroot.Root, rootGeom func() common.Geometry, ops Ops, sizerFor SizerFor, log *logrus.Logger) *Engine {
	if sizerFor == nil {
		sizerFor = func(*window.Window) window.Sizer { return window.HonourableMax }
	}
	e := &Engine{
		Root:         root,
		RootGeometry: rootGeom,
		Ops:          ops,
		SizerFor:     sizerFor,
		Log:          log,
		desktops:     []*Desktop{{Name: UnassignedName}},
	}
	return e
}

// ManageWindowP is the manage-window-predicate: a window is taken under
// management iff it is viewable or already carries WM_STATE, and is not
// override_redirect.
func ManageWindowP(w *window.Window, hasWmState bool) bool {
	if w.OverrideRedirect {
		return false
	}
	if w.MapState == window.Viewable {
		return true
	}
	return hasWmState
}

func (e *Engine) current() *Desktop {
	return e.desktops[0]
}

// DesktopNames returns the desktop names in order, desktops[0] first.
func (e *Engine) DesktopNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.desktops))
	for i, d := range e.desktops {
		names[i] = d.Name
	}
	return names
}

// DesktopIndex returns the position of the named desktop.
func (e *Engine) DesktopIndex(name string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i, d := range e.desktops {
		if d.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) findDesktopOf(id window.Wid) (*Desktop, int) {
	for _, d := range e.desktops {
		for i, w := range d.Stack {
			if w == id {
				return d, i
			}
		}
	}
	return nil, -1
}

func (e *Engine) publishDesktopHints() {
	names := make([]string, len(e.desktops))
	for i, d := range e.desktops {
		names[i] = d.Name
	}
	e.Ops.PublishNumberOfDesktops(uint(len(e.desktops)))
	e.Ops.PublishDesktopNames(names)
}

func (e *Engine) publishClientHints() {
	e.Ops.PublishClientList(childIds(e.Root.Children()))
	e.Ops.PublishClientListStacking(e.current().Stack)
}

func childIds(children []*window.Window) []window.Wid {
	ids := make([]window.Wid, len(children))
	for i, c := range children {
		ids[i] = c.Id
	}
	return ids
}

// ManageWindow is called on MapRequest and on initial import.
func (e *Engine) ManageWindow(w *window.Window) {
	if w.OverrideRedirect {
		return
	}
	e.mu.Lock()
	cur := e.current()
	found := false
	for _, id := range cur.Stack {
		if id == w.Id {
			found = true
			break
		}
	}
	if !found {
		cur.Stack = append([]window.Wid{w.Id}, cur.Stack...)
	}
	e.mu.Unlock()

	e.RaiseWindow(w.Id)
	e.Redraw()
}

// UnmanageWindow is called on DestroyNotify. It removes w from root and
// from whichever desktop's stack contains it.
func (e *Engine) UnmanageWindow(id window.Wid) {
	e.mu.Lock()
	d, i := e.findDesktopOf(id)
	wasCurrent := d == e.current()
	if d != nil {
		d.Stack = append(d.Stack[:i], d.Stack[i+1:]...)
	} else {
		e.Log.WithField("window", id).Warn("unmanage_window: window not found in any desktop stack")
	}
	e.mu.Unlock()

	e.Root.Remove(id)
	e.publishClientHints()
	if wasCurrent {
		e.Redraw()
	}
}

// WithdrawWindow is called on a non-synthetic UnmapNotify.
func (e *Engine) WithdrawWindow(w *window.Window) {
	e.mu.RLock()
	_, i := e.findDesktopOf(w.Id)
	onCurrent := i >= 0 && e.findIsCurrent(w.Id)
	e.mu.RUnlock()
	if i < 0 {
		return
	}

	w.WmState = window.Withdrawn
	e.Ops.SetWmState(w.Id, window.Withdrawn)
	e.Log.WithField("window", w.Id).Debug("unmap successful")
	if onCurrent {
		e.Redraw()
	}
}

func (e *Engine) findIsCurrent(id window.Wid) bool {
	for _, w := range e.current().Stack {
		if w == id {
			return true
		}
	}
	return false
}

// RaiseWindow brings w's whole family to the top of the current desktop's
// stack, in family order (w first, parent next, ...), preserving internal
// family order.
func (e *Engine) RaiseWindow(id window.Wid) {
	w, ok := e.Root.Get(id)
	if !ok {
		return
	}
	family := e.Root.Family(w)

	e.mu.Lock()
	cur := e.current()
	if !containsAny(cur.Stack, id) {
		e.mu.Unlock()
		return
	}
	for _, fid := range family {
		cur.Stack = removeWid(cur.Stack, fid)
	}
	// Reinsert in family order at the top: family[0] ends up stack[0].
	newStack := make([]window.Wid, 0, len(family)+len(cur.Stack))
	newStack = append(newStack, family...)
	newStack = append(newStack, cur.Stack...)
	cur.Stack = newStack
	e.mu.Unlock()

	e.Ops.PublishClientListStacking(cur.Stack)
}

func containsAny(stack []window.Wid, id window.Wid) bool {
	for _, w := range stack {
		if w == id {
			return true
		}
	}
	return false
}

func removeWid(stack []window.Wid, id window.Wid) []window.Wid {
	out := stack[:0:0]
	for _, w := range stack {
		if w != id {
			out = append(out, w)
		}
	}
	return out
}

// AddDesktop inserts a new desktop at index, rejecting duplicate names.
func (e *Engine) AddDesktop(name string, index int) bool {
	e.mu.Lock()
	for _, d := range e.desktops {
		if d.Name == name {
			e.mu.Unlock()
			return false
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(e.desktops) {
		index = len(e.desktops)
	}
	oldCur := e.desktops[0]
	nd := &Desktop{Name: name}
	e.desktops = append(e.desktops, nil)
	copy(e.desktops[index+1:], e.desktops[index:])
	e.desktops[index] = nd
	e.mu.Unlock()

	e.publishDesktopHints()
	if index == 0 {
		// The new desktop is now current: hide the previous current one.
		for _, id := range oldCur.Stack {
			e.Ops.Unmap(id)
		}
		e.publishClientHints()
		e.Redraw()
	}
	return true
}

// DeleteDesktop refuses to delete Unassigned; migrates the target's windows
// to Unassigned first.
func (e *Engine) DeleteDesktop(index int) bool {
	e.mu.Lock()
	if index < 0 || index >= len(e.desktops) {
		e.mu.Unlock()
		e.Log.WithField("index", index).Warn("delete_desktop: index out of range")
		return false
	}
	target := e.desktops[index]
	if target.Name == UnassignedName {
		e.mu.Unlock()
		return false
	}
	wasCurrent := index == 0
	e.mu.Unlock()

	for _, id := range append([]window.Wid{}, target.Stack...) {
		e.SetWindowDesktop(id, e.unassignedIndex())
	}

	e.mu.Lock()
	// re-find; migration may have changed indices of desktops after it.
	for i, d := range e.desktops {
		if d == target {
			e.desktops = append(e.desktops[:i], e.desktops[i+1:]...)
			break
		}
	}
	e.mu.Unlock()

	e.publishDesktopHints()
	e.publishClientHints()
	if wasCurrent {
		// desktops[0] is now the next desktop; show it.
		e.Redraw()
	}
	return true
}

func (e *Engine) unassignedIndex() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i, d := range e.desktops {
		if d.Name == UnassignedName {
			return uint32(i)
		}
	}
	return 0
}

// RenameDesktop rejects duplicate names.
func (e *Engine) RenameDesktop(index int, newName string) bool {
	e.mu.Lock()
	if index < 0 || index >= len(e.desktops) {
		e.mu.Unlock()
		return false
	}
	for i, d := range e.desktops {
		if i != index && d.Name == newName {
			e.mu.Unlock()
			return false
		}
	}
	e.desktops[index].Name = newName
	e.mu.Unlock()

	e.publishDesktopHints()
	return true
}

// SelectDesktop makes the desktop at index current by reordering the list
// so it becomes desktops[0] (G4: _NET_CURRENT_DESKTOP stays 0).
func (e *Engine) SelectDesktop(index int) {
	e.mu.Lock()
	if index < 0 || index >= len(e.desktops) {
		e.mu.Unlock()
		e.Log.WithField("index", index).Warn("select_desktop: index out of range")
		return
	}
	if index == 0 {
		e.mu.Unlock()
		return
	}
	oldCur := e.desktops[0]
	target := e.desktops[index]
	e.desktops = append(e.desktops[:index], e.desktops[index+1:]...)
	e.desktops = append([]*Desktop{target}, e.desktops...)
	e.mu.Unlock()

	for _, id := range oldCur.Stack {
		e.Ops.Unmap(id)
	}
	e.publishDesktopHints()
	e.publishClientHints()
	e.Redraw()
}

// SetWindowDesktop moves w to the desktop at targetIndex.
func (e *Engine) SetWindowDesktop(id window.Wid, targetIndex uint32) {
	e.mu.Lock()
	src, _ := e.findDesktopOf(id)
	if src == nil {
		e.mu.Unlock()
		return
	}
	if int(targetIndex) >= len(e.desktops) {
		e.mu.Unlock()
		return
	}
	srcIsCurrent := src == e.current()
	dst := e.desktops[targetIndex]
	src.Stack = removeWid(src.Stack, id)
	dst.Stack = append([]window.Wid{id}, dst.Stack...)
	dstIsCurrent := dst == e.current()
	e.mu.Unlock()

	if srcIsCurrent {
		e.Ops.Unmap(id)
	}
	e.Ops.SetWmDesktop(id, targetIndex)
	if w, ok := e.Root.Get(id); ok {
		w.DesktopIndex = targetIndex
	}

	if srcIsCurrent || dstIsCurrent {
		e.Redraw()
	}
}

// Redraw sizes, maps and focuses the primary window (the first member of
// the top window's family) and unmaps every window on the current desktop
// outside that family. Other family members are neither mapped nor unmapped.
func (e *Engine) Redraw() {
	e.mu.RLock()
	cur := e.current()
	var family []window.Wid
	if len(cur.Stack) > 0 {
		if w, ok := e.Root.Get(cur.Stack[0]); ok {
			family = e.Root.Family(w)
		}
	}
	stack := append([]window.Wid{}, cur.Stack...)
	e.mu.RUnlock()

	if len(family) > 0 {
		primary, ok := e.Root.Get(family[0])
		if ok {
			available := e.RootGeometry()
			sizer := e.SizerFor(primary)
			geom := sizer(primary.Geom, available, primary.SizeHints())
			primary.WantedGeom = geom
			e.Ops.MoveResize(primary.Id, geom)
			e.Ops.Map(primary.Id)
			e.Ops.Focus(primary)
			e.Ops.PublishActiveWindow(primary.Id)
			e.Log.WithFields(logrus.Fields{"window": primary.Id, "geom": geom}).Debug("redraw: showing window")
		}
	}

	for _, id := range stack {
		if !containsAny(family, id) {
			e.Ops.Unmap(id)
		}
	}
}

// Package wmroot holds the ordered map of known windows and the family
// (transient chain) resolution that depends on it. It has no package-level
// state (Design Note: no global atom/display singletons) -- every operation
// takes a *Root explicitly.
package wmroot

import (
	"github.com/footwm/footwm/internal/window"
)

// Root is the set of windows known to the WM, in creation order. Creation
// order drives _NET_CLIENT_LIST (G5).
type Root struct {
	Id       window.Wid
	byId     map[window.Wid]*window.Window
	order    []window.Wid
}

func New(id window.Wid) *Root {
	return &Root{
		Id:   id,
		byId: make(map[window.Wid]*window.Window),
	}
}

// Insert adds w to the known set at the end of creation order. Inserting an
// id that is already known replaces the record in place without changing
// its position.
func (r *Root) Insert(w *window.Window) {
	if _, ok := r.byId[w.Id]; !ok {
		r.order = append(r.order, w.Id)
	}
	r.byId[w.Id] = w
}

// Remove drops w from the known set. Returns false if w was not known
// (DESIGN.md Open Question 2). desktop.Engine.UnmanageWindow ignores the
// result; it logs its own warning when the window is in no desktop stack.
func (r *Root) Remove(id window.Wid) bool {
	w, ok := r.byId[id]
	if !ok {
		return false
	}
	w.Invalidate()
	delete(r.byId, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Root) Get(id window.Wid) (*window.Window, bool) {
	w, ok := r.byId[id]
	return w, ok
}

// Children returns the known windows in creation order (the order that
// backs _NET_CLIENT_LIST).
func (r *Root) Children() []*window.Window {
	out := make([]*window.Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byId[id])
	}
	return out
}

// Family resolves the transient chain for w: [w, parent, grandparent, ...].
// If w.TransientFor is unset or not a known window, Family degenerates to
// [w] (invariant 2, and the "transient whose parent is not yet known"
// boundary case in spec.md §8).
func (r *Root) Family(w *window.Window) []window.Wid {
	family := []window.Wid{w.Id}
	cur := w
	for cur.HasTransientFor {
		parent, ok := r.byId[cur.TransientFor]
		if !ok {
			break
		}
		family = append(family, parent.Id)
		cur = parent
	}
	return family
}

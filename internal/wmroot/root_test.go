package wmroot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/footwm/footwm/internal/window"
)

func TestChildrenOrderIsCreationOrder(t *testing.T) {
	r := New(1)
	r.Insert(&window.Window{Id: 10})
	r.Insert(&window.Window{Id: 20})
	r.Insert(&window.Window{Id: 30})

	ids := []window.Wid{}
	for _, w := range r.Children() {
		ids = append(ids, w.Id)
	}
	assert.Equal(t, []window.Wid{10, 20, 30}, ids)
}

func TestRemoveMissingReturnsFalse(t *testing.T) {
	r := New(1)
	assert.False(t, r.Remove(99))
}

func TestFamilyChainThroughTransients(t *testing.T) {
	r := New(1)
	grandparent := &window.Window{Id: 1}
	parent := &window.Window{Id: 2, TransientFor: 1, HasTransientFor: true}
	child := &window.Window{Id: 3, TransientFor: 2, HasTransientFor: true}
	r.Insert(grandparent)
	r.Insert(parent)
	r.Insert(child)

	assert.Equal(t, []window.Wid{3, 2, 1}, r.Family(child))
	assert.Equal(t, []window.Wid{2, 1}, r.Family(parent))
	assert.Equal(t, []window.Wid{1}, r.Family(grandparent))
}

func TestFamilyDegeneratesWhenParentUnknown(t *testing.T) {
	r := New(1)
	orphan := &window.Window{Id: 3, TransientFor: 99, HasTransientFor: true}
	r.Insert(orphan)
	assert.Equal(t, []window.Wid{3}, r.Family(orphan))
}

package reconcile

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/footwm/footwm/internal/common"
)

func TestGeomOfRequest(t *testing.T) {
	e := xproto.ConfigureRequestEvent{X: 1, Y: 2, Width: 3, Height: 4}
	assert.Equal(t, common.Geometry{X: 1, Y: 2, W: 3, H: 4}, geomOfRequest(e))
}

func TestMergeRequestAppliesOnlyMaskedFields(t *testing.T) {
	current := common.Geometry{X: 10, Y: 20, W: 30, H: 40}
	e := xproto.ConfigureRequestEvent{
		ValueMask: xproto.ConfigWindowX | xproto.ConfigWindowWidth,
		X:         99,
		Width:     199,
	}
	got := mergeRequest(current, e)
	assert.Equal(t, common.Geometry{X: 99, Y: 20, W: 199, H: 40}, got)
}

func TestMergeRequestEmptyMaskIsNoOp(t *testing.T) {
	current := common.Geometry{X: 10, Y: 20, W: 30, H: 40}
	got := mergeRequest(current, xproto.ConfigureRequestEvent{})
	assert.Equal(t, current, got)
}

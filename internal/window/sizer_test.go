package window

import (
	"testing"

	"github.com/jezek/xgbutil/icccm"
	"github.com/stretchr/testify/assert"

	"github.com/footwm/footwm/internal/common"
)

func TestHonourableMaxFixedSize(t *testing.T) {
	available := common.Geometry{X: 0, Y: 0, W: 1920, H: 1080}
	current := common.Geometry{X: 10, Y: 10, W: 400, H: 300}
	hints := SizeHints{
		Flags:   icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinGeom: common.Geometry{W: 400, H: 300},
		MaxGeom: common.Geometry{W: 400, H: 300},
	}

	got := HonourableMax(current, available, hints)
	assert.Equal(t, 400, got.W)
	assert.Equal(t, 300, got.H)
}

func TestHonourableMaxDefaultsToAvailable(t *testing.T) {
	available := common.Geometry{X: 0, Y: 0, W: 1920, H: 1080}
	current := common.Geometry{X: 10, Y: 10, W: 400, H: 300}
	got := HonourableMax(current, available, SizeHints{})
	assert.True(t, got.Eq(available))
}

func TestBrutalMaxIgnoresHints(t *testing.T) {
	available := common.Geometry{X: 0, Y: 0, W: 800, H: 600}
	current := common.Geometry{X: 10, Y: 10, W: 400, H: 300}
	hints := SizeHints{Flags: icccm.SizeHintPMinSize, MinGeom: common.Geometry{W: 1, H: 1}}
	got := BrutalMax(current, available, hints)
	assert.True(t, got.Eq(available))
}

func TestTransientKeepsOwnSize(t *testing.T) {
	available := common.Geometry{X: 0, Y: 0, W: 1920, H: 1080}
	current := common.Geometry{X: 500, Y: 500, W: 300, H: 200}
	got := Transient(current, available, SizeHints{})
	assert.Equal(t, 300, got.W)
	assert.Equal(t, 200, got.H)
	assert.Equal(t, available.X+(available.W-300)/2, got.X)
	assert.Equal(t, available.Y+(available.H-200)/2, got.Y)
}

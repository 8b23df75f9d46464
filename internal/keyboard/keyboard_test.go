package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIcsfactorialIsPowerSetMinusEmpty(t *testing.T) {
	got := icsfactorial([]uint16{1, 2})
	assert.ElementsMatch(t, [][]uint16{{1}, {2}, {1, 2}}, got)
}

func TestIcsfactorialEmptyInput(t *testing.T) {
	assert.Nil(t, icsfactorial(nil))
}

func TestSplitModsRoundTripsThroughCombine(t *testing.T) {
	mods := uint16(1<<1 | 1<<4)
	parts := splitMods(mods)
	assert.Equal(t, mods, combine(parts))
}

package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"mode":    "regression",
		"trees":   3.0,
		"depth":   2,
		"enabled": true,
		"bias":    1,
	}

	assert.Equal(t, "regression", Get(m, "mode", ""))
	assert.Equal(t, 3, Get(m, "trees", 0))
	assert.Equal(t, 2.0, Get(m, "depth", 0.0))
	assert.Equal(t, 1.0, Get(m, "bias", 0.0))
	assert.True(t, Get(m, "enabled", false))
	assert.Equal(t, "fallback", Get(m, "missing", "fallback"))
	assert.Equal(t, 7, Get(m, "mode", 7))
}

func TestFloats(t *testing.T) {
	got, ok := Floats([]any{1.5, 2, int64(3)})
	assert.True(t, ok)
	assert.Equal(t, []float64{1.5, 2, 3}, got)

	_, ok = Floats([]any{1.0, "x"})
	assert.False(t, ok)

	_, ok = Floats(map[string]any{})
	assert.False(t, ok)
}

func TestInts(t *testing.T) {
	got, ok := Ints([]any{0.0, 4.0, -1.0})
	assert.True(t, ok)
	assert.Equal(t, []int{0, 4, -1}, got)

	_, ok = Ints([]any{0.5})
	assert.False(t, ok)
}

package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		filled int
		label  string
	}{
		{"empty", 0, 0, "0%"},
		{"half", 0.5, 5, "50%"},
		{"full", 1, 10, "100%"},
		{"over clamps", 1.5, 10, "100%"},
		{"negative clamps", -0.5, 0, "0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.Contains(t, got, tt.label)
		})
	}
}

func TestRenderCount(t *testing.T) {
	got := stripANSI(RenderCount(3, 5, 5))
	assert.Equal(t, 3, strings.Count(got, filledBlock))
	assert.Contains(t, got, "3/5")
	assert.NotContains(t, got, "✔")

	got = stripANSI(RenderCount(7, 5, 5))
	assert.Equal(t, 5, strings.Count(got, filledBlock))
	assert.Contains(t, got, "5/5 ✔")
}

func TestRenderCount_TinyWidthClamps(t *testing.T) {
	got := stripANSI(RenderCount(0, 0, 1))
	assert.Equal(t, 2, strings.Count(got, emptyBlock))
}

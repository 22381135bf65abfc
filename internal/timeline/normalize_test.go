package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStart(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 30},
		{30, 30},
		{545, 570},
		{1425, 0},
		{1439, 0},
		{-20, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStart(tt.in), "NormalizeStart(%d)", tt.in)
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{45, 60},
		{0, 30},
		{-15, 30},
		{30, 30},
		{31, 60},
		{1440, 1440},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDuration(tt.in), "NormalizeDuration(%d)", tt.in)
	}
}

func TestEditForm_Blur(t *testing.T) {
	f := EditForm{StartMin: 1425, DurationMin: 45}
	f.BlurStart()
	f.BlurDuration()
	assert.Equal(t, 0, f.StartMin)
	assert.Equal(t, 60, f.DurationMin)
}

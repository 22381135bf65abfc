// Package timeline implements the per-day scheduling engine: minute/pixel
// mapping, overlap detection, and the drag, drop, and resize state machine
// that owns one day's activity blocks.
package timeline

import (
	"errors"
	"math"

	"github.com/alexanderramin/tratlus/internal/domain"
)

const (
	DefaultPxPerHour   = 40.0
	DefaultSnapMinutes = domain.SlotMinutes
	DefaultClearancePx = 10.0
)

// Geometry describes how the timeline maps to vertical screen space.
type Geometry struct {
	PxPerHour   float64
	SnapMinutes int
	// ClearancePx offsets every placement so the first and last hour labels
	// stay visible. Blocks and ghost previews both include it.
	ClearancePx float64
}

// DefaultGeometry returns the compact day-view geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		PxPerHour:   DefaultPxPerHour,
		SnapMinutes: DefaultSnapMinutes,
		ClearancePx: DefaultClearancePx,
	}
}

// Validate checks that g can produce grid-aligned placements.
func (g Geometry) Validate() error {
	if g.PxPerHour <= 0 {
		return errors.New("pixels per hour must be positive")
	}
	if g.SnapMinutes <= 0 || g.SnapMinutes%domain.SlotMinutes != 0 || domain.MinutesPerDay%g.SnapMinutes != 0 {
		return errors.New("snap minutes must be a positive multiple of 30 dividing the day")
	}
	if g.ClearancePx < 0 {
		return errors.New("clearance must not be negative")
	}
	return nil
}

// MinutesToPixels converts a clock offset to a vertical pixel offset.
func MinutesToPixels(minutes int, pxPerHour float64) float64 {
	return float64(minutes) / 60 * pxPerHour
}

// PixelsToMinutes converts a pixel offset to minutes snapped to the nearest
// multiple of snapMinutes. Halves round toward positive infinity.
func PixelsToMinutes(pixels, pxPerHour float64, snapMinutes int) int {
	slots := pixels / pxPerHour * 60 / float64(snapMinutes)
	return int(math.Floor(slots+0.5)) * snapMinutes
}

// ClampStart keeps a block of the given duration inside [0, dayLength].
func ClampStart(candidateStart, duration, dayLength int) int {
	return max(0, min(candidateStart, dayLength-duration))
}

// BlockTop returns the y offset of a block starting at startMin.
func (g Geometry) BlockTop(startMin int) float64 {
	return MinutesToPixels(startMin, g.PxPerHour) + g.ClearancePx
}

// BlockHeight returns the rendered height of a block of the given duration.
func (g Geometry) BlockHeight(durationMin int) float64 {
	return MinutesToPixels(durationMin, g.PxPerHour)
}

// CursorMinutes maps a cursor y offset, relative to the timeline top, to
// snapped minutes.
func (g Geometry) CursorMinutes(cursorY float64) int {
	return PixelsToMinutes(cursorY-g.ClearancePx, g.PxPerHour, g.SnapMinutes)
}

// Height is the full rendered height of one day, including both clearances.
func (g Geometry) Height() float64 {
	return 24*g.PxPerHour + 2*g.ClearancePx
}

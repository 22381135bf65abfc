package timeline

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// DragPayload identifies what is being dragged. Exactly one of Category
// (palette drag) or SourceIndex >= 0 (existing block) is set.
type DragPayload struct {
	Category    domain.Category
	SourceIndex int
}

// FromPalette reports whether the payload creates a new block.
func (p DragPayload) FromPalette() bool {
	return p.SourceIndex < 0
}

// GhostPreview is the candidate placement shown while dragging.
type GhostPreview struct {
	Category    domain.Category
	SourceIndex int
	StartMin    int
	DurationMin int
	Valid       bool
}

// DragSession carries one drag gesture between the palette and the timeline.
// It is created by DayTimeline.BeginPaletteDrag or BeginBlockDrag and must be
// handed back to the timeline's DragOver, DragLeave, Drop, and EndDrag.
type DragSession struct {
	payload DragPayload
	ghost   *GhostPreview
	ended   bool
}

// Payload returns what this session is dragging.
func (s *DragSession) Payload() DragPayload {
	return s.payload
}

// Ghost returns the current preview, if any.
func (s *DragSession) Ghost() (GhostPreview, bool) {
	if s.ghost == nil {
		return GhostPreview{}, false
	}
	return *s.ghost, true
}

// ResizeEdge selects which handle of a block is being dragged.
type ResizeEdge int

const (
	EdgeTop ResizeEdge = iota
	EdgeBottom
)

func (e ResizeEdge) String() string {
	if e == EdgeTop {
		return "top"
	}
	return "bottom"
}

// ParseResizeEdge accepts "top" or "bottom".
func ParseResizeEdge(s string) (ResizeEdge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	default:
		return 0, fmt.Errorf("unknown resize edge %q (want top or bottom)", s)
	}
}

// ResizeSession tracks one resize gesture. Each Move commits to the owning
// timeline immediately; Release ends the gesture and may be called any
// number of times.
type ResizeSession struct {
	timeline     *DayTimeline
	index        int
	edge         ResizeEdge
	originY      float64
	origStart    int
	origDuration int
	released     bool
}

// Index returns the block being resized.
func (r *ResizeSession) Index() int {
	return r.index
}

// Move applies the pointer position y. It returns the updated block and
// false once the session has been released.
func (r *ResizeSession) Move(y float64) (domain.ActivityBlock, bool) {
	t := r.timeline
	if r.released || t.resize != r {
		return domain.ActivityBlock{}, false
	}

	g := t.geom
	delta := PixelsToMinutes(y-r.originY, g.PxPerHour, g.SnapMinutes)
	b := t.blocks[r.index]

	switch r.edge {
	case EdgeBottom:
		b.DurationMin = max(domain.SlotMinutes, min(r.origDuration+delta, domain.MinutesPerDay-r.origStart))
	case EdgeTop:
		start := max(0, min(r.origStart+delta, r.origStart+r.origDuration-domain.SlotMinutes))
		b.StartMin = start
		b.DurationMin = r.origDuration + (r.origStart - start)
	}

	t.blocks[r.index] = b
	return b, true
}

// Release ends the gesture and returns the timeline to idle.
func (r *ResizeSession) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.timeline.resize == r {
		r.timeline.resize = nil
		r.timeline.state = StateIdle
	}
}

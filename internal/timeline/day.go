package timeline

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/domain"
)

var (
	// ErrIndexOutOfRange is returned when an operation names a block that does not exist.
	// The timeline is left unchanged.
	ErrIndexOutOfRange = errors.New("block index out of range")

	// ErrGestureActive is returned when a gesture starts while another is in progress.
	ErrGestureActive = errors.New("another gesture is in progress")

	// ErrStaleGesture is returned when a finished or foreign session is used.
	ErrStaleGesture = errors.New("gesture session is not active")

	// ErrInvalidBlock wraps block validation failures on edit.
	ErrInvalidBlock = errors.New("invalid activity block")
)

// State is the interaction state of a DayTimeline.
type State int

const (
	StateIdle State = iota
	StateDraggingNew
	StateDraggingExisting
	StateResizingTop
	StateResizingBottom
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingNew:
		return "dragging_new"
	case StateDraggingExisting:
		return "dragging_existing"
	case StateResizingTop:
		return "resizing_top"
	case StateResizingBottom:
		return "resizing_bottom"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DayTimeline owns the blocks of one calendar day and the gesture in progress.
type DayTimeline struct {
	geom   Geometry
	blocks []domain.ActivityBlock
	state  State
	drag   *DragSession
	resize *ResizeSession
}

// New creates a timeline over a copy of blocks.
func New(geom Geometry, blocks []domain.ActivityBlock) *DayTimeline {
	return &DayTimeline{
		geom:   geom,
		blocks: append([]domain.ActivityBlock(nil), blocks...),
	}
}

// Geometry returns the timeline's screen mapping.
func (d *DayTimeline) Geometry() Geometry { return d.geom }

// State returns the current interaction state.
func (d *DayTimeline) State() State { return d.state }

// Len returns the number of blocks.
func (d *DayTimeline) Len() int { return len(d.blocks) }

// Blocks returns a copy of the blocks in insertion order.
func (d *DayTimeline) Blocks() []domain.ActivityBlock {
	return append([]domain.ActivityBlock(nil), d.blocks...)
}

// Block returns the block at index.
func (d *DayTimeline) Block(index int) (domain.ActivityBlock, error) {
	if err := d.checkIndex(index); err != nil {
		return domain.ActivityBlock{}, err
	}
	return d.blocks[index], nil
}

// Ghost returns the preview of the active drag, if any.
func (d *DayTimeline) Ghost() (GhostPreview, bool) {
	if d.drag == nil {
		return GhostPreview{}, false
	}
	return d.drag.Ghost()
}

// BeginPaletteDrag starts dragging a new block of the given category.
func (d *DayTimeline) BeginPaletteDrag(category domain.Category) (*DragSession, error) {
	if d.state != StateIdle {
		return nil, ErrGestureActive
	}
	if !category.Valid() {
		return nil, fmt.Errorf("starting drag: unknown category %q", category)
	}
	d.drag = &DragSession{payload: DragPayload{Category: category, SourceIndex: -1}}
	d.state = StateDraggingNew
	return d.drag, nil
}

// BeginBlockDrag starts repositioning the block at index.
func (d *DayTimeline) BeginBlockDrag(index int) (*DragSession, error) {
	if d.state != StateIdle {
		return nil, ErrGestureActive
	}
	if err := d.checkIndex(index); err != nil {
		return nil, err
	}
	d.drag = &DragSession{payload: DragPayload{SourceIndex: index}}
	d.state = StateDraggingExisting
	return d.drag, nil
}

// DragOver updates the ghost preview for a cursor at cursorY pixels below the
// timeline top. Repeated calls with the same position yield the same preview.
func (d *DayTimeline) DragOver(s *DragSession, cursorY float64) (GhostPreview, error) {
	if !d.owns(s) {
		return GhostPreview{}, ErrStaleGesture
	}

	minutes := d.geom.CursorMinutes(cursorY)

	var ghost GhostPreview
	if s.payload.FromPalette() {
		duration := s.payload.Category.Spec().DefaultDuration
		start := ClampStart(minutes, duration, domain.MinutesPerDay)
		ghost = GhostPreview{
			Category:    s.payload.Category,
			SourceIndex: -1,
			StartMin:    start,
			DurationMin: duration,
			Valid:       !IsConflicting(start, duration, d.blocks, NoExclude),
		}
	} else {
		src := d.blocks[s.payload.SourceIndex]
		start := ClampStart(minutes, src.DurationMin, domain.MinutesPerDay)
		ghost = GhostPreview{
			Category:    src.Category,
			SourceIndex: s.payload.SourceIndex,
			StartMin:    start,
			DurationMin: src.DurationMin,
			Valid:       !IsConflicting(start, src.DurationMin, d.blocks, s.payload.SourceIndex),
		}
	}

	s.ghost = &ghost
	return ghost, nil
}

// DragLeave clears the preview when the pointer leaves the timeline. The
// gesture stays active so a later DragOver can resume it.
func (d *DayTimeline) DragLeave(s *DragSession) {
	if d.owns(s) {
		s.ghost = nil
	}
}

// Drop commits the ghost placement. A missing or invalid ghost cancels the
// gesture without mutation and reports false. The gesture always ends.
func (d *DayTimeline) Drop(s *DragSession) (bool, error) {
	if !d.owns(s) {
		return false, ErrStaleGesture
	}
	defer d.EndDrag(s)

	ghost, ok := s.Ghost()
	if !ok || !ghost.Valid {
		return false, nil
	}

	if s.payload.FromPalette() {
		d.blocks = append(d.blocks, domain.NewBlock(s.payload.Category, ghost.StartMin, ghost.DurationMin))
		return true, nil
	}

	b := d.blocks[s.payload.SourceIndex]
	b.StartMin = ghost.StartMin
	b.DurationMin = ghost.DurationMin
	d.blocks[s.payload.SourceIndex] = b
	return true, nil
}

// EndDrag finishes the gesture and clears the ghost. Calling it on a session
// that already ended is a no-op.
func (d *DayTimeline) EndDrag(s *DragSession) {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	s.ghost = nil
	if d.drag == s {
		d.drag = nil
		d.state = StateIdle
	}
}

// BeginResize grabs an edge of the block at index with the pointer at y.
func (d *DayTimeline) BeginResize(index int, edge ResizeEdge, y float64) (*ResizeSession, error) {
	if d.state != StateIdle {
		return nil, ErrGestureActive
	}
	if err := d.checkIndex(index); err != nil {
		return nil, err
	}
	b := d.blocks[index]
	d.resize = &ResizeSession{
		timeline:     d,
		index:        index,
		edge:         edge,
		originY:      y,
		origStart:    b.StartMin,
		origDuration: b.DurationMin,
	}
	if edge == EdgeTop {
		d.state = StateResizingTop
	} else {
		d.state = StateResizingBottom
	}
	return d.resize, nil
}

// Delete removes the block at index.
func (d *DayTimeline) Delete(index int) error {
	if d.state != StateIdle {
		return ErrGestureActive
	}
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.blocks = append(d.blocks[:index], d.blocks[index+1:]...)
	return nil
}

// Save normalizes an edit form and replaces the block at index with it.
func (d *DayTimeline) Save(index int, form EditForm) (domain.ActivityBlock, error) {
	if d.state != StateIdle {
		return domain.ActivityBlock{}, ErrGestureActive
	}
	if err := d.checkIndex(index); err != nil {
		return domain.ActivityBlock{}, err
	}
	b := form.Normalized().Block()
	if err := b.Validate(); err != nil {
		return domain.ActivityBlock{}, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	d.blocks[index] = b
	return b, nil
}

func (d *DayTimeline) owns(s *DragSession) bool {
	return s != nil && !s.ended && d.drag == s
}

func (d *DayTimeline) checkIndex(index int) error {
	if index < 0 || index >= len(d.blocks) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(d.blocks))
	}
	return nil
}

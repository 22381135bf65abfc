package timeline

import "github.com/alexanderramin/tratlus/internal/domain"

// EditForm holds the editable fields of a block while the edit surface is open.
type EditForm struct {
	Category    domain.Category
	Title       string
	Location    string
	Notes       string
	StartMin    int
	DurationMin int
}

// FormFromBlock pre-fills an edit form.
func FormFromBlock(b domain.ActivityBlock) EditForm {
	return EditForm{
		Category:    b.Category,
		Title:       b.Title,
		Location:    b.Location,
		Notes:       b.Notes,
		StartMin:    b.StartMin,
		DurationMin: b.DurationMin,
	}
}

// BlurStart normalizes the start field as the edit surface does on focus loss.
func (f *EditForm) BlurStart() {
	f.StartMin = NormalizeStart(f.StartMin)
}

// BlurDuration normalizes the duration field as the edit surface does on focus loss.
func (f *EditForm) BlurDuration() {
	f.DurationMin = NormalizeDuration(f.DurationMin)
}

// Normalized returns the form with both time fields normalized.
func (f EditForm) Normalized() EditForm {
	f.BlurStart()
	f.BlurDuration()
	return f
}

// Block converts the form back into a block.
func (f EditForm) Block() domain.ActivityBlock {
	return domain.ActivityBlock{
		Category:    f.Category,
		Title:       f.Title,
		Location:    f.Location,
		Notes:       f.Notes,
		StartMin:    f.StartMin,
		DurationMin: f.DurationMin,
	}
}

// NormalizeDuration rounds up to the next slot with a floor of one slot.
func NormalizeDuration(durationMin int) int {
	return max(domain.SlotMinutes, ceilToSlot(durationMin))
}

// NormalizeStart rounds up to the next slot and wraps at midnight, so 23:45
// becomes 00:00 rather than 24:00.
func NormalizeStart(startMin int) int {
	return max(0, ceilToSlot(startMin)) % domain.MinutesPerDay
}

func ceilToSlot(minutes int) int {
	if minutes <= 0 {
		// Integer division truncates toward zero, which is the ceiling for negatives.
		return minutes / domain.SlotMinutes * domain.SlotMinutes
	}
	return (minutes + domain.SlotMinutes - 1) / domain.SlotMinutes * domain.SlotMinutes
}

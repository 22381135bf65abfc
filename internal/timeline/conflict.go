package timeline

import "github.com/alexanderramin/tratlus/internal/domain"

// NoExclude disables index exclusion in IsConflicting.
const NoExclude = -1

// IsConflicting reports whether [start, start+duration) overlaps any block
// other than the one at exclude. Touching endpoints do not overlap.
func IsConflicting(start, duration int, blocks []domain.ActivityBlock, exclude int) bool {
	end := start + duration
	for i, b := range blocks {
		if i == exclude {
			continue
		}
		if start < b.EndMin() && end > b.StartMin {
			return true
		}
	}
	return false
}

// Overlaps returns every pair of block indices whose intervals overlap.
// Drops never produce overlaps, but resizes and edits can.
func Overlaps(blocks []domain.ActivityBlock) [][2]int {
	var pairs [][2]int
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].StartMin < blocks[j].EndMin() && blocks[i].EndMin() > blocks[j].StartMin {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

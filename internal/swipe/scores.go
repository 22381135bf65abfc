package swipe

import (
	"fmt"
	"sort"
	"strings"
)

// ScoreMap accumulates a like/dislike score per tag.
type ScoreMap map[string]int

// TagScore is one entry of a ranked score listing.
type TagScore struct {
	Tag   string
	Score int
}

func (t TagScore) String() string {
	return fmt.Sprintf("%s (score: %d)", t.Tag, t.Score)
}

// Apply adds delta to every tag. Duplicate tags count once per occurrence.
func (m ScoreMap) Apply(tags []string, delta int) {
	for _, tag := range tags {
		m[tag] += delta
	}
}

// Clone returns an independent copy.
func (m ScoreMap) Clone() ScoreMap {
	out := make(ScoreMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TopLiked returns up to n tags with positive scores, highest first. Ties
// are ordered by tag name.
func (m ScoreMap) TopLiked(n int) []TagScore {
	return m.ranked(n, func(s int) bool { return s > 0 }, func(a, b int) bool { return a > b })
}

// TopDisliked returns up to n tags with negative scores, lowest first. Ties
// are ordered by tag name.
func (m ScoreMap) TopDisliked(n int) []TagScore {
	return m.ranked(n, func(s int) bool { return s < 0 }, func(a, b int) bool { return a < b })
}

func (m ScoreMap) ranked(n int, keep func(int) bool, before func(a, b int) bool) []TagScore {
	var out []TagScore
	for tag, score := range m {
		if keep(score) {
			out = append(out, TagScore{Tag: tag, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return before(out[i].Score, out[j].Score)
		}
		return out[i].Tag < out[j].Tag
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// JoinTagScores renders a ranked listing as "tag (score: N), ...".
func JoinTagScores(scores []TagScore) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

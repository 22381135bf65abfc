package swipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMap_Apply(t *testing.T) {
	m := ScoreMap{}
	m.Apply([]string{"beach", "luxury"}, 1)
	m.Apply([]string{"beach"}, 1)
	m.Apply([]string{"luxury"}, -1)
	assert.Equal(t, ScoreMap{"beach": 2, "luxury": 0}, m)
}

func TestScoreMap_TopLiked(t *testing.T) {
	m := ScoreMap{"beach": 3, "urban": 1, "culture": 3, "nightlife": -2, "food": 0}

	got := m.TopLiked(10)
	assert.Equal(t, []TagScore{{"beach", 3}, {"culture", 3}, {"urban", 1}}, got)
	assert.Len(t, m.TopLiked(2), 2)
	assert.Equal(t, "beach (score: 3), culture (score: 3)", JoinTagScores(m.TopLiked(2)))
}

func TestScoreMap_TopDisliked(t *testing.T) {
	m := ScoreMap{"crowds": -1, "nightlife": -4, "cold": -1, "beach": 2}

	assert.Equal(t, []TagScore{{"nightlife", -4}, {"cold", -1}, {"crowds", -1}}, m.TopDisliked(5))
	assert.Empty(t, ScoreMap{"beach": 1}.TopDisliked(5))
	assert.Equal(t, "", JoinTagScores(nil))
}

func TestScoreMap_Clone(t *testing.T) {
	m := ScoreMap{"beach": 1}
	c := m.Clone()
	c["beach"] = 5
	assert.Equal(t, 1, m["beach"])
}

package swipe

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	deck, err := LoadDeck()
	require.NoError(t, err)
	return NewSession(deck, rand.New(rand.NewSource(42)))
}

// smallDeck has exactly RequiredSwipes+1 cards per category.
func smallDeck(t *testing.T) *Deck {
	t.Helper()
	var cards []domain.TravelCard
	for _, cat := range domain.CardCategories {
		for i := 0; i <= RequiredSwipes; i++ {
			cards = append(cards, domain.TravelCard{
				ID:       string(cat) + "-" + string(rune('a'+i)),
				Category: cat,
				Title:    "card",
				Tags:     []string{"beach", "luxury"},
			})
		}
	}
	deck, err := NewDeck(cards)
	require.NoError(t, err)
	return deck
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestLoadDeck_EmbeddedCards(t *testing.T) {
	deck, err := LoadDeck()
	require.NoError(t, err)
	assert.Equal(t, 221, deck.Len())
	for _, cat := range domain.CardCategories {
		assert.GreaterOrEqual(t, len(deck.Cards(cat)), RequiredSwipes, "category %s", cat)
	}
}

func TestNewDeck_RejectsBadCards(t *testing.T) {
	_, err := NewDeck([]domain.TravelCard{{ID: "x", Category: "Museums"}})
	assert.Error(t, err)

	_, err = NewDeck([]domain.TravelCard{
		{ID: "x", Category: domain.CardFood},
		{ID: "x", Category: domain.CardFood},
	})
	assert.Error(t, err)
}

func TestSwipe_RightAndLeftScoreTags(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))

	_, _, err := s.Swipe(Right)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Scores()["beach"])
	assert.Equal(t, 1, s.Scores()["luxury"])

	_, _, err = s.Swipe(Left)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Scores()["beach"])
	assert.Equal(t, 0, s.Scores()["luxury"])

	_, _, err = s.Swipe(Left)
	require.NoError(t, err)
	assert.Equal(t, -1, s.Scores()["beach"])
	assert.Equal(t, -1, s.Scores()["luxury"])
}

func TestSwipe_CompletionFiresOnce(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))

	fired := 0
	for i := 0; i < RequiredSwipes+1; i++ {
		_, events, err := s.Swipe(Right)
		require.NoError(t, err)
		fired += countKind(events, EventCategoryCompleted)
		if i == RequiredSwipes-1 {
			assert.True(t, s.Completed(domain.CardLocations))
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, RequiredSwipes+1, s.Count(domain.CardLocations))
}

func TestSwipe_ExhaustedStack(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))

	var last []Event
	for i := 0; i < RequiredSwipes+1; i++ {
		var err error
		_, last, err = s.Swipe(Left)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, countKind(last, EventStackExhausted))

	_, _, err := s.Swipe(Left)
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestBeginSwipe_BlocksUntilFinished(t *testing.T) {
	s := newTestSession(t)

	card, err := s.BeginSwipe(Right)
	require.NoError(t, err)
	assert.True(t, s.Pending())
	assert.Empty(t, s.Scores(), "scores apply on finish")

	_, err = s.BeginSwipe(Left)
	assert.ErrorIs(t, err, ErrSwipePending)
	assert.ErrorIs(t, s.SelectCategory(2), ErrSwipePending)
	_, err = s.AutoComplete()
	assert.ErrorIs(t, err, ErrSwipePending)

	_, err = s.FinishSwipe()
	require.NoError(t, err)
	assert.False(t, s.Pending())
	for _, tag := range card.Tags {
		assert.Positive(t, s.Scores()[tag])
	}

	_, err = s.FinishSwipe()
	assert.ErrorIs(t, err, ErrNoPendingSwipe)
}

func TestSelectCategory_KeepsStackForSameCategory(t *testing.T) {
	s := newTestSession(t)
	top, ok := s.Top()
	require.True(t, ok)

	require.NoError(t, s.SelectCategory(0))
	again, _ := s.Top()
	assert.Equal(t, top.ID, again.ID)

	require.NoError(t, s.SelectCategory(3))
	assert.Equal(t, domain.CardFood, s.Category())
	assert.Error(t, s.SelectCategory(6))
}

func TestSelectCategory_SkipsSwipedCards(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(3)))
	for i := 0; i < 2; i++ {
		_, _, err := s.Swipe(Right)
		require.NoError(t, err)
	}
	require.NoError(t, s.SelectCategory(1))
	require.NoError(t, s.SelectCategory(0))
	assert.Equal(t, RequiredSwipes+1-2, s.Remaining())
}

func TestAdvance_NextIncompleteThenWrap(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))

	// Complete Activities (index 1) while sitting on it.
	require.NoError(t, s.SelectCategory(1))
	for i := 0; i < RequiredSwipes; i++ {
		_, _, err := s.Swipe(Right)
		require.NoError(t, err)
	}

	cat, ok, err := s.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.CardVibes, cat)

	require.NoError(t, s.SelectCategory(5))
	cat, ok, err = s.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.CardLocations, cat, "wraps to the first incomplete")
}

func TestAutoComplete_FreshSession(t *testing.T) {
	s := newTestSession(t)

	events, err := s.AutoComplete()
	require.NoError(t, err)

	for _, cat := range domain.CardCategories {
		assert.Equal(t, RequiredSwipes, s.Count(cat), "category %s", cat)
		assert.True(t, s.Completed(cat))
	}
	assert.Equal(t, 1, countKind(events, EventAllComplete))
	assert.Equal(t, len(domain.CardCategories), countKind(events, EventCategoryCompleted))
	assert.Equal(t, 100, s.Progress())
	assert.Len(t, s.SwipedIDs(), RequiredSwipes*len(domain.CardCategories))

	again, err := s.AutoComplete()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestAutoComplete_AfterPartialProgress(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 3; i++ {
		_, _, err := s.Swipe(Right)
		require.NoError(t, err)
	}

	events, err := s.AutoComplete()
	require.NoError(t, err)
	assert.Equal(t, RequiredSwipes, s.Count(domain.CardLocations))
	assert.Equal(t, 1, countKind(events, EventAllComplete))

	// Cards swiped automatically leave the visible stack.
	seen := map[string]bool{}
	for _, id := range s.SwipedIDs() {
		seen[id] = true
	}
	for s.Remaining() > 0 {
		top, _ := s.Top()
		assert.False(t, seen[top.ID])
		_, _, err := s.Swipe(Left)
		require.NoError(t, err)
	}
}

func TestAutoComplete_FiresAllCompleteOnlyOnce(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(7)))
	total := 0
	for range domain.CardCategories[:5] {
		for i := 0; i < RequiredSwipes; i++ {
			_, events, err := s.Swipe(Right)
			require.NoError(t, err)
			total += countKind(events, EventAllComplete)
		}
		_, _, err := s.Advance()
		require.NoError(t, err)
	}
	events, err := s.AutoComplete()
	require.NoError(t, err)
	total += countKind(events, EventAllComplete)
	assert.Equal(t, 1, total)

	_, ok, err := s.Advance()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProgress_Rounds(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, s.Progress())

	_, _, err := s.Swipe(Right)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Progress(), "1/30 = 3.33%")

	_, _, err = s.Swipe(Right)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Progress(), "2/30 = 6.67%")

	// Swipes past the threshold do not count.
	for i := 0; i < RequiredSwipes; i++ {
		_, _, _ = s.Swipe(Right)
	}
	assert.Equal(t, 17, s.Progress(), "5/30 = 16.67%")
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AutoComplete()
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, 0, s.Progress())
	assert.Empty(t, s.Scores())
	assert.Empty(t, s.SwipedIDs())
	assert.Equal(t, 0, s.CategoryIndex())
	assert.False(t, s.AllComplete())
	assert.Equal(t, 50, s.Remaining())
}

func TestRestore(t *testing.T) {
	s := NewSession(smallDeck(t), rand.New(rand.NewSource(1)))
	s.Restore(ScoreMap{"beach": 3},
		map[domain.CardCategory]int{domain.CardLocations: RequiredSwipes},
		[]string{"Locations-a"})

	assert.True(t, s.Completed(domain.CardLocations))
	assert.Equal(t, 3, s.Scores()["beach"])
	assert.Equal(t, RequiredSwipes, s.Remaining())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("LIKE")
	require.NoError(t, err)
	assert.Equal(t, Right, d)
	d, err = ParseDirection("l")
	require.NoError(t, err)
	assert.Equal(t, Left, d)
	_, err = ParseDirection("up")
	assert.Error(t, err)
}

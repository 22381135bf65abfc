package swipe

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// RequiredSwipes is the number of swipes that completes a category.
const RequiredSwipes = 5

var (
	// ErrNoCards is returned when the current category has no unswiped cards.
	ErrNoCards = errors.New("no cards left in category")
	// ErrSwipePending is returned while a swipe transition has not finished.
	ErrSwipePending = errors.New("swipe transition in progress")
	// ErrNoPendingSwipe is returned by FinishSwipe without a preceding BeginSwipe.
	ErrNoPendingSwipe = errors.New("no swipe in progress")
)

// Direction is the swipe gesture outcome.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Delta is the score change the direction applies to each tag.
func (d Direction) Delta() int {
	if d == Right {
		return 1
	}
	return -1
}

// ParseDirection accepts left/right and the like/dislike aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "like", "y":
		return Right, nil
	case "left", "l", "dislike", "n":
		return Left, nil
	default:
		return Left, fmt.Errorf("unknown swipe direction %q", s)
	}
}

// EventKind names a session signal.
type EventKind int

const (
	// EventCategoryCompleted fires the first time a category reaches its threshold.
	EventCategoryCompleted EventKind = iota
	// EventAllComplete fires once, when the last category completes.
	EventAllComplete
	// EventStackExhausted fires when the current category's stack empties.
	EventStackExhausted
)

func (k EventKind) String() string {
	switch k {
	case EventCategoryCompleted:
		return "category_completed"
	case EventAllComplete:
		return "all_complete"
	case EventStackExhausted:
		return "stack_exhausted"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by swipe operations.
type Event struct {
	Kind     EventKind
	Category domain.CardCategory
}

type pendingSwipe struct {
	card      domain.TravelCard
	direction Direction
}

// Session tracks one pass through the swipe flow. It is not safe for
// concurrent use.
type Session struct {
	deck     *Deck
	rng      *rand.Rand
	required int

	current     int
	initialized int
	stack       []domain.TravelCard

	counts    map[domain.CardCategory]int
	completed map[domain.CardCategory]bool
	swiped    map[string]bool
	scores    ScoreMap
	pending   *pendingSwipe
	allFired  bool
}

// NewSession starts a session on the first category. rng drives every
// shuffle and automatic swipe direction.
func NewSession(deck *Deck, rng *rand.Rand) *Session {
	s := &Session{deck: deck, rng: rng, required: RequiredSwipes}
	s.Reset()
	return s
}

// Reset clears all progress and scores and returns to the first category.
func (s *Session) Reset() {
	s.counts = make(map[domain.CardCategory]int, len(domain.CardCategories))
	s.completed = make(map[domain.CardCategory]bool, len(domain.CardCategories))
	s.swiped = make(map[string]bool)
	s.scores = make(ScoreMap)
	s.pending = nil
	s.allFired = false
	s.current = 0
	s.initialized = -1
	s.initStack()
}

// Restore seeds the session from saved progress. Categories already at the
// threshold count as completed without emitting events.
func (s *Session) Restore(scores ScoreMap, counts map[domain.CardCategory]int, swipedIDs []string) {
	s.Reset()
	s.scores = scores.Clone()
	for cat, n := range counts {
		s.counts[cat] = n
		if n >= s.required {
			s.completed[cat] = true
		}
	}
	for _, id := range swipedIDs {
		s.swiped[id] = true
	}
	s.allFired = s.AllComplete()
	s.initialized = -1
	s.initStack()
}

// Category returns the current category.
func (s *Session) Category() domain.CardCategory {
	return domain.CardCategories[s.current]
}

// CategoryIndex returns the position of the current category.
func (s *Session) CategoryIndex() int { return s.current }

// SelectCategory switches to category i. The stack is reshuffled only when
// the category actually changes.
func (s *Session) SelectCategory(i int) error {
	if s.pending != nil {
		return ErrSwipePending
	}
	if i < 0 || i >= len(domain.CardCategories) {
		return fmt.Errorf("category index %d out of range", i)
	}
	s.current = i
	s.initStack()
	return nil
}

func (s *Session) initStack() {
	if s.initialized == s.current {
		return
	}
	s.initialized = s.current
	s.stack = s.unswiped(s.Category())
	s.shuffle(s.stack)
}

func (s *Session) unswiped(cat domain.CardCategory) []domain.TravelCard {
	var out []domain.TravelCard
	for _, c := range s.deck.Cards(cat) {
		if !s.swiped[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (s *Session) shuffle(cards []domain.TravelCard) {
	s.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// Top returns the card on top of the stack.
func (s *Session) Top() (domain.TravelCard, bool) {
	if len(s.stack) == 0 {
		return domain.TravelCard{}, false
	}
	return s.stack[0], true
}

// Remaining returns the number of unswiped cards in the current stack.
func (s *Session) Remaining() int { return len(s.stack) }

// Pending reports whether a swipe transition is in progress.
func (s *Session) Pending() bool { return s.pending != nil }

// BeginSwipe starts the transition for the top card. Scores are applied by
// FinishSwipe.
func (s *Session) BeginSwipe(d Direction) (domain.TravelCard, error) {
	if s.pending != nil {
		return domain.TravelCard{}, ErrSwipePending
	}
	card, ok := s.Top()
	if !ok {
		return domain.TravelCard{}, ErrNoCards
	}
	s.pending = &pendingSwipe{card: card, direction: d}
	return card, nil
}

// FinishSwipe applies the pending swipe and pops the card.
func (s *Session) FinishSwipe() ([]Event, error) {
	if s.pending == nil {
		return nil, ErrNoPendingSwipe
	}
	p := s.pending
	s.pending = nil

	cat := s.Category()
	s.record(cat, p.card, p.direction)
	s.stack = s.stack[1:]

	events := s.checkCompletion(cat)
	if len(s.stack) == 0 {
		events = append(events, Event{Kind: EventStackExhausted, Category: cat})
	}
	return events, nil
}

// Swipe performs BeginSwipe and FinishSwipe in one step.
func (s *Session) Swipe(d Direction) (domain.TravelCard, []Event, error) {
	card, err := s.BeginSwipe(d)
	if err != nil {
		return domain.TravelCard{}, nil, err
	}
	events, err := s.FinishSwipe()
	return card, events, err
}

func (s *Session) record(cat domain.CardCategory, card domain.TravelCard, d Direction) {
	s.scores.Apply(card.Tags, d.Delta())
	s.swiped[card.ID] = true
	s.counts[cat]++
}

func (s *Session) checkCompletion(cat domain.CardCategory) []Event {
	var events []Event
	if s.counts[cat] >= s.required && !s.completed[cat] {
		s.completed[cat] = true
		events = append(events, Event{Kind: EventCategoryCompleted, Category: cat})
	}
	if !s.allFired && s.AllComplete() {
		s.allFired = true
		events = append(events, Event{Kind: EventAllComplete})
	}
	return events
}

// Advance moves to the next incomplete category after the current one,
// wrapping to the first incomplete. It returns false when every category is
// complete, leaving the current category unchanged.
func (s *Session) Advance() (domain.CardCategory, bool, error) {
	if s.pending != nil {
		return "", false, ErrSwipePending
	}
	next := -1
	for i := s.current + 1; i < len(domain.CardCategories); i++ {
		if !s.completed[domain.CardCategories[i]] {
			next = i
			break
		}
	}
	if next == -1 {
		for i, c := range domain.CardCategories {
			if !s.completed[c] {
				next = i
				break
			}
		}
	}
	if next == -1 {
		return "", false, nil
	}
	s.current = next
	s.initStack()
	return s.Category(), true, nil
}

// AutoComplete swipes random directions over random unswiped cards until
// every category reaches the threshold, then advances if anything remains
// incomplete because a category ran out of cards.
func (s *Session) AutoComplete() ([]Event, error) {
	if s.pending != nil {
		return nil, ErrSwipePending
	}

	var events []Event
	for _, cat := range domain.CardCategories {
		need := s.required - s.counts[cat]
		if need <= 0 {
			continue
		}
		candidates := s.unswiped(cat)
		s.shuffle(candidates)
		if len(candidates) > need {
			candidates = candidates[:need]
		}
		for _, card := range candidates {
			d := Left
			if s.rng.Float64() >= 0.5 {
				d = Right
			}
			s.record(cat, card, d)
		}
		if s.counts[cat] >= s.required && !s.completed[cat] {
			s.completed[cat] = true
			events = append(events, Event{Kind: EventCategoryCompleted, Category: cat})
		}
	}

	s.dropSwipedFromStack()

	if s.AllComplete() {
		if !s.allFired {
			s.allFired = true
			events = append(events, Event{Kind: EventAllComplete})
		}
		return events, nil
	}
	if _, _, err := s.Advance(); err != nil {
		return events, err
	}
	return events, nil
}

func (s *Session) dropSwipedFromStack() {
	kept := s.stack[:0]
	for _, c := range s.stack {
		if !s.swiped[c.ID] {
			kept = append(kept, c)
		}
	}
	s.stack = kept
}

// Count returns the swipes recorded for cat.
func (s *Session) Count(cat domain.CardCategory) int { return s.counts[cat] }

// Required returns the per-category threshold.
func (s *Session) Required() int { return s.required }

// Completed reports whether cat reached the threshold.
func (s *Session) Completed(cat domain.CardCategory) bool { return s.completed[cat] }

// AllComplete reports whether every category reached the threshold.
func (s *Session) AllComplete() bool {
	for _, c := range domain.CardCategories {
		if !s.completed[c] {
			return false
		}
	}
	return true
}

// Progress returns overall completion as a whole percentage.
func (s *Session) Progress() int {
	total := 0
	for _, c := range domain.CardCategories {
		total += min(s.counts[c], s.required)
	}
	maxTotal := s.required * len(domain.CardCategories)
	return (total*100 + maxTotal/2) / maxTotal
}

// Scores returns a copy of the tag scores.
func (s *Session) Scores() ScoreMap { return s.scores.Clone() }

// Counts returns a copy of the per-category swipe counts.
func (s *Session) Counts() map[domain.CardCategory]int {
	out := make(map[domain.CardCategory]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// SwipedIDs returns the swiped card ids in sorted order.
func (s *Session) SwipedIDs() []string {
	out := make([]string, 0, len(s.swiped))
	for id := range s.swiped {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

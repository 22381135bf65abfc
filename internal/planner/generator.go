package planner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/itinerary"
	"github.com/alexanderramin/tratlus/internal/llm"
)

// ErrStaleResponse is returned when a newer request of the same kind was
// issued while this one was in flight. The response must be discarded.
var ErrStaleResponse = errors.New("response superseded by a newer request")

// Ticket identifies one issued request.
type Ticket uint64

// Epoch hands out monotonically increasing tickets. Only the most recently
// issued ticket is current.
type Epoch struct {
	n atomic.Uint64
}

// Issue returns a new ticket, superseding every earlier one.
func (e *Epoch) Issue() Ticket {
	return Ticket(e.n.Add(1))
}

// IsCurrent reports whether t is the latest ticket.
func (e *Epoch) IsCurrent(t Ticket) bool {
	return e.n.Load() == uint64(t)
}

// Generator sends prompts to the model and parses the answers. Requests are
// tracked per kind so a re-triggered generation supersedes the earlier one.
type Generator struct {
	client llm.LLMClient

	itinerary Epoch
	activity  Epoch
	nearby    Epoch
}

// NewGenerator creates a Generator backed by client.
func NewGenerator(client llm.LLMClient) *Generator {
	return &Generator{client: client}
}

// Itinerary generates a complete itinerary. Re-optimizing is calling this
// again; any in-flight earlier call then returns ErrStaleResponse.
func (g *Generator) Itinerary(ctx context.Context, p Preferences) (*domain.TravelItinerary, error) {
	ticket := g.itinerary.Issue()
	raw, err := g.generate(ctx, llm.TaskItinerary, SystemPrompt(), ItineraryPrompt(p))
	if err != nil {
		return nil, err
	}
	if !g.itinerary.IsCurrent(ticket) {
		return nil, ErrStaleResponse
	}
	it, err := ParseItinerary(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing itinerary: %w", err)
	}
	return it, nil
}

// ReplacementActivity generates a different activity for the same slot as
// it.Days[dayIndex].Activities[activityIndex]. The new activity keeps the old
// time slot.
func (g *Generator) ReplacementActivity(ctx context.Context, it *domain.TravelItinerary, dayIndex, activityIndex int, p Preferences) (domain.Activity, error) {
	current, err := itinerary.Activity(it, dayIndex, activityIndex)
	if err != nil {
		return domain.Activity{}, err
	}

	ticket := g.activity.Issue()
	raw, err := g.generate(ctx, llm.TaskReplaceActivity, SystemPrompt(), ReplacementPrompt(it, dayIndex, activityIndex, p))
	if err != nil {
		return domain.Activity{}, err
	}
	if !g.activity.IsCurrent(ticket) {
		return domain.Activity{}, ErrStaleResponse
	}
	a, err := ParseActivity(raw)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("parsing replacement activity: %w", err)
	}
	a.Time = current.Time
	return a, nil
}

// NewActivity generates one activity of actType at startMin on
// it.Days[dayIndex].
func (g *Generator) NewActivity(ctx context.Context, it *domain.TravelItinerary, dayIndex int, actType domain.ActivityType, startMin int, p Preferences) (domain.Activity, error) {
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return domain.Activity{}, fmt.Errorf("%w: day %d (have %d)", itinerary.ErrIndexOutOfRange, dayIndex, len(it.Days))
	}

	ticket := g.activity.Issue()
	raw, err := g.generate(ctx, llm.TaskAddActivity, SystemPrompt(), AddActivityPrompt(it, dayIndex, actType, startMin, p))
	if err != nil {
		return domain.Activity{}, err
	}
	if !g.activity.IsCurrent(ticket) {
		return domain.Activity{}, ErrStaleResponse
	}
	a, err := ParseActivity(raw)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("parsing new activity: %w", err)
	}
	a.Time = domain.FormatClock(startMin)
	return a, nil
}

// Nearby generates places worth visiting around destination.
func (g *Generator) Nearby(ctx context.Context, destination string, p Preferences) ([]domain.Activity, error) {
	ticket := g.nearby.Issue()
	raw, err := g.generate(ctx, llm.TaskNearby, SystemPrompt(), NearbyPrompt(destination, p))
	if err != nil {
		return nil, err
	}
	if !g.nearby.IsCurrent(ticket) {
		return nil, ErrStaleResponse
	}
	places, err := ParseNearby(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing nearby places: %w", err)
	}
	return places, nil
}

func (g *Generator) generate(ctx context.Context, task llm.TaskType, system, prompt string) (string, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: system,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", task, err)
	}
	return resp.Text, nil
}

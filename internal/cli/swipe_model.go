package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/swipe"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// swipeTransition is how long a card takes to fly off before its swipe is
// recorded. Keys are ignored while it runs.
const swipeTransition = 150 * time.Millisecond

type swipeKeyMap struct {
	Like     key.Binding
	Dislike  key.Binding
	Next     key.Binding
	Category key.Binding
	Auto     key.Binding
	Reset    key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func newSwipeKeyMap() swipeKeyMap {
	return swipeKeyMap{
		Like:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "like")),
		Dislike:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "pass")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		Category: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "jump to category")),
		Auto:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-complete")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:     key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "save & quit")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit without saving")),
	}
}

func (k swipeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dislike, k.Like, k.Next, k.Save, k.Quit}
}

func (k swipeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dislike, k.Like},
		{k.Next, k.Category},
		{k.Auto, k.Reset},
		{k.Save, k.Quit},
	}
}

// swipeFinishedMsg ends the transition started by a like or pass.
type swipeFinishedMsg struct{}

// swipeModel is the interactive card deck. The session is mutated in place;
// the caller saves it when the model quits with save set.
type swipeModel struct {
	sess       *swipe.Session
	keys       swipeKeyMap
	help       help.Model
	transition time.Duration
	status     string
	save       bool
}

func newSwipeModel(sess *swipe.Session) swipeModel {
	return swipeModel{
		sess:       sess,
		keys:       newSwipeKeyMap(),
		help:       help.New(),
		transition: swipeTransition,
		status:     formatter.Dim("Swipe right on what appeals to you, left on what doesn't."),
	}
}

func (m swipeModel) Init() tea.Cmd { return nil }

func (m swipeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case swipeFinishedMsg:
		events, err := m.sess.FinishSwipe()
		if err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
			break
		}
		if lines := describeEvents(events, m.sess, true); len(lines) > 0 {
			m.status = strings.Join(lines, "  ")
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.sess.Pending() {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m swipeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Like):
		return m.begin(swipe.Right)
	case key.Matches(msg, m.keys.Dislike):
		return m.begin(swipe.Left)
	case key.Matches(msg, m.keys.Next):
		m.advance()
	case key.Matches(msg, m.keys.Category):
		i := int(msg.Runes[0] - '1')
		if err := m.sess.SelectCategory(i); err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
		} else {
			m.status = formatter.Dim("Now swiping " + m.sess.Category().DisplayName() + ".")
		}
	case key.Matches(msg, m.keys.Auto):
		events, err := m.sess.AutoComplete()
		if err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
			break
		}
		m.status = strings.Join(describeEvents(events, m.sess, true), "  ")
		if m.status == "" {
			m.status = formatter.Dim("Every category already has enough swipes.")
		}
	case key.Matches(msg, m.keys.Reset):
		m.sess.Reset()
		m.status = formatter.Warning("Progress cleared.")
	case key.Matches(msg, m.keys.Save):
		m.save = true
		return m, tea.Quit
	}
	return m, nil
}

func (m swipeModel) begin(d swipe.Direction) (tea.Model, tea.Cmd) {
	card, err := m.sess.BeginSwipe(d)
	if errors.Is(err, swipe.ErrNoCards) {
		m.status = formatter.Warning("No more " + m.sess.Category().DisplayName() + " cards. Press tab for the next category.")
		return m, nil
	}
	if err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return m, nil
	}
	if d == swipe.Right {
		m.status = formatter.StyleGreen.Render("♥ " + card.Title)
	} else {
		m.status = formatter.Dim("✗ " + card.Title)
	}
	return m, m.finishCmd()
}

func (m swipeModel) finishCmd() tea.Cmd {
	if m.transition <= 0 {
		return func() tea.Msg { return swipeFinishedMsg{} }
	}
	return tea.Tick(m.transition, func(time.Time) tea.Msg { return swipeFinishedMsg{} })
}

func (m *swipeModel) advance() {
	cat, ok, err := m.sess.Advance()
	switch {
	case err != nil:
		m.status = formatter.StyleRed.Render(err.Error())
	case !ok:
		m.status = formatter.Success("All categories complete. Press enter to save.")
	default:
		m.status = formatter.Dim("Now swiping " + cat.DisplayName() + ".")
	}
}

func (m swipeModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Travel preferences · %d%%", m.sess.Progress())) + "\n\n")
	b.WriteString(formatter.FormatSwipeProgress(formatter.SwipeProgress{
		Counts:   m.sess.Counts(),
		Required: m.sess.Required(),
		Current:  m.sess.Category(),
	}))
	b.WriteString("\n")

	if card, ok := m.sess.Top(); ok {
		b.WriteString(formatter.FormatCard(card) + "\n")
		b.WriteString(formatter.Dim(fmt.Sprintf("%d cards left in %s", m.sess.Remaining(), m.sess.Category().DisplayName())) + "\n")
	} else {
		b.WriteString(formatter.Dim("No cards left in "+m.sess.Category().DisplayName()+".") + "\n")
	}

	b.WriteString("\n" + m.status + "\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// describeEvents turns session events into status lines. hints adds the
// key to press next, for the interactive deck.
func describeEvents(events []swipe.Event, sess *swipe.Session, hints bool) []string {
	var lines []string
	for _, e := range events {
		switch e.Kind {
		case swipe.EventCategoryCompleted:
			lines = append(lines, formatter.Success(e.Category.DisplayName()+" complete"))
		case swipe.EventAllComplete:
			line := "All categories complete"
			if hints {
				line += ". Press enter to save."
			}
			lines = append(lines, formatter.Success(line))
		case swipe.EventStackExhausted:
			if sess.AllComplete() {
				continue
			}
			line := "No more " + e.Category.DisplayName() + " cards"
			if hints {
				line += ". Press tab for the next category."
			}
			lines = append(lines, formatter.Warning(line))
		}
	}
	return lines
}

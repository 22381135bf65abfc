// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs the
// returned Cmds on the test goroutine, so the swipe deck can be stepped one
// key at a time and inspected between keys. Cmds that block past the
// driver's timeout (cursor blinks, animation ticks) are dropped and counted
// in Skipped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages one Send may feed back into the model.
const MaxSteps = 100

// DefaultCmdTimeout separates message factories, which return in
// microseconds, from blink and tick Cmds that wait on a timer.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness around one tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. The runtime
	// normally swallows it, so models rarely handle it themselves.
	Quitting bool

	// Skipped counts Cmds dropped for exceeding the timeout.
	Skipped int

	timeout time.Duration
}

// Option configures a Driver during construction.
type Option func(*Driver)

// New wraps model and applies opts in order. Call DrainInit next to run the
// model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout waits up to timeout for each Cmd, which lets short animation
// ticks land instead of being skipped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.timeout = timeout }
}

// DrainInit runs the model's Init command and everything it produces.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send feeds msg through Update and drains the resulting Cmds. Messages sent
// after the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends one key of the given type, e.g. tea.KeyLeft.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressLeft passes on the top card.
func (d *Driver) PressLeft() { d.T.Helper(); d.Press(tea.KeyLeft) }

// PressRight likes the top card.
func (d *Driver) PressRight() { d.T.Helper(); d.Press(tea.KeyRight) }

// PressTab moves to the next category.
func (d *Driver) PressTab() { d.T.Helper(); d.Press(tea.KeyTab) }

// PressEnter sends Enter.
func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }

// PressEsc sends Escape.
func (d *Driver) PressEsc() { d.T.Helper(); d.Press(tea.KeyEsc) }

// View returns the model's current render.
func (d *Driver) View() string {
	return d.Model.View()
}

// drain runs cmd and every Cmd that follows from it, depth first, until the
// work list empties or MaxSteps messages have been delivered.
func (d *Driver) drain(cmd tea.Cmd) {
	d.T.Helper()
	pending := []tea.Cmd{cmd}
	for steps := 0; len(pending) > 0; {
		next := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if next == nil {
			continue
		}
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d messages", MaxSteps)
			return
		}

		msg, ok := d.exec(next)
		if !ok {
			d.Skipped++
			continue
		}
		switch m := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			for i := len(m) - 1; i >= 0; i-- {
				pending = append(pending, m[i])
			}
			continue
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(m)
			return
		}
		if isCursorBlink(msg) {
			continue
		}

		steps++
		var follow tea.Cmd
		d.Model, follow = d.Model.Update(msg)
		pending = append(pending, follow)
	}
}

// exec runs cmd in a goroutine. ok is false when it did not return within
// the driver's timeout.
func (d *Driver) exec(cmd tea.Cmd) (msg tea.Msg, ok bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg = <-ch:
		return msg, true
	case <-time.After(d.timeout):
		return nil, false
	}
}

// isCursorBlink matches the unexported blink messages from bubbles/cursor,
// which chain into timer Cmds when handled.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}

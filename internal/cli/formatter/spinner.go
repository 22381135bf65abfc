package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner draws a one-line progress indicator on w while a model request is
// in flight. Frames and pacing come from a bubbles spinner definition.
type Spinner struct {
	w       io.Writer
	style   spinner.Spinner
	message string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a stopped spinner that will draw message on w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		style:   spinner.Dot,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a goroutine. Call Stop to end it.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)

	frames := s.style.Frames
	fps := s.style.FPS
	if fps <= 0 {
		fps = 100 * time.Millisecond
	}
	ticker := time.NewTicker(fps)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frames[i%len(frames)]), Dim(s.message))
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// StartSpinner creates and starts a spinner, returning its stop function.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}

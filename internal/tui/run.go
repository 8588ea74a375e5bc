package tui

import (
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user quits the table before the work
// has finished.
var ErrInterrupted = errors.New("interrupted")

// RunWithWork starts a bubbletea program for model, runs work on its own
// goroutine and blocks until both have finished. work reports progress
// through send; its returned error is both shown in the final frame and
// returned from RunWithWork.
func RunWithWork(out io.Writer, model ProgressModel, work func(send func(tea.Msg)) error) error {
	p := tea.NewProgram(model, tea.WithOutput(out))

	workErr := make(chan error, 1)
	go func() {
		// Let the event loop draw the first frame.
		time.Sleep(50 * time.Millisecond)
		err := work(p.Send)
		workErr <- err
		p.Send(WorkDoneMsg{Err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(ProgressModel); ok {
		if m.Interrupted() {
			return ErrInterrupted
		}
		if m.Err() != nil {
			return m.Err()
		}
	}
	return <-workErr
}

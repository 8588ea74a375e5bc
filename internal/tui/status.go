package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"toolfetch/internal/tools"
)

// StatusWriter prints a single spinning status line to w, rewritten in place.
// It is used for one-tool commands where a table would be overkill.
type StatusWriter struct {
	w          io.Writer
	mu         sync.Mutex
	message    string
	phaseStart time.Time
	done       chan struct{}
	stopped    bool
}

// NewStatusWriter starts a background spinner that renders the current
// status message to w every 100ms.
func NewStatusWriter(w io.Writer) *StatusWriter {
	sw := &StatusWriter{
		w:          w,
		phaseStart: time.Now(),
		done:       make(chan struct{}),
	}
	go sw.loop()
	return sw
}

// Update changes the message and restarts the elapsed-time counter.
func (sw *StatusWriter) Update(msg string) {
	sw.mu.Lock()
	if msg != sw.message {
		sw.phaseStart = time.Now()
	}
	sw.message = msg
	sw.mu.Unlock()
}

// Stage implements tools.ProgressReporter.
func (sw *StatusWriter) Stage(key tools.InstallKey, stage tools.Stage, detail string) {
	msg := fmt.Sprintf("%s %s: %s", key.Tool.Name(), key.Version, stage)
	if stage == tools.StageDownloading && detail != "" {
		msg += " " + detail
		// Progress ticks should not reset the phase timer.
		sw.mu.Lock()
		sw.message = msg
		sw.mu.Unlock()
		return
	}
	sw.Update(msg)
}

// Stop clears the status line and stops the spinner.
func (sw *StatusWriter) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	sw.mu.Unlock()
	close(sw.done)
	fmt.Fprintf(sw.w, "\r\033[K")
}

func (sw *StatusWriter) loop() {
	tick := 0
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sw.done:
			return
		case <-ticker.C:
			sw.mu.Lock()
			msg := sw.message
			start := sw.phaseStart
			sw.mu.Unlock()

			spinner := spinnerFrames[tick%len(spinnerFrames)]
			tick++
			fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)", spinner, msg, formatElapsed(time.Since(start)))
		}
	}
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

var _ tools.ProgressReporter = (*StatusWriter)(nil)

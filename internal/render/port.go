package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"weasel/internal/model"
)

// Sleep blocks for d or until ctx is done. Non-positive durations only
// check ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Headless skips frames and pacing and prints only the final summary.
type Headless struct {
	Out io.Writer
}

func (Headless) RenderFrame([]model.Cell, string) error { return nil }

func (h Headless) RenderSummary(best string, iterations int) error {
	_, err := fmt.Fprintf(h.Out, "Result: %s   Iterations: %s\n", best, humanize.Comma(int64(iterations)))
	return err
}

func (Headless) Delay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type Frame struct {
	Label string
	Cells []model.Cell
}

type Summary struct {
	Best       string
	Iterations int
}

// Recorder keeps everything it is asked to render. Delays are recorded,
// not slept.
type Recorder struct {
	mu        sync.Mutex
	frames    []Frame
	summaries []Summary
	delays    []time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RenderFrame(cells []model.Cell, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]model.Cell, len(cells))
	copy(copied, cells)
	r.frames = append(r.frames, Frame{Label: label, Cells: copied})
	return nil
}

func (r *Recorder) RenderSummary(best string, iterations int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries = append(r.summaries, Summary{Best: best, Iterations: iterations})
	return nil
}

func (r *Recorder) Delay(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func (r *Recorder) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Summary(nil), r.summaries...)
}

func (r *Recorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

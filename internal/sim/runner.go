package sim

import (
	"context"
	"fmt"
	"time"

	"weasel/internal/model"
)

// Port receives the frames, summary and pacing requests of a run.
type Port interface {
	RenderFrame(cells []model.Cell, label string) error
	RenderSummary(best string, iterations int) error
	Delay(ctx context.Context, d time.Duration) error
}

// Pacing is the duration of each pause class. Zero disables a class.
type Pacing struct {
	Action time.Duration
	Phase  time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		Action: 10 * time.Millisecond,
		Phase:  100 * time.Millisecond,
	}
}

func (p Pacing) For(class PauseClass) time.Duration {
	if class == PausePhase {
		return p.Phase
	}
	return p.Action
}

// Run steps the machine until it finishes, replaying every event into port.
// ctx is checked before each event.
func Run(ctx context.Context, m *Machine, port Port, pacing Pacing) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("machine is required")
	}
	if port == nil {
		return Result{}, fmt.Errorf("render port is required")
	}
	for !m.Done() {
		events, err := m.Step(ctx)
		if err != nil {
			return m.Result(), err
		}
		if err := Replay(ctx, events, port, pacing); err != nil {
			return m.Result(), err
		}
	}
	return m.Result(), nil
}

// Replay dispatches a list of events to port.
func Replay(ctx context.Context, events []Event, port Port, pacing Pacing) error {
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch ev.Kind {
		case EventFrame:
			err = port.RenderFrame(ev.Cells, ev.Label)
		case EventPause:
			err = port.Delay(ctx, pacing.For(ev.Pause))
		case EventSummary:
			err = port.RenderSummary(ev.Best, ev.Iterations)
		default:
			err = fmt.Errorf("unknown event kind %d", ev.Kind)
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", ev.Phase.Key(), ev.Kind, err)
		}
	}
	return nil
}

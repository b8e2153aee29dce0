package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"weasel/internal/model"
)

type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func stepOnce(t *testing.T, m *Machine) []Event {
	t.Helper()
	events, err := m.Step(context.Background())
	require.NoError(t, err)
	return events
}

func framesOf(events []Event) [][]model.Cell {
	var out [][]model.Cell
	for _, ev := range events {
		if ev.Kind == EventFrame {
			out = append(out, ev.Cells)
		}
	}
	return out
}

func countPauses(events []Event, class PauseClass) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventPause && ev.Pause == class {
			n++
		}
	}
	return n
}

func focused(cells []model.Cell) []int {
	var out []int
	for i, c := range cells {
		if c.Focus {
			out = append(out, i)
		}
	}
	return out
}

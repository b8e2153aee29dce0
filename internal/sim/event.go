package sim

import "weasel/internal/model"

type EventKind int

const (
	EventFrame EventKind = iota
	EventPause
	EventSummary
)

func (k EventKind) String() string {
	switch k {
	case EventFrame:
		return "frame"
	case EventPause:
		return "pause"
	case EventSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// PauseClass selects which pacing delay a pause stands for.
type PauseClass int

const (
	PauseAction PauseClass = iota
	PausePhase
)

// Event is one observable sub-step produced by a machine step.
type Event struct {
	Kind  EventKind
	Phase Phase
	Label string
	Cells []model.Cell
	Pause PauseClass
	// Summary fields, set on EventSummary.
	Best       string
	Iterations int
}

// narration collects the events of one step.
type narration struct {
	phase  Phase
	stage  *Stage
	source func() []model.Candidate
	events []Event
}

func (n *narration) frame() {
	n.events = append(n.events, Event{
		Kind:  EventFrame,
		Phase: n.phase,
		Label: n.phase.String(),
		Cells: n.stage.Snapshot(n.source()),
	})
}

func (n *narration) pause(class PauseClass) {
	n.events = append(n.events, Event{Kind: EventPause, Phase: n.phase, Pause: class})
}

func (n *narration) summary(best string, iterations int) {
	n.events = append(n.events, Event{
		Kind:       EventSummary,
		Phase:      n.phase,
		Label:      n.phase.String(),
		Best:       best,
		Iterations: iterations,
	})
}

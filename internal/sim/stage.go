package sim

import "weasel/internal/model"

// Stage tracks presentation flags per population slot, apart from the
// candidates themselves.
type Stage struct {
	flags []model.Presentation
}

func NewStage(size int) *Stage {
	return &Stage{flags: make([]model.Presentation, size)}
}

func (s *Stage) At(i int) model.Presentation { return s.flags[i] }

func (s *Stage) Focus(i int)   { s.flags[i].Focus = true }
func (s *Stage) Unfocus(i int) { s.flags[i].Focus = false }
func (s *Stage) Show(i int)    { s.flags[i].Visible = true }
func (s *Stage) Hide(i int)    { s.flags[i].Visible = false }
func (s *Stage) Reveal(i int)  { s.flags[i].RevealFitness = true }

// Reset puts slot i back to its freshly-born state.
func (s *Stage) Reset(i int) { s.flags[i] = model.Presentation{} }

func (s *Stage) Swap(i, j int) { s.flags[i], s.flags[j] = s.flags[j], s.flags[i] }

// Snapshot joins candidates with their flags. Fitness is never reported as
// revealed for an unscored candidate.
func (s *Stage) Snapshot(candidates []model.Candidate) []model.Cell {
	cells := make([]model.Cell, len(candidates))
	for i, c := range candidates {
		p := model.Presentation{}
		if i < len(s.flags) {
			p = s.flags[i]
		}
		if !c.Scored() {
			p.RevealFitness = false
		}
		cells[i] = model.Cell{Candidate: c, Presentation: p}
	}
	return cells
}

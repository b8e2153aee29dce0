package model

// Unscored marks a candidate whose fitness has not been evaluated yet.
const Unscored = -1

// Candidate is one genome in the population together with its fitness.
type Candidate struct {
	Genome  string `json:"genome"`
	Fitness int    `json:"fitness"`
}

func NewCandidate(genome string) Candidate {
	return Candidate{Genome: genome, Fitness: Unscored}
}

func (c Candidate) Scored() bool {
	return c.Fitness != Unscored
}

// Presentation holds the animation-only flags for one population slot.
type Presentation struct {
	Focus         bool `json:"focus"`
	Visible       bool `json:"visible"`
	RevealFitness bool `json:"reveal_fitness"`
}

// Cell is what a renderer sees for one slot: the candidate joined with its
// presentation flags at snapshot time.
type Cell struct {
	Candidate
	Presentation
}

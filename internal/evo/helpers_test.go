package evo

import "weasel/internal/model"

// scriptedRand replays queued values and falls back to zero once a queue
// runs dry.
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

func populationOf(fitness ...int) *Population {
	candidates := make([]model.Candidate, len(fitness))
	for i, f := range fitness {
		candidates[i] = model.Candidate{Genome: "xx", Fitness: f}
	}
	return &Population{capacity: len(fitness), candidates: candidates}
}

func fitnessOf(p *Population) []int {
	out := make([]int, p.Len())
	for i := range out {
		out[i] = p.At(i).Fitness
	}
	return out
}

package evo

import (
	"fmt"

	"weasel/internal/model"
)

// Swap describes one exchange made while ranking.
type Swap struct {
	Pass  int
	I     int
	J     int
	Count int
}

// BirthStage tells a breeding observer how far a birth has progressed.
type BirthStage int

const (
	BirthParentsChosen BirthStage = iota
	BirthInstalled
)

// Birth is one child being bred into Slot from two survivors.
type Birth struct {
	Slot    int
	ParentA int
	ParentB int
	Child   string
}

// Population is a fixed-capacity ordered set of candidates. Slots are
// reused in place across generations.
type Population struct {
	capacity   int
	candidates []model.Candidate
}

func NewPopulation(capacity int) (*Population, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("population capacity must be > 0")
	}
	return &Population{
		capacity:   capacity,
		candidates: make([]model.Candidate, 0, capacity),
	}, nil
}

func (p *Population) Len() int { return len(p.candidates) }

func (p *Population) Full() bool { return len(p.candidates) == p.capacity }

func (p *Population) At(i int) model.Candidate { return p.candidates[i] }

// Candidates returns a copy of the current ordering.
func (p *Population) Candidates() []model.Candidate {
	out := make([]model.Candidate, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// Best returns the candidate at the head of the ordering. It is only the
// fittest once Rank has run.
func (p *Population) Best() (model.Candidate, bool) {
	if len(p.candidates) == 0 {
		return model.Candidate{}, false
	}
	return p.candidates[0], true
}

// Seed tops the population up to capacity with random unscored genomes and
// returns the indices it filled. A full population is left alone.
func (p *Population) Seed(rng Rand, alphabet Alphabet, length int) ([]int, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if length <= 0 {
		return nil, fmt.Errorf("genome length must be > 0")
	}
	if err := alphabet.Validate(); err != nil {
		return nil, err
	}
	seeded := make([]int, 0, p.capacity-len(p.candidates))
	for len(p.candidates) < p.capacity {
		seeded = append(seeded, len(p.candidates))
		p.candidates = append(p.candidates, model.NewCandidate(SeedGenome(rng, alphabet, length)))
	}
	return seeded, nil
}

// Unscored lists indices whose fitness is still pending, in order.
func (p *Population) Unscored() []int {
	var out []int
	for i, c := range p.candidates {
		if !c.Scored() {
			out = append(out, i)
		}
	}
	return out
}

// ScoreAt evaluates slot i against target if it has not been scored yet.
func (p *Population) ScoreAt(i int, target string) (int, error) {
	c := &p.candidates[i]
	if c.Scored() {
		return c.Fitness, nil
	}
	fitness, err := Score(c.Genome, target)
	if err != nil {
		return 0, fmt.Errorf("score slot %d: %w", i, err)
	}
	c.Fitness = fitness
	return fitness, nil
}

// Evaluate scores every pending candidate and leaves scored ones untouched.
func (p *Population) Evaluate(target string) error {
	for _, i := range p.Unscored() {
		if _, err := p.ScoreAt(i, target); err != nil {
			return err
		}
	}
	return nil
}

// Rank orders candidates by descending fitness with odd-even transposition
// passes. Each exchange is handed to observe before the next comparison, so
// callers can draw the intermediate states. Sorting stops once a pass of
// each parity has gone by without a swap.
func (p *Population) Rank(observe func(Swap) error) error {
	n := len(p.candidates)
	if n < 2 {
		return nil
	}
	count := 0
	quiet := 0
	for pass := 0; quiet < 2; pass++ {
		swapped := false
		for i := pass % 2; i+1 < n; i += 2 {
			if p.candidates[i].Fitness >= p.candidates[i+1].Fitness {
				continue
			}
			p.candidates[i], p.candidates[i+1] = p.candidates[i+1], p.candidates[i]
			swapped = true
			count++
			if observe != nil {
				if err := observe(Swap{Pass: pass, I: i, J: i + 1, Count: count}); err != nil {
					return err
				}
			}
		}
		if swapped {
			quiet = 0
		} else {
			quiet++
		}
	}
	return nil
}

// Cull returns the slots freed for breeding, from the last index down to
// keep. Candidates stay in place until a child overwrites them.
func (p *Population) Cull(keep int) ([]int, error) {
	if err := p.checkKeep(keep); err != nil {
		return nil, err
	}
	freed := make([]int, 0, len(p.candidates)-keep)
	for i := len(p.candidates) - 1; i >= keep; i-- {
		freed = append(freed, i)
	}
	return freed, nil
}

// BreedGeneration refills slots [keep, size) with children of two distinct
// survivors from [0, keep). observe sees each birth once its parents are
// chosen and again after the child is installed.
func (p *Population) BreedGeneration(rng Rand, keep int, mutationProbability float64, alphabet Alphabet, observe func(BirthStage, Birth) error) error {
	if keep < 2 {
		return fmt.Errorf("%w: need at least 2 survivors to breed, got %d", ErrInvalidSampleSize, keep)
	}
	if err := p.checkKeep(keep); err != nil {
		return err
	}
	for slot := keep; slot < len(p.candidates); slot++ {
		a, b, err := SampleParents(rng, keep)
		if err != nil {
			return err
		}
		birth := Birth{Slot: slot, ParentA: a, ParentB: b}
		if observe != nil {
			if err := observe(BirthParentsChosen, birth); err != nil {
				return err
			}
		}
		child, err := Breed(rng, p.candidates[a].Genome, p.candidates[b].Genome, mutationProbability, alphabet)
		if err != nil {
			return fmt.Errorf("breed slot %d: %w", slot, err)
		}
		p.candidates[slot] = model.NewCandidate(child)
		birth.Child = child
		if observe != nil {
			if err := observe(BirthInstalled, birth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Population) checkKeep(keep int) error {
	if !p.Full() {
		return fmt.Errorf("population is not seeded: %d of %d", len(p.candidates), p.capacity)
	}
	if keep <= 0 || keep >= len(p.candidates) {
		return fmt.Errorf("keep must be in [1, %d), got %d", len(p.candidates), keep)
	}
	return nil
}

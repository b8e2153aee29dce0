package evo

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weasel/internal/model"
)

func TestSeedFillsToCapacityOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop, err := NewPopulation(6)
	require.NoError(t, err)

	seeded, err := pop.Seed(rng, DefaultAlphabet, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, seeded)
	assert.True(t, pop.Full())

	before := pop.Candidates()
	for _, c := range before {
		assert.Equal(t, model.Unscored, c.Fitness)
		assert.Len(t, c.Genome, 4)
	}

	seeded, err = pop.Seed(rng, DefaultAlphabet, 4)
	require.NoError(t, err)
	assert.Empty(t, seeded)
	assert.Equal(t, before, pop.Candidates())
}

func TestNewPopulationRejectsZeroCapacity(t *testing.T) {
	_, err := NewPopulation(0)
	require.Error(t, err)
}

func TestEvaluateLeavesScoredCandidatesAlone(t *testing.T) {
	pop := &Population{capacity: 3, candidates: []model.Candidate{
		{Genome: "hey", Fitness: model.Unscored},
		{Genome: "hxx", Fitness: 42},
		{Genome: "abc", Fitness: model.Unscored},
	}}

	assert.Equal(t, []int{0, 2}, pop.Unscored())
	require.NoError(t, pop.Evaluate("hey"))

	assert.Equal(t, []int{3, 42, 0}, fitnessOf(pop))
	assert.Empty(t, pop.Unscored())
}

func TestEvaluateReportsLengthMismatch(t *testing.T) {
	pop := &Population{capacity: 1, candidates: []model.Candidate{model.NewCandidate("toolong")}}
	err := pop.Evaluate("hey")
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRankSortsDescending(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 50; trial++ {
		fitness := make([]int, 1+rng.Intn(40))
		for i := range fitness {
			fitness[i] = rng.Intn(8)
		}
		pop := populationOf(fitness...)

		require.NoError(t, pop.Rank(nil))
		got := fitnessOf(pop)
		for i := 0; i+1 < len(got); i++ {
			assert.GreaterOrEqual(t, got[i], got[i+1], "trial %d: %v", trial, got)
		}
	}
}

func TestRankNeedsBothParitiesQuiet(t *testing.T) {
	// The even-offset pass finds nothing to swap; only (1,2) is out of order.
	pop := populationOf(2, 1, 3, 0)
	require.NoError(t, pop.Rank(nil))
	assert.Equal(t, []int{3, 2, 1, 0}, fitnessOf(pop))
}

func TestRankReportsEverySwap(t *testing.T) {
	pop := populationOf(0, 1, 2, 3, 4, 5)
	var swaps []Swap
	require.NoError(t, pop.Rank(func(s Swap) error {
		swaps = append(swaps, s)
		assert.Equal(t, s.I+1, s.J)
		return nil
	}))

	// Reversing six elements takes 15 adjacent exchanges.
	require.Len(t, swaps, 15)
	for i, s := range swaps {
		assert.Equal(t, i+1, s.Count)
	}
	assert.Greater(t, swaps[len(swaps)-1].Pass, 1, "expected several passes")
	assert.Equal(t, []int{5, 4, 3, 2, 1, 0}, fitnessOf(pop))
}

func TestRankStopsOnObserverError(t *testing.T) {
	pop := populationOf(0, 1, 2, 3)
	stop := errors.New("stop")
	calls := 0
	err := pop.Rank(func(Swap) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCullFreesTailFromTheBack(t *testing.T) {
	pop := populationOf(5, 4, 3, 2, 1)
	freed, err := pop.Cull(2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, freed)
	assert.Equal(t, 5, pop.Len(), "cull must not remove candidates")

	_, err = pop.Cull(5)
	require.Error(t, err)
	_, err = pop.Cull(0)
	require.Error(t, err)
}

func TestBreedGenerationKeepsSurvivorsAndResetsChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pop, err := NewPopulation(20)
	require.NoError(t, err)
	_, err = pop.Seed(rng, DefaultAlphabet, 5)
	require.NoError(t, err)
	require.NoError(t, pop.Evaluate("hello"))
	require.NoError(t, pop.Rank(nil))

	keep := 4
	before := pop.Candidates()

	var births []Birth
	err = pop.BreedGeneration(rng, keep, 0.2, DefaultAlphabet, func(stage BirthStage, b Birth) error {
		assert.Less(t, b.ParentA, keep)
		assert.Less(t, b.ParentB, keep)
		assert.NotEqual(t, b.ParentA, b.ParentB)
		if stage == BirthInstalled {
			births = append(births, b)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, births, 20-keep)

	after := pop.Candidates()
	assert.Equal(t, before[:keep], after[:keep])
	for i := keep; i < len(after); i++ {
		assert.Equal(t, model.Unscored, after[i].Fitness)
		assert.Len(t, after[i].Genome, 5)
		assert.Equal(t, births[i-keep].Child, after[i].Genome)
		assert.Equal(t, i, births[i-keep].Slot)
	}
}

func TestBreedGenerationRequiresTwoSurvivors(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pop, err := NewPopulation(4)
	require.NoError(t, err)
	_, err = pop.Seed(rng, DefaultAlphabet, 3)
	require.NoError(t, err)

	err = pop.BreedGeneration(rng, 1, 0.1, DefaultAlphabet, nil)
	require.ErrorIs(t, err, ErrInvalidSampleSize)
	err = pop.BreedGeneration(rng, 0, 0.1, DefaultAlphabet, nil)
	require.ErrorIs(t, err, ErrInvalidSampleSize)
}

func TestBreedGenerationRejectsEmptyAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop, err := NewPopulation(4)
	require.NoError(t, err)
	_, err = pop.Seed(rng, DefaultAlphabet, 3)
	require.NoError(t, err)
	before := pop.Candidates()

	err = pop.BreedGeneration(rng, 2, 0.5, "", nil)
	require.Error(t, err)
	assert.Equal(t, before, pop.Candidates())
}

func TestBreedGenerationRejectsUnseededPopulation(t *testing.T) {
	pop, err := NewPopulation(4)
	require.NoError(t, err)
	err = pop.BreedGeneration(rand.New(rand.NewSource(1)), 2, 0.1, DefaultAlphabet, nil)
	require.Error(t, err)
}

func TestBestIsHeadOfOrdering(t *testing.T) {
	pop := populationOf(1, 7, 3)
	require.NoError(t, pop.Rank(nil))
	best, ok := pop.Best()
	require.True(t, ok)
	assert.Equal(t, 7, best.Fitness)

	empty, err := NewPopulation(2)
	require.NoError(t, err)
	_, ok = empty.Best()
	assert.False(t, ok)
}

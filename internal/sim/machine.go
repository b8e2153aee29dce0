package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"weasel/internal/evo"
	"weasel/internal/logging"
	"weasel/internal/model"
)

var (
	// ErrFinished is returned by Step once the machine has reached
	// SimulationEnd.
	ErrFinished = errors.New("simulation already finished")
	// ErrIterationLimit aborts a run that hit Config.MaxIterations.
	ErrIterationLimit = errors.New("iteration limit reached")
)

// Result is what a finished run reports.
type Result struct {
	Best            model.Candidate
	Iterations      int
	Steps           int
	BestByIteration []int
}

// Machine drives one run through its phases. Each Step performs a whole
// phase and returns the render events narrating it.
type Machine struct {
	cfg    Config
	rng    evo.Rand
	logger *slog.Logger

	targetLen  int
	population *evo.Population
	stage      *Stage

	phase     Phase
	iteration int
	steps     int
	best      []int
	done      bool
}

func NewMachine(cfg Config, rng evo.Rand, logger *slog.Logger) (*Machine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	population, err := evo.NewPopulation(cfg.PopulationSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if cfg.PopulationSize%cfg.DisplayColumns != 0 {
		logger.Warn("display columns do not divide the population; last column will be short",
			"population_size", cfg.PopulationSize,
			"display_columns", cfg.DisplayColumns,
		)
	}
	return &Machine{
		cfg:        cfg,
		rng:        rng,
		logger:     logger,
		targetLen:  utf8.RuneCountInString(cfg.Target),
		population: population,
		stage:      NewStage(cfg.PopulationSize),
		phase:      SeedPopulation,
		iteration:  1,
	}, nil
}

// Config is the validated configuration with defaults applied.
func (m *Machine) Config() Config { return m.cfg }

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Done() bool { return m.done }

func (m *Machine) Iteration() int { return m.iteration }

func (m *Machine) Candidates() []model.Candidate { return m.population.Candidates() }

func (m *Machine) Result() Result {
	best, _ := m.population.Best()
	return Result{
		Best:            best,
		Iterations:      m.iteration,
		Steps:           m.steps,
		BestByIteration: append([]int(nil), m.best...),
	}
}

// Step runs the current phase to completion, advances to the next phase and
// returns the events describing what happened.
func (m *Machine) Step(ctx context.Context) ([]Event, error) {
	if m.done {
		return nil, ErrFinished
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := m.phase
	n := &narration{phase: current, stage: m.stage, source: m.population.Candidates}

	var (
		next Phase
		err  error
	)
	switch current {
	case SeedPopulation:
		next, err = m.seed(n)
	case ComputeFitness:
		next, err = m.computeFitness(n)
	case OrderByFitness:
		next, err = m.orderByFitness(n)
	case RemoveUnfit:
		next, err = m.removeUnfit(n)
	case BreedNew:
		next, err = m.breedNew(n)
	case SimulationEnd:
		next, err = m.end(n)
	default:
		err = fmt.Errorf("unknown phase %d", current)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", current.Key(), err)
	}

	m.steps++
	m.phase = next
	m.logger.Debug("phase complete",
		"phase", current.Key(),
		"next", next.Key(),
		"iteration", m.iteration,
		"events", len(n.events),
	)
	return n.events, nil
}

func (m *Machine) seed(n *narration) (Phase, error) {
	seeded, err := m.population.Seed(m.rng, m.cfg.Alphabet, m.targetLen)
	if err != nil {
		return 0, err
	}
	previous := -1
	for k, i := range seeded {
		if k > 0 {
			n.pause(PauseAction)
		}
		if previous >= 0 {
			m.stage.Unfocus(previous)
		}
		m.stage.Focus(i)
		m.stage.Show(i)
		n.frame()
		previous = i
	}
	n.pause(PauseAction)
	if previous >= 0 {
		m.stage.Unfocus(previous)
	}
	n.frame()
	n.pause(PausePhase)
	return ComputeFitness, nil
}

func (m *Machine) computeFitness(n *narration) (Phase, error) {
	previous := -1
	for k, i := range m.population.Unscored() {
		if k > 0 {
			n.pause(PauseAction)
		}
		if previous >= 0 {
			m.stage.Unfocus(previous)
		}
		m.stage.Focus(i)
		if _, err := m.population.ScoreAt(i, m.cfg.Target); err != nil {
			return 0, err
		}
		m.stage.Reveal(i)
		n.frame()
		previous = i
	}
	n.pause(PauseAction)
	if previous >= 0 {
		m.stage.Unfocus(previous)
	}
	n.frame()
	n.pause(PausePhase)
	return OrderByFitness, nil
}

func (m *Machine) orderByFitness(n *narration) (Phase, error) {
	interval := m.cfg.SwapFrameInterval
	err := m.population.Rank(func(swap evo.Swap) error {
		m.stage.Swap(swap.I, swap.J)
		if swap.Count%interval == 0 {
			n.frame()
			n.pause(PauseAction)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	n.frame()
	n.pause(PausePhase)

	best, _ := m.population.Best()
	m.best = append(m.best, best.Fitness)
	m.logger.Info("generation ranked",
		"iteration", m.iteration,
		"best_genome", best.Genome,
		"best_fitness", best.Fitness,
		"target_fitness", m.targetLen,
	)
	if best.Fitness == m.targetLen {
		return SimulationEnd, nil
	}
	if m.cfg.MaxIterations > 0 && m.iteration >= m.cfg.MaxIterations {
		return 0, fmt.Errorf("%w: %d iterations without a match (best %q)", ErrIterationLimit, m.iteration, best.Genome)
	}
	return RemoveUnfit, nil
}

func (m *Machine) removeUnfit(n *narration) (Phase, error) {
	freed, err := m.population.Cull(m.cfg.SurvivorsKept)
	if err != nil {
		return 0, err
	}
	for _, i := range freed {
		m.stage.Focus(i)
		n.pause(PauseAction)
		n.frame()
		m.stage.Unfocus(i)
		m.stage.Hide(i)
	}
	n.pause(PauseAction)
	n.frame()
	n.pause(PausePhase)
	return BreedNew, nil
}

func (m *Machine) breedNew(n *narration) (Phase, error) {
	err := m.population.BreedGeneration(m.rng, m.cfg.SurvivorsKept, m.cfg.MutationProbability, m.cfg.Alphabet,
		func(stage evo.BirthStage, birth evo.Birth) error {
			switch stage {
			case evo.BirthParentsChosen:
				m.stage.Focus(birth.ParentA)
				m.stage.Focus(birth.ParentB)
				n.pause(PauseAction)
				n.frame()
				m.stage.Focus(birth.Slot)
				n.pause(PauseAction)
			case evo.BirthInstalled:
				m.stage.Reset(birth.Slot)
				m.stage.Show(birth.Slot)
				m.stage.Focus(birth.Slot)
				n.frame()
				m.stage.Unfocus(birth.Slot)
				m.stage.Unfocus(birth.ParentA)
				m.stage.Unfocus(birth.ParentB)
			}
			return nil
		})
	if err != nil {
		return 0, err
	}
	n.frame()
	n.pause(PausePhase)
	m.iteration++
	return ComputeFitness, nil
}

func (m *Machine) end(n *narration) (Phase, error) {
	n.frame()
	best, _ := m.population.Best()
	n.summary(best.Genome, m.iteration)
	m.done = true
	m.logger.Info("simulation converged", "genome", best.Genome, "iterations", m.iteration, "steps", m.steps+1)
	return SimulationEnd, nil
}

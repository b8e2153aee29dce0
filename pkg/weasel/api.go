package weasel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"weasel/internal/evo"
	"weasel/internal/logging"
	"weasel/internal/render"
	"weasel/internal/sim"
)

const (
	DefaultTarget              = "hey"
	DefaultPopulationSize      = 60
	DefaultSurvivorsKept       = 8
	DefaultDisplayColumns      = 5
	DefaultMutationProbability = 0.20
)

// Options configures where a client draws and logs.
type Options struct {
	Out    io.Writer
	Logger *slog.Logger
	// Color is auto, always or never.
	Color string
	// Headless suppresses frames and pacing; only the summary is printed.
	Headless bool
}

type Client struct {
	out      io.Writer
	logger   *slog.Logger
	color    render.ColorMode
	headless bool
}

// RunRequest carries the five run parameters plus the pacing and
// reproducibility knobs. Start from DefaultRunRequest; every field is taken
// as given, so zero values are rejected by Validate rather than defaulted.
type RunRequest struct {
	Target              string
	PopulationSize      int
	SurvivorsKept       int
	DisplayColumns      int
	MutationProbability float64

	Alphabet string
	// Seed fixes the random source. Nil seeds from the clock.
	Seed              *int64
	ActionDelay       time.Duration
	PhaseDelay        time.Duration
	SwapFrameInterval int
	MaxIterations     int
}

type RunSummary struct {
	RunID           string
	Seed            int64
	Best            string
	BestFitness     int
	Iterations      int
	Steps           int
	BestByIteration []int
	Elapsed         time.Duration
}

// DefaultRunRequest is the demo run: "hey" from 60 candidates keeping 8.
func DefaultRunRequest() RunRequest {
	pacing := sim.DefaultPacing()
	return RunRequest{
		Target:              DefaultTarget,
		PopulationSize:      DefaultPopulationSize,
		SurvivorsKept:       DefaultSurvivorsKept,
		DisplayColumns:      DefaultDisplayColumns,
		MutationProbability: DefaultMutationProbability,
		Alphabet:            string(evo.DefaultAlphabet),
		ActionDelay:         pacing.Action,
		PhaseDelay:          pacing.Phase,
		SwapFrameInterval:   sim.DefaultSwapFrameInterval,
	}
}

func New(opts Options) (*Client, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	color, err := render.ParseColorMode(opts.Color)
	if err != nil {
		return nil, err
	}
	return &Client{
		out:      out,
		logger:   logger,
		color:    color,
		headless: opts.Headless,
	}, nil
}

// Config converts the request into a machine configuration.
func (req RunRequest) Config() sim.Config {
	return sim.Config{
		Target:              req.Target,
		PopulationSize:      req.PopulationSize,
		SurvivorsKept:       req.SurvivorsKept,
		DisplayColumns:      req.DisplayColumns,
		MutationProbability: req.MutationProbability,
		Alphabet:            evo.Alphabet(req.Alphabet),
		SwapFrameInterval:   req.SwapFrameInterval,
		MaxIterations:       req.MaxIterations,
	}
}

// Validate checks the request without running it.
func (req RunRequest) Validate() error {
	if req.ActionDelay < 0 || req.PhaseDelay < 0 {
		return fmt.Errorf("%w: delays must be >= 0", sim.ErrConfiguration)
	}
	if req.SwapFrameInterval <= 0 {
		return fmt.Errorf("%w: swap frame interval must be > 0, got %d", sim.ErrConfiguration, req.SwapFrameInterval)
	}
	if req.Alphabet == "" {
		return fmt.Errorf("%w: alphabet is required", sim.ErrConfiguration)
	}
	return req.Config().Validate()
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := req.Validate(); err != nil {
		return RunSummary{}, err
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	runID := uuid.NewString()
	logger := c.logger.With("run_id", runID)

	machine, err := sim.NewMachine(req.Config(), rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return RunSummary{}, err
	}
	cfg := machine.Config()
	port, err := c.port(cfg)
	if err != nil {
		return RunSummary{}, err
	}

	logger.Info("run started",
		"target", cfg.Target,
		"population_size", cfg.PopulationSize,
		"survivors_kept", cfg.SurvivorsKept,
		"mutation_probability", cfg.MutationProbability,
		"seed", seed,
	)
	started := time.Now()
	result, err := sim.Run(ctx, machine, port, sim.Pacing{Action: req.ActionDelay, Phase: req.PhaseDelay})
	elapsed := time.Since(started)
	if err != nil {
		logger.Error("run aborted", "error", err, "iterations", result.Iterations, "elapsed", elapsed)
		return RunSummary{}, err
	}
	logger.Info("run finished", "best", result.Best.Genome, "iterations", result.Iterations, "elapsed", elapsed)

	return RunSummary{
		RunID:           runID,
		Seed:            seed,
		Best:            result.Best.Genome,
		BestFitness:     result.Best.Fitness,
		Iterations:      result.Iterations,
		Steps:           result.Steps,
		BestByIteration: result.BestByIteration,
		Elapsed:         elapsed,
	}, nil
}

func (c *Client) port(cfg sim.Config) (sim.Port, error) {
	if c.headless {
		return render.Headless{Out: c.out}, nil
	}
	return render.NewTerminal(c.out, render.Layout{
		Target:      cfg.Target,
		Columns:     cfg.DisplayColumns,
		ColumnWidth: cfg.ColumnWidth(),
	}, c.color)
}

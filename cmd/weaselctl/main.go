package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"weasel/internal/logging"
	"weasel/pkg/weasel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	globals := &globalFlags{}
	root := &cobra.Command{
		Use:           "weaselctl",
		Short:         "Watch a population of random strings evolve toward a target",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&globals.logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&globals.logFormat, "log-format", "text", "log format: text|json")

	root.AddCommand(newRunCommand(globals, stdout, stderr))
	root.AddCommand(newValidateCommand(stdout))
	return root
}

type runFlags struct {
	configPath string
	color      string
	headless   bool
	req        weasel.RunRequest
	seed       int64
}

func bindRunRequestFlags(cmd *cobra.Command, req *weasel.RunRequest, seed *int64) {
	defaults := weasel.DefaultRunRequest()
	fs := cmd.Flags()
	fs.StringVar(&req.Target, "target", defaults.Target, "target string to evolve toward")
	fs.IntVar(&req.PopulationSize, "population", defaults.PopulationSize, "population size")
	fs.IntVar(&req.SurvivorsKept, "survivors", defaults.SurvivorsKept, "fittest candidates kept each generation")
	fs.IntVar(&req.DisplayColumns, "columns", defaults.DisplayColumns, "display columns")
	fs.Float64Var(&req.MutationProbability, "mutation", defaults.MutationProbability, "per-symbol mutation probability in [0,1]")
	fs.StringVar(&req.Alphabet, "alphabet", defaults.Alphabet, "symbols genomes are drawn from")
	fs.Int64Var(seed, "seed", 0, "rng seed; unset seeds from the clock")
	fs.DurationVar(&req.ActionDelay, "action-delay", defaults.ActionDelay, "pause between sub-steps")
	fs.DurationVar(&req.PhaseDelay, "phase-delay", defaults.PhaseDelay, "pause after each phase")
	fs.IntVar(&req.SwapFrameInterval, "swap-frame-interval", defaults.SwapFrameInterval, "draw every n-th swap while sorting")
	fs.IntVar(&req.MaxIterations, "max-iterations", 0, "abort after n generations without a match (0 disables)")
}

// overrideChangedFlags copies explicitly set flags over base.
func overrideChangedFlags(cmd *cobra.Command, flagged weasel.RunRequest, seed int64, base weasel.RunRequest) weasel.RunRequest {
	fs := cmd.Flags()
	out := base
	if fs.Changed("target") {
		out.Target = flagged.Target
	}
	if fs.Changed("population") {
		out.PopulationSize = flagged.PopulationSize
	}
	if fs.Changed("survivors") {
		out.SurvivorsKept = flagged.SurvivorsKept
	}
	if fs.Changed("columns") {
		out.DisplayColumns = flagged.DisplayColumns
	}
	if fs.Changed("mutation") {
		out.MutationProbability = flagged.MutationProbability
	}
	if fs.Changed("alphabet") {
		out.Alphabet = flagged.Alphabet
	}
	if fs.Changed("seed") {
		out.Seed = &seed
	}
	if fs.Changed("action-delay") {
		out.ActionDelay = flagged.ActionDelay
	}
	if fs.Changed("phase-delay") {
		out.PhaseDelay = flagged.PhaseDelay
	}
	if fs.Changed("swap-frame-interval") {
		out.SwapFrameInterval = flagged.SwapFrameInterval
	}
	if fs.Changed("max-iterations") {
		out.MaxIterations = flagged.MaxIterations
	}
	return out
}

// resolveRunRequest layers the config file, if any, over the defaults and
// explicitly set flags over both.
func resolveRunRequest(cmd *cobra.Command, configPath string, flagged weasel.RunRequest, seed int64) (weasel.RunRequest, error) {
	base := weasel.DefaultRunRequest()
	if configPath != "" {
		fromFile, err := loadRunRequestFromConfig(configPath, base)
		if err != nil {
			return weasel.RunRequest{}, err
		}
		base = fromFile
	}
	return overrideChangedFlags(cmd, flagged, seed, base), nil
}

func newRunCommand(globals *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the animated simulation until a candidate matches the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := resolveRunRequest(cmd, flags.configPath, flags.req, flags.seed)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Config{Level: globals.logLevel, Format: globals.logFormat, Out: stderr})
			if err != nil {
				return err
			}
			client, err := weasel.New(weasel.Options{
				Out:      stdout,
				Logger:   logger,
				Color:    flags.color,
				Headless: flags.headless,
			})
			if err != nil {
				return err
			}
			summary, err := client.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			logger.Info("summary",
				"run_id", summary.RunID,
				"seed", summary.Seed,
				"steps", humanize.Comma(int64(summary.Steps)),
				"elapsed", summary.Elapsed.String(),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "", "optional YAML run config; explicit flags override it")
	cmd.Flags().StringVar(&flags.color, "color", "auto", "color output: auto|always|never")
	cmd.Flags().BoolVar(&flags.headless, "headless", false, "skip frames and pacing, print only the result")
	bindRunRequestFlags(cmd, &flags.req, &flags.seed)
	return cmd
}

func newValidateCommand(stdout io.Writer) *cobra.Command {
	var configPath string
	var req weasel.RunRequest
	var seed int64
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check run parameters without running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveRunRequest(cmd, configPath, req, seed)
			if err != nil {
				return err
			}
			if err := resolved.Validate(); err != nil {
				return err
			}
			cfg := resolved.Config()
			fmt.Fprintf(stdout, "ok target=%q population=%d survivors=%d columns=%d mutation=%s alphabet=%d symbols\n",
				cfg.Target,
				cfg.PopulationSize,
				cfg.SurvivorsKept,
				cfg.DisplayColumns,
				strconv.FormatFloat(cfg.MutationProbability, 'f', -1, 64),
				cfg.Alphabet.Size(),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML run config; explicit flags override it")
	bindRunRequestFlags(cmd, &req, &seed)
	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/ofcsolver/internal/ofc"
	"github.com/lox/ofcsolver/internal/runtime"
	"github.com/lox/ofcsolver/internal/solver"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train   TrainCmd   `cmd:"" help:"run MCCFR training and write a strategy profile"`
	Inspect InspectCmd `cmd:"" help:"report summary statistics for a saved profile"`
}

type TrainCmd struct {
	Out             string `help:"path to write the strategy profile" required:""`
	Iterations      int    `help:"number of MCCFR iterations" default:"100000"`
	Parallel        int    `help:"number of concurrent tables per iteration" default:"1"`
	Seed            int64  `help:"random seed; 0 picks a fixed default" default:"0"`
	K               int    `help:"max sampled slot placements per discard choice at a decision node" default:"40"`
	CheckpointPath  string `help:"path to write periodic checkpoints"`
	CheckpointEvery int    `help:"checkpoint interval in iterations (0 disables)" default:"0"`
	ProgressEvery   int    `help:"log progress every N iterations (0 picks iterations/100)" default:"0"`
	ResumeFrom      string `help:"resume training from a checkpoint profile"`
	CPUProfile      string `help:"write a CPU profile to this path"`
	CFRPlus         bool   `help:"enable CFR+ (clamp negative regret)"`
	DCFR            bool   `help:"enable linear (discounted) strategy averaging"`
	Sampling        string `help:"sampling mode for the opponent's nodes" enum:"external,full" default:"external"`
	GreedyDiscard   bool   `help:"preselect each street's discard greedily by projected royalty instead of enumerating it"`
}

type InspectCmd struct {
	Profile string `help:"path to a saved strategy profile" required:""`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ofctrain"),
		kong.Description("Pineapple Open-Face Chinese Poker MCCFR trainer"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	switch ctx.Command() {
	case "train":
		if err := cli.Train.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
	case "inspect":
		if err := cli.Inspect.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("inspect failed")
		}
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	mode, err := solver.ParseSamplingMode(cmd.Sampling)
	if err != nil {
		return err
	}

	if cmd.CPUProfile != "" {
		f, err := os.Create(cmd.CPUProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", cmd.CPUProfile).Msg("CPU profiling enabled")
	}

	abs := ofc.DefaultAbstractionConfig()
	if cmd.K > 0 {
		abs.K = cmd.K
	}
	if cmd.GreedyDiscard {
		abs.DiscardPolicy = ofc.GreedyRoyaltyDiscard{}
	}

	train := solver.DefaultTrainingConfig()
	if cmd.Iterations > 0 {
		train.Iterations = cmd.Iterations
	}
	if cmd.Parallel > 0 {
		train.ParallelTables = cmd.Parallel
	}
	if cmd.Seed != 0 {
		train.Seed = cmd.Seed
	}
	if cmd.ProgressEvery > 0 {
		train.ProgressEvery = cmd.ProgressEvery
	}
	train.UseCFRPlus = cmd.CFRPlus
	train.UseDCFR = cmd.DCFR
	train.Sampling = mode
	if cmd.CheckpointPath != "" && cmd.CheckpointEvery > 0 {
		train.CheckpointPath = cmd.CheckpointPath
		train.CheckpointEvery = cmd.CheckpointEvery
	}

	var trainer *solver.Trainer
	if cmd.ResumeFrom != "" {
		trainer, err = solver.LoadTrainerFromCheckpoint(cmd.ResumeFrom, abs, train)
		if err != nil {
			return fmt.Errorf("load checkpoint: %w", err)
		}
		log.Info().
			Int("resume_iteration", int(trainer.Iteration())).
			Int("target_iterations", train.Iterations).
			Str("checkpoint", cmd.ResumeFrom).
			Msg("resuming training run")
	} else {
		trainer, err = solver.NewTrainer(abs, train)
		if err != nil {
			return err
		}
		log.Info().
			Int("iterations", train.Iterations).
			Int("k", abs.K).
			Int("parallel", train.ParallelTables).
			Bool("cfr_plus", train.UseCFRPlus).
			Bool("dcfr", train.UseDCFR).
			Str("sampling", train.Sampling.String()).
			Msg("starting training run")
	}

	start := time.Now()
	progress := func(p solver.Progress) {
		log.Info().
			Int("iteration", p.Iteration).
			Int("infosets", p.RegretTableSize).
			Int64("nodes", p.Stats.NodesVisited).
			Int64("terminals", p.Stats.TerminalNodes).
			Int("max_depth", p.Stats.MaxDepth).
			Dur("iter_time", p.IterationTime).
			Msg("progress")
	}

	if err := trainer.Run(ctx, progress); err != nil {
		return err
	}

	duration := time.Since(start)
	log.Info().Dur("duration", duration).Int("infosets", trainer.RegretTable().Size()).Msg("training completed")

	if err := trainer.SaveProfile(cmd.Out); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	log.Info().Str("path", cmd.Out).Msg("profile saved")
	return nil
}

func (cmd *InspectCmd) Run(_ context.Context) error {
	profile, err := solver.LoadProfile(cmd.Profile)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	policy, err := runtime.FromProfile(profile)
	if err != nil {
		return fmt.Errorf("build policy: %w", err)
	}

	log.Info().
		Int("iteration", profile.Iteration).
		Int("infosets", policy.Size()).
		Msg("profile summary")
	return nil
}

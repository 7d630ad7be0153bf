package solver

import (
	"errors"
	"fmt"

	"github.com/lox/ofcsolver/internal/ofc"
)

// SamplingMode selects how the non-traversing player's branches are
// explored during a traverse call.
type SamplingMode uint8

const (
	// SamplingModeExternal samples a single action at every node where the
	// current actor is not the traversal's target player. Cheaper per
	// iteration; standard external-sampling MCCFR.
	SamplingModeExternal SamplingMode = iota
	// SamplingModeFullTraversal expands every action at every node
	// regardless of whose turn it is, weighting each branch by the node's
	// current strategy. More accurate per iteration, more expensive.
	SamplingModeFullTraversal
)

func (m SamplingMode) String() string {
	switch m {
	case SamplingModeExternal:
		return "external"
	case SamplingModeFullTraversal:
		return "full"
	default:
		return "unknown"
	}
}

func ParseSamplingMode(s string) (SamplingMode, error) {
	switch s {
	case "external":
		return SamplingModeExternal, nil
	case "full":
		return SamplingModeFullTraversal, nil
	default:
		return 0, fmt.Errorf("unknown sampling mode %q", s)
	}
}

// TrainingConfig controls a training run independent of the action
// abstraction, which lives in ofc.AbstractionConfig.
type TrainingConfig struct {
	Iterations int
	Seed       int64

	// ParallelTables is the number of self-play games traversed
	// concurrently within a single iteration.
	ParallelTables int

	// CheckpointPath, when non-empty, is where the trainer periodically
	// writes its Profile. CheckpointEvery is the iteration stride between
	// writes; zero disables periodic checkpoints even with a path set.
	CheckpointPath  string
	CheckpointEvery int

	// ProgressEvery is the iteration stride between progress callbacks;
	// zero picks iterations/100 (minimum 1).
	ProgressEvery int

	// UseCFRPlus clamps regrets at zero (CFR+); UseDCFR linearly weights
	// the strategy-sum contribution by iteration number.
	UseCFRPlus bool
	UseDCFR    bool

	Sampling SamplingMode
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:     1_000_000,
		Seed:           1,
		ParallelTables: 1,
		ProgressEvery:  0,
		Sampling:       SamplingModeExternal,
	}
}

func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("solver: Iterations must be positive")
	}
	if c.ParallelTables <= 0 {
		return errors.New("solver: ParallelTables must be positive")
	}
	if c.CheckpointEvery < 0 {
		return errors.New("solver: CheckpointEvery must not be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("solver: ProgressEvery must not be negative")
	}
	return nil
}

// Config bundles the two independent axes a training run needs: the game
// abstraction (how many sampled actions per node, and how discards get
// preselected) and the training loop parameters above.
type Config struct {
	Abstraction ofc.AbstractionConfig
	Training    TrainingConfig
}

func DefaultConfig() Config {
	return Config{
		Abstraction: ofc.DefaultAbstractionConfig(),
		Training:    DefaultTrainingConfig(),
	}
}

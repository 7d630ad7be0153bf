package solver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/ofcsolver/internal/ofc"
	"github.com/lox/ofcsolver/internal/randutil"
)

// Progress is handed to a training run's progress callback every
// ProgressEvery iterations.
type Progress struct {
	Iteration       int
	RegretTableSize int
	Stats           TraversalStats
	IterationTime   time.Duration
}

// Trainer drives MCCFR self-play over the OFC state machine, accumulating
// regret and strategy-sum into a RegretTable across iterations.
type Trainer struct {
	absCfg   ofc.AbstractionConfig
	trainCfg TrainingConfig
	regrets  *RegretTable

	iteration atomic.Int64
	rng       *rand.Rand
}

func NewTrainer(absCfg ofc.AbstractionConfig, trainCfg TrainingConfig) (*Trainer, error) {
	if err := trainCfg.Validate(); err != nil {
		return nil, err
	}
	seed := trainCfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &Trainer{
		absCfg:   absCfg,
		trainCfg: trainCfg,
		regrets:  NewRegretTable(),
		rng:      randutil.New(seed),
	}, nil
}

// NewTrainerWithTable restores a Trainer around a RegretTable already
// populated from a persisted Profile, picking training back up at the
// iteration the profile was saved at.
func NewTrainerWithTable(absCfg ofc.AbstractionConfig, trainCfg TrainingConfig, table *RegretTable, iteration int) (*Trainer, error) {
	trainer, err := NewTrainer(absCfg, trainCfg)
	if err != nil {
		return nil, err
	}
	trainer.regrets = table
	trainer.iteration.Store(int64(iteration))
	return trainer, nil
}

func (t *Trainer) Iteration() int64 { return t.iteration.Load() }

func (t *Trainer) RegretTable() *RegretTable { return t.regrets }

func (t *Trainer) TrainingConfig() TrainingConfig { return t.trainCfg }

// Run executes iterations until TrainingConfig.Iterations is reached or ctx
// is cancelled, invoking progress (if non-nil) every ProgressEvery
// iterations and writing a checkpoint every CheckpointEvery iterations when
// a CheckpointPath is configured.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	progressEvery := t.trainCfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = max(t.trainCfg.Iterations/100, 1)
	}

	for int(t.iteration.Load()) < t.trainCfg.Iterations {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		stats, err := t.singleIteration()
		if err != nil {
			return fmt.Errorf("solver: iteration %d: %w", t.iteration.Load(), err)
		}
		elapsed := time.Since(start)
		iter := int(t.iteration.Add(1))

		if t.trainCfg.CheckpointPath != "" && t.trainCfg.CheckpointEvery > 0 && iter%t.trainCfg.CheckpointEvery == 0 {
			if err := t.SaveProfile(t.trainCfg.CheckpointPath); err != nil {
				return fmt.Errorf("solver: checkpoint at iteration %d: %w", iter, err)
			}
		}

		if progress != nil && iter%progressEvery == 0 {
			progress(Progress{Iteration: iter, RegretTableSize: t.regrets.Size(), Stats: stats, IterationTime: elapsed})
		}
	}
	return nil
}

// singleIteration fans the configured number of parallel tables out across
// goroutines via an errgroup, each table playing one full hand per player
// as the traversal target. Seeds for each table's deck and sampler are
// drawn sequentially from the trainer's own RNG before any goroutine
// starts, so the same configuration and seed reproduce the same sequence
// of tables regardless of how the scheduler interleaves them.
func (t *Trainer) singleIteration() (TraversalStats, error) {
	parallel := t.trainCfg.ParallelTables
	if parallel <= 0 {
		parallel = 1
	}

	type tableSeed struct{ deck, sampler int64 }
	seeds := make([]tableSeed, parallel)
	for i := range seeds {
		seeds[i] = tableSeed{deck: t.rng.Int64(), sampler: t.rng.Int64()}
	}

	opts := RegretUpdateOptions{
		ClampNegativeRegrets: t.trainCfg.UseCFRPlus,
		LinearAveraging:      t.trainCfg.UseDCFR,
		Iteration:            int(t.iteration.Load()) + 1,
	}

	results := make([]TraversalStats, parallel)
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < parallel; i++ {
		idx := i
		seed := seeds[i]
		g.Go(func() error {
			deckRNG := randutil.New(seed.deck)
			sampler := randutil.New(seed.sampler)
			for player := 0; player < 2; player++ {
				gs := ofc.NewGameState(deckRNG)
				if _, err := t.traverse(gs, player, sampler, opts, 0, &results[idx]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TraversalStats{}, err
	}

	var agg TraversalStats
	for _, s := range results {
		agg.merge(s)
	}
	return agg, nil
}

// SetTotalIterations adjusts how many iterations Run will execute before
// stopping. It cannot retract past iterations already completed.
func (t *Trainer) SetTotalIterations(n int) error {
	if n < int(t.iteration.Load()) {
		return fmt.Errorf("solver: cannot set total iterations (%d) below the iterations already completed (%d)", n, t.iteration.Load())
	}
	t.trainCfg.Iterations = n
	return nil
}

func (t *Trainer) EnableCheckpoints(path string, every int) {
	t.trainCfg.CheckpointPath = path
	t.trainCfg.CheckpointEvery = every
}

func (t *Trainer) SetProgressEvery(n int) { t.trainCfg.ProgressEvery = n }

package solver

import (
	"math/rand/v2"

	"github.com/lox/ofcsolver/internal/ofc"
)

// TraversalStats accumulates counters over one or more traverse calls,
// surfaced to callers via Progress for monitoring a training run.
type TraversalStats struct {
	NodesVisited  int64
	TerminalNodes int64
	MaxDepth      int
}

func (s *TraversalStats) merge(other TraversalStats) {
	s.NodesVisited += other.NodesVisited
	s.TerminalNodes += other.TerminalNodes
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
}

// traverse runs one external-sampling MCCFR pass from gs, computing the
// expected payoff to target. At nodes where target is to act, every legal
// action is expanded (regret-matched strategy weighting the recursion) and
// the node's regret/strategy-sum entry is updated from the observed
// counterfactual values. At nodes where the other player is to act, the
// branch is either full-expanded (SamplingModeFullTraversal) or a single
// action is drawn from the node's current strategy (SamplingModeExternal),
// with no regret update: that player's own entry gets updated when they
// are the target in a later call this same iteration.
//
// gs is mutated and restored via Apply/Undo rather than rebuilt from a
// path on every node, so only the actions actually taken down the explored
// branch ever touch the board.
func (t *Trainer) traverse(gs *ofc.GameState, target int, sampler *rand.Rand, opts RegretUpdateOptions, depth int, stats *TraversalStats) (float64, error) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	stats.NodesVisited++

	if gs.Terminal {
		stats.TerminalNodes++
		p0, p1, err := gs.Payoff()
		if err != nil {
			return 0, err
		}
		if target == 0 {
			return p0, nil
		}
		return p1, nil
	}

	actions, err := gs.LegalActions(t.absCfg)
	if err != nil {
		return 0, err
	}
	if len(actions) == 0 {
		stats.TerminalNodes++
		return 0, nil
	}

	actor := gs.Actor
	key := gs.InfoSetKey()
	entry := t.regrets.Get(key, len(actions))
	strategy := entry.Strategy()

	if actor == target {
		util := make([]float64, len(actions))
		var nodeUtil float64
		for i, a := range actions {
			rec, err := gs.Apply(a)
			if err != nil {
				return 0, err
			}
			u, err := t.traverse(gs, target, sampler, opts, depth+1, stats)
			gs.Undo(rec)
			if err != nil {
				return 0, err
			}
			util[i] = u
			nodeUtil += strategy[i] * u
		}
		regrets := make([]float64, len(actions))
		for i := range actions {
			regrets[i] = util[i] - nodeUtil
		}
		entry.Update(regrets, strategy, 1.0, opts)
		return nodeUtil, nil
	}

	if t.trainCfg.Sampling == SamplingModeFullTraversal {
		var nodeUtil float64
		for i, a := range actions {
			if strategy[i] <= 0 {
				continue
			}
			rec, err := gs.Apply(a)
			if err != nil {
				return 0, err
			}
			u, err := t.traverse(gs, target, sampler, opts, depth+1, stats)
			gs.Undo(rec)
			if err != nil {
				return 0, err
			}
			nodeUtil += strategy[i] * u
		}
		return nodeUtil, nil
	}

	idx := sampleIndex(strategy, sampler)
	rec, err := gs.Apply(actions[idx])
	if err != nil {
		return 0, err
	}
	u, err := t.traverse(gs, target, sampler, opts, depth+1, stats)
	gs.Undo(rec)
	return u, err
}

// sampleIndex draws an index from a discrete distribution given as
// per-index probabilities, accumulated as it scans, falling back to the
// last index to absorb any floating-point shortfall.
func sampleIndex(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	var cum float64
	for i, p := range strategy {
		cum += p
		if r <= cum {
			return i
		}
	}
	return len(strategy) - 1
}

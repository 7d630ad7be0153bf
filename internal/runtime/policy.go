package runtime

import (
	"errors"
	"fmt"

	lru "github.com/opencoff/golang-lru"
	"github.com/rs/zerolog/log"

	"github.com/lox/ofcsolver/internal/ofc"
	"github.com/lox/ofcsolver/internal/solver"
)

// ProfileMissingInfoSet is returned, informationally, alongside a uniform
// fallback strategy when a queried information set was never visited
// during training.
var ProfileMissingInfoSet = errors.New("runtime: information set not present in profile")

// ProfileArityMismatch is returned, informationally, alongside a uniform
// fallback strategy when a profile node's stored vector length disagrees
// with the number of legal actions the caller is choosing among.
var ProfileArityMismatch = errors.New("runtime: stored strategy length disagrees with legal action count")

const defaultCacheSize = 4096

// Policy answers best-action queries from a trained solver.Profile. It is
// a thin wrapper, as spec.md scopes it: the real work is normalizing an
// already-converged strategy and falling back gracefully when the query
// lands on something the profile doesn't recognize. An LRU cache sits in
// front of the lookup since the same handful of early-street information
// sets recur constantly across a live session.
type Policy struct {
	nodes map[ofc.InfoSetKey]solver.NodeSnapshot
	cache *lru.Cache
}

// Load builds a Policy from a profile previously written by
// solver.Trainer.SaveProfile.
func Load(path string) (*Policy, error) {
	profile, err := solver.LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("runtime: load profile: %w", err)
	}
	return FromProfile(profile)
}

// FromProfile builds a Policy directly from an in-memory profile, useful
// for querying a freshly trained table without a round trip through disk.
func FromProfile(profile solver.Profile) (*Policy, error) {
	nodes := make(map[ofc.InfoSetKey]solver.NodeSnapshot, len(profile.Nodes))
	for _, rec := range profile.Nodes {
		nodes[rec.Key] = rec.Snapshot
	}
	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("runtime: create policy cache: %w", err)
	}
	return &Policy{nodes: nodes, cache: cache}, nil
}

// Strategy returns the converged action-probability vector for key, sized
// to actionCount. A missing key or an arity mismatch against the stored
// node both degrade to a uniform distribution over actionCount actions,
// with a zerolog warning and the relevant sentinel error returned
// alongside it rather than propagated as a hard failure — a live session
// should keep playing on an under-trained branch, not stop.
func (p *Policy) Strategy(key ofc.InfoSetKey, actionCount int) ([]float64, error) {
	if actionCount <= 0 {
		return nil, fmt.Errorf("runtime: actionCount must be positive, got %d", actionCount)
	}

	if cached, ok := p.cache.Get(key); ok {
		strategy := cached.([]float64)
		if len(strategy) == actionCount {
			return strategy, nil
		}
		// The cached entry was computed for a different action count at
		// this key; fall through and recompute rather than trust it.
	}

	snap, ok := p.nodes[key]
	if !ok {
		log.Warn().Uint64("key_hash", key.Hash()).Msg("runtime: queried information set missing from profile, falling back to uniform")
		strategy := uniform(actionCount)
		return strategy, ProfileMissingInfoSet
	}

	total := normalizingSum(snap.StrategySum)
	if len(snap.StrategySum) != actionCount || total <= 0 {
		log.Warn().
			Uint64("key_hash", key.Hash()).
			Int("stored_actions", len(snap.StrategySum)).
			Int("requested_actions", actionCount).
			Msg("runtime: profile node arity mismatch, falling back to uniform")
		strategy := uniform(actionCount)
		return strategy, ProfileArityMismatch
	}

	strategy := make([]float64, actionCount)
	for i, s := range snap.StrategySum {
		strategy[i] = float64(s) / total
	}
	p.cache.Add(key, strategy)
	return strategy, nil
}

// BestAction returns the index of the highest-probability action under the
// converged strategy at key.
func (p *Policy) BestAction(key ofc.InfoSetKey, actionCount int) (int, error) {
	strategy, err := p.Strategy(key, actionCount)
	if strategy == nil {
		return 0, err
	}
	best := 0
	for i, prob := range strategy {
		if prob > strategy[best] {
			best = i
		}
	}
	return best, nil
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	v := 1.0 / float64(n)
	for i := range out {
		out[i] = v
	}
	return out
}

func normalizingSum(strategySum []float32) float64 {
	var total float64
	for _, s := range strategySum {
		total += float64(s)
	}
	return total
}

// Size returns the number of information sets the policy can answer
// queries for without falling back to uniform play.
func (p *Policy) Size() int { return len(p.nodes) }

package solver

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lox/ofcsolver/internal/ofc"
)

// RegretEntry is the per-information-set accumulator: one regret and one
// strategy-sum slot per legal action at that node.
type RegretEntry struct {
	mu          sync.Mutex
	RegretSum   []float64
	StrategySum []float64
	Normalising float64
}

// RegretUpdateOptions controls the CFR variant applied by Update: CFR+
// (clamp regrets at zero) and linear/discounted averaging of the strategy
// sum by iteration number.
type RegretUpdateOptions struct {
	ClampNegativeRegrets bool
	LinearAveraging      bool
	Iteration            int
}

// ensureSize makes the entry usable for a node with n legal actions. A
// first visit allocates fresh zeroed vectors. A later visit whose action
// count disagrees with what's stored indicates the abstraction produced a
// different action set for what the traversal believes is the same
// information set; rather than index out of range or silently misalign
// regrets against the wrong actions, the entry is reset and a warning is
// logged so the anomaly is visible without aborting the run.
func (e *RegretEntry) ensureSize(n int) {
	switch {
	case len(e.RegretSum) == 0:
		e.RegretSum = make([]float64, n)
		e.StrategySum = make([]float64, n)
	case len(e.RegretSum) != n:
		log.Warn().
			Int("stored_actions", len(e.RegretSum)).
			Int("observed_actions", n).
			Msg("solver: action-count mismatch at information set, resetting node")
		e.RegretSum = make([]float64, n)
		e.StrategySum = make([]float64, n)
		e.Normalising = 0
	}
}

// Strategy returns the current regret-matched strategy: each action's share
// of its positive regret, or a uniform distribution if no regret is
// positive yet.
func (e *RegretEntry) Strategy() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.RegretSum)
	strategy := make([]float64, n)
	var total float64
	for i, r := range e.RegretSum {
		if r > 0 {
			strategy[i] = r
			total += r
		}
	}
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := range strategy {
			strategy[i] = uniform
		}
		return strategy
	}
	for i := range strategy {
		strategy[i] /= total
	}
	return strategy
}

// Update folds one traversal's observed regrets and realized strategy into
// the node's running sums, weighted by reachWeight (the probability of
// reaching this node under the other player's strategy).
func (e *RegretEntry) Update(regrets, strategy []float64, reachWeight float64, opts RegretUpdateOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureSize(len(regrets))

	weight := reachWeight
	if opts.LinearAveraging && opts.Iteration > 0 {
		weight *= float64(opts.Iteration)
	}

	for i, r := range regrets {
		e.RegretSum[i] += r
		if opts.ClampNegativeRegrets && e.RegretSum[i] < 0 {
			e.RegretSum[i] = 0
		}
		e.StrategySum[i] += weight * strategy[i]
	}
	e.Normalising += weight
}

// AverageStrategy returns the time-averaged strategy CFR converges to, the
// one that should actually be played. Falls back to uniform when the node
// was never visited with positive weight.
func (e *RegretEntry) AverageStrategy() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.StrategySum)
	avg := make([]float64, n)
	if e.Normalising <= 0 {
		if n == 0 {
			return avg
		}
		uniform := 1.0 / float64(n)
		for i := range avg {
			avg[i] = uniform
		}
		return avg
	}
	for i, s := range e.StrategySum {
		avg[i] = s / e.Normalising
	}
	return avg
}

const shardCount = 64

type regretShard struct {
	mu      sync.RWMutex
	entries map[ofc.InfoSetKey]*RegretEntry
}

// RegretTable is a fixed-size, sharded map from information-set key to its
// regret entry. Sharding by the key's own hash lets concurrent traversals
// on different tables update disjoint shards without contending on a
// single lock. Keying directly on the comparable ofc.InfoSetKey (rather
// than a serialized string) avoids both the allocation and the collision
// surface a string key would introduce.
type RegretTable struct {
	shards [shardCount]regretShard
}

func NewRegretTable() *RegretTable {
	t := &RegretTable{}
	for i := range t.shards {
		t.shards[i].entries = make(map[ofc.InfoSetKey]*RegretEntry)
	}
	return t
}

func (t *RegretTable) shardFor(key ofc.InfoSetKey) *regretShard {
	return &t.shards[key.Hash()&uint64(shardCount-1)]
}

// Get returns the entry for key, creating it sized for actionCount legal
// actions if this is the first visit.
func (t *RegretTable) Get(key ofc.InfoSetKey, actionCount int) *RegretEntry {
	shard := t.shardFor(key)

	shard.mu.RLock()
	entry, ok := shard.entries[key]
	shard.mu.RUnlock()
	if ok {
		entry.checkSize(actionCount)
		return entry
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entry, ok := shard.entries[key]; ok {
		entry.checkSize(actionCount)
		return entry
	}
	entry = &RegretEntry{RegretSum: make([]float64, actionCount), StrategySum: make([]float64, actionCount)}
	shard.entries[key] = entry
	return entry
}

// checkSize is ensureSize under the entry's own lock, used so every caller
// of Get (not just Update) observes a node sized for the action count at
// the current visit.
func (e *RegretEntry) checkSize(actionCount int) {
	e.mu.Lock()
	e.ensureSize(actionCount)
	e.mu.Unlock()
}

// Size returns the total number of information sets visited so far.
func (t *RegretTable) Size() int {
	total := 0
	for i := range t.shards {
		t.shards[i].mu.RLock()
		total += len(t.shards[i].entries)
		t.shards[i].mu.RUnlock()
	}
	return total
}

// Range calls fn for every key/entry pair across all shards. fn must not
// call back into the table.
func (t *RegretTable) Range(fn func(ofc.InfoSetKey, *RegretEntry)) {
	for i := range t.shards {
		t.shards[i].mu.RLock()
		for k, v := range t.shards[i].entries {
			fn(k, v)
		}
		t.shards[i].mu.RUnlock()
	}
}

// Put installs an entry directly, used when restoring a table from a
// persisted Profile. It bypasses the create-on-miss path in Get since the
// caller already knows the full entry contents.
func (t *RegretTable) Put(key ofc.InfoSetKey, entry *RegretEntry) {
	shard := t.shardFor(key)
	shard.mu.Lock()
	shard.entries[key] = entry
	shard.mu.Unlock()
}

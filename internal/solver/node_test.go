package solver

import (
	"testing"

	"github.com/lox/ofcsolver/internal/ofc"
	"github.com/stretchr/testify/require"
)

func TestRegretEntryStrategyUniformWhenNoPositiveRegret(t *testing.T) {
	e := &RegretEntry{RegretSum: make([]float64, 3), StrategySum: make([]float64, 3)}
	strategy := e.Strategy()
	for _, p := range strategy {
		require.InDelta(t, 1.0/3.0, p, 1e-9)
	}
}

// Invariant 6: the strategy computed at a node always sums to 1.
func TestRegretEntryStrategySumsToOne(t *testing.T) {
	e := &RegretEntry{RegretSum: []float64{3, 0, 1}, StrategySum: make([]float64, 3)}
	strategy := e.Strategy()
	var total float64
	for _, p := range strategy {
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9)
	require.InDelta(t, 0.75, strategy[0], 1e-9)
	require.InDelta(t, 0.0, strategy[1], 1e-9)
	require.InDelta(t, 0.25, strategy[2], 1e-9)
}

func TestRegretEntryUpdateAccumulatesAndClamps(t *testing.T) {
	e := &RegretEntry{RegretSum: make([]float64, 2), StrategySum: make([]float64, 2)}
	e.Update([]float64{-5, 2}, []float64{0.5, 0.5}, 1.0, RegretUpdateOptions{ClampNegativeRegrets: true})
	require.Equal(t, 0.0, e.RegretSum[0])
	require.Equal(t, 2.0, e.RegretSum[1])
}

func TestRegretEntryAverageStrategyNormalizesByWeight(t *testing.T) {
	e := &RegretEntry{RegretSum: make([]float64, 2), StrategySum: make([]float64, 2)}
	e.Update([]float64{0, 0}, []float64{0.25, 0.75}, 2.0, RegretUpdateOptions{})
	avg := e.AverageStrategy()
	require.InDelta(t, 0.25, avg[0], 1e-9)
	require.InDelta(t, 0.75, avg[1], 1e-9)
}

func TestRegretEntryMismatchedActionCountResets(t *testing.T) {
	e := &RegretEntry{RegretSum: []float64{1, 2, 3}, StrategySum: []float64{1, 1, 1}, Normalising: 4}
	e.ensureSize(2)
	require.Len(t, e.RegretSum, 2)
	require.Len(t, e.StrategySum, 2)
	require.Equal(t, []float64{0, 0}, e.RegretSum)
	require.Equal(t, 0.0, e.Normalising)
}

func TestRegretTableGetCreatesOnceAndReturnsSameEntry(t *testing.T) {
	table := NewRegretTable()
	key := ofc.InfoSetKey{Street: 1, Player: 0}
	a := table.Get(key, 4)
	b := table.Get(key, 4)
	require.Same(t, a, b)
	require.Equal(t, 1, table.Size())
}

func TestRegretTableDistinctKeysGetDistinctEntries(t *testing.T) {
	table := NewRegretTable()
	a := table.Get(ofc.InfoSetKey{Street: 1, Player: 0}, 4)
	b := table.Get(ofc.InfoSetKey{Street: 2, Player: 0}, 4)
	require.NotSame(t, a, b)
	require.Equal(t, 2, table.Size())
}

func TestRegretTableRangeVisitsEveryEntry(t *testing.T) {
	table := NewRegretTable()
	keys := []ofc.InfoSetKey{
		{Street: 1, Player: 0}, {Street: 2, Player: 0}, {Street: 3, Player: 1},
	}
	for _, k := range keys {
		table.Get(k, 3)
	}
	seen := map[ofc.InfoSetKey]bool{}
	table.Range(func(k ofc.InfoSetKey, _ *RegretEntry) { seen[k] = true })
	require.Len(t, seen, len(keys))
}

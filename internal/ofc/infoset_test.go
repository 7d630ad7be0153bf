package ofc

import (
	"testing"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/stretchr/testify/require"
)

// S6 / invariant 7: two independently constructed states with identical
// actor-observable history produce equal info-set keys.
func TestInfoSetKeyStabilityAcrossConstructionOrder(t *testing.T) {
	topCards := []string{"2h", "3h"}
	build := func(placeOrder []int) *GameState {
		gs := &GameState{Street: 2, Actor: 0, Dealer: 1, DealtHand: hand(t, "Ac", "Kc", "Qc")}
		for _, i := range placeOrder {
			require.NoError(t, gs.Boards[0].Place(Slot{Row: Top, Index: i}, card.MustParse(topCards[i])))
		}
		gs.Discards[1] = hand(t, "2d")
		return gs
	}

	a := build([]int{0, 1})
	b := build([]int{1, 0})
	require.Equal(t, a.InfoSetKey(), b.InfoSetKey())
	require.Equal(t, a.InfoSetKey().Hash(), b.InfoSetKey().Hash())
}

func TestInfoSetKeyDiscardOrderIndependence(t *testing.T) {
	a := &GameState{Street: 3, Actor: 0, Discards: [2][]card.Card{nil, nil}}
	a.Discards[0] = hand(t, "2d", "5h")
	b := &GameState{Street: 3, Actor: 0, Discards: [2][]card.Card{nil, nil}}
	b.Discards[0] = hand(t, "5h", "2d")
	require.Equal(t, a.InfoSetKey(), b.InfoSetKey())
}

func TestInfoSetKeyOpaqueMarkerForNonActor(t *testing.T) {
	gs := &GameState{Street: 2, Actor: 0, DealtHand: hand(t, "Ac", "Kc", "Qc")}
	mine := gs.InfoSetKeyFor(0)
	theirs := gs.InfoSetKeyFor(1)
	require.True(t, mine.HasDealtHand)
	require.False(t, theirs.HasDealtHand)
	require.Equal(t, [5]card.Card{}, theirs.DealtHand)
}

func TestInfoSetKeyDistinguishesDifferentBoards(t *testing.T) {
	a := &GameState{Street: 2, Actor: 0}
	require.NoError(t, a.Boards[0].Place(Slot{Row: Top, Index: 0}, card.MustParse("As")))
	b := &GameState{Street: 2, Actor: 0}
	require.NoError(t, b.Boards[0].Place(Slot{Row: Top, Index: 0}, card.MustParse("Ks")))
	require.NotEqual(t, a.InfoSetKey(), b.InfoSetKey())
}

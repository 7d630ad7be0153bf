package ofc

import (
	"testing"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, cards ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, len(cards))
	for i, s := range cards {
		out[i] = card.MustParse(s)
	}
	return out
}

func TestLegalActionsStreet1HasNoDiscard(t *testing.T) {
	gs := &GameState{Street: 1, Actor: 0, DealtHand: hand(t, "2c", "3c", "4c", "5c", "6c")}
	actions, err := gs.LegalActions(AbstractionConfig{K: 10})
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	for _, a := range actions {
		require.False(t, a.HasDiscard)
		require.Len(t, a.Placements, 5)
	}
}

func TestLegalActionsRespectsKCap(t *testing.T) {
	gs := &GameState{Street: 1, Actor: 0, DealtHand: hand(t, "2c", "3c", "4c", "5c", "6c")}
	actions, err := gs.LegalActions(AbstractionConfig{K: 5})
	require.NoError(t, err)
	require.LessOrEqual(t, len(actions), 5)
}

func TestLegalActionsExhaustiveWhenBelowCap(t *testing.T) {
	// Only 3 empty slots remain (all on top) and, after the discard, 2 cards
	// to place, so each discard choice has 3P2 = 6 placements, comfortably
	// under a K of 100.
	var board Board
	require.NoError(t, board.Place(Slot{Row: Middle, Index: 0}, card.MustParse("2d")))
	for i := 1; i < 5; i++ {
		require.NoError(t, board.Place(Slot{Row: Middle, Index: i}, card.MustParse(rankSuit(i))))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, board.Place(Slot{Row: Bottom, Index: i}, card.MustParse(rankSuit(i+5))))
	}
	gs := &GameState{Street: 2, Actor: 0, DealtHand: hand(t, "Ac", "Kc", "Qc")}
	gs.Boards[0] = board
	actions, err := gs.LegalActions(AbstractionConfig{K: 100})
	require.NoError(t, err)
	// 3 discard choices x 3P2 placements of the remaining 2 cards into 3 slots = 3 * 6 = 18
	require.Len(t, actions, 18)
}

func rankSuit(i int) string {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "T"}
	suits := []string{"d", "h", "s", "c"}
	return ranks[i%len(ranks)] + suits[i%len(suits)]
}

func TestLegalActionsDeterministicAcrossRepeatedVisits(t *testing.T) {
	gs := &GameState{Street: 2, Actor: 0, DealtHand: hand(t, "Ac", "Kc", "Qc")}
	cfg := AbstractionConfig{K: 10}
	a1, err := gs.LegalActions(cfg)
	require.NoError(t, err)
	a2, err := gs.LegalActions(cfg)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
}

func TestLegalActionsCanonicallyOrdered(t *testing.T) {
	gs := &GameState{Street: 2, Actor: 0, DealtHand: hand(t, "Ac", "Kc", "Qc")}
	actions, err := gs.LegalActions(AbstractionConfig{K: 40})
	require.NoError(t, err)
	for i := 1; i < len(actions); i++ {
		require.False(t, actionLess(actions[i], actions[i-1]), "actions must be non-decreasing under the canonical order")
	}
}

func TestGreedyRoyaltyDiscardPreselectsSingleChoice(t *testing.T) {
	gs := &GameState{Street: 2, Actor: 0, DealtHand: hand(t, "Ac", "Kc", "Qc")}
	actions, err := gs.LegalActions(AbstractionConfig{K: 40, DiscardPolicy: GreedyRoyaltyDiscard{}})
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	discard := actions[0].Discard
	for _, a := range actions {
		require.Equal(t, discard, a.Discard)
	}
}

func TestLegalActionsTerminalStateErrors(t *testing.T) {
	gs := &GameState{Terminal: true}
	_, err := gs.LegalActions(AbstractionConfig{K: 10})
	require.Error(t, err)
}

package ofc

import (
	"github.com/lox/ofcsolver/internal/card"
	"github.com/lox/ofcsolver/internal/royalty"
)

// DiscardPolicy preselects a single discard on streets 2-5 instead of
// enumerating all three choices, trading completeness for a smaller
// action set. It must be deterministic given the info-set key so that
// repeated visits to the same node see the same preselection.
type DiscardPolicy interface {
	SelectDiscard(hand []card.Card, board *Board, key InfoSetKey) card.Card
}

// GreedyRoyaltyDiscard discards whichever of the three dealt cards costs
// the least projected row royalty: for each candidate it checks whether
// placing the other two anywhere would complete a row this turn, and
// prefers the discard that leaves the best such completion on the table.
// Cards that cannot complete any row this turn (the common case) all tie
// at zero projected royalty; ties favor discarding the lowest card, which
// keeps the policy a pure deterministic function of the hand and board.
type GreedyRoyaltyDiscard struct{}

func (GreedyRoyaltyDiscard) SelectDiscard(hand []card.Card, board *Board, _ InfoSetKey) card.Card {
	best := hand[0]
	bestScore := -1
	for i, discard := range hand {
		rest := make([]card.Card, 0, len(hand)-1)
		rest = append(rest, hand[:i]...)
		rest = append(rest, hand[i+1:]...)
		score := projectedRoyalty(rest, board)
		if score > bestScore || (score == bestScore && discard < best) {
			bestScore = score
			best = discard
		}
	}
	return best
}

// projectedRoyalty returns the best row royalty achievable by placing
// both of the given cards into a row with exactly two empty slots, which
// they would thereby complete, or 0 if no row has exactly two vacancies.
func projectedRoyalty(cards []card.Card, board *Board) int {
	if len(cards) != 2 {
		return 0
	}
	best := 0
	for _, r := range [3]Row{Top, Middle, Bottom} {
		empty := emptyIndices(board, r)
		if len(empty) != 2 {
			continue
		}
		clone := *board
		row := clone.row(r)
		row[empty[0]] = cards[0]
		row[empty[1]] = cards[1]

		var score int
		switch r {
		case Top:
			score = royalty.RoyaltyTop(clone.Top)
		case Middle:
			score, _, _ = royalty.RoyaltyMiddle(clone.Middle)
		case Bottom:
			score, _, _ = royalty.RoyaltyBottom(clone.Bottom)
		}
		if score > best {
			best = score
		}
	}
	return best
}

func emptyIndices(b *Board, r Row) []int {
	row := b.row(r)
	var out []int
	for i, c := range row {
		if c == 0 {
			out = append(out, i)
		}
	}
	return out
}

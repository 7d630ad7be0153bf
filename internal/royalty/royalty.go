// Package royalty computes per-row bonus points, the board-level foul
// check, and the payoff arbitration between two completed OFC boards.
package royalty

import (
	"sort"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/lox/ofcsolver/internal/evaluator"
)

// Board is one player's completed (or partially completed) three rows.
type Board struct {
	Top    [3]card.Card
	Middle [5]card.Card
	Bottom [5]card.Card
}

// Result is the per-board scoring breakdown used to arbitrate a payoff.
type Result struct {
	Fouled   bool
	Royalty  int
	Fantasy  int
	TopRank  evaluator.Rank
	MidRank  evaluator.Rank
	BotRank  evaluator.Rank
}

func rankCounts(cards []card.Card) [13]int {
	var counts [13]int
	for _, c := range cards {
		counts[c.RankIndex()]++
	}
	return counts
}

func descendingRanksWithCount(counts [13]int, want int) []int {
	var out []int
	for r := 12; r >= 0; r-- {
		if counts[r] == want {
			out = append(out, r)
		}
	}
	return out
}

// RoyaltyTop returns the top-row bonus: 0 for a high card, 1-9 for a pair
// of 66 through AA, 10-22 for trips 222 through AAA, and 0 for an incomplete
// row (any slot still holding the empty Card(0)).
func RoyaltyTop(cards [3]card.Card) int {
	for _, c := range cards {
		if c == 0 {
			return 0
		}
	}
	counts := rankCounts(cards[:])
	if trips := descendingRanksWithCount(counts, 3); len(trips) == 1 {
		return 10 + trips[0]
	}
	if pairs := descendingRanksWithCount(counts, 2); len(pairs) == 1 {
		if pairs[0] < 4 { // below 66
			return 0
		}
		return pairs[0] - 3
	}
	return 0
}

// RoyaltyMiddle returns the middle-row bonus per spec's class table.
func RoyaltyMiddle(cards [5]card.Card) (int, evaluator.Rank, error) {
	rank, err := evaluator.Evaluate5(cards)
	if err != nil {
		return 0, 0, err
	}
	switch evaluator.ClassOf(rank) {
	case evaluator.ClassStraightFlush:
		if rank == 1 {
			return 50, rank, nil
		}
		return 30, rank, nil
	case evaluator.ClassFourOfAKind:
		return 20, rank, nil
	case evaluator.ClassFullHouse:
		return 12, rank, nil
	case evaluator.ClassFlush:
		return 8, rank, nil
	case evaluator.ClassStraight:
		return 4, rank, nil
	case evaluator.ClassThreeOfAKind:
		return 2, rank, nil
	default:
		return 0, rank, nil
	}
}

// RoyaltyBottom returns the bottom-row bonus per spec's class table.
func RoyaltyBottom(cards [5]card.Card) (int, evaluator.Rank, error) {
	rank, err := evaluator.Evaluate5(cards)
	if err != nil {
		return 0, 0, err
	}
	switch evaluator.ClassOf(rank) {
	case evaluator.ClassStraightFlush:
		if rank == 1 {
			return 25, rank, nil
		}
		return 15, rank, nil
	case evaluator.ClassFourOfAKind:
		return 10, rank, nil
	case evaluator.ClassFullHouse:
		return 6, rank, nil
	case evaluator.ClassFlush:
		return 4, rank, nil
	case evaluator.ClassStraight:
		return 2, rank, nil
	default:
		return 0, rank, nil
	}
}

// FantasyQualifies reports the Fantasy bonus a top row would earn at
// terminal time without itself ending the hand -- the bonus is only ever
// applied once the board is actually complete (see Evaluate).
func FantasyQualifies(top [3]card.Card) (bonus int, ok bool) {
	counts := rankCounts(top[:])
	if trips := descendingRanksWithCount(counts, 3); len(trips) == 1 {
		return 30 + trips[0], true
	}
	if pairs := descendingRanksWithCount(counts, 2); len(pairs) == 1 {
		switch pairs[0] {
		case 10: // Q
			return 15, true
		case 11: // K
			return 20, true
		case 12: // A
			return 25, true
		}
	}
	return 0, false
}

// Evaluate scores one completed board: total row royalty, fouled status,
// and the Fantasy bonus it earns (if any).
func Evaluate(b Board) (Result, error) {
	midRoyalty, midRank, err := RoyaltyMiddle(b.Middle)
	if err != nil {
		return Result{}, err
	}
	botRoyalty, botRank, err := RoyaltyBottom(b.Bottom)
	if err != nil {
		return Result{}, err
	}
	topRank, err := evaluator.Evaluate3(b.Top)
	if err != nil {
		return Result{}, err
	}
	topRoyalty := RoyaltyTop(b.Top)

	fouled := fouled(b)

	res := Result{
		Fouled:  fouled,
		TopRank: topRank,
		MidRank: midRank,
		BotRank: botRank,
	}
	if !fouled {
		res.Royalty = topRoyalty + midRoyalty + botRoyalty
		if bonus, ok := FantasyQualifies(b.Top); ok {
			res.Fantasy = bonus
		}
	}
	return res, nil
}

// fouled reports whether b's rows violate the required top <= middle <=
// bottom strength ordering: a board fouls when the top row is stronger
// than the middle, or the middle stronger than the bottom. Comparison
// goes through class-then-rank tuples rather than the evaluators' own
// dense Rank integers, since those live on different scales per table
// size (455 for three cards, 7462 for five) and are not directly
// comparable as raw numbers.
func fouled(b Board) bool {
	topClass := evaluator.Class3Of(mustEvaluate3(b.Top))
	topTuple := rankTuple(b.Top[:], topClass)

	midRank := mustEvaluate5(b.Middle)
	midClass := evaluator.ClassOf(midRank)
	midTuple := rankTuple(b.Middle[:], midClass)

	botRank := mustEvaluate5(b.Bottom)
	botClass := evaluator.ClassOf(botRank)
	botTuple := rankTuple(b.Bottom[:], botClass)

	if compareStrength(topClass, topTuple, midClass, midTuple) > 0 {
		return true
	}
	if compareStrength(midClass, midTuple, botClass, botTuple) > 0 {
		return true
	}
	return false
}

func mustEvaluate3(cards [3]card.Card) evaluator.Rank {
	r, err := evaluator.Evaluate3(cards)
	if err != nil {
		panic(err)
	}
	return r
}

func mustEvaluate5(cards [5]card.Card) evaluator.Rank {
	r, err := evaluator.Evaluate5(cards)
	if err != nil {
		panic(err)
	}
	return r
}

// compareStrength returns >0 if (classA, tupleA) is stronger than (classB,
// tupleB), <0 if weaker, 0 if equal. A smaller Class ordinal is a stronger
// hand category; within the same category, tuples are compared
// lexicographically by rank index (larger is stronger), truncated to the
// shorter tuple's length so a 3-card row can compare against a 5-card one.
func compareStrength(classA Class, tupleA []int, classB Class, tupleB []int) int {
	if classA != classB {
		if classA < classB {
			return 1
		}
		return -1
	}
	n := len(tupleA)
	if len(tupleB) < n {
		n = len(tupleB)
	}
	for i := 0; i < n; i++ {
		if tupleA[i] != tupleB[i] {
			if tupleA[i] > tupleB[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Class is an alias so this package reads naturally without importing
// evaluator.Class at every call site.
type Class = evaluator.Class

// rankTuple extracts the rank indices that matter for comparing two hands
// of the same class, most significant first.
func rankTuple(cards []card.Card, class Class) []int {
	counts := rankCounts(cards)

	switch class {
	case evaluator.ClassFourOfAKind:
		quad := descendingRanksWithCount(counts, 4)
		kicker := descendingRanksWithCount(counts, 1)
		return append(quad, kicker...)
	case evaluator.ClassFullHouse:
		trip := descendingRanksWithCount(counts, 3)
		pair := descendingRanksWithCount(counts, 2)
		return append(trip, pair...)
	case evaluator.ClassThreeOfAKind:
		trip := descendingRanksWithCount(counts, 3)
		kickers := descendingRanksWithCount(counts, 1)
		return append(trip, kickers...)
	case evaluator.ClassTwoPair:
		pairs := descendingRanksWithCount(counts, 2)
		kicker := descendingRanksWithCount(counts, 1)
		return append(pairs, kicker...)
	case evaluator.ClassPair:
		pair := descendingRanksWithCount(counts, 2)
		kickers := descendingRanksWithCount(counts, 1)
		return append(pair, kickers...)
	default: // straight, flush, straight flush, high card
		ranks := make([]int, len(cards))
		for i, c := range cards {
			ranks[i] = c.RankIndex()
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
		return ranks
	}
}

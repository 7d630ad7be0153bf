package evaluator

import "github.com/lox/ofcsolver/internal/card"

// 3-card class boundaries (inclusive upper bound). The top row can never
// hold a straight or flush, so its hierarchy is just trips, pair, high card.
const (
	Max3ThreeOfAKind = 13
	Max3Pair         = 13 + 13*12
	Max3HighCard     = Max3Pair + 286 // C(13,3)
)

// WorstRank3 is one worse than the weakest possible 3-card hand.
const WorstRank3 = Max3HighCard + 1

// Class3Of buckets a 3-card Rank into its Class.
func Class3Of(r Rank) Class {
	switch {
	case r <= Max3ThreeOfAKind:
		return ClassThreeOfAKind
	case r <= Max3Pair:
		return ClassPair
	default:
		return ClassHighCard
	}
}

var threeCardTable *chdLookup

func init() {
	keys := make([]uint64, 0, Max3HighCard)
	vals := make([]int16, 0, Max3HighCard)

	rank := int16(1)
	for t := 12; t >= 0; t-- {
		key := card.Primes[t] * card.Primes[t] * card.Primes[t]
		keys = append(keys, uint64(key))
		vals = append(vals, rank)
		rank++
	}

	for p := 12; p >= 0; p-- {
		for k := 12; k >= 0; k-- {
			if k == p {
				continue
			}
			key := card.Primes[p] * card.Primes[p] * card.Primes[k]
			keys = append(keys, uint64(key))
			vals = append(vals, rank)
			rank++
		}
	}

	for a := 12; a >= 2; a-- {
		for b := a - 1; b >= 1; b-- {
			for c := b - 1; c >= 0; c-- {
				key := card.Primes[a] * card.Primes[b] * card.Primes[c]
				keys = append(keys, uint64(key))
				vals = append(vals, rank)
				rank++
			}
		}
	}

	threeCardTable = buildCHDLookup(keys, vals)
}

// Evaluate3 ranks a 3-card hand (the top row). Cards must be distinct.
func Evaluate3(cards [3]card.Card) (Rank, error) {
	key := uint64(cards[0].Prime()) * uint64(cards[1].Prime()) * uint64(cards[2].Prime())
	if v, ok := threeCardTable.find(key); ok {
		return Rank(v), nil
	}
	return 0, &ErrLookupMiss{Key: key}
}

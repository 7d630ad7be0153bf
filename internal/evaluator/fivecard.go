package evaluator

import "github.com/lox/ofcsolver/internal/card"

// Tables below are built once at init() time from first principles rather
// than shipped as a data blob, following the same derivation the Python
// evaluator this package's logic is grounded on uses: enumerate every rank
// combination in strength order and assign it the next dense rank.

var (
	flushTable    *chdLookup
	nonFlushTable *chdLookup
)

func init() {
	sfShapes := straightFlushRankBits()

	flushKeys, flushVals := buildFlushTable(sfShapes)
	flushTable = buildCHDLookup(flushKeys, flushVals)

	nfKeys, nfVals := buildNonFlushTable(sfShapes)
	nonFlushTable = buildCHDLookup(nfKeys, nfVals)
}

// straightFlushRankBits returns the 10 straight shapes (ace-high down to
// six-high, then the wheel) as rank-presence bitmasks, in strength order.
func straightFlushRankBits() []uint32 {
	shapes := make([]uint32, 0, 10)
	for high := 12; high >= 4; high-- {
		var bits uint32
		for k := 0; k < 5; k++ {
			bits |= 1 << uint(high-k)
		}
		shapes = append(shapes, bits)
	}
	// wheel: A-5-4-3-2
	wheel := uint32(1<<12 | 1<<3 | 1<<2 | 1<<1 | 1<<0)
	shapes = append(shapes, wheel)
	return shapes
}

func isStraightShape(bits uint32, shapes []uint32) bool {
	for _, s := range shapes {
		if s == bits {
			return true
		}
	}
	return false
}

// eachDescendingRank5 calls fn with every combination of 5 distinct rank
// indices (0-12), in descending lexicographic order -- i.e. the same order
// itertools.combinations(reversed(ranks), 5) would produce.
func eachDescendingRank5(fn func(a, b, c, d, e int)) {
	for a := 12; a >= 4; a-- {
		for b := a - 1; b >= 3; b-- {
			for c := b - 1; c >= 2; c-- {
				for d := c - 1; d >= 1; d-- {
					for e := d - 1; e >= 0; e-- {
						fn(a, b, c, d, e)
					}
				}
			}
		}
	}
}

func rankPrimeProduct5(a, b, c, d, e int) uint64 {
	return uint64(card.Primes[a]) * uint64(card.Primes[b]) * uint64(card.Primes[c]) *
		uint64(card.Primes[d]) * uint64(card.Primes[e])
}

// buildFlushTable assigns ranks 1-10 to the straight flushes and 323-1599 to
// every other 5-card flush, strongest first. Keyed by rank-bitmask since
// suit is uniform across a flush and contributes nothing to its strength.
func buildFlushTable(sfShapes []uint32) ([]uint64, []int16) {
	keys := make([]uint64, 0, 1287)
	vals := make([]int16, 0, 1287)

	for i, bits := range sfShapes {
		keys = append(keys, uint64(bits))
		vals = append(vals, int16(i+1))
	}

	rank := int16(MaxFullHouse + 1)
	eachDescendingRank5(func(a, b, c, d, e int) {
		bits := uint32(1<<a | 1<<b | 1<<c | 1<<d | 1<<e)
		if isStraightShape(bits, sfShapes) {
			return
		}
		keys = append(keys, uint64(bits))
		vals = append(vals, rank)
		rank++
	})

	return keys, vals
}

// buildNonFlushTable assigns the straights (1600-1609), four of a kind
// (11-166), full house (167-322), three of a kind (1610-2467), two pair
// (2468-3325), pair (3326-6185) and high card (6186-7462) ranges, keyed by
// prime product of the five ranks (with repetition for paired ranks).
func buildNonFlushTable(sfShapes []uint32) ([]uint64, []int16) {
	keys := make([]uint64, 0, 6175)
	vals := make([]int16, 0, 6175)

	add := func(key uint64, rank int16) {
		keys = append(keys, key)
		vals = append(vals, rank)
	}

	// straights
	for i, bits := range sfShapes {
		ranks := rankIndicesFromBits(bits)
		key := rankPrimeProduct5(ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
		add(key, int16(MaxFlush+1+i))
	}

	// four of a kind: quad rank descending, kicker descending over the rest
	rank := int16(MaxStraightFlush + 1)
	for q := 12; q >= 0; q-- {
		for k := 12; k >= 0; k-- {
			if k == q {
				continue
			}
			key := card.Primes[q] * card.Primes[q] * card.Primes[q] * card.Primes[q] * card.Primes[k]
			add(uint64(key), rank)
			rank++
		}
	}

	// full house: trip rank descending, pair rank descending over the rest
	rank = int16(MaxFourOfAKind + 1)
	for t := 12; t >= 0; t-- {
		for p := 12; p >= 0; p-- {
			if p == t {
				continue
			}
			key := card.Primes[t] * card.Primes[t] * card.Primes[t] * card.Primes[p] * card.Primes[p]
			add(uint64(key), rank)
			rank++
		}
	}

	// three of a kind: trip rank descending, two kickers (descending pair) over the rest
	rank = int16(MaxStraight + 1)
	for t := 12; t >= 0; t-- {
		for k1 := 12; k1 >= 0; k1-- {
			if k1 == t {
				continue
			}
			for k2 := k1 - 1; k2 >= 0; k2-- {
				if k2 == t {
					continue
				}
				key := card.Primes[t] * card.Primes[t] * card.Primes[t] * card.Primes[k1] * card.Primes[k2]
				add(uint64(key), rank)
				rank++
			}
		}
	}

	// two pair: descending pair of pair-ranks, kicker descending over the rest
	rank = int16(MaxThreeOfAKind + 1)
	for p1 := 12; p1 >= 0; p1-- {
		for p2 := p1 - 1; p2 >= 0; p2-- {
			for k := 12; k >= 0; k-- {
				if k == p1 || k == p2 {
					continue
				}
				key := card.Primes[p1] * card.Primes[p1] * card.Primes[p2] * card.Primes[p2] * card.Primes[k]
				add(uint64(key), rank)
				rank++
			}
		}
	}

	// pair: pair rank descending, three kickers (descending triple) over the rest
	rank = int16(MaxTwoPair + 1)
	for p := 12; p >= 0; p-- {
		for k1 := 12; k1 >= 0; k1-- {
			if k1 == p {
				continue
			}
			for k2 := k1 - 1; k2 >= 0; k2-- {
				if k2 == p {
					continue
				}
				for k3 := k2 - 1; k3 >= 0; k3-- {
					if k3 == p {
						continue
					}
					key := card.Primes[p] * card.Primes[p] * card.Primes[k1] * card.Primes[k2] * card.Primes[k3]
					add(uint64(key), rank)
					rank++
				}
			}
		}
	}

	// high card: every remaining 5-distinct-rank combination, strongest first
	rank = int16(MaxPair + 1)
	eachDescendingRank5(func(a, b, c, d, e int) {
		bits := uint32(1<<a | 1<<b | 1<<c | 1<<d | 1<<e)
		if isStraightShape(bits, sfShapes) {
			return
		}
		key := rankPrimeProduct5(a, b, c, d, e)
		add(key, rank)
		rank++
	})

	return keys, vals
}

func rankIndicesFromBits(bits uint32) [5]int {
	var out [5]int
	n := 0
	for i := 12; i >= 0; i-- {
		if bits&(1<<uint(i)) != 0 {
			out[n] = i
			n++
		}
	}
	return out
}

// Evaluate5 ranks a 5-card hand (one middle or bottom row). Cards must be
// distinct; callers are expected to enforce this via the deck, so a
// duplicate is treated as a caller bug rather than validated here.
func Evaluate5(cards [5]card.Card) (Rank, error) {
	var rankBits uint32
	suitBits := cards[0].SuitBit()
	flush := true
	var primeProduct uint64 = 1

	for _, c := range cards {
		rankBits |= c.RankBit()
		if c.SuitBit() != suitBits {
			flush = false
		}
		primeProduct *= uint64(c.Prime())
	}

	if flush {
		if v, ok := flushTable.find(uint64(rankBits)); ok {
			return Rank(v), nil
		}
		return 0, &ErrLookupMiss{Key: uint64(rankBits)}
	}

	if v, ok := nonFlushTable.find(primeProduct); ok {
		return Rank(v), nil
	}
	return 0, &ErrLookupMiss{Key: primeProduct}
}

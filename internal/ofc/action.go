package ofc

import (
	"math/rand/v2"
	"sort"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/lox/ofcsolver/internal/randutil"
)

// Placement assigns one dealt card to one board slot.
type Placement struct {
	Card  card.Card
	Row   Row
	Index int
}

// Action is one legal move: on street 1 it places all 5 dealt cards and
// has no discard; on streets 2-5 it discards one of the 3 dealt cards and
// places the other two.
type Action struct {
	HasDiscard bool
	Discard    card.Card
	Placements []Placement
}

// AbstractionConfig tunes the legal-action abstraction.
type AbstractionConfig struct {
	// K caps the number of slot-permutations retained per discard choice.
	// The source used K in the 20-60 range; 40 is a reasonable default.
	K int

	// DiscardPolicy, when set, preselects a single discard on streets 2-5
	// instead of enumerating all three -- an abstraction on top of the
	// abstraction, off by default.
	DiscardPolicy DiscardPolicy
}

// DefaultAbstractionConfig mirrors the source's typical working point.
func DefaultAbstractionConfig() AbstractionConfig {
	return AbstractionConfig{K: 40}
}

// LegalActions enumerates this state's abstracted legal action set. The
// result is canonically ordered and, for a fixed info-set key and
// AbstractionConfig, identical across repeated calls -- required so that
// a CFR node's regret and strategy-sum vectors stay aligned to the same
// action at the same index across every visit.
func (gs *GameState) LegalActions(cfg AbstractionConfig) ([]Action, error) {
	if gs.Terminal {
		return nil, &ErrTerminal{}
	}
	if cfg.K <= 0 {
		cfg.K = DefaultAbstractionConfig().K
	}

	board := &gs.Boards[gs.Actor]
	empty := board.EmptySlots()
	seed := int64(gs.InfoSetKey().Hash())

	var actions []Action
	if gs.Street == 1 {
		place := sortedCards(gs.DealtHand)
		actions = sampleSlotPermutations(place, empty, false, 0, cfg.K, randutil.New(seed))
	} else if cfg.DiscardPolicy != nil {
		discard := cfg.DiscardPolicy.SelectDiscard(gs.DealtHand, board, gs.InfoSetKey())
		rest := removeCard(gs.DealtHand, discard)
		place := sortedCards(rest)
		actions = sampleSlotPermutations(place, empty, true, discard, cfg.K, randutil.New(seed))
	} else {
		for i := range gs.DealtHand {
			discard := gs.DealtHand[i]
			rest := make([]card.Card, 0, len(gs.DealtHand)-1)
			rest = append(rest, gs.DealtHand[:i]...)
			rest = append(rest, gs.DealtHand[i+1:]...)
			place := sortedCards(rest)
			// Mix the discard choice into the seed so each discard bucket
			// draws an independent, but still key-deterministic, sample.
			bucketSeed := seed ^ int64(discard)<<1 ^ int64(discard)
			actions = append(actions, sampleSlotPermutations(place, empty, true, discard, cfg.K, randutil.New(bucketSeed))...)
		}
	}

	sort.Slice(actions, func(i, j int) bool { return actionLess(actions[i], actions[j]) })
	return actions, nil
}

func sortedCards(cards []card.Card) []card.Card {
	out := append([]card.Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func removeCard(cards []card.Card, target card.Card) []card.Card {
	out := make([]card.Card, 0, len(cards)-1)
	for _, c := range cards {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// sampleSlotPermutations enumerates every way to assign the (already
// sorted) cards to distinct slots chosen from empty, keeping at most k of
// them via reservoir sampling so the full nPk permutation space is never
// materialized. Reservoir sampling over a fixed generation order, driven
// by a seed derived purely from the info-set key, is what makes repeated
// visits deterministic: the same key always walks the same candidates in
// the same order and makes the same accept/replace decisions.
func sampleSlotPermutations(cards []card.Card, empty []Slot, hasDiscard bool, discard card.Card, k int, rng *rand.Rand) []Action {
	reservoir := make([]Action, 0, k)
	seen := 0

	chosen := make([]Placement, 0, len(cards))
	avail := append([]Slot(nil), empty...)

	var rec func(depth int, avail []Slot)
	rec = func(depth int, avail []Slot) {
		if depth == len(cards) {
			a := Action{
				HasDiscard: hasDiscard,
				Discard:    discard,
				Placements: append([]Placement(nil), chosen...),
			}
			if len(reservoir) < k {
				reservoir = append(reservoir, a)
			} else {
				j := rng.IntN(seen + 1)
				if j < k {
					reservoir[j] = a
				}
			}
			seen++
			return
		}
		c := cards[depth]
		for i, s := range avail {
			next := make([]Slot, 0, len(avail)-1)
			next = append(next, avail[:i]...)
			next = append(next, avail[i+1:]...)

			chosen = append(chosen, Placement{Card: c, Row: s.Row, Index: s.Index})
			rec(depth+1, next)
			chosen = chosen[:len(chosen)-1]
		}
	}
	if len(cards) > 0 && len(avail) >= len(cards) {
		rec(0, avail)
	}
	return reservoir
}

// actionLess is the total order canonicalizing the action list: no-discard
// actions sort first, then by discard card value, then lexicographically
// by each placement's (card, row, index).
func actionLess(a, b Action) bool {
	if a.HasDiscard != b.HasDiscard {
		return !a.HasDiscard
	}
	if a.HasDiscard && a.Discard != b.Discard {
		return a.Discard < b.Discard
	}
	n := len(a.Placements)
	if len(b.Placements) < n {
		n = len(b.Placements)
	}
	for i := 0; i < n; i++ {
		pa, pb := a.Placements[i], b.Placements[i]
		if pa.Card != pb.Card {
			return pa.Card < pb.Card
		}
		if pa.Row != pb.Row {
			return pa.Row < pb.Row
		}
		if pa.Index != pb.Index {
			return pa.Index < pb.Index
		}
	}
	return len(a.Placements) < len(b.Placements)
}

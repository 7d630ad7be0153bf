package ofc

import (
	"math/rand/v2"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/lox/ofcsolver/internal/royalty"
)

// GameState is one OFC-Pineapple hand in progress. A GameState lives for
// one traversal root-to-leaf; Apply mutates it in place and returns an
// UndoRecord that Undo can later use to restore the exact prior state,
// which is cheaper than the deep-copy-per-node approach and is the
// traversal primitive CFR recursion uses to back out of a branch.
type GameState struct {
	Boards   [2]Board
	Discards [2][]card.Card
	Deck     *Deck

	Street    int
	Dealer    int
	Actor     int
	DealtHand []card.Card
	Terminal  bool
}

// NewGameState shuffles a fresh deck with rng, picks a dealer uniformly at
// random, and deals the first actor's street-1 hand.
func NewGameState(rng *rand.Rand) *GameState {
	gs := &GameState{
		Deck:   NewDeck(rng),
		Street: 1,
		Dealer: rng.IntN(2),
	}
	gs.Actor = 1 - gs.Dealer
	gs.dealCurrentActor()
	return gs
}

func (gs *GameState) dealCurrentActor() {
	n := 3
	if gs.Street == 1 {
		n = 5
	}
	hand, ok := gs.Deck.Deal(n)
	if !ok {
		gs.Terminal = true
		gs.DealtHand = nil
		return
	}
	gs.DealtHand = append([]card.Card(nil), hand...)
}

// UndoRecord captures everything Apply changed, so Undo can restore the
// prior state exactly.
type UndoRecord struct {
	action   Action
	actor    int
	street   int
	dealer   int
	dealt    []card.Card
	terminal bool
	dealtN   int // cards removed from the deck for the *next* actor's hand
}

// Apply places the action's cards, appends its discard (if any), advances
// the turn, and deals the next hand if the state is not yet terminal. It
// returns an UndoRecord that exactly reverses these effects.
func (gs *GameState) Apply(a Action) (UndoRecord, error) {
	if gs.Terminal {
		return UndoRecord{}, &ErrTerminal{}
	}
	if err := gs.validate(a); err != nil {
		return UndoRecord{}, err
	}

	rec := UndoRecord{
		action:   a,
		actor:    gs.Actor,
		street:   gs.Street,
		dealer:   gs.Dealer,
		dealt:    gs.DealtHand,
		terminal: gs.Terminal,
	}

	board := &gs.Boards[gs.Actor]
	for _, p := range a.Placements {
		if err := board.Place(Slot{Row: p.Row, Index: p.Index}, p.Card); err != nil {
			// validate already checked this; defensive only.
			return UndoRecord{}, err
		}
	}
	if a.HasDiscard {
		gs.Discards[gs.Actor] = append(gs.Discards[gs.Actor], a.Discard)
	}

	wasDealer := gs.Actor == gs.Dealer
	gs.Actor = 1 - gs.Actor
	if wasDealer {
		gs.Street++
	}

	if gs.Street > 5 || (gs.Boards[0].Complete() && gs.Boards[1].Complete()) {
		gs.Terminal = true
		gs.DealtHand = nil
	} else {
		before := gs.Terminal
		gs.dealCurrentActor()
		if gs.Terminal && !before {
			rec.dealtN = 0 // deck ran dry; nothing to undeal
		} else {
			rec.dealtN = len(gs.DealtHand)
		}
	}

	return rec, nil
}

// Undo reverses the most recent Apply, restoring board state, discards,
// turn/street, the dealt hand, and the deck cursor.
func (gs *GameState) Undo(rec UndoRecord) {
	if rec.dealtN > 0 {
		gs.Deck.Undeal(rec.dealtN)
	}

	board := &gs.Boards[rec.actor]
	for _, p := range rec.action.Placements {
		board.Clear(Slot{Row: p.Row, Index: p.Index})
	}
	if rec.action.HasDiscard {
		d := gs.Discards[rec.actor]
		gs.Discards[rec.actor] = d[:len(d)-1]
	}

	gs.Actor = rec.actor
	gs.Street = rec.street
	gs.Dealer = rec.dealer
	gs.DealtHand = rec.dealt
	gs.Terminal = rec.terminal
}

// validate checks that a matches the current dealt hand and street shape,
// and that every target slot is empty and distinct.
func (gs *GameState) validate(a Action) error {
	wantDiscard := gs.Street > 1
	if a.HasDiscard != wantDiscard {
		return &ErrIllegalAction{Reason: "discard presence does not match the current street"}
	}

	used := make(map[card.Card]bool, len(a.Placements)+1)
	for _, c := range gs.DealtHand {
		used[c] = false
	}
	if a.HasDiscard {
		if _, ok := used[a.Discard]; !ok {
			return &ErrIllegalAction{Reason: "discard is not part of the dealt hand"}
		}
		used[a.Discard] = true
	}
	for _, p := range a.Placements {
		placed, ok := used[p.Card]
		if !ok {
			return &ErrIllegalAction{Reason: "placed card is not part of the dealt hand"}
		}
		if placed {
			return &ErrIllegalAction{Reason: "card placed or discarded more than once"}
		}
		used[p.Card] = true
	}
	for _, v := range used {
		if !v {
			return &ErrIllegalAction{Reason: "not every dealt card was placed or discarded"}
		}
	}

	seen := make(map[Slot]bool, len(a.Placements))
	for _, p := range a.Placements {
		s := Slot{Row: p.Row, Index: p.Index}
		if seen[s] {
			return &ErrIllegalAction{Reason: "two cards target the same slot"}
		}
		seen[s] = true
		if _, ok := gs.Boards[gs.Actor].At(s); ok {
			return &ErrIllegalAction{Reason: "target slot is already occupied"}
		}
	}
	return nil
}

// Payoff scores a terminal state. If either board is incomplete -- only
// reachable via the deck-exhaustion edge case, since the 34 cards a full
// hand consumes never approach the 52-card deck in real play -- the hand
// is scored as a push rather than risking an evaluator arity error on a
// partially filled row.
func (gs *GameState) Payoff() (float64, float64, error) {
	if !gs.Terminal {
		return 0, 0, &ErrIllegalAction{Reason: "Payoff called on a non-terminal state"}
	}
	if !gs.Boards[0].Complete() || !gs.Boards[1].Complete() {
		return 0, 0, nil
	}
	return royalty.Payoff(royalty.Board(gs.Boards[0]), royalty.Board(gs.Boards[1]))
}

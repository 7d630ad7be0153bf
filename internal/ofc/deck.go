package ofc

import (
	"math/rand/v2"

	"github.com/lox/ofcsolver/internal/card"
)

// Deck is a shuffled 52-card deck dealt sequentially from the tail. It
// mirrors the teacher's array-plus-cursor design rather than repeatedly
// slicing: next counts the cards already dealt off the end, so Undeal is a
// single cursor rewind.
type Deck struct {
	cards [52]card.Card
	next  int
}

// NewDeck builds a full deck and shuffles it in place with rng using
// Fisher-Yates.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: card.FullDeck()}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// Deal removes and returns the next n cards. It reports false, leaving the
// deck unchanged, if fewer than n cards remain.
func (d *Deck) Deal(n int) ([]card.Card, bool) {
	if d.next+n > len(d.cards) {
		return nil, false
	}
	end := len(d.cards) - d.next
	dealt := d.cards[end-n : end]
	d.next += n
	return dealt, true
}

// Undeal reverses the most recent Deal(n) call, restoring the deck to the
// exact state it had beforehand.
func (d *Deck) Undeal(n int) {
	d.next -= n
	if d.next < 0 {
		panic("ofc: Undeal past the start of the deck")
	}
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

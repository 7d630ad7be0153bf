package ofc

import (
	"hash/fnv"
	"sort"

	"github.com/lox/ofcsolver/internal/card"
)

// InfoSetKey is the observable history a single player can use to pick an
// action: their own board, the opponent's (public) board, their own dealt
// hand and discards, plus the street, dealer and acting-player indices.
// Every field is a comparable fixed-size value -- no slices -- so InfoSetKey
// itself is usable directly as a Go map key, the way the teacher's
// bucketed InfoSetKey is.
type InfoSetKey struct {
	Street int
	Player int
	Dealer int

	MyBoard  Board
	OppBoard Board

	// HasDealtHand is false when Player is not the state's current actor;
	// in that case DealtHand is an opaque, length-preserving zero marker
	// rather than genuinely hidden information, since a non-acting player
	// simply has no hand dealt to them yet this turn.
	HasDealtHand bool
	DealtHand    [5]card.Card // sorted ascending, zero-padded

	Discards [4]card.Card // sorted ascending, zero-padded; one per post-street-1 discard
}

// Hash returns a 64-bit digest of the key. It seeds the key-deterministic
// action-abstraction RNG and picks the solver RegretTable shard; within a
// shard, InfoSetKey itself is the map key.
func (k InfoSetKey) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int) {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		buf[4] = byte(v >> 32)
		buf[5] = byte(v >> 40)
		buf[6] = byte(v >> 48)
		buf[7] = byte(v >> 56)
		h.Write(buf[:])
	}
	putCard := func(c card.Card) { putInt(int(c)) }

	putInt(k.Street)
	putInt(k.Player)
	putInt(k.Dealer)
	for _, row := range [2]*Board{&k.MyBoard, &k.OppBoard} {
		for _, c := range row.Top {
			putCard(c)
		}
		for _, c := range row.Middle {
			putCard(c)
		}
		for _, c := range row.Bottom {
			putCard(c)
		}
	}
	if k.HasDealtHand {
		putInt(1)
	} else {
		putInt(0)
	}
	for _, c := range k.DealtHand {
		putCard(c)
	}
	for _, c := range k.Discards {
		putCard(c)
	}
	return h.Sum64()
}

// InfoSetKeyFor derives player's info-set key at the current state. player
// need not be the state's current actor: the dealt-hand slot is only
// populated when it is.
func (gs *GameState) InfoSetKeyFor(player int) InfoSetKey {
	opp := 1 - player
	key := InfoSetKey{
		Street:   gs.Street,
		Player:   player,
		Dealer:   gs.Dealer,
		MyBoard:  gs.Boards[player],
		OppBoard: gs.Boards[opp],
	}

	discards := append([]card.Card(nil), gs.Discards[player]...)
	sort.Slice(discards, func(i, j int) bool { return discards[i] < discards[j] })
	copy(key.Discards[:], discards)

	if player == gs.Actor && !gs.Terminal {
		hand := append([]card.Card(nil), gs.DealtHand...)
		sort.Slice(hand, func(i, j int) bool { return hand[i] < hand[j] })
		copy(key.DealtHand[:], hand)
		key.HasDealtHand = true
	}
	return key
}

// InfoSetKey returns the current actor's own info-set key.
func (gs *GameState) InfoSetKey() InfoSetKey {
	return gs.InfoSetKeyFor(gs.Actor)
}

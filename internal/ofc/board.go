package ofc

import "github.com/lox/ofcsolver/internal/card"

// Row identifies one of a board's three named rows.
type Row uint8

const (
	Top Row = iota
	Middle
	Bottom
)

func (r Row) String() string {
	switch r {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// capacity returns the fixed slot count for r.
func (r Row) capacity() int {
	switch r {
	case Top:
		return 3
	default:
		return 5
	}
}

// Slot addresses a single card position on a board.
type Slot struct {
	Row   Row
	Index int
}

// Board is one player's three rows. The zero value is an empty board: an
// unset Card is the zero value, which Encode never produces (the
// rank-presence bit is always set), so Card(0) is a safe "empty" sentinel.
type Board struct {
	Top    [3]card.Card
	Middle [5]card.Card
	Bottom [5]card.Card
}

// row returns a mutable view of the requested row's backing array.
func (b *Board) row(r Row) []card.Card {
	switch r {
	case Top:
		return b.Top[:]
	case Middle:
		return b.Middle[:]
	case Bottom:
		return b.Bottom[:]
	default:
		return nil
	}
}

// At returns the card in the given slot, or false if the slot is empty.
func (b *Board) At(s Slot) (card.Card, bool) {
	row := b.row(s.Row)
	if s.Index < 0 || s.Index >= len(row) {
		return 0, false
	}
	c := row[s.Index]
	return c, c != 0
}

// Place writes c into slot s, which must currently be empty.
func (b *Board) Place(s Slot, c card.Card) error {
	row := b.row(s.Row)
	if row == nil || s.Index < 0 || s.Index >= len(row) {
		return &ErrInvalidSlot{Slot: s}
	}
	if row[s.Index] != 0 {
		return &ErrSlotOccupied{Slot: s}
	}
	row[s.Index] = c
	return nil
}

// Clear empties slot s; used by Undo to reverse a Place.
func (b *Board) Clear(s Slot) {
	row := b.row(s.Row)
	if row != nil && s.Index >= 0 && s.Index < len(row) {
		row[s.Index] = 0
	}
}

// EmptySlots lists every unfilled slot across all three rows, in a fixed
// row-major order (top then middle then bottom, ascending index), which
// anchors the canonical ordering used by action abstraction.
func (b *Board) EmptySlots() []Slot {
	var out []Slot
	for _, r := range [3]Row{Top, Middle, Bottom} {
		row := b.row(r)
		for i, c := range row {
			if c == 0 {
				out = append(out, Slot{Row: r, Index: i})
			}
		}
	}
	return out
}

// CardCount returns how many of the board's 13 slots are filled.
func (b *Board) CardCount() int {
	n := 0
	for _, c := range b.Top {
		if c != 0 {
			n++
		}
	}
	for _, c := range b.Middle {
		if c != 0 {
			n++
		}
	}
	for _, c := range b.Bottom {
		if c != 0 {
			n++
		}
	}
	return n
}

// Complete reports whether all 13 slots are filled.
func (b *Board) Complete() bool {
	return b.CardCount() == 3+5+5
}

package royalty

import (
	"testing"

	"github.com/lox/ofcsolver/internal/card"
	"github.com/stretchr/testify/require"
)

func top(t *testing.T, cards ...string) [3]card.Card {
	t.Helper()
	require.Len(t, cards, 3)
	var out [3]card.Card
	for i, s := range cards {
		out[i] = card.MustParse(s)
	}
	return out
}

func five(t *testing.T, cards ...string) [5]card.Card {
	t.Helper()
	require.Len(t, cards, 5)
	var out [5]card.Card
	for i, s := range cards {
		out[i] = card.MustParse(s)
	}
	return out
}

func TestRoyaltyTopTrips(t *testing.T) {
	// S5 -- trips of 2s on top scores 10.
	require.Equal(t, 10, RoyaltyTop(top(t, "2c", "2d", "2h")))
	require.Equal(t, 22, RoyaltyTop(top(t, "As", "Ah", "Ad")))
}

func TestRoyaltyTopPairScale(t *testing.T) {
	require.Equal(t, 0, RoyaltyTop(top(t, "5s", "5h", "Kd"))) // below 66
	require.Equal(t, 1, RoyaltyTop(top(t, "6s", "6h", "Kd")))
	require.Equal(t, 9, RoyaltyTop(top(t, "As", "Ah", "Kd")))
}

func TestRoyaltyTopHighCardIsZero(t *testing.T) {
	require.Equal(t, 0, RoyaltyTop(top(t, "As", "Kh", "Qd")))
}

func TestRoyaltyMiddleAndBottomTables(t *testing.T) {
	midTrips, _, err := RoyaltyMiddle(five(t, "2c", "2d", "2h", "7s", "9s"))
	require.NoError(t, err)
	require.Equal(t, 2, midTrips)

	midRoyal, _, err := RoyaltyMiddle(five(t, "As", "Ks", "Qs", "Js", "Ts"))
	require.NoError(t, err)
	require.Equal(t, 50, midRoyal)

	botStraight, _, err := RoyaltyBottom(five(t, "9d", "8h", "7c", "6s", "5d"))
	require.NoError(t, err)
	require.Equal(t, 2, botStraight)

	botNone, _, err := RoyaltyBottom(five(t, "As", "Kh", "9d", "5c", "3s"))
	require.NoError(t, err)
	require.Equal(t, 0, botNone)
}

func TestFantasyQualifies(t *testing.T) {
	bonus, ok := FantasyQualifies(top(t, "Qs", "Qh", "2d"))
	require.True(t, ok)
	require.Equal(t, 15, bonus)

	bonus, ok = FantasyQualifies(top(t, "As", "Ah", "2d"))
	require.True(t, ok)
	require.Equal(t, 25, bonus)

	trips, ok := FantasyQualifies(top(t, "2s", "2h", "2d"))
	require.True(t, ok)
	require.Equal(t, 30, trips) // 30 + rank index of deuce (0)

	_, ok = FantasyQualifies(top(t, "Js", "Jh", "2d"))
	require.False(t, ok)
}

func TestIncompleteRowsNeverEvaluated(t *testing.T) {
	require.Equal(t, 0, RoyaltyTop(top(t, "2s", "3h", "4d")))
	require.Equal(t, 0, RoyaltyTop([3]card.Card{card.MustParse("Qs"), card.MustParse("Qh"), 0}))
}

// A well-formed board: top weaker than middle, middle weaker than bottom.
// No row beats the one below it, so this must not foul.
func TestFoulValidAscendingBoard(t *testing.T) {
	b := Board{
		Top:    top(t, "7s", "5h", "2d"),                 // high card
		Middle: five(t, "2c", "2d", "3h", "4s", "5c"),     // pair of 2s
		Bottom: five(t, "Ks", "Kh", "Kd", "Kc", "2h"),     // quads
	}
	require.False(t, fouled(b))
}

// S3 -- a true foul: the top row beats the middle row.
func TestFoulTopBeatsMiddle(t *testing.T) {
	b := Board{
		Top:    top(t, "As", "Ah", "Ad"),                  // trips
		Middle: five(t, "2c", "3d", "7h", "9s", "Jc"),      // high card
		Bottom: five(t, "7d", "8d", "9d", "Td", "Jd"),      // straight flush
	}
	require.True(t, fouled(b))
}

// Middle beats bottom -- also a foul, independent of the top row.
func TestFoulMiddleBeatsBottom(t *testing.T) {
	b := Board{
		Top:    top(t, "7s", "5h", "2d"), // high card, never fouls on its own
		Middle: five(t, "2c", "2d", "2h", "7s", "9s"),
		Bottom: five(t, "Ks", "Kh", "5d", "6c", "2h"),
	}
	require.True(t, fouled(b))
}

// S4 -- both boards non-fouled, P1 scoops all three rows.
func TestPayoffScoop(t *testing.T) {
	p1 := Board{
		Top:    top(t, "7s", "5h", "2d"),
		Middle: five(t, "2c", "2d", "3h", "4s", "5c"),
		Bottom: five(t, "Ks", "Kh", "Kd", "Kc", "2h"),
	}
	p2 := Board{
		Top:    top(t, "6s", "4h", "2d"),
		Middle: five(t, "9c", "7d", "5h", "3s", "2c"),
		Bottom: five(t, "9h", "8d", "7c", "6s", "5d"),
	}
	score1, score2, err := Payoff(p1, p2)
	require.NoError(t, err)
	require.Equal(t, -score1, score2)
	require.Greater(t, score1, 0.0)
}

func TestPayoffBothFouledIsZero(t *testing.T) {
	p1 := Board{
		Top:    top(t, "As", "Ah", "Ad"),
		Middle: five(t, "2c", "3d", "7h", "9s", "Jc"),
		Bottom: five(t, "7d", "8d", "9d", "Td", "Jd"),
	}
	p2 := p1
	score1, score2, err := Payoff(p1, p2)
	require.NoError(t, err)
	require.Equal(t, 0.0, score1)
	require.Equal(t, 0.0, score2)
}

func TestPayoffSingleFoulAwardsSixPlusRoyalty(t *testing.T) {
	fouledBoard := Board{
		Top:    top(t, "As", "Ah", "Ad"),
		Middle: five(t, "2c", "3d", "7h", "9s", "Jc"),
		Bottom: five(t, "7d", "8d", "9d", "Td", "Jd"),
	}
	clean := Board{
		Top:    top(t, "7s", "5h", "2d"),
		Middle: five(t, "2c", "2d", "3h", "4s", "5c"),
		Bottom: five(t, "Ks", "Kh", "Kd", "Kc", "2h"),
	}
	score1, score2, err := Payoff(fouledBoard, clean)
	require.NoError(t, err)

	cleanRes, err := Evaluate(clean)
	require.NoError(t, err)
	require.Equal(t, -(6 + float64(cleanRes.Royalty)), score1)
	require.Equal(t, 6+float64(cleanRes.Royalty), score2)
}

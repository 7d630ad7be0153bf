package royalty

// Payoff arbitrates the final score between two completed boards, per
// spec: both fouled nets zero; exactly one fouled awards the non-fouler a
// flat 6 plus their own royalty; otherwise a line score (rows won minus
// rows lost, +3 more for a full scoop) plus the royalty and Fantasy
// differentials decide it. The result is always zero-sum.
func Payoff(p1, p2 Board) (float64, float64, error) {
	r1, err := Evaluate(p1)
	if err != nil {
		return 0, 0, err
	}
	r2, err := Evaluate(p2)
	if err != nil {
		return 0, 0, err
	}

	if r1.Fouled && r2.Fouled {
		return 0, 0, nil
	}
	if r1.Fouled != r2.Fouled {
		if r2.Fouled {
			score := 6 + float64(r1.Royalty)
			return score, -score, nil
		}
		score := 6 + float64(r2.Royalty)
		return -score, score, nil
	}

	lineScore := 0
	lineScore += compareRank(int32(r1.TopRank), int32(r2.TopRank))
	lineScore += compareRank(int32(r1.MidRank), int32(r2.MidRank))
	lineScore += compareRank(int32(r1.BotRank), int32(r2.BotRank))

	scoop := 0
	if lineScore == 3 {
		scoop = 3
	} else if lineScore == -3 {
		scoop = -3
	}

	royaltyDiff := r1.Royalty - r2.Royalty
	fantasyDiff := r1.Fantasy - r2.Fantasy

	score1 := float64(lineScore + scoop + royaltyDiff + fantasyDiff)
	return score1, -score1, nil
}

// compareRank returns +1 if a is the stronger (smaller) dense rank, -1 if
// b is stronger, 0 on a tie.
func compareRank(a, b int32) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

package bridge

// Score returns the duplicate score for the declaring side given the
// result relative to the contract (+2 for two overtricks, -1 for one
// down) and whether the declaring side is vulnerable. Negative scores
// are penalties.
func (c Contract) Score(tricksRelative int, vulnerable bool) int {
	if tricksRelative < 0 {
		return -c.undertrickPenalty(-tricksRelative, vulnerable)
	}
	return c.makingScore(tricksRelative, vulnerable)
}

func (c Contract) makingScore(overtricks int, vulnerable bool) int {
	contractValue := c.Level * c.Strain.TrickValue()
	if c.Strain == NoTrump {
		contractValue = 40 + (c.Level-1)*30
	}

	switch c.Doubling {
	case Doubled:
		contractValue *= 2
	case Redoubled:
		contractValue *= 4
	}

	// Doubling can promote a partscore to game, so the game check runs
	// on the doubled value.
	gameBonus := 50
	if contractValue >= 100 {
		gameBonus = 300
		if vulnerable {
			gameBonus = 500
		}
	}

	slamBonus := 0
	switch c.Level {
	case 6:
		slamBonus = 500
		if vulnerable {
			slamBonus = 750
		}
	case 7:
		slamBonus = 1000
		if vulnerable {
			slamBonus = 1500
		}
	}

	perOvertrick := c.Strain.TrickValue()
	switch c.Doubling {
	case Doubled:
		perOvertrick = 100
		if vulnerable {
			perOvertrick = 200
		}
	case Redoubled:
		perOvertrick = 200
		if vulnerable {
			perOvertrick = 400
		}
	}

	insult := 0
	switch c.Doubling {
	case Doubled:
		insult = 50
	case Redoubled:
		insult = 100
	}

	return contractValue + gameBonus + slamBonus + overtricks*perOvertrick + insult
}

func (c Contract) undertrickPenalty(undertricks int, vulnerable bool) int {
	if c.Doubling == Undoubled {
		if vulnerable {
			return undertricks * 100
		}
		return undertricks * 50
	}

	var penalty int
	if vulnerable {
		// 200 for the first, 300 each after.
		penalty = 200 + (undertricks-1)*300
	} else {
		// 100, 300, 500, then 300 each after the third.
		switch undertricks {
		case 1:
			penalty = 100
		case 2:
			penalty = 300
		case 3:
			penalty = 500
		default:
			penalty = 500 + (undertricks-3)*300
		}
	}

	if c.Doubling == Redoubled {
		penalty *= 2
	}
	return penalty
}

// Matchpoints scores each result against the others on the same board,
// two points per beaten score and one per tie, and returns each
// result's share as a percentage of the maximum. All scores are from
// the North-South perspective.
func Matchpoints(scoresNS []int) []float64 {
	n := len(scoresNS)
	if n == 0 {
		return nil
	}

	mps := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch {
			case scoresNS[i] > scoresNS[j]:
				mps[i] += 2
			case scoresNS[i] == scoresNS[j]:
				mps[i]++
			}
		}
	}

	if max := float64(n-1) * 2; max > 0 {
		for i := range mps {
			mps[i] = mps[i] / max * 100
		}
	}
	return mps
}

package bridge

// Play is one card played by one seat.
type Play struct {
	Seat Seat
	Card Card
}

// Beats reports whether card a, played later in a trick, displaces b as
// the winning card. b must be a card that can currently be winning (the
// led suit or a trump). A trump beats any non-trump; otherwise only a
// higher card of the same suit wins.
func Beats(a, b Card, strain Strain) bool {
	if trump, ok := strain.Trump(); ok {
		if a.Suit == trump && b.Suit != trump {
			return true
		}
		if a.Suit != trump && b.Suit == trump {
			return false
		}
	}
	if a.Suit != b.Suit {
		return false
	}
	return a.Rank > b.Rank
}

// TrickWinner returns the seat winning a trick: the highest trump played
// if any, otherwise the highest card of the led suit. plays must be in
// play order, the leader first, and must not be empty.
func TrickWinner(plays []Play, strain Strain) Seat {
	winning := plays[0]
	for _, p := range plays[1:] {
		if Beats(p.Card, winning.Card, strain) {
			winning = p
		}
	}
	return winning.Seat
}

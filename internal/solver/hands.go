// Package solver implements an exact double-dummy solver: given the
// remaining cards, the strain, and the seat to lead, it returns the
// number of tricks North-South take when both sides play every card
// double dummy. Positions part way through a trick are solved via
// NewMidTrick. All search state lives in per-board Caches supplied by
// the caller.
package solver

import "github.com/fifthchair/tricklens/internal/bridge"

// Hands is the solver's working copy of the remaining cards, one hand
// per seat, each hand a per-suit rank bitmask. It is a comparable value
// type: assignment copies it, and trick-start positions key the
// transposition tables directly.
type Hands [4]bridge.Hand

// HandsFromDeal copies a deal into a working Hands value.
func HandsFromDeal(d bridge.Deal) Hands {
	return Hands(d)
}

// Size returns the number of cards the seat still holds.
func (h Hands) Size(s bridge.Seat) int {
	return h[s].Count()
}

// MaxSize returns the largest remaining hand size, which equals the
// number of tricks still to be decided, counting any trick in progress.
func (h Hands) MaxSize() int {
	max := 0
	for _, hand := range h {
		if n := hand.Count(); n > max {
			max = n
		}
	}
	return max
}

// Empty reports whether no cards remain anywhere.
func (h Hands) Empty() bool {
	return h == Hands{}
}

// Has reports whether the seat still holds the card.
func (h Hands) Has(s bridge.Seat, c bridge.Card) bool {
	return h[s].Has(c)
}

// Remove deletes the card from the seat's hand. It reports false when
// the seat does not hold the card.
func (h *Hands) Remove(s bridge.Seat, c bridge.Card) bool {
	if !h[s].Has(c) {
		return false
	}
	h[s][c.Suit] = h[s][c.Suit].Without(c.Rank)
	return true
}

// pattern compacts every suit's remaining ranks downward while
// preserving ownership and relative order. Two positions that differ
// only in which spot cards survive collapse onto the same pattern, so
// pattern values key the transposition tables.
func (h Hands) pattern() Hands {
	var out Hands
	for suit := bridge.Clubs; suit <= bridge.Spades; suit++ {
		next := bridge.Two
		for r := bridge.Two; r <= bridge.Ace; r++ {
			for _, seat := range bridge.Seats {
				if h[seat][suit].Has(r) {
					out[seat][suit] = out[seat][suit].With(next)
					next++
					break
				}
			}
		}
	}
	return out
}

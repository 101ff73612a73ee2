package bridge

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrBadDeal indicates a hand or deal string could not be parsed or
// fails deal-level validation.
var ErrBadDeal = errors.New("bridge: invalid deal")

// Holding is the set of ranks a hand holds in one suit, as a bitmask
// with bit 0 = Two through bit 12 = Ace.
type Holding uint16

// Has reports whether the holding contains the rank.
func (h Holding) Has(r Rank) bool {
	return h&(1<<uint(r)) != 0
}

// With returns the holding with the rank added.
func (h Holding) With(r Rank) Holding {
	return h | 1<<uint(r)
}

// Without returns the holding with the rank removed.
func (h Holding) Without(r Rank) Holding {
	return h &^ (1 << uint(r))
}

// Count returns the number of cards in the holding.
func (h Holding) Count() int {
	return bits.OnesCount16(uint16(h))
}

// Ranks returns the held ranks from highest to lowest.
func (h Holding) Ranks() []Rank {
	ranks := make([]Rank, 0, h.Count())
	for r := Ace; r >= Two; r-- {
		if h.Has(r) {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// String renders the holding in PBN form, highest rank first, with "-"
// for a void.
func (h Holding) String() string {
	if h == 0 {
		return "-"
	}
	var b strings.Builder
	for _, r := range h.Ranks() {
		b.WriteString(r.String())
	}
	return b.String()
}

// Hand holds one seat's cards, indexed by suit.
type Hand [4]Holding

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	n := 0
	for _, holding := range h {
		n += holding.Count()
	}
	return n
}

// Has reports whether the hand contains the card.
func (h Hand) Has(c Card) bool {
	return h[c.Suit].Has(c.Rank)
}

// ParseHand parses a PBN hand such as "AKQ2.T95.Q84.73": four suit
// groups separated by dots, spades first. A void is written "-" or left
// empty.
func ParseHand(s string) (Hand, error) {
	groups := strings.Split(strings.TrimSpace(s), ".")
	if len(groups) != 4 {
		return Hand{}, fmt.Errorf("%w: hand %q needs 4 suit groups", ErrBadDeal, s)
	}
	// PBN order is spades, hearts, diamonds, clubs.
	order := [4]Suit{Spades, Hearts, Diamonds, Clubs}
	var hand Hand
	for i, group := range groups {
		group = strings.TrimSpace(group)
		if group == "-" || group == "" {
			continue
		}
		for j := 0; j < len(group); j++ {
			rank, err := ParseRank(group[j])
			if err != nil {
				return Hand{}, fmt.Errorf("%w: hand %q", ErrBadDeal, s)
			}
			if hand[order[i]].Has(rank) {
				return Hand{}, fmt.Errorf("%w: duplicate %s%s in hand %q", ErrBadDeal, order[i], rank, s)
			}
			hand[order[i]] = hand[order[i]].With(rank)
		}
	}
	return hand, nil
}

// String renders the hand in PBN form.
func (h Hand) String() string {
	return fmt.Sprintf("%s.%s.%s.%s", h[Spades], h[Hearts], h[Diamonds], h[Clubs])
}

// Deal holds all four hands, indexed by seat. The zero value is an empty
// deal. Deal is a comparable value type: copying it yields an
// independent working copy.
type Deal [4]Hand

// Hand returns the hand held by the seat.
func (d Deal) Hand(s Seat) Hand {
	return d[s]
}

// CardCount returns the total number of cards remaining in the deal.
func (d Deal) CardCount() int {
	n := 0
	for _, hand := range d {
		n += hand.Count()
	}
	return n
}

// Has reports whether the seat still holds the card.
func (d Deal) Has(s Seat, c Card) bool {
	return d[s].Has(c)
}

// Remove deletes the card from the seat's hand. It reports false when
// the seat does not hold the card.
func (d *Deal) Remove(s Seat, c Card) bool {
	if !d[s].Has(c) {
		return false
	}
	d[s][c.Suit] = d[s][c.Suit].Without(c.Rank)
	return true
}

// Seat returns the seat currently holding the card, or false when no
// hand holds it.
func (d Deal) Seat(c Card) (Seat, bool) {
	for _, s := range Seats {
		if d[s].Has(c) {
			return s, true
		}
	}
	return 0, false
}

// ParseDeal parses a PBN deal such as
//
//	"N:AKQ2.T95.Q84.73 J97.AKQ.JT92.A84 T863.8732.76.K52 54.J64.AK53.QJT9"
//
// where the prefix names the first hand's seat and the remaining hands
// follow clockwise. Hands must be pairwise disjoint and the same size.
func ParseDeal(s string) (Deal, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[1] != ':' {
		return Deal{}, fmt.Errorf("%w: deal %q needs a seat prefix", ErrBadDeal, s)
	}
	first, err := ParseSeat(s[:1])
	if err != nil {
		return Deal{}, fmt.Errorf("%w: deal %q", ErrBadDeal, s)
	}
	fields := strings.Fields(s[2:])
	if len(fields) != 4 {
		return Deal{}, fmt.Errorf("%w: deal %q needs 4 hands", ErrBadDeal, s)
	}

	var deal Deal
	seat := first
	for _, field := range fields {
		hand, err := ParseHand(field)
		if err != nil {
			return Deal{}, err
		}
		deal[seat] = hand
		seat = seat.Next()
	}

	size := deal[first].Count()
	for _, a := range Seats {
		if deal[a].Count() != size {
			return Deal{}, fmt.Errorf("%w: hands differ in size", ErrBadDeal)
		}
		for _, b := range Seats {
			if a == b {
				continue
			}
			for suit := Clubs; suit <= Spades; suit++ {
				if deal[a][suit]&deal[b][suit] != 0 {
					return Deal{}, fmt.Errorf("%w: %s and %s share cards", ErrBadDeal, a, b)
				}
			}
		}
	}
	return deal, nil
}

// PBN renders the deal from the given first seat, clockwise.
func (d Deal) PBN(first Seat) string {
	var b strings.Builder
	b.WriteString(first.String())
	b.WriteByte(':')
	seat := first
	for i := 0; i < 4; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d[seat].String())
		seat = seat.Next()
	}
	return b.String()
}

package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadCard indicates a card token was not a valid suit letter followed
// by a rank symbol.
var ErrBadCard = errors.New("bridge: malformed card token")

// Suit identifies one of the four suits, ordered by contract rank.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Rank identifies a card rank, Two through Ace. Higher values outrank
// lower ones.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankSymbols = "23456789TJQKA"

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankSymbols[r])
}

// ParseRank parses a single rank symbol. Ten accepts both 'T' and '1'
// ("10" notation is truncated upstream to its first character).
func ParseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't', '1':
		return Ten, nil
	case '9':
		return Nine, nil
	case '8':
		return Eight, nil
	case '7':
		return Seven, nil
	case '6':
		return Six, nil
	case '5':
		return Five, nil
	case '4':
		return Four, nil
	case '3':
		return Three, nil
	case '2':
		return Two, nil
	default:
		return 0, fmt.Errorf("%w: rank %q", ErrBadCard, string(c))
	}
}

// ParseSuitLetter parses a single suit letter, case-insensitively.
func ParseSuitLetter(c byte) (Suit, error) {
	switch c {
	case 'S', 's':
		return Spades, nil
	case 'H', 'h':
		return Hearts, nil
	case 'D', 'd':
		return Diamonds, nil
	case 'C', 'c':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("%w: suit %q", ErrBadCard, string(c))
	}
}

// Card is a suit and rank pair.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// ParseCard parses a card token such as "SA" or "d2": a suit letter
// followed by a rank symbol. Surrounding space is ignored and characters
// beyond the first two are tolerated; tokens shorter than two characters
// are malformed.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	suit, err := ParseSuitLetter(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	rank, err := ParseRank(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

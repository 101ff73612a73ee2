// Package bridge implements the card, deal, and contract model for
// duplicate bridge along with the parsing and scoring rules the analysis
// engine consumes.
package bridge

import (
	"errors"
	"strings"
)

// ErrBadSeat indicates a seat letter was not one of N, E, S, W.
var ErrBadSeat = errors.New("bridge: invalid seat")

// Seat identifies one of the four positions at the table. Seats are
// numbered clockwise starting at West so that Next is (s+1)%4 and the
// opening leader is Next(declarer).
type Seat int

const (
	West Seat = iota
	North
	East
	South
)

// Seats lists all seats in clockwise order starting at West.
var Seats = [4]Seat{West, North, East, South}

func (s Seat) String() string {
	switch s {
	case West:
		return "W"
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	default:
		return "?"
	}
}

// Name returns the full compass name of the seat.
func (s Seat) Name() string {
	switch s {
	case West:
		return "West"
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	default:
		return "Unknown"
	}
}

// Next returns the seat to the left, i.e. the next seat in clockwise
// rotation.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the seat across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// Partnership identifies one of the two sides.
type Partnership int

const (
	EW Partnership = iota
	NS
)

func (p Partnership) String() string {
	if p == NS {
		return "NS"
	}
	return "EW"
}

// Partnership returns the side the seat belongs to. North and South are
// the odd seats in the clockwise numbering.
func (s Seat) Partnership() Partnership {
	if s%2 == 1 {
		return NS
	}
	return EW
}

// ParseSeat parses a seat from its letter. Leading and trailing space is
// ignored and matching is case-insensitive; only the first letter is
// considered, so "North" parses as North.
func ParseSeat(s string) (Seat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadSeat
	}
	switch s[0] {
	case 'N', 'n':
		return North, nil
	case 'E', 'e':
		return East, nil
	case 'S', 's':
		return South, nil
	case 'W', 'w':
		return West, nil
	default:
		return 0, ErrBadSeat
	}
}

package bridge

import (
	"errors"
	"testing"
)

func TestParseSeat(t *testing.T) {
	tests := []struct {
		in   string
		want Seat
	}{
		{"N", North},
		{"e", East},
		{" S ", South},
		{"w", West},
		{"North", North},
		{"west", West},
	}
	for _, tt := range tests {
		got, err := ParseSeat(tt.in)
		if err != nil {
			t.Fatalf("ParseSeat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSeat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "X", "  "} {
		if _, err := ParseSeat(in); !errors.Is(err, ErrBadSeat) {
			t.Fatalf("ParseSeat(%q) err = %v, want ErrBadSeat", in, err)
		}
	}
}

func TestSeatRotation(t *testing.T) {
	// Clockwise: West, North, East, South, back to West.
	order := []Seat{West, North, East, South, West}
	for i := 0; i < 4; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Fatalf("%v.Next() = %v, want %v", order[i], got, order[i+1])
		}
	}

	if North.Partner() != South || East.Partner() != West {
		t.Fatalf("partners wrong: N<->%v, E<->%v", North.Partner(), East.Partner())
	}
}

func TestSeatPartnership(t *testing.T) {
	tests := []struct {
		seat Seat
		want Partnership
	}{
		{North, NS},
		{South, NS},
		{East, EW},
		{West, EW},
	}
	for _, tt := range tests {
		if got := tt.seat.Partnership(); got != tt.want {
			t.Fatalf("%v.Partnership() = %v, want %v", tt.seat, got, tt.want)
		}
	}
}

func TestOpeningLeader(t *testing.T) {
	// The opening leader sits left of the declarer.
	tests := []struct {
		declarer Seat
		leader   Seat
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}
	for _, tt := range tests {
		if got := tt.declarer.Next(); got != tt.leader {
			t.Fatalf("leader for declarer %v = %v, want %v", tt.declarer, got, tt.leader)
		}
	}
}

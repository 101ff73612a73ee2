package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/fifthchair/tricklens/internal/solver"
)

// ErrBadReplay reports recorded cardplay that cannot be replayed against
// the deal: a seat playing a card it does not hold, or a trick group of
// impossible size.
var ErrBadReplay = errors.New("analysis: cardplay inconsistent with deal")

// ParseCardplay parses a recorded play string: tricks separated by '|',
// cards by spaces, e.g. "D2 DA D6 D5|S3 S2 SQ SA". Empty groups are
// skipped; the final trick may hold fewer than four cards. A malformed
// card token fails with bridge.ErrBadCard.
func ParseCardplay(s string) ([][]bridge.Card, error) {
	var tricks [][]bridge.Card
	for _, group := range strings.Split(s, "|") {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 4 {
			return nil, fmt.Errorf("%w: trick %d has %d cards", ErrBadReplay, len(tricks)+1, len(fields))
		}
		trick := make([]bridge.Card, 0, len(fields))
		for _, tok := range fields {
			card, err := bridge.ParseCard(tok)
			if err != nil {
				return nil, fmt.Errorf("trick %d: %w", len(tricks)+1, err)
			}
			trick = append(trick, card)
		}
		tricks = append(tricks, trick)
	}
	return tricks, nil
}

// Sequencer replays recorded tricks against a working copy of a deal:
// it tracks the seat to act, the trick in progress, the banked
// declaring-side tricks, and the leader rotation (the winner of each
// completed trick leads the next).
type Sequencer struct {
	hands      solver.Hands
	strain     bridge.Strain
	declarer   bridge.Seat
	leader     bridge.Seat
	toAct      bridge.Seat
	trick      solver.PartialTrick
	declTricks int
}

// NewSequencer starts a replay of the deal. The opening leader sits left
// of the declarer.
func NewSequencer(deal bridge.Deal, strain bridge.Strain, declarer bridge.Seat) *Sequencer {
	leader := declarer.Next()
	return &Sequencer{
		hands:    solver.HandsFromDeal(deal),
		strain:   strain,
		declarer: declarer,
		leader:   leader,
		toAct:    leader,
	}
}

// Hands returns a copy of the remaining cards.
func (s *Sequencer) Hands() solver.Hands {
	return s.hands
}

// Leader returns the seat that led (or will lead) the current trick.
func (s *Sequencer) Leader() bridge.Seat {
	return s.leader
}

// ToAct returns the seat due to play the next card.
func (s *Sequencer) ToAct() bridge.Seat {
	return s.toAct
}

// Trick returns the trick in progress.
func (s *Sequencer) Trick() *solver.PartialTrick {
	return &s.trick
}

// DeclarerTricks returns the tricks banked so far by the declaring side.
func (s *Sequencer) DeclarerTricks() int {
	return s.declTricks
}

// Declaring reports whether the seat is the declarer or the dummy.
func (s *Sequencer) Declaring(seat bridge.Seat) bool {
	return seat.Partnership() == s.declarer.Partnership()
}

// Play removes the card from the acting seat's hand and adds it to the
// trick in progress.
func (s *Sequencer) Play(card bridge.Card) error {
	if s.trick.Len() >= 4 {
		return fmt.Errorf("%w: trick already complete", ErrBadReplay)
	}
	if !s.hands.Remove(s.toAct, card) {
		return fmt.Errorf("%w: %s does not hold %s", ErrBadReplay, s.toAct, card)
	}
	s.trick.Add(s.toAct, card)
	s.toAct = s.toAct.Next()
	return nil
}

// CompleteTrick resolves a four-card trick: the winner banks the trick
// for its side, takes the lead, and the trick clears.
func (s *Sequencer) CompleteTrick() (winner bridge.Seat, declarerWon bool, err error) {
	if s.trick.Len() != 4 {
		return 0, false, fmt.Errorf("%w: trick has %d cards", ErrBadReplay, s.trick.Len())
	}
	winner = bridge.TrickWinner(s.trick.Plays(), s.strain)
	declarerWon = winner.Partnership() == s.declarer.Partnership()
	if declarerWon {
		s.declTricks++
	}
	s.leader = winner
	s.toAct = winner
	s.trick.Reset()
	return winner, declarerWon, nil
}

// TrickSeats returns the seat that played each card of each trick,
// replaying only the leader rotation: the opening leader sits left of
// the declarer and the winner of every complete trick leads the next.
// It never touches a deal, so it serves aggregation paths that have only
// the recorded cardplay.
func TrickSeats(strain bridge.Strain, declarer bridge.Seat, tricks [][]bridge.Card) [][]bridge.Seat {
	leader := declarer.Next()
	out := make([][]bridge.Seat, len(tricks))
	for t, trick := range tricks {
		seats := make([]bridge.Seat, len(trick))
		plays := make([]bridge.Play, len(trick))
		seat := leader
		for i, card := range trick {
			seats[i] = seat
			plays[i] = bridge.Play{Seat: seat, Card: card}
			seat = seat.Next()
		}
		if len(trick) == 4 {
			leader = bridge.TrickWinner(plays, strain)
		}
		out[t] = seats
	}
	return out
}

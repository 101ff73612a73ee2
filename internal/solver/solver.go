package solver

import (
	"errors"
	"fmt"

	"github.com/fifthchair/tricklens/internal/bridge"
)

var (
	// ErrEmptyTrick is returned by NewMidTrick when no cards have been
	// played to the current trick, leaving the leader unknown.
	ErrEmptyTrick = errors.New("solver: empty partial trick")
	// ErrBadTrick is returned when the partial trick is complete or its
	// seats do not follow the rotation from the leader.
	ErrBadTrick = errors.New("solver: malformed partial trick")
	// ErrBadPosition is returned when the remaining hand sizes do not
	// match the partial trick.
	ErrBadPosition = errors.New("solver: position inconsistent with partial trick")
)

// PartialTrick accumulates the current trick's plays in rotation order.
// The zero value is an empty trick; Reset reuses the backing storage for
// the next trick.
type PartialTrick struct {
	plays []bridge.Play
}

// Add appends one play to the trick.
func (p *PartialTrick) Add(seat bridge.Seat, card bridge.Card) {
	p.plays = append(p.plays, bridge.Play{Seat: seat, Card: card})
}

// Len returns the number of cards played to the trick so far.
func (p *PartialTrick) Len() int {
	return len(p.plays)
}

// Leader returns the seat that led the trick, or false if no card has
// been played.
func (p *PartialTrick) Leader() (bridge.Seat, bool) {
	if len(p.plays) == 0 {
		return 0, false
	}
	return p.plays[0].Seat, true
}

// Plays returns the plays made so far, in order. The slice is the
// trick's own storage; callers must not retain it across Reset.
func (p *PartialTrick) Plays() []bridge.Play {
	return p.plays
}

// Reset empties the trick.
func (p *PartialTrick) Reset() {
	p.plays = p.plays[:0]
}

// Solver solves one fixed position. Construct with New for a trick-start
// position or NewMidTrick for a position part way through a trick, then
// call Solve with the board's caches.
type Solver struct {
	hands  Hands
	strain bridge.Strain
	leader bridge.Seat
	trick  []bridge.Play
}

// New returns a solver for a trick-start position with the given seat on
// lead. All four hands must be the same size; bridge.ParseDeal-validated
// deals and sequenced removals preserve that invariant.
func New(hands Hands, strain bridge.Strain, leader bridge.Seat) *Solver {
	return &Solver{hands: hands, strain: strain, leader: leader}
}

// NewMidTrick returns a solver for a position in the middle of a trick.
// hands must already exclude the cards in partial, and the partial
// trick's seats must rotate clockwise from its leader.
func NewMidTrick(hands Hands, strain bridge.Strain, partial *PartialTrick) (*Solver, error) {
	switch n := partial.Len(); {
	case n == 0:
		return nil, ErrEmptyTrick
	case n > 3:
		return nil, fmt.Errorf("%w: %d cards played", ErrBadTrick, n)
	}

	leader, _ := partial.Leader()
	played := [4]bool{}
	seat := leader
	for i, play := range partial.plays {
		if play.Seat != seat {
			return nil, fmt.Errorf("%w: play %d by %s, expected %s", ErrBadTrick, i+1, play.Seat, seat)
		}
		played[play.Seat] = true
		seat = seat.Next()
	}

	max := hands.MaxSize()
	for _, s := range bridge.Seats {
		want := max
		if played[s] {
			want = max - 1
		}
		if hands.Size(s) != want {
			return nil, fmt.Errorf("%w: %s holds %d cards, expected %d", ErrBadPosition, s, hands.Size(s), want)
		}
	}

	trick := make([]bridge.Play, partial.Len())
	copy(trick, partial.plays)
	return &Solver{hands: hands, strain: strain, leader: leader, trick: trick}, nil
}

// Solve returns the number of tricks North-South take from the position
// when both sides play optimally. The caches are read and filled as the
// search runs; passing the same caches for every solve of one board is
// what makes per-card analysis tractable.
func (s *Solver) Solve(caches *Caches) int {
	if caches == nil {
		caches = NewCaches()
	}
	total := s.hands.MaxSize()
	if total == 0 {
		return 0
	}

	trump, hasTrump := s.strain.Trump()
	e := &searcher{strain: s.strain, trump: trump, hasTrump: hasTrump, caches: caches}
	if len(s.trick) == 0 {
		return e.trickStart(s.hands, s.leader, -1, total+1)
	}
	var trick [4]bridge.Play
	n := copy(trick[:], s.trick)
	return e.play(s.hands, s.leader, &trick, n, -1, total+1)
}

const inf = 1 << 20

type searcher struct {
	strain   bridge.Strain
	trump    bridge.Suit
	hasTrump bool
	caches   *Caches
}

// trickStart searches a position with a fresh trick to lead. Only these
// positions hit the transposition tables.
func (e *searcher) trickStart(hands Hands, leader bridge.Seat, alpha, beta int) int {
	if hands[leader].Count() == 0 {
		return 0
	}

	pos := position{hands: hands.pattern(), leader: leader}
	v, done, alpha, beta := e.caches.lookup(pos, alpha, beta)
	if done {
		return v
	}

	alpha0, beta0 := alpha, beta
	var trick [4]bridge.Play
	v = e.play(hands, leader, &trick, 0, alpha, beta)
	e.caches.store(pos, v, alpha0, beta0, hands.MaxSize())
	return v
}

// play searches within a trick; trick[:n] holds the plays already made.
func (e *searcher) play(hands Hands, leader bridge.Seat, trick *[4]bridge.Play, n int, alpha, beta int) int {
	toMove := (leader + bridge.Seat(n)) % 4
	maximizing := toMove.Partnership() == bridge.NS

	cards := e.candidates(hands, toMove, trick, n)
	if len(cards) == 0 {
		return 0
	}

	best := -inf
	if !maximizing {
		best = inf
	}
	for _, card := range cards {
		next := hands
		next.Remove(toMove, card)
		trick[n] = bridge.Play{Seat: toMove, Card: card}

		var v int
		if n == 3 {
			winner := bridge.TrickWinner(trick[:], e.strain)
			won := 0
			if winner.Partnership() == bridge.NS {
				won = 1
			}
			v = won + e.trickStart(next, winner, alpha-won, beta-won)
		} else {
			v = e.play(next, leader, trick, n+1, alpha, beta)
		}

		if maximizing {
			if v > best {
				best = v
			}
			if best > alpha {
				alpha = best
			}
			if best >= beta {
				break
			}
		} else {
			if v < best {
				best = v
			}
			if best < beta {
				beta = best
			}
			if best <= alpha {
				break
			}
		}
	}
	return best
}

// candidates returns the seat's legal plays, one card per equivalence
// class: among a suit's live cards, adjacent ranks held by the same hand
// are interchangeable, so a single representative is searched. Cards
// already played to the current trick stay live for adjacency; they can
// still split two held ranks that must be searched separately. Following
// suit is forced whenever the hand can.
func (e *searcher) candidates(hands Hands, seat bridge.Seat, trick *[4]bridge.Play, n int) []bridge.Card {
	hand := hands[seat]
	out := make([]bridge.Card, 0, 8)

	var inTrick bridge.Hand
	for i := 0; i < n; i++ {
		c := trick[i].Card
		inTrick[c.Suit] = inTrick[c.Suit].With(c.Rank)
	}

	if n > 0 {
		led := trick[0].Card.Suit
		if hand[led] != 0 {
			return appendReps(out, hands, seat, led, inTrick[led], false)
		}
		// Void in the led suit: ruffs first, then cheap discards.
		if e.hasTrump && hand[e.trump] != 0 {
			out = appendReps(out, hands, seat, e.trump, inTrick[e.trump], false)
		}
		for suit := bridge.Clubs; suit <= bridge.Spades; suit++ {
			if (e.hasTrump && suit == e.trump) || hand[suit] == 0 {
				continue
			}
			out = appendReps(out, hands, seat, suit, inTrick[suit], true)
		}
		return out
	}

	// On lead: trumps first, then the plain suits high card first.
	if e.hasTrump && hand[e.trump] != 0 {
		out = appendReps(out, hands, seat, e.trump, 0, false)
	}
	for suit := bridge.Spades; suit >= bridge.Clubs; suit-- {
		if (e.hasTrump && suit == e.trump) || hand[suit] == 0 {
			continue
		}
		out = appendReps(out, hands, seat, suit, 0, false)
	}
	return out
}

// appendReps appends the seat's equivalence-class representatives in one
// suit: a rank starts a class when the next higher live rank of the suit
// is not also held by this seat. blockers marks ranks in the current
// trick, live for adjacency but in nobody's hand. lowFirst picks class
// bottoms in ascending order instead, which suits discards.
func appendReps(out []bridge.Card, hands Hands, seat bridge.Seat, suit bridge.Suit, blockers bridge.Holding, lowFirst bool) []bridge.Card {
	held := hands[seat][suit]
	if held == 0 {
		return out
	}
	all := hands[bridge.West][suit] | hands[bridge.North][suit] |
		hands[bridge.East][suit] | hands[bridge.South][suit] | blockers

	if lowFirst {
		prev := false
		for r := bridge.Two; r <= bridge.Ace; r++ {
			if !all.Has(r) {
				continue
			}
			h := held.Has(r)
			if h && !prev {
				out = append(out, bridge.Card{Suit: suit, Rank: r})
			}
			prev = h
		}
		return out
	}

	prev := false
	for r := bridge.Ace; r >= bridge.Two; r-- {
		if !all.Has(r) {
			continue
		}
		h := held.Has(r)
		if h && !prev {
			out = append(out, bridge.Card{Suit: suit, Rank: r})
		}
		prev = h
	}
	return out
}

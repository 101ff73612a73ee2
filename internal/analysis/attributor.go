// Package analysis attributes double-dummy trick costs to the players of
// recorded bridge deals. For every card it compares the declaring side's
// optimal trick potential before and after the play and charges the
// drop (or, for defenders, the gift) to the player who chose the card.
// It is the only package that reaches the solver; everything above it
// consumes cost records and streams.
package analysis

import (
	"fmt"

	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/fifthchair/tricklens/internal/solver"
)

// Mode selects the attribution granularity.
type Mode int

const (
	// ModeMidTrick solves around every single card. Canonical.
	ModeMidTrick Mode = iota
	// ModeTrickBoundary solves only at trick boundaries and attributes a
	// whole trick's swing to one player by rule of thumb. Low precision;
	// kept for quick passes over large files, never the default.
	ModeTrickBoundary
)

func (m Mode) String() string {
	if m == ModeTrickBoundary {
		return "trick-boundary"
	}
	return "mid-trick"
}

// ParseMode parses a mode name as given on a command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "mid-trick", "midtrick":
		return ModeMidTrick, nil
	case "trick-boundary", "trickboundary":
		return ModeTrickBoundary, nil
	default:
		return 0, fmt.Errorf("unknown analysis mode %q", s)
	}
}

// Board is one board's analysis input: the full deal, the contract
// strain and declarer, the recorded tricks, and the player sitting in
// each seat (empty names are carried through).
type Board struct {
	Deal     bridge.Deal
	Strain   bridge.Strain
	Declarer bridge.Seat
	Tricks   [][]bridge.Card
	Players  [4]string
}

// CostRecord is the cost charged for one card. Player is the name the
// cost is attributed to: for cards from the declarer's or dummy's hand
// that is always the declarer's player, since one human plays both.
type CostRecord struct {
	Player   string
	Seat     bridge.Seat
	Trick    int // 1-based
	Position int // 0-3 within the trick
	Card     bridge.Card
	Cost     int
}

// Result is a board's attribution output. On a fully played board
// InitialDD - DeclaringCost + DefendingCost equals DeclarerTricks.
type Result struct {
	InitialDD      int // declarer-space tricks before the opening lead
	DeclarerTricks int // tricks actually banked by the declaring side
	DeclaringCost  int
	DefendingCost  int
	Records        []CostRecord
	Costs          [][]int // per trick, one entry per card played
}

// Stream renders the result's per-card costs in the wire format stored
// in analyzed files.
func (r *Result) Stream() string {
	return FormatCostStream(r.Costs)
}

// AnalyzeBoard replays a board and attributes a non-negative trick cost
// to every play. Each board gets its own solver caches; boards never
// share state, so they parallelize freely.
func AnalyzeBoard(board Board, mode Mode) (*Result, error) {
	if mode == ModeTrickBoundary {
		return analyzeTrickBoundary(board)
	}
	return analyzeMidTrick(board)
}

// analyzeMidTrick runs the canonical per-card analysis. The running
// value is the declaring side's total take: tricks already banked plus
// the solver's view of the rest. Chaining it card to card means one
// solve per play, since the position after a card is the position
// before the next.
func analyzeMidTrick(board Board) (*Result, error) {
	seq := NewSequencer(board.Deal, board.Strain, board.Declarer)
	caches := solver.NewCaches()

	res := &Result{Costs: make([][]int, 0, len(board.Tricks))}
	res.InitialDD = declarerSpace(
		EvaluateFull(seq.Hands(), board.Strain, seq.Leader(), caches),
		seq.Hands().MaxSize(), board.Declarer)

	current := res.InitialDD
	for t, trick := range board.Tricks {
		costs := make([]int, 0, len(trick))
		for i, card := range trick {
			seat := seq.ToAct()
			if err := seq.Play(card); err != nil {
				return nil, fmt.Errorf("trick %d card %s: %w", t+1, card, err)
			}

			var after int
			if seq.Trick().Len() == 4 {
				winner, _, err := seq.CompleteTrick()
				if err != nil {
					return nil, fmt.Errorf("trick %d: %w", t+1, err)
				}
				after = seq.DeclarerTricks() + declarerSpace(
					EvaluateFull(seq.Hands(), board.Strain, winner, caches),
					seq.Hands().MaxSize(), board.Declarer)
			} else {
				after = seq.DeclarerTricks() + declarerSpace(
					EvaluatePartial(seq.Hands(), board.Strain, seq.Trick(), caches),
					seq.Hands().MaxSize(), board.Declarer)
			}

			cost := 0
			if seq.Declaring(seat) {
				cost = max(0, current-after)
				res.DeclaringCost += cost
			} else {
				cost = max(0, after-current)
				res.DefendingCost += cost
			}
			res.Records = append(res.Records, CostRecord{
				Player:   board.Players[attributedSeat(seat, board.Declarer)],
				Seat:     seat,
				Trick:    t + 1,
				Position: i,
				Card:     card,
				Cost:     cost,
			})
			costs = append(costs, cost)
			current = after
		}
		res.Costs = append(res.Costs, costs)
	}
	res.DeclarerTricks = seq.DeclarerTricks()
	return res, nil
}

// analyzeTrickBoundary evaluates only whole tricks. A losing swing goes
// to the declarer; a defensive gain goes to the trick's leader if a
// defender, else to the first defender who played. Incomplete tricks are
// skipped without touching the hands. The record carries the trick's
// first card at position 0 regardless of which play caused the swing.
func analyzeTrickBoundary(board Board) (*Result, error) {
	seq := NewSequencer(board.Deal, board.Strain, board.Declarer)
	caches := solver.NewCaches()

	res := &Result{Costs: make([][]int, 0, len(board.Tricks))}
	res.InitialDD = declarerSpace(
		EvaluateFull(seq.Hands(), board.Strain, seq.Leader(), caches),
		seq.Hands().MaxSize(), board.Declarer)

	current := res.InitialDD
	for t, trick := range board.Tricks {
		if len(trick) != 4 {
			res.Costs = append(res.Costs, make([]int, len(trick)))
			continue
		}

		leader := seq.Leader()
		seats := make([]bridge.Seat, 0, 4)
		for _, card := range trick {
			seats = append(seats, seq.ToAct())
			if err := seq.Play(card); err != nil {
				return nil, fmt.Errorf("trick %d card %s: %w", t+1, card, err)
			}
		}
		winner, _, err := seq.CompleteTrick()
		if err != nil {
			return nil, fmt.Errorf("trick %d: %w", t+1, err)
		}
		after := seq.DeclarerTricks() + declarerSpace(
			EvaluateFull(seq.Hands(), board.Strain, winner, caches),
			seq.Hands().MaxSize(), board.Declarer)

		costs := make([]int, 4)
		switch {
		case after < current:
			cost := current - after
			costs[0] = cost
			res.DeclaringCost += cost
			res.Records = append(res.Records, CostRecord{
				Player:   board.Players[board.Declarer],
				Seat:     board.Declarer,
				Trick:    t + 1,
				Position: 0,
				Card:     trick[0],
				Cost:     cost,
			})
		case after > current:
			cost := after - current
			costs[0] = cost
			res.DefendingCost += cost
			seat := leader
			if seat.Partnership() == board.Declarer.Partnership() {
				seat = firstDefender(seats, board.Declarer)
			}
			res.Records = append(res.Records, CostRecord{
				Player:   board.Players[seat],
				Seat:     seat,
				Trick:    t + 1,
				Position: 0,
				Card:     trick[0],
				Cost:     cost,
			})
		}
		res.Costs = append(res.Costs, costs)
		current = after
	}
	res.DeclarerTricks = seq.DeclarerTricks()
	return res, nil
}

// declarerSpace translates a North-South trick count into tricks for the
// declaring side: NS declarers keep the value, EW declarers take the
// complement of the tricks remaining.
func declarerSpace(ns, remaining int, declarer bridge.Seat) int {
	if declarer.Partnership() == bridge.NS {
		return ns
	}
	return remaining - ns
}

// attributedSeat maps a play to the seat charged for it: dummy's cards
// belong to the declarer.
func attributedSeat(seat, declarer bridge.Seat) bridge.Seat {
	if seat.Partnership() == declarer.Partnership() {
		return declarer
	}
	return seat
}

func firstDefender(seats []bridge.Seat, declarer bridge.Seat) bridge.Seat {
	for _, s := range seats {
		if s.Partnership() != declarer.Partnership() {
			return s
		}
	}
	return declarer.Next()
}

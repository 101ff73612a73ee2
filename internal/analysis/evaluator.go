package analysis

import (
	"errors"
	"fmt"

	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/fifthchair/tricklens/internal/solver"
)

// ErrSolverUnavailable reports that a position could not be handed to
// the solver: mid-trick construction failed and no leader could be
// inferred for a full-solve fallback.
var ErrSolverUnavailable = errors.New("analysis: position cannot be solved")

// SolveDeal solves a deal from a trick-start position: the North-South
// tricks with both sides playing double-dummy best, plus the tricks at
// stake (the largest hand's size). It is the entry point for callers
// that hold only bridge types.
func SolveDeal(deal bridge.Deal, strain bridge.Strain, leader bridge.Seat) (ns, total int) {
	hands := solver.HandsFromDeal(deal)
	return EvaluateFull(hands, strain, leader, solver.NewCaches()), hands.MaxSize()
}

// EvaluateFull returns the exact number of tricks North-South take from
// a trick-start position with the given seat on lead, or 0 immediately
// when no cards remain. The caller owns the caches; passing one set per
// board keeps every solve of that board cheap after the first.
func EvaluateFull(hands solver.Hands, strain bridge.Strain, leader bridge.Seat, caches *solver.Caches) int {
	if hands.Empty() {
		return 0
	}
	return solver.New(hands, strain, leader).Solve(caches)
}

// EvaluatePartial returns the North-South tricks for a position part way
// through a trick, counting the trick in progress. The total at stake is
// the maximum remaining hand size across seats. If a mid-trick solver
// cannot be constructed it falls back to a full solve from the partial
// trick's leader; with no leader to infer it returns 0.
func EvaluatePartial(hands solver.Hands, strain bridge.Strain, partial *solver.PartialTrick, caches *solver.Caches) int {
	v, err := evaluatePartial(hands, strain, partial, caches)
	if err != nil {
		return 0
	}
	return v
}

func evaluatePartial(hands solver.Hands, strain bridge.Strain, partial *solver.PartialTrick, caches *solver.Caches) (int, error) {
	s, err := solver.NewMidTrick(hands, strain, partial)
	if err == nil {
		return s.Solve(caches), nil
	}
	leader, ok := partial.Leader()
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}
	return EvaluateFull(hands, strain, leader, caches), nil
}

package solver

import "github.com/fifthchair/tricklens/internal/bridge"

// position identifies a trick-start position: the remaining cards in
// rank-pattern form plus the seat on lead.
type position struct {
	hands  Hands
	leader bridge.Seat
}

// window is a stored alpha-beta bound pair: the position's true value v
// satisfies lower <= v <= upper.
type window struct {
	lower, upper int8
}

// Caches hold the solver's transposition state for one board: an
// exact-value table and an alpha-beta bound table, both keyed by
// trick-start position. Entries depend only on the relative rank order
// within each suit, so later tricks of the same board reuse them.
// Caches must never be shared across boards; reuse via Reset.
type Caches struct {
	values map[position]int8
	bounds map[position]window
}

// NewCaches allocates empty per-board caches.
func NewCaches() *Caches {
	return &Caches{
		values: make(map[position]int8),
		bounds: make(map[position]window),
	}
}

// Reset drops every entry, readying the caches for another board.
func (c *Caches) Reset() {
	clear(c.values)
	clear(c.bounds)
}

// Size returns the number of cached positions across both tables.
func (c *Caches) Size() int {
	return len(c.values) + len(c.bounds)
}

// lookup probes the caches for pos under the window (alpha, beta). When
// the stored information already decides the node it returns (value,
// true); otherwise it returns a possibly narrowed window.
func (c *Caches) lookup(pos position, alpha, beta int) (int, bool, int, int) {
	if v, ok := c.values[pos]; ok {
		return int(v), true, alpha, beta
	}
	w, ok := c.bounds[pos]
	if !ok {
		return 0, false, alpha, beta
	}
	if int(w.lower) >= beta {
		return int(w.lower), true, alpha, beta
	}
	if int(w.upper) <= alpha {
		return int(w.upper), true, alpha, beta
	}
	if int(w.lower) > alpha {
		alpha = int(w.lower)
	}
	if int(w.upper) < beta {
		beta = int(w.upper)
	}
	if alpha >= beta {
		return alpha, true, alpha, beta
	}
	return 0, false, alpha, beta
}

// store records the search result v for pos, searched under the original
// window (alpha0, beta0). Values inside the window are exact; values at
// or outside it only bound the position.
func (c *Caches) store(pos position, v, alpha0, beta0, maxTricks int) {
	if v > alpha0 && v < beta0 {
		c.values[pos] = int8(v)
		delete(c.bounds, pos)
		return
	}
	w, ok := c.bounds[pos]
	if !ok {
		w = window{lower: 0, upper: int8(maxTricks)}
	}
	if v <= alpha0 && int8(v) < w.upper {
		w.upper = int8(v)
	}
	if v >= beta0 && int8(v) > w.lower {
		w.lower = int8(v)
	}
	c.bounds[pos] = w
}

// Package stats folds per-card cost records into per-player aggregates
// and compares a player's declaring/defending error pattern against the
// rest of the field.
package stats

import (
	"math"
	"sort"

	"golang.org/x/text/cases"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/bridge"
)

// minSamples is the play count below which rates carry no confidence
// interval and a player cannot enter a comparison.
const minSamples = 30

// RoleStats holds one player's counters for one role, declaring or
// defending. Deals counts boards the player sat through in that role,
// independent of how many cards they played.
type RoleStats struct {
	Plays  int64
	Errors int64
	Cost   int64
	Deals  int64
}

// ErrorRate returns errors per play in percent, 0 with no plays.
func (r RoleStats) ErrorRate() float64 {
	if r.Plays == 0 {
		return 0
	}
	return float64(r.Errors) / float64(r.Plays) * 100
}

// AvgCost returns the mean tricks lost per play, 0 with no plays.
func (r RoleStats) AvgCost() float64 {
	if r.Plays == 0 {
		return 0
	}
	return float64(r.Cost) / float64(r.Plays)
}

// se returns the standard error of the error proportion. The second
// value is false below minSamples; callers must not print a number then.
func (r RoleStats) se() (float64, bool) {
	if r.Plays < minSamples {
		return 0, false
	}
	p := float64(r.Errors) / float64(r.Plays)
	return math.Sqrt(p * (1 - p) / float64(r.Plays)), true
}

// CI95 returns the 95% confidence half-width of the error rate in
// percent. False when the sample is too small.
func (r RoleStats) CI95() (float64, bool) {
	se, ok := r.se()
	if !ok {
		return 0, false
	}
	return 1.96 * se * 100, true
}

func (r *RoleStats) merge(o RoleStats) {
	r.Plays += o.Plays
	r.Errors += o.Errors
	r.Cost += o.Cost
	r.Deals += o.Deals
}

// PlayerStats accumulates one player's counters across boards. Name
// keeps the first spelling seen; lookups fold case.
type PlayerStats struct {
	Name      string
	Declaring RoleStats
	Defending RoleStats
}

// TotalDeals returns boards played in either role.
func (p *PlayerStats) TotalDeals() int64 {
	return p.Declaring.Deals + p.Defending.Deals
}

// DefMinusDecl returns the defending minus declaring error rate in
// percentage points. Humans defend worse than they declare; a strongly
// negative gap is the anomaly signal.
func (p *PlayerStats) DefMinusDecl() float64 {
	return p.Defending.ErrorRate() - p.Declaring.ErrorRate()
}

// DiffSE returns the standard error of DefMinusDecl in percent. False
// unless both roles reach minSamples plays.
func (p *PlayerStats) DiffSE() (float64, bool) {
	sd, ok := p.Declaring.se()
	if !ok {
		return 0, false
	}
	sf, ok := p.Defending.se()
	if !ok {
		return 0, false
	}
	return math.Sqrt(sd*sd+sf*sf) * 100, true
}

// Merge adds the other player's counters field-wise. The receiver's
// name is kept.
func (p *PlayerStats) Merge(o *PlayerStats) {
	p.Declaring.merge(o.Declaring)
	p.Defending.merge(o.Defending)
}

// Aggregator folds analyzed boards into per-player statistics. Keys
// fold Unicode case, so "Alice" and "ALICE" are one player. It is not
// safe for concurrent use; aggregation runs after the parallel batch.
type Aggregator struct {
	players map[string]*PlayerStats

	Boards  int // boards aggregated
	Skipped int // boards without usable analysis
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{players: make(map[string]*PlayerStats)}
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

func (a *Aggregator) player(name string) *PlayerStats {
	key := foldName(name)
	p, ok := a.players[key]
	if !ok {
		p = &PlayerStats{Name: name}
		a.players[key] = p
	}
	return p
}

// AddBoard folds one analyzed board: every cost record bumps the acting
// player's plays, cost, and errors in the role its seat held, and each
// seated, named player is credited one deal in their role. Records with
// empty player names are skipped.
func (a *Aggregator) AddBoard(records []analysis.CostRecord, seated [4]string, declarer bridge.Seat) {
	a.Boards++
	for _, rec := range records {
		if rec.Player == "" {
			continue
		}
		p := a.player(rec.Player)
		role := &p.Defending
		if rec.Seat.Partnership() == declarer.Partnership() {
			role = &p.Declaring
		}
		role.Plays++
		role.Cost += int64(rec.Cost)
		if rec.Cost > 0 {
			role.Errors++
		}
	}
	for seat, name := range seated {
		if name == "" {
			continue
		}
		p := a.player(name)
		if bridge.Seat(seat).Partnership() == declarer.Partnership() {
			p.Declaring.Deals++
		} else {
			p.Defending.Deals++
		}
	}
}

// Skip counts a board that could not be aggregated.
func (a *Aggregator) Skip() {
	a.Skipped++
}

// Player looks a player up by name, folding case.
func (a *Aggregator) Player(name string) (*PlayerStats, bool) {
	p, ok := a.players[foldName(name)]
	return p, ok
}

// Players returns every player ordered by total deals, most active
// first, ties broken by name.
func (a *Aggregator) Players() []*PlayerStats {
	out := make([]*PlayerStats, 0, len(a.players))
	for _, p := range a.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDeals() != out[j].TotalDeals() {
			return out[i].TotalDeals() > out[j].TotalDeals()
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Field merges every player except the named ones into a baseline the
// subjects are compared against.
func (a *Aggregator) Field(exclude ...string) *PlayerStats {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[foldName(name)] = true
	}
	field := &PlayerStats{Name: "FIELD"}
	for key, p := range a.players {
		if skip[key] {
			continue
		}
		field.Merge(p)
	}
	return field
}

// Package report renders aggregated error-rate statistics and single
// board views for the console, plus a detailed CSV export.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fifthchair/tricklens/internal/stats"
)

const lineWidth = 100

// Subjects picks the players compared against the field: the override
// list when given, otherwise the two most frequent players.
func Subjects(agg *stats.Aggregator, override []string) []string {
	if len(override) > 0 {
		return override
	}
	players := agg.Players()
	var subjects []string
	for _, p := range players {
		if len(subjects) == 2 {
			break
		}
		subjects = append(subjects, p.Name)
	}
	return subjects
}

// WriteStats prints the per-player table, the partner comparison, and
// the statistical tests against the FIELD baseline.
func WriteStats(w io.Writer, agg *stats.Aggregator, subjects []string, topN int) {
	players := agg.Players()
	if topN <= 0 || topN > len(players) {
		topN = len(players)
	}
	field := agg.Field(subjects...)

	fmt.Fprintf(w, "\n%s\n", banner("DD Error Rate Analysis", lineWidth))
	fmt.Fprintf(w, "\n%-20s %8s %12s %10s %12s %10s %10s\n",
		"Player", "Deals", "Decl Plays", "Decl Err%", "Def Plays", "Def Err%", "Diff")
	fmt.Fprintln(w, rule(lineWidth))

	for _, p := range players[:topN] {
		writePlayerRow(w, truncateName(p.Name, 20), p)
	}

	fmt.Fprintln(w, rule(lineWidth))
	writePlayerRow(w, "FIELD (others)", field)

	if len(subjects) >= 2 {
		a, okA := agg.Player(subjects[0])
		b, okB := agg.Player(subjects[1])
		if okA && okB {
			writeComparison(w, a, b)
		}
	}

	fmt.Fprintf(w, "\n%s\n", banner("Statistical Analysis", lineWidth))
	for _, name := range subjects {
		subj, ok := agg.Player(name)
		if !ok {
			fmt.Fprintf(w, "\n  %s: no plays recorded\n", name)
			continue
		}
		writeZTest(w, subj, field)
	}

	writeInterpretation(w)
}

func writePlayerRow(w io.Writer, label string, p *stats.PlayerStats) {
	declRate := p.Declaring.ErrorRate()
	defRate := p.Defending.ErrorRate()
	fmt.Fprintf(w, "%-20s %8d %12d %9.2f%% %12d %9.2f%% %+9.2f%%\n",
		label,
		p.TotalDeals(),
		p.Declaring.Plays,
		declRate,
		p.Defending.Plays,
		defRate,
		declRate-defRate,
	)
	fmt.Fprintf(w, "%-20s %8s %12s %10s %12s %10s\n",
		"", "", "", ciLabel(p.Declaring), "", ciLabel(p.Defending))
}

func ciLabel(r stats.RoleStats) string {
	ci, ok := r.CI95()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("(%.2f%%)", ci)
}

func writeComparison(w io.Writer, a, b *stats.PlayerStats) {
	fmt.Fprintf(w, "\n%s\n", banner("Partner Comparison", lineWidth))
	fmt.Fprintf(w, "\nComparing %s vs %s:\n", a.Name, b.Name)

	declGap := a.Declaring.ErrorRate() - b.Declaring.ErrorRate()
	fmt.Fprintf(w, "\n  DECLARING:\n")
	fmt.Fprintf(w, "    %-20s: %.2f%% error rate\n", a.Name, a.Declaring.ErrorRate())
	fmt.Fprintf(w, "    %-20s: %.2f%% error rate\n", b.Name, b.Declaring.ErrorRate())
	fmt.Fprintf(w, "    Skill gap: %+.2f%% (%s makes more errors declaring)\n",
		declGap, higherName(declGap, a, b))

	defGap := a.Defending.ErrorRate() - b.Defending.ErrorRate()
	fmt.Fprintf(w, "\n  DEFENDING:\n")
	fmt.Fprintf(w, "    %-20s: %.2f%% error rate\n", a.Name, a.Defending.ErrorRate())
	fmt.Fprintf(w, "    %-20s: %.2f%% error rate\n", b.Name, b.Defending.ErrorRate())
	fmt.Fprintf(w, "    Skill gap: %+.2f%% (%s makes more errors defending)\n",
		defGap, higherName(defGap, a, b))

	convergence := math.Abs(declGap) - math.Abs(defGap)
	fmt.Fprintf(w, "\n  CONVERGENCE:\n")
	switch {
	case convergence > 1.0:
		fmt.Fprintf(w, "    Skill gap narrows by %.2f%% on defense (declaring gap: %.2f%%, defending gap: %.2f%%)\n",
			convergence, math.Abs(declGap), math.Abs(defGap))
		fmt.Fprintf(w, "    Partners performing more similarly on defense can indicate hand sharing.\n")
	case convergence < -1.0:
		fmt.Fprintf(w, "    Skill gap widens by %.2f%% on defense, consistent with independent play.\n",
			-convergence)
	default:
		fmt.Fprintf(w, "    Skill gap is similar in both roles (%.2f%% declaring, %.2f%% defending).\n",
			math.Abs(declGap), math.Abs(defGap))
	}
}

func writeZTest(w io.Writer, subj, field *stats.PlayerStats) {
	cmp := stats.Compare(subj, field)

	fmt.Fprintf(w, "\n  %s vs FIELD baseline:\n", subj.Name)
	if !cmp.Defined {
		fmt.Fprintf(w, "    Insufficient data for statistical test.\n")
		return
	}

	fmt.Fprintf(w, "    %s Def-Decl diff: %+.2f%%\n", subj.Name, cmp.SubjectDiff)
	fmt.Fprintf(w, "    FIELD Def-Decl diff: %+.2f%%\n", cmp.BaselineDiff)
	fmt.Fprintf(w, "    Z-score: %.2f\n", cmp.Z)
	fmt.Fprintf(w, "    P-value: %s\n", pLabel(cmp.P))

	switch cmp.Verdict {
	case stats.VerdictFlagged:
		fmt.Fprintf(w, "    %s's defense error rate is SUSPICIOUSLY LOW relative to their declaring rate.\n", subj.Name)
	case stats.VerdictNormal:
		fmt.Fprintf(w, "    %s's pattern is normal: defense errors exceed declaring as expected.\n", subj.Name)
	default:
		fmt.Fprintf(w, "    Results inconclusive: more data needed for reliable inference.\n")
	}
}

func pLabel(p float64) string {
	switch {
	case p < 0.001:
		return "<0.001 (highly significant)"
	case p < 0.01:
		return fmt.Sprintf("%.4f (significant at 1%%)", p)
	case p < 0.05:
		return fmt.Sprintf("%.4f (significant at 5%%)", p)
	default:
		return fmt.Sprintf("%.4f (not statistically significant)", p)
	}
}

func writeInterpretation(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", banner("", lineWidth))
	fmt.Fprintln(w, "\nInterpretation:")
	fmt.Fprintln(w, "  - Decl Err%: percentage of plays with DD cost > 0 when declaring or dummy")
	fmt.Fprintln(w, "  - Def Err%:  percentage of plays with DD cost > 0 when defending")
	fmt.Fprintln(w, "  - Diff:      Decl% - Def% (negative means more errors on defense)")
	fmt.Fprintln(w, "\n  Defense is harder than declaring, so honest players typically show")
	fmt.Fprintln(w, "  more errors defending (negative Diff). Red flags: a defense error")
	fmt.Fprintln(w, "  rate below the declaring rate, a Def-Decl pattern far from the")
	fmt.Fprintln(w, "  FIELD baseline, and a partner skill gap that narrows on defense.")
}

func higherName(gap float64, a, b *stats.PlayerStats) string {
	if gap > 0 {
		return a.Name
	}
	return b.Name
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}

func banner(title string, width int) string {
	if title != "" {
		title = " " + title + " "
	}
	pad := width - len(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	return strings.Repeat("=", left) + title + strings.Repeat("=", pad-left)
}

func rule(width int) string {
	return strings.Repeat("-", width)
}

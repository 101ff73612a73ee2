package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fifthchair/tricklens/internal/stats"
)

var statsColumns = []string{
	"Player", "Total_Deals", "Decl_Deals", "Def_Deals",
	"Decl_Plays", "Decl_Errors", "Decl_Err_Pct", "Decl_Avg_Cost", "Decl_CI",
	"Def_Plays", "Def_Errors", "Def_Err_Pct", "Def_Avg_Cost", "Def_CI",
	"Diff_Pct",
}

// WriteStatsCSV exports every player plus the FIELD baseline.
// Confidence intervals below the sample threshold export as empty
// cells rather than sentinel numbers.
func WriteStatsCSV(w io.Writer, agg *stats.Aggregator, subjects []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statsColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range agg.Players() {
		if err := cw.Write(statsRow(p)); err != nil {
			return fmt.Errorf("write %s: %w", p.Name, err)
		}
	}
	field := agg.Field(subjects...)
	if err := cw.Write(statsRow(field)); err != nil {
		return fmt.Errorf("write field row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func statsRow(p *stats.PlayerStats) []string {
	return []string{
		p.Name,
		strconv.FormatInt(p.TotalDeals(), 10),
		strconv.FormatInt(p.Declaring.Deals, 10),
		strconv.FormatInt(p.Defending.Deals, 10),
		strconv.FormatInt(p.Declaring.Plays, 10),
		strconv.FormatInt(p.Declaring.Errors, 10),
		fmt.Sprintf("%.4f", p.Declaring.ErrorRate()),
		fmt.Sprintf("%.4f", p.Declaring.AvgCost()),
		ciCell(p.Declaring),
		strconv.FormatInt(p.Defending.Plays, 10),
		strconv.FormatInt(p.Defending.Errors, 10),
		fmt.Sprintf("%.4f", p.Defending.ErrorRate()),
		fmt.Sprintf("%.4f", p.Defending.AvgCost()),
		ciCell(p.Defending),
		fmt.Sprintf("%.4f", p.Declaring.ErrorRate()-p.Defending.ErrorRate()),
	}
}

func ciCell(r stats.RoleStats) string {
	ci, ok := r.CI95()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.4f", ci)
}

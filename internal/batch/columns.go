package batch

import (
	"fmt"

	"github.com/fifthchair/tricklens/internal/bridge"
)

// analysisColumn is the output column holding the per-card cost stream.
const analysisColumn = "DD_Analysis"

// Columns maps the pipeline's named CSV columns to header positions.
// Absent columns are -1; ragged rows read as empty fields.
type Columns struct {
	Ref      int
	Cardplay int
	Contract int
	Declarer int
	Board    int
	Result   int
	Analysis int
	Hands    [4]int // indexed by bridge.Seat
	Names    [4]int // indexed by bridge.Seat
}

// FindColumns locates the pipeline's columns in a header row. Hand and
// contract columns accept the header spellings seen across exporter
// versions. Validation of which columns a pass actually needs is left
// to the caller.
func FindColumns(header []string) Columns {
	find := func(names ...string) int {
		for _, name := range names {
			for i, h := range header {
				if h == name {
					return i
				}
			}
		}
		return -1
	}

	var c Columns
	c.Ref = find("Ref #")
	c.Cardplay = find("Cardplay")
	c.Contract = find("Con", "Contract")
	c.Declarer = find("Dec")
	c.Board = find("Board")
	c.Result = find("Result")
	c.Analysis = find(analysisColumn)
	c.Hands[bridge.North] = find("North", "N_Hand", "North hand", "N hand")
	c.Hands[bridge.East] = find("East", "E_Hand", "East hand", "E hand")
	c.Hands[bridge.South] = find("South", "S_Hand", "South hand", "S hand")
	c.Hands[bridge.West] = find("West", "W_Hand", "West hand", "W hand")
	c.Names[bridge.North] = find("N")
	c.Names[bridge.East] = find("E")
	c.Names[bridge.South] = find("S")
	c.Names[bridge.West] = find("W")
	return c
}

// RequireAnalysis reports whether the columns the analyzer depends on
// are all present.
func (c Columns) RequireAnalysis() error {
	for _, col := range []struct {
		idx  int
		name string
	}{
		{c.Ref, "Ref #"},
		{c.Cardplay, "Cardplay"},
		{c.Contract, "Con"},
		{c.Declarer, "Dec"},
	} {
		if col.idx < 0 {
			return fmt.Errorf("required column %q not found", col.name)
		}
	}
	for _, seat := range bridge.Seats {
		if c.Hands[seat] < 0 {
			return fmt.Errorf("required hand column %q not found", seat.Name())
		}
	}
	return nil
}

// RequireStats reports whether the columns the aggregation pass depends
// on are all present. The analysis column existing is how an analyzed
// file is recognized.
func (c Columns) RequireStats() error {
	if c.Analysis < 0 {
		return fmt.Errorf("required column %q not found, analyze the file first", analysisColumn)
	}
	for _, col := range []struct {
		idx  int
		name string
	}{
		{c.Cardplay, "Cardplay"},
		{c.Contract, "Con"},
		{c.Declarer, "Dec"},
	} {
		if col.idx < 0 {
			return fmt.Errorf("required column %q not found", col.name)
		}
	}
	for _, seat := range bridge.Seats {
		if c.Names[seat] < 0 {
			return fmt.Errorf("required player column %q not found", seat.String())
		}
	}
	return nil
}

// field returns the row's value at idx, tolerating ragged rows and
// absent columns.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// players collects the four seated player names from a row, indexed by
// seat. Absent name columns yield empty strings.
func (c Columns) players(row []string) [4]string {
	var out [4]string
	for _, seat := range bridge.Seats {
		out[seat] = field(row, c.Names[seat])
	}
	return out
}

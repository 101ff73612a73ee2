package batch

import (
	"strings"
	"testing"

	"github.com/fifthchair/tricklens/internal/bridge"
)

func analyzerHeader() []string {
	return []string{
		"Ref #", "Board", "Con", "Dec",
		"North", "East", "South", "West",
		"N", "E", "S", "W",
		"Cardplay", "Result",
	}
}

func TestFindColumns(t *testing.T) {
	cols := FindColumns(analyzerHeader())

	if cols.Ref != 0 || cols.Board != 1 || cols.Contract != 2 || cols.Declarer != 3 {
		t.Fatalf("core columns misplaced: %+v", cols)
	}
	if cols.Hands[bridge.North] != 4 || cols.Hands[bridge.West] != 7 {
		t.Fatalf("hand columns misplaced: %v", cols.Hands)
	}
	if cols.Names[bridge.North] != 8 || cols.Names[bridge.West] != 11 {
		t.Fatalf("name columns misplaced: %v", cols.Names)
	}
	if cols.Cardplay != 12 || cols.Result != 13 {
		t.Fatalf("cardplay/result misplaced: %+v", cols)
	}
	if cols.Analysis != -1 {
		t.Fatalf("analysis column should be absent, got %d", cols.Analysis)
	}
}

func TestFindColumnsAlternateSpellings(t *testing.T) {
	cols := FindColumns([]string{"N_Hand", "E_Hand", "S_Hand", "W_Hand", "Contract"})

	if cols.Hands[bridge.North] != 0 || cols.Hands[bridge.East] != 1 {
		t.Fatalf("hand aliases not recognized: %v", cols.Hands)
	}
	if cols.Contract != 4 {
		t.Fatalf("Contract alias not recognized: %d", cols.Contract)
	}
}

func TestRequireAnalysis(t *testing.T) {
	if err := FindColumns(analyzerHeader()).RequireAnalysis(); err != nil {
		t.Fatalf("RequireAnalysis on full header: %v", err)
	}

	missing := []string{"Ref #", "Cardplay", "Con", "Dec", "South"}
	for _, name := range missing {
		var header []string
		for _, h := range analyzerHeader() {
			if h != name {
				header = append(header, h)
			}
		}
		err := FindColumns(header).RequireAnalysis()
		if err == nil {
			t.Fatalf("RequireAnalysis passed without %q", name)
		}
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name column %q", err, name)
		}
	}
}

func TestRequireStats(t *testing.T) {
	header := append(analyzerHeader(), analysisColumn)
	if err := FindColumns(header).RequireStats(); err != nil {
		t.Fatalf("RequireStats on analyzed header: %v", err)
	}

	err := FindColumns(analyzerHeader()).RequireStats()
	if err == nil || !strings.Contains(err.Error(), analysisColumn) {
		t.Fatalf("RequireStats without analysis column: %v", err)
	}

	err = FindColumns([]string{analysisColumn, "Cardplay", "Con", "Dec"}).RequireStats()
	if err == nil {
		t.Fatal("RequireStats passed without player columns")
	}
}

func TestFieldToleratesRaggedRows(t *testing.T) {
	row := []string{"a", "b"}
	if got := field(row, 1); got != "b" {
		t.Fatalf("field(1) = %q", got)
	}
	if got := field(row, 5); got != "" {
		t.Fatalf("field(5) = %q, want empty", got)
	}
	if got := field(row, -1); got != "" {
		t.Fatalf("field(-1) = %q, want empty", got)
	}
}

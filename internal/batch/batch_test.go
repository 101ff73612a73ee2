package batch

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/archive"
	sqlitearchive "github.com/fifthchair/tricklens/internal/archive/sqlite"
)

// Two small boards with known double-dummy behavior. On the first every
// card is optimal; on the second East crashes a high spade under the
// ace, costing the defense one trick.
const (
	cleanRow = `r-01,1,1N,E,2..6.,Q..5.,A..2.,3..A.,nplayer,eplayer,splayer,wplayer,D2 DA D6 D5|S3 S2 SQ SA,90`
	crashRow = `r-02,2,1N,S,QJ.4..,K3.3..,54.5..,A2.2..,alice,bob,carol,dave,SA SJ SK S4|S2 SQ S3 S5|H4 H3 H5 H2,-1`

	cleanStream = "T1:0,0,0,0|T2:0,0,0,0"
	crashStream = "T1:0,0,1,0|T2:0,0,0,0|T3:0,0,0,0"
)

func inputHeader() string {
	return strings.Join(analyzerHeader(), ",")
}

func readAnalysis(t *testing.T, path string) map[string]string {
	t.Helper()
	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	cols := FindColumns(table.Header)
	if cols.Analysis < 0 {
		t.Fatalf("output header lacks %s: %v", analysisColumn, table.Header)
	}
	out := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		out[field(row, cols.Ref)] = field(row, cols.Analysis)
	}
	return out
}

func TestRunAnalyzesBoards(t *testing.T) {
	input := writeFile(t, "in.csv", inputHeader()+"\n"+
		cleanRow+"\n"+
		crashRow+"\n"+
		"r-03,3,1N,E,2..6.,Q..5.,A..2.,3..A.,n,e,s,w,,\n"+
		"r-04,4,1N,X,2..6.,Q..5.,A..2.,3..A.,n,e,s,w,D2 DA D6 D5,\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	summary, err := Run(context.Background(), Config{Workers: 2}, input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Rows != 4 || summary.Analyzed != 2 || summary.Errored != 0 || summary.Skipped != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.RunID != "" {
		t.Fatalf("run id assigned without archive: %q", summary.RunID)
	}

	got := readAnalysis(t, output)
	if got["r-01"] != cleanStream {
		t.Fatalf("r-01 analysis = %q, want %q", got["r-01"], cleanStream)
	}
	if got["r-02"] != crashStream {
		t.Fatalf("r-02 analysis = %q, want %q", got["r-02"], crashStream)
	}
	if got["r-03"] != "" || got["r-04"] != "" {
		t.Fatalf("skipped rows not left empty: %q %q", got["r-03"], got["r-04"])
	}
}

func TestRunRecordsBoardErrors(t *testing.T) {
	input := writeFile(t, "in.csv", inputHeader()+"\n"+
		"r-10,1,1N,E,2..6.,Q..5.,A..2.,3..A.,n,e,s,w,SA SA SA SA,\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	summary, err := Run(context.Background(), Config{}, input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Analyzed != 0 || summary.Errored != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	got := readAnalysis(t, output)
	if !strings.HasPrefix(got["r-10"], errorPrefix) {
		t.Fatalf("r-10 analysis = %q, want %s prefix", got["r-10"], errorPrefix)
	}
}

func TestRunResumesFromPriorOutput(t *testing.T) {
	input := writeFile(t, "in.csv", inputHeader()+"\n"+cleanRow+"\n"+crashRow+"\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	prior := &Table{
		Header: []string{"Ref #", analysisColumn},
		Rows: [][]string{
			{"r-01", "T1:9"},
			{"r-02", "ERROR: solver timeout"},
		},
	}
	if err := WriteTable(output, prior); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	summary, err := Run(context.Background(), Config{Resume: true}, input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Analyzed != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	got := readAnalysis(t, output)
	if got["r-01"] != "T1:9" {
		t.Fatalf("resumed value overwritten: %q", got["r-01"])
	}
	if got["r-02"] != crashStream {
		t.Fatalf("errored row not retried: %q", got["r-02"])
	}
}

func TestRunCarriesExistingAnalysis(t *testing.T) {
	header := inputHeader() + "," + analysisColumn
	input := writeFile(t, "in.csv", header+"\n"+
		cleanRow+",T1:9\n"+
		crashRow+",\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	summary, err := Run(context.Background(), Config{}, input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Analyzed != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	got := readAnalysis(t, output)
	if got["r-01"] != "T1:9" {
		t.Fatalf("carried value overwritten: %q", got["r-01"])
	}
	if got["r-02"] != crashStream {
		t.Fatalf("r-02 analysis = %q, want %q", got["r-02"], crashStream)
	}
}

func TestRunRequiresColumns(t *testing.T) {
	input := writeFile(t, "in.csv", "Ref #,Cardplay\nr-01,SA SK\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	_, err := Run(context.Background(), Config{}, input, output)
	if err == nil || !strings.Contains(err.Error(), "Con") {
		t.Fatalf("Run without contract column: %v", err)
	}
}

func TestRunArchivesBoards(t *testing.T) {
	store, err := sqlitearchive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close archive: %v", err)
		}
	})

	input := writeFile(t, "in.csv", inputHeader()+"\n"+cleanRow+"\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	summary, err := Run(context.Background(), Config{Archive: store}, input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("no run id assigned")
	}

	ctx := context.Background()
	run, err := store.GetRun(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Analyzed != 1 || run.FinishedAt.IsZero() {
		t.Fatalf("run record = %+v", run)
	}

	board, err := store.GetBoard(ctx, "r-01")
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if board.Analysis != cleanStream {
		t.Fatalf("archived analysis = %q, want %q", board.Analysis, cleanStream)
	}
	if board.RunID != summary.RunID {
		t.Fatalf("archived run id = %q, want %q", board.RunID, summary.RunID)
	}
	if board.Deal != "N:2..6. Q..5. A..2. 3..A." {
		t.Fatalf("archived deal = %q", board.Deal)
	}
}

func TestRunCanceledContext(t *testing.T) {
	input := writeFile(t, "in.csv", inputHeader()+"\n"+cleanRow+"\n")
	output := filepath.Join(filepath.Dir(input), "out.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, Config{}, input, output); err == nil {
		t.Fatal("Run succeeded with canceled context")
	}
}

func TestLoadStats(t *testing.T) {
	header := inputHeader() + "," + analysisColumn
	input := writeFile(t, "analyzed.csv", header+"\n"+
		crashRow+",\""+crashStream+"\"\n"+
		cleanRow+",ERROR: solver timeout\n")

	agg, err := LoadStats(input)
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if agg.Boards != 1 || agg.Skipped != 1 {
		t.Fatalf("boards=%d skipped=%d", agg.Boards, agg.Skipped)
	}

	// carol declared; alice was dummy, so every North card counts as
	// carol's play.
	carol, ok := agg.Player("carol")
	if !ok {
		t.Fatal("carol missing")
	}
	if carol.Declaring.Plays != 6 || carol.Declaring.Errors != 0 {
		t.Fatalf("carol declaring = %+v", carol.Declaring)
	}
	if carol.Declaring.Deals != 1 {
		t.Fatalf("carol declaring deals = %d", carol.Declaring.Deals)
	}

	alice, ok := agg.Player("alice")
	if !ok {
		t.Fatal("alice missing")
	}
	if alice.Declaring.Plays != 0 || alice.Declaring.Deals != 1 {
		t.Fatalf("alice stats = %+v", alice.Declaring)
	}

	bob, ok := agg.Player("bob")
	if !ok {
		t.Fatal("bob missing")
	}
	if bob.Defending.Plays != 3 || bob.Defending.Errors != 1 || bob.Defending.Cost != 1 {
		t.Fatalf("bob defending = %+v", bob.Defending)
	}

	dave, ok := agg.Player("dave")
	if !ok {
		t.Fatal("dave missing")
	}
	if dave.Defending.Plays != 3 || dave.Defending.Errors != 0 {
		t.Fatalf("dave defending = %+v", dave.Defending)
	}
}

func TestLoadStatsSkipsMismatchedStream(t *testing.T) {
	header := "Con,Dec,N,E,S,W,Cardplay," + analysisColumn
	input := writeFile(t, "analyzed.csv", header+"\n"+
		// Four costs recorded for a three-card trick.
		"1N,S,alice,bob,carol,dave,SA SJ SK,\"T1:0,0,0,0\"\n")

	agg, err := LoadStats(input)
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if agg.Boards != 0 || agg.Skipped != 1 {
		t.Fatalf("boards=%d skipped=%d", agg.Boards, agg.Skipped)
	}
}

func TestLoadStatsRequiresAnalysisColumn(t *testing.T) {
	input := writeFile(t, "raw.csv", inputHeader()+"\n"+cleanRow+"\n")

	_, err := LoadStats(input)
	if err == nil || !strings.Contains(err.Error(), analysisColumn) {
		t.Fatalf("LoadStats on unanalyzed file: %v", err)
	}
}

func TestLoadStatsSeatRotation(t *testing.T) {
	// Dummy's queen wins trick 2, so North leads trick 3 and the seat
	// order rotates away from the opening leader. A cost at trick 3
	// position 1 must land on East's player, not North's.
	header := "Con,Dec,N,E,S,W,Cardplay," + analysisColumn
	input := writeFile(t, "analyzed.csv", header+"\n"+
		"1N,S,alice,bob,carol,dave,SA SJ SK S4|S2 SQ S3 S5|H4 H3 H5 H2,\"T1:0,0,0,0|T2:0,0,0,0|T3:0,1,0,0\"\n")

	agg, err := LoadStats(input)
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}

	// Trick 3 is led by North (dummy's SQ won trick 2), so position 1
	// is East: bob.
	bob, ok := agg.Player("bob")
	if !ok {
		t.Fatal("bob missing")
	}
	if bob.Defending.Errors != 1 {
		t.Fatalf("bob defending errors = %d, want 1", bob.Defending.Errors)
	}
	carol, ok := agg.Player("carol")
	if !ok {
		t.Fatal("carol missing")
	}
	if carol.Declaring.Errors != 0 {
		t.Fatalf("carol declaring errors = %d, want 0", carol.Declaring.Errors)
	}
}

func TestLoadArchiveStats(t *testing.T) {
	store, err := sqlitearchive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close archive: %v", err)
		}
	})

	ctx := context.Background()
	boards := []archive.Board{
		{
			Ref:         "r-02",
			BoardNum:    "2",
			Contract:    "1N",
			Declarer:    "S",
			Cardplay:    "SA SJ SK S4|S2 SQ S3 S5|H4 H3 H5 H2",
			PlayerNorth: "alice",
			PlayerEast:  "bob",
			PlayerSouth: "carol",
			PlayerWest:  "dave",
			Analysis:    crashStream,
		},
		{Ref: "r-03", Contract: "1N", Declarer: "E", Analysis: "ERROR: solver timeout"},
	}
	for _, board := range boards {
		if err := store.SaveBoard(ctx, board); err != nil {
			t.Fatalf("SaveBoard(%s): %v", board.Ref, err)
		}
	}

	agg, err := LoadArchiveStats(ctx, store)
	if err != nil {
		t.Fatalf("LoadArchiveStats: %v", err)
	}
	if agg.Boards != 1 || agg.Skipped != 1 {
		t.Fatalf("boards=%d skipped=%d", agg.Boards, agg.Skipped)
	}

	// Same attribution as the CSV path: dummy's plays land on carol.
	carol, ok := agg.Player("carol")
	if !ok {
		t.Fatal("carol missing")
	}
	if carol.Declaring.Plays != 6 || carol.Declaring.Deals != 1 {
		t.Fatalf("carol declaring = %+v", carol.Declaring)
	}
	bob, ok := agg.Player("bob")
	if !ok {
		t.Fatal("bob missing")
	}
	if bob.Defending.Errors != 1 || bob.Defending.Cost != 1 {
		t.Fatalf("bob defending = %+v", bob.Defending)
	}
}

func TestAnalyzeBoardModesAgreeOnTotals(t *testing.T) {
	// Both attribution modes see the same board; only the split across
	// cards differs.
	input := writeFile(t, "in.csv", inputHeader()+"\n"+crashRow+"\n")
	dir := filepath.Dir(input)

	mid := filepath.Join(dir, "mid.csv")
	if _, err := Run(context.Background(), Config{Mode: analysis.ModeMidTrick}, input, mid); err != nil {
		t.Fatalf("Run mid-trick: %v", err)
	}
	boundary := filepath.Join(dir, "boundary.csv")
	if _, err := Run(context.Background(), Config{Mode: analysis.ModeTrickBoundary}, input, boundary); err != nil {
		t.Fatalf("Run trick-boundary: %v", err)
	}

	midTotal := streamTotal(t, readAnalysis(t, mid)["r-02"])
	boundaryTotal := streamTotal(t, readAnalysis(t, boundary)["r-02"])
	if midTotal != boundaryTotal {
		t.Fatalf("mode totals diverge: mid=%d boundary=%d", midTotal, boundaryTotal)
	}
}

func streamTotal(t *testing.T, stream string) int {
	t.Helper()
	costs, err := analysis.ParseCostStream(stream)
	if err != nil {
		t.Fatalf("ParseCostStream(%q): %v", stream, err)
	}
	total := 0
	for _, trick := range costs {
		for _, c := range trick {
			total += c
		}
	}
	return total
}

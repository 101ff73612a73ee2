package report

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fifthchair/tricklens/internal/archive"
	sqlitearchive "github.com/fifthchair/tricklens/internal/archive/sqlite"
)

// One analyzed board: carol declares 1NT, East's spade crash costs the
// defense a trick.
const analyzedFixture = "Ref #,Board,Con,Dec,North,East,South,West,N,E,S,W,Cardplay,Result,DD_Analysis\n" +
	"r-02,2,1N,S,QJ.4..,K3.3..,54.5..,A2.2..,alice,bob,carol,dave," +
	"SA SJ SK S4|S2 SQ S3 S5|H4 H3 H5 H2,-1,\"T1:0,0,1,0|T2:0,0,0,0|T3:0,0,0,0\"\n"

func writeAnalyzed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analyzed.csv")
	if err := os.WriteFile(path, []byte(analyzedFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Top != 10 {
		t.Fatalf("expected default top 10, got %d", cfg.Top)
	}
	if cfg.Players != "" || cfg.Output != "" {
		t.Fatalf("expected empty players and output, got %q and %q", cfg.Players, cfg.Output)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-input", "analyzed.csv",
		"-top", "3",
		"-players", "alice,bob",
		"-output", "stats.csv",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Input != "analyzed.csv" || cfg.Top != 3 {
		t.Fatalf("unexpected input %q top %d", cfg.Input, cfg.Top)
	}
	if cfg.Players != "alice,bob" || cfg.Output != "stats.csv" {
		t.Fatalf("unexpected players %q output %q", cfg.Players, cfg.Output)
	}
}

func TestSplitPlayers(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"alice", []string{"alice"}},
		{"alice,bob", []string{"alice", "bob"}},
		{" alice , bob ,", []string{"alice", "bob"}},
	}
	for _, tc := range tests {
		if got := SplitPlayers(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitPlayers(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRunWritesConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	err := Run(context.Background(), Config{Input: writeAnalyzed(t), Top: 10}, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"DD Error Rate Analysis", "carol", "bob", "FIELD (others)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunExportsCSV(t *testing.T) {
	export := filepath.Join(t.TempDir(), "stats.csv")
	cfg := Config{Input: writeAnalyzed(t), Top: 10, Output: export}

	if err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Player,Total_Deals") {
		t.Fatalf("unexpected export header: %q", string(data[:40]))
	}
	if !strings.Contains(string(data), "carol") {
		t.Fatalf("export missing carol:\n%s", data)
	}
}

func TestRunRequiresInput(t *testing.T) {
	if err := Run(context.Background(), Config{}, nil); err == nil {
		t.Fatal("expected missing input error")
	}
}

func TestRunReadsArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	store, err := sqlitearchive.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	board := archive.Board{
		Ref:         "r-02",
		BoardNum:    "2",
		Contract:    "1N",
		Declarer:    "S",
		Cardplay:    "SA SJ SK S4|S2 SQ S3 S5|H4 H3 H5 H2",
		PlayerNorth: "alice",
		PlayerEast:  "bob",
		PlayerSouth: "carol",
		PlayerWest:  "dave",
		Analysis:    "T1:0,0,1,0|T2:0,0,0,0|T3:0,0,0,0",
	}
	if err := store.SaveBoard(context.Background(), board); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	var buf bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: path, Top: 10}, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"DD Error Rate Analysis", "carol", "bob"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsBothSources(t *testing.T) {
	cfg := Config{Input: "analyzed.csv", DBPath: "archive.db"}
	err := Run(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("Run with two sources: %v", err)
	}
}

package deal

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fifthchair/tricklens/internal/bridge"
)

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
	fs := flag.NewFlagSet("deal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Row != 1 {
		t.Fatalf("expected default row 1, got %d", cfg.Row)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("deal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-input", "analyzed.csv", "-row", "7"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Input != "analyzed.csv" || cfg.Row != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestRunRendersBoard(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(context.Background(), Config{Input: writeAnalyzed(t), Row: 1}, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Board 2 (Ref: r-02)",
		"Contract: 1N by S    Result: -1    Score: -100 (NS vul)",
		"Players: N=alice S=carol E=bob W=dave",
		"W:SA",
		"0,0,1,0",
		"(declaring)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("board view missing %q:\n%s", want, out)
		}
	}
}

func TestRunRowOutOfRange(t *testing.T) {
	input := writeAnalyzed(t)
	for _, row := range []int{0, 2, -1} {
		err := Run(context.Background(), Config{Input: input, Row: row}, nil)
		if err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Fatalf("row %d: expected out of range error, got %v", row, err)
		}
	}
}

func TestRunRequiresInput(t *testing.T) {
	if err := Run(context.Background(), Config{Row: 1}, nil); err == nil {
		t.Fatal("expected missing input error")
	}
}

func TestBuildViewMissingHand(t *testing.T) {
	header := strings.Split("Ref #,Board,Con,Dec,North,East,South,West,N,E,S,W,Cardplay,Result", ",")
	row := strings.Split("r-01,1,1N,S,QJ.4..,,54.5..,A2.2..,a,b,c,d,SA SJ SK S4,-1", ",")

	_, err := buildView(header, row)
	if err == nil || !strings.Contains(err.Error(), "missing East hand") {
		t.Fatalf("expected missing hand error, got %v", err)
	}
}

func TestScoreLine(t *testing.T) {
	tests := []struct {
		contract string
		declarer bridge.Seat
		board    string
		result   string
		want     string
	}{
		{"1N", bridge.South, "2", "-1", "-100 (NS vul)"},
		{"3NT", bridge.South, "1", "=", "+400 (None vul)"},
		{"4S", bridge.North, "4", "+1", "+650 (All vul)"},
		{"1N", bridge.South, "2", "90", ""},
		{"1N", bridge.South, "", "-1", "-50 (None vul)"},
		{"", bridge.South, "2", "-1", ""},
		{"1N", bridge.South, "2", "oops", ""},
	}
	for _, tc := range tests {
		got := scoreLine(tc.contract, tc.declarer, tc.board, tc.result)
		if got != tc.want {
			t.Fatalf("scoreLine(%q, %s, %q, %q) = %q, want %q",
				tc.contract, tc.declarer, tc.board, tc.result, got, tc.want)
		}
	}
}

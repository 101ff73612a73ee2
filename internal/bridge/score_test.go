package bridge

import (
	"math"
	"testing"
)

func TestContractScore(t *testing.T) {
	tests := []struct {
		name       string
		contract   string
		relative   int
		vulnerable bool
		want       int
	}{
		{"3NT made nonvul", "3NT", 0, false, 400},
		{"3NT plus one vul", "3NT", 1, true, 630},
		{"4S made nonvul", "4S", 0, false, 420},
		{"4H plus one vul", "4H", 1, true, 650},
		{"partscore", "2S", 0, false, 110},
		{"1NT plus two", "1NT", 2, false, 150},
		{"minor game vul", "5C", 0, true, 600},
		{"small slam vul", "6C", 0, true, 1370},
		{"grand slam vul", "7NT", 0, true, 2220},
		{"doubled into game", "2SX", 0, false, 470},
		{"1NTX plus one vul", "1NTX", 1, true, 380},
		{"redoubled game", "4SXX", 0, false, 880},
		{"down one nonvul", "2H", -1, false, -50},
		{"down one vul", "2H", -1, true, -100},
		{"doubled down three nonvul", "3NTX", -3, false, -500},
		{"doubled down two vul", "4SX", -2, true, -500},
		{"doubled down four nonvul", "4SX", -4, false, -800},
		{"redoubled down one nonvul", "5CXX", -1, false, -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contract, err := ParseContract(tt.contract)
			if err != nil {
				t.Fatalf("ParseContract(%q): %v", tt.contract, err)
			}
			if got := contract.Score(tt.relative, tt.vulnerable); got != tt.want {
				t.Fatalf("%s %+d score = %d, want %d", tt.contract, tt.relative, got, tt.want)
			}
		})
	}
}

func TestMatchpoints(t *testing.T) {
	got := Matchpoints([]int{620, 620, 100, -100})
	want := []float64{5.0 / 6 * 100, 5.0 / 6 * 100, 2.0 / 6 * 100, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("mps[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if got := Matchpoints(nil); got != nil {
		t.Fatalf("Matchpoints(nil) = %v, want nil", got)
	}

	// A single table has no comparisons; the share stays zero.
	if got := Matchpoints([]int{400}); got[0] != 0 {
		t.Fatalf("single result mps = %f, want 0", got[0])
	}
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/bridge"
)

const boardWidth = 80

// BoardView is one board reconstructed from an analyzed file or the
// archive, ready for console rendering.
type BoardView struct {
	Ref      string
	BoardNum string
	Deal     bridge.Deal
	Contract string
	Declarer bridge.Seat
	Result   string
	// Score is the preformatted duplicate score with its vulnerability,
	// e.g. "+620 (NS vul)". Empty when the result is unknown.
	Score   string
	Players [4]string
	Tricks  [][]bridge.Card
	Costs   [][]int
}

// WriteBoard prints the hand diagram, the trick-by-trick cardplay with
// per-card DD costs, and a per-seat cost summary.
func WriteBoard(w io.Writer, v BoardView) {
	title := fmt.Sprintf("Board %s (Ref: %s)", v.BoardNum, v.Ref)
	if v.BoardNum == "" {
		title = fmt.Sprintf("Ref: %s", v.Ref)
	}
	fmt.Fprintf(w, "\n%s\n", banner(title, boardWidth))

	fmt.Fprintf(w, "\nContract: %s by %s    Result: %s", v.Contract, v.Declarer, v.Result)
	if v.Score != "" {
		fmt.Fprintf(w, "    Score: %s", v.Score)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Players: N=%s S=%s E=%s W=%s\n",
		v.Players[bridge.North], v.Players[bridge.South],
		v.Players[bridge.East], v.Players[bridge.West])

	writeDiagram(w, v.Deal)
	writeCardplay(w, v)
	writeSeatSummary(w, v)
}

func writeDiagram(w io.Writer, deal bridge.Deal) {
	fmt.Fprintf(w, "\n%s\n", center("DEAL", 40))
	fmt.Fprintln(w, rule(40))

	north := handLines(deal.Hand(bridge.North))
	south := handLines(deal.Hand(bridge.South))
	east := handLines(deal.Hand(bridge.East))
	west := handLines(deal.Hand(bridge.West))

	fmt.Fprintln(w, center("North", 40))
	for _, line := range north {
		fmt.Fprintln(w, center(line, 40))
	}
	fmt.Fprintf(w, "\n%-20s%20s\n", "West", "East")
	for i := range west {
		fmt.Fprintf(w, "%-20s%20s\n", west[i], east[i])
	}
	fmt.Fprintf(w, "\n%s\n", center("South", 40))
	for _, line := range south {
		fmt.Fprintln(w, center(line, 40))
	}
}

func handLines(h bridge.Hand) [4]string {
	return [4]string{
		"S: " + h[bridge.Spades].String(),
		"H: " + h[bridge.Hearts].String(),
		"D: " + h[bridge.Diamonds].String(),
		"C: " + h[bridge.Clubs].String(),
	}
}

func writeCardplay(w io.Writer, v BoardView) {
	fmt.Fprintf(w, "\n%s\n", banner("CARDPLAY", boardWidth))
	if len(v.Tricks) == 0 {
		fmt.Fprintln(w, "(No cardplay recorded)")
		return
	}

	strain, err := bridge.TrumpFromContract(v.Contract)
	if err != nil {
		strain = bridge.NoTrump
	}
	seats := analysis.TrickSeats(strain, v.Declarer, v.Tricks)

	fmt.Fprintf(w, "\n%5s | %-8s %-8s %-8s %-8s | %s\n",
		"Trick", "Leader", "2nd", "3rd", "4th", "DD Cost")
	fmt.Fprintln(w, rule(boardWidth))

	for t, trick := range v.Tricks {
		cells := [4]string{"-", "-", "-", "-"}
		for i, card := range trick {
			cells[i] = fmt.Sprintf("%s:%s", seats[t][i], card)
		}
		fmt.Fprintf(w, "%5d | %-8s %-8s %-8s %-8s | %s\n",
			t+1, cells[0], cells[1], cells[2], cells[3], costCell(v.Costs, t))
	}
}

func costCell(costs [][]int, t int) string {
	if t >= len(costs) || len(costs[t]) == 0 {
		return "-"
	}
	parts := make([]string, len(costs[t]))
	for i, c := range costs[t] {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// writeSeatSummary totals plays, errors, and cost per seat from the
// decoded cost stream.
func writeSeatSummary(w io.Writer, v BoardView) {
	if len(v.Costs) == 0 {
		return
	}
	strain, err := bridge.TrumpFromContract(v.Contract)
	if err != nil {
		strain = bridge.NoTrump
	}
	seats := analysis.TrickSeats(strain, v.Declarer, v.Tricks)

	var plays, errors, cost [4]int
	for t, trickCosts := range v.Costs {
		if t >= len(seats) {
			break
		}
		for i, c := range trickCosts {
			if i >= len(seats[t]) {
				break
			}
			seat := seats[t][i]
			plays[seat]++
			cost[seat] += c
			if c > 0 {
				errors[seat]++
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", banner("DD SUMMARY", boardWidth))
	fmt.Fprintf(w, "\n%-6s %8s %8s %8s\n", "Seat", "Plays", "Errors", "Cost")
	for _, seat := range []bridge.Seat{bridge.North, bridge.East, bridge.South, bridge.West} {
		role := "defending"
		if seat.Partnership() == v.Declarer.Partnership() {
			role = "declaring"
		}
		fmt.Fprintf(w, "%-6s %8d %8d %8d  (%s)\n",
			seat.Name(), plays[seat], errors[seat], cost[seat], role)
	}
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

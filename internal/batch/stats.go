package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/archive"
	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/fifthchair/tricklens/internal/stats"
)

// archiveStatsPageSize is how many boards each archive page fetch asks for.
const archiveStatsPageSize = 200

// LoadStats aggregates per-player cost records from an analyzed CSV.
// Cost records are regenerated by replaying the stored cardplay, so
// each cost lands on the seat that actually played the card even after
// the lead rotates. Rows without a usable analysis value, or whose
// stored analysis no longer matches the cardplay, count as skipped.
func LoadStats(path string) (*stats.Aggregator, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	cols := FindColumns(table.Header)
	if err := cols.RequireStats(); err != nil {
		return nil, err
	}

	agg := stats.NewAggregator()
	for _, row := range table.Rows {
		players := cols.players(row)
		records, declarer, ok := buildRecords(
			field(row, cols.Analysis),
			field(row, cols.Contract),
			field(row, cols.Declarer),
			field(row, cols.Cardplay),
			players,
		)
		if !ok {
			agg.Skip()
			continue
		}
		agg.AddBoard(records, players, declarer)
	}
	return agg, nil
}

// LoadArchiveStats aggregates per-player cost records from every board
// in an archive, paging through the store. Boards without a usable
// analysis value count as skipped.
func LoadArchiveStats(ctx context.Context, store archive.Store) (*stats.Aggregator, error) {
	agg := stats.NewAggregator()
	token := ""
	for {
		page, err := store.ListBoards(ctx, archiveStatsPageSize, token)
		if err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}
		for _, board := range page.Boards {
			var players [4]string
			players[bridge.North] = board.PlayerNorth
			players[bridge.East] = board.PlayerEast
			players[bridge.South] = board.PlayerSouth
			players[bridge.West] = board.PlayerWest

			records, declarer, ok := buildRecords(
				board.Analysis, board.Contract, board.Declarer, board.Cardplay, players)
			if !ok {
				agg.Skip()
				continue
			}
			agg.AddBoard(records, players, declarer)
		}
		if page.NextPageToken == "" {
			return agg, nil
		}
		token = page.NextPageToken
	}
}

// buildRecords rebuilds the cost records for one analyzed board. Dummy's
// plays are credited to the declarer, matching how the analyzer
// attributes them.
func buildRecords(value, contract, declarerStr, cardplay string, players [4]string) ([]analysis.CostRecord, bridge.Seat, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, errorPrefix) {
		return nil, 0, false
	}
	costs, err := analysis.ParseCostStream(value)
	if err != nil {
		return nil, 0, false
	}
	declarer, err := bridge.ParseSeat(declarerStr)
	if err != nil {
		return nil, 0, false
	}
	strain, err := bridge.TrumpFromContract(contract)
	if err != nil {
		return nil, 0, false
	}
	tricks, err := analysis.ParseCardplay(cardplay)
	if err != nil || len(costs) > len(tricks) {
		return nil, 0, false
	}

	seats := analysis.TrickSeats(strain, declarer, tricks)

	var records []analysis.CostRecord
	for t, trickCosts := range costs {
		if len(trickCosts) > len(seats[t]) {
			return nil, 0, false
		}
		for i, cost := range trickCosts {
			seat := seats[t][i]
			name := players[seat]
			if seat.Partnership() == declarer.Partnership() {
				name = players[declarer]
			}
			records = append(records, analysis.CostRecord{
				Player:   name,
				Seat:     seat,
				Trick:    t + 1,
				Position: i,
				Card:     tricks[t][i],
				Cost:     cost,
			})
		}
	}
	return records, declarer, true
}

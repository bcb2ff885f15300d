// Package export turns the metrics projections into CSV reports.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/metrics"
)

// Kind names one of the three reports.
type Kind string

const (
	KindPlayers Kind = "players" // Best players by KD
	KindTeams   Kind = "teams"   // Best teams by win rate
	KindMaps    Kind = "maps"    // Most played maps by rounds
)

var ErrUnknownKind = fmt.Errorf("%w: unknown export, want players, teams or maps", errs.ErrValidation)

func ParseKind(kind string) (Kind, error) {
	switch Kind(kind) {
	case KindPlayers, KindTeams, KindMaps:
		return Kind(kind), nil
	default:
		return "", ErrUnknownKind
	}
}

// FileName is the suggested file name for a report.
func (k Kind) FileName() string {
	switch k {
	case KindPlayers:
		return "best_players.csv"
	case KindTeams:
		return "best_teams.csv"
	default:
		return "most_played_maps.csv"
	}
}

func PlayerRows(totals []metrics.PlayerTotals) [][]string {
	rows := [][]string{{"Player", "Total_Kills", "Total_Deaths", "KD"}}
	for _, p := range totals {
		rows = append(rows, []string{p.Name, strconv.Itoa(p.Kills), strconv.Itoa(p.Deaths), fmt.Sprintf("%.2f", p.KD)})
	}

	return rows
}

// TeamRows reports match wins and losses; the win rate column is computed from rounds.
func TeamRows(totals []metrics.TeamTotals) [][]string {
	rows := [][]string{{"Team", "Wins", "Losses", "WinRate_%"}}
	for _, team := range totals {
		rows = append(rows, []string{team.Name, strconv.Itoa(team.Wins), strconv.Itoa(team.Losses), fmt.Sprintf("%.2f", team.WinRate)})
	}

	return rows
}

func MapRows(totals []metrics.MapTotals) [][]string {
	rows := [][]string{{"Map", "Total_Rounds"}}
	for _, m := range totals {
		rows = append(rows, []string{m.Name, strconv.Itoa(m.Rounds)})
	}

	return rows
}

// Rows builds the header and data rows of a report from the current store.
func Rows(ctx context.Context, engine *metrics.Engine, kind Kind) ([][]string, error) {
	switch kind {
	case KindPlayers:
		totals, err := engine.BestPlayers(ctx)
		if err != nil {
			return nil, err
		}

		return PlayerRows(totals), nil
	case KindTeams:
		totals, err := engine.BestTeams(ctx)
		if err != nil {
			return nil, err
		}

		return TeamRows(totals), nil
	case KindMaps:
		totals, err := engine.MostPlayedMaps(ctx)
		if err != nil {
			return nil, err
		}

		return MapRows(totals), nil
	default:
		return nil, ErrUnknownKind
	}
}

// Write renders a report as CSV.
func Write(ctx context.Context, w io.Writer, engine *metrics.Engine, kind Kind) error {
	rows, err := Rows(ctx, engine, kind)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s csv: %w", kind, err)
	}

	return nil
}

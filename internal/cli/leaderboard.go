package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/trentd187/statteam/internal/metrics"
)

func leaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print teams ranked by wins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, errSetup := setup(cmd.Context())
			if errSetup != nil {
				return errSetup
			}
			defer app.Close()

			standings, errBoard := metrics.NewEngine(app.store).Leaderboard(cmd.Context())
			if errBoard != nil {
				return errBoard
			}

			return renderLeaderboard(cmd.OutOrStdout(), standings)
		},
	}
}

func renderLeaderboard(w io.Writer, standings []metrics.Standing) error {
	table := tablewriter.NewTable(w)
	table.Header("Rank", "Team", "Wins")

	for _, standing := range standings {
		if errAppend := table.Append([]string{
			strconv.Itoa(standing.Rank),
			standing.Name,
			strconv.Itoa(standing.Wins),
		}); errAppend != nil {
			return errAppend
		}
	}

	return table.Render()
}

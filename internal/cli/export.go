package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/trentd187/statteam/internal/export"
	"github.com/trentd187/statteam/internal/log"
	"github.com/trentd187/statteam/internal/metrics"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export players|teams|maps",
		Short:     "Write a CSV report",
		Long:      "Writes best players by KD, best teams by win rate or most played maps by rounds.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(export.KindPlayers), string(export.KindTeams), string(export.KindMaps)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, errKind := export.ParseKind(args[0])
			if errKind != nil {
				return errKind
			}

			app, errSetup := setup(cmd.Context())
			if errSetup != nil {
				return errSetup
			}
			defer app.Close()

			if output == "" {
				output = kind.FileName()
			}

			if output == "-" {
				return export.Write(cmd.Context(), cmd.OutOrStdout(), metrics.NewEngine(app.store), kind)
			}

			return writeFile(cmd.Context(), output, func(ctx context.Context, w io.Writer) error {
				return export.Write(ctx, w, metrics.NewEngine(app.store), kind)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, - for stdout (default: a name matching the report)")

	return cmd
}

func writeFile(ctx context.Context, path string, write func(context.Context, io.Writer) error) error {
	file, errCreate := os.Create(path)
	if errCreate != nil {
		return fmt.Errorf("create %s: %w", path, errCreate)
	}
	defer log.Closer(file)

	if errWrite := write(ctx, file); errWrite != nil {
		return errWrite
	}

	slog.Info("Wrote report", slog.String("path", path))

	return nil
}

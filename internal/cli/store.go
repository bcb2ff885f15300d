package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/trentd187/statteam/internal/database"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show or switch the store in use",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the store currently in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, errSetup := setup(cmd.Context())
			if errSetup != nil {
				return errSetup
			}
			defer app.Close()

			return describeStore(cmd.OutOrStdout(), app.store)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <path>",
		Short: "Switch to another store, creating an empty one when the file does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, errSetup := setup(cmd.Context())
			if errSetup != nil {
				return errSetup
			}
			defer app.Close()

			// Running locally is acting as the administrator.
			if errSwitch := app.store.Switch(cmd.Context(), app.cfg.Resolve(args[0])); errSwitch != nil {
				return errSwitch
			}

			return describeStore(cmd.OutOrStdout(), app.store)
		},
	})

	return cmd
}

func describeStore(w io.Writer, store *database.Store) error {
	location := store.Location()

	info, errStat := os.Stat(location)
	if errStat != nil {
		// Database URLs have nothing to stat.
		_, err := fmt.Fprintln(w, location)

		return err
	}

	_, err := fmt.Fprintf(w, "%s\t%s\tmodified %s\n",
		location, humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime())) //nolint:gosec

	return err
}

// Package cli implements the command line interface of statteam.
//
// serve - Run the local API the front end talks to
// export players|teams|maps - Write one of the CSV reports
// leaderboard - Print the team ranking
// store show - Print the store currently in use
// store use - Switch to another store, creating it when missing
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trentd187/statteam/internal/config"
	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/log"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "statteam",
	Short:        "Team, match and player statistics for a small league",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(leaderboardCmd())
	rootCmd.AddCommand(storeCmd())

	if errExecute := rootCmd.Execute(); errExecute != nil {
		os.Exit(1)
	}
}

// env is what every command starts from: the configuration, the logger and the open store.
type env struct {
	cfg         *config.Config
	store       *database.Store
	closeLogger func()
}

func setup(ctx context.Context) (*env, error) {
	cfg, errConfig := config.Load()
	if errConfig != nil {
		return nil, fmt.Errorf("load config: %w", errConfig)
	}

	closeLogger := log.MustCreateLogger(cfg.LogFile, log.Level(cfg.LogLevel))

	store, errStore := database.Open(ctx, cfg.LastStoreFile, cfg.DefaultStore)
	if errStore != nil {
		closeLogger()

		return nil, errStore
	}

	return &env{cfg: cfg, store: store, closeLogger: closeLogger}, nil
}

func (e *env) Close() {
	log.Closer(e.store)
	e.closeLogger()
}

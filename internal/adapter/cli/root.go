// Package cli implements the operator commands of the scenarios tool.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-scenario-etl/internal/observability"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
	"github.com/couchcryptid/quake-scenario-etl/internal/settings"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	settingsPath string
	dbPath       string
	verbose      bool
}

// NewRootCmd builds the scenarios command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "scenarios",
		Short: "Build ShakeMap scenario inputs from rupture catalogs",
		Long: `Convert rupture catalogs (UCERF3 event sets, fault traces, ShakeMap
rupture files, point sources) into ShakeMap scenario input directories.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&g.settingsPath, "settings", "", "settings file (default ~/.quake-scenarios/scenarios.toml)")
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "scenario store (SQLite); disabled when empty")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log every scenario")

	root.AddCommand(
		newMkInputDirCmd(g),
		newFindCmd(),
		newListCmd(g),
		newSettingsCmd(g),
	)
	return root
}

func (g *globals) resolveSettingsPath() (string, error) {
	if g.settingsPath != "" {
		return g.settingsPath, nil
	}
	return settings.DefaultPath()
}

func (g *globals) loadSettings() (settings.Settings, error) {
	path, err := g.resolveSettingsPath()
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Load(path)
}

// openStore opens the scenario store, or returns nil when --db is unset.
func (g *globals) openStore() (*repository.SQLiteDB, error) {
	if g.dbPath == "" {
		return nil, nil
	}
	db, err := repository.NewSQLiteDB(g.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open scenario store: %w", err)
	}
	return db, nil
}

func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	return observability.NewCLILogger(cmd.ErrOrStderr(), g.verbose)
}

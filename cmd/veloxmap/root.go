package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxmap/config"
)

// app holds the state shared by the subcommands.
type app struct {
	cfgFile  string
	logLevel string
	file     *config.File
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "veloxmap",
		Short: "Resolve and check the column types of mapped entities",
		Long: `veloxmap reads a YAML mapping file, resolves the basic type of every
mapped attribute and compares the result with an existing database.

Examples:
  veloxmap resolve --config mapping.yaml
  veloxmap resolve --watch
  veloxmap converters
  veloxmap check --dsn "postgres://localhost/app?sslmode=disable"`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "veloxmap.yaml", "mapping file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level of the mapping file")

	root.AddCommand(
		newResolveCmd(a),
		newConvertersCmd(a),
		newCheckCmd(a),
	)
	return root
}

// load reads the mapping file and sets up the logger.
func (a *app) load(cmd *cobra.Command) error {
	f, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		f.Logging.Level = a.logLevel
	}
	a.file = f
	a.logger = f.Logging.Logger(cmd.ErrOrStderr())
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/syssam/veloxmap/config"
	"github.com/syssam/veloxmap/dialect/sql"
	"github.com/syssam/veloxmap/dialect/sql/schema"
)

var errSchemaDrift = errors.New("database schema does not match the mapping")

type checkOptions struct {
	dsn            string
	timeout        time.Duration
	concurrency    int
	slowThreshold  time.Duration
	allowUnmapped  bool
	allowTypeDrift bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the mapped tables with an existing database",
		Long: `Inspect every mapped table in the configured database and report
columns that are missing, unmapped or of an incompatible type.

The command exits with a non-zero status when errors are found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			return a.check(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.dsn, "dsn", "", "database DSN, overrides database.dsn of the mapping file")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout of the whole check")
	f.IntVar(&opts.concurrency, "concurrency", 4, "number of tables inspected in parallel")
	f.DurationVar(&opts.slowThreshold, "slow-threshold", time.Second, "log inspection queries slower than this")
	f.BoolVar(&opts.allowUnmapped, "allow-unmapped", false, "do not warn about unmapped columns")
	f.BoolVar(&opts.allowTypeDrift, "allow-type-mismatch", false, "report incompatible column types as warnings")
	return cmd
}

func (a *app) check(cmd *cobra.Command, opts *checkOptions) error {
	md, err := a.file.Build(config.WithLogger(a.logger))
	if err != nil {
		return err
	}
	d := a.file.Dialect
	desired, err := schema.TablesFromMetadata(md, d)
	if err != nil {
		return err
	}
	dsn := opts.dsn
	if dsn == "" {
		dsn = a.file.Database.DSN
	}
	if dsn == "" {
		return errors.New("check: database.dsn is not set")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	sd, err := sql.OpenWithStats(d, dsn,
		sql.WithSlowThreshold(opts.slowThreshold),
		sql.WithSlowQueryLog(a.logger),
		sql.WithDebugLog(a.logger),
	)
	if err != nil {
		return err
	}
	defer sd.Close()
	if err := sd.Ping(ctx); err != nil {
		return err
	}

	current, err := inspectTables(ctx, sql.NewInspector(sd), desired, opts.concurrency)
	if err != nil {
		return err
	}

	var vopts []schema.ValidateOption
	if opts.allowUnmapped {
		vopts = append(vopts, schema.AllowUnmappedColumns())
	}
	if opts.allowTypeDrift {
		vopts = append(vopts, schema.AllowTypeMismatch())
	}
	result := schema.ValidateSchema(desired)
	result.Merge(schema.ValidateDiff(current, desired, vopts...))

	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	a.logger.Info("schema check done",
		"dialect", d,
		"tables", len(desired),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"stats", sd.QueryStats().Stats(),
	)
	if result.HasErrors() {
		return errSchemaDrift
	}
	return nil
}

// inspectTables inspects the desired tables concurrently. Tables missing
// from the database are left out of the result.
func inspectTables(ctx context.Context, in *sql.Inspector, desired []*schema.Table, limit int) ([]*schema.Table, error) {
	found := make([]*schema.Table, len(desired))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, t := range desired {
		g.Go(func() error {
			ct, err := in.Inspect(ctx, t.Name)
			switch {
			case sql.IsTableNotFound(err):
				return nil
			case err != nil:
				return err
			}
			found[i] = ct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	current := make([]*schema.Table, 0, len(found))
	for _, t := range found {
		if t != nil {
			current = append(current, t)
		}
	}
	return current, nil
}

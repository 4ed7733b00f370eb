package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxmap/config"
	"github.com/syssam/veloxmap/dialect/sql/schema"
)

func newResolveCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved basic type of every mapped attribute",
		Long: `Resolve the basic type of every attribute declared in the mapping file.

With --watch the mapping file is reloaded on every change and the
resolution is printed again until the command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if !watch {
				md, err := a.file.Build(config.WithLogger(a.logger))
				if err != nil {
					return err
				}
				return printResolution(cmd.OutOrStdout(), md, a.file.Dialect)
			}
			return a.watch(cmd)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the mapping file on change")
	return cmd
}

func (a *app) watch(cmd *cobra.Command) error {
	h, err := config.NewHolder(a.cfgFile, a.logger)
	if err != nil {
		return err
	}
	defer h.Stop()

	out := cmd.OutOrStdout()
	h.OnChange(func(md *config.Metadata) {
		if err := printResolution(out, md, h.File().Dialect); err != nil {
			a.logger.Error("print resolution", "error", err)
		}
	})
	if err := printResolution(out, h.Get(), h.File().Dialect); err != nil {
		return err
	}
	if err := h.WatchFile(); err != nil {
		return err
	}
	a.logger.Info("watching mapping file", "path", a.cfgFile)
	<-cmd.Context().Done()
	return nil
}

func printResolution(w io.Writer, md *config.Metadata, d string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTRIBUTE\tTYPE\tGO\tSQL\tCOLUMN")
	for _, e := range md.Entities() {
		for _, p := range e.Properties() {
			bt, err := p.Type()
			if err != nil {
				return err
			}
			code := bt.SQLDescriptor().Code()
			column, err := schema.FormatColumnType(code, d, 0)
			if err != nil {
				column = "-"
			}
			fmt.Fprintf(tw, "%s.%s\t%s\t%s\t%s\t%s\n", e.Name(), p.Name, bt.Name(), bt.GoDescriptor(), code, column)
		}
	}
	return tw.Flush()
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxmap/converter"
)

func newConvertersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "converters",
		Short: "List the built-in converters and those enabled by the mapping file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled := map[string]bool{}
			// The mapping file is optional unless it was named explicitly.
			if err := a.load(cmd); err != nil {
				if cmd.Flags().Changed("config") {
					return err
				}
			} else {
				for _, c := range a.file.Converters {
					enabled[c.Name] = c.AutoApply
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tATTRIBUTE\tCOLUMN\tENABLED")
			for _, def := range converter.Builtins() {
				state := "no"
				if auto, ok := enabled[def.Name()]; ok {
					state = "yes"
					if auto {
						state = "auto-apply"
					}
				}
				fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", def.Name(), def.AttributeType(), def.ColumnType(), state)
			}
			return tw.Flush()
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/realknobs/pkg/config"
)

func newParamsCmd(opts *options) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Describe the parameters of a plugin",
		Long: `Describe every parameter slot of the selected plugin in index order,
after the layout file (if any) has been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := opts.instance(cmd)
			if err != nil {
				return err
			}
			if dump {
				return config.FromBank(inst.Info.ID, inst.Bank()).Write(cmd.OutOrStdout())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tNAME\tRANGE\tDEFAULT\tVALUE")
			for i, p := range inst.GetParameters().All() {
				fmt.Fprintf(w, "%d\t%s\t%g..%g\t%s\t%s\n",
					i, p.Name, p.Min, p.Max,
					p.FormatValue(p.DefaultValue),
					p.FormatValue(inst.GetParameterValue(uint32(i))))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&dump, "dump-layout", false, "print the current state as a layout file")
	return cmd
}

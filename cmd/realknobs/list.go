package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justyntemme/realknobs/pkg/plugin"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKNOBS\tPARAMS\tVERSION\tCODE\tUID\tDESCRIPTION")
			for _, p := range plugin.All() {
				info := p.GetInfo()
				inst, err := p.CreateProcessor()
				if err != nil {
					return err
				}
				code, err := info.VersionCode()
				if err != nil {
					return fmt.Errorf("%s: %w", info.ID, err)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%#08x\t%s\t%s\n",
					info.ID,
					inst.Bank().Len(),
					inst.Bank().ParamCount(),
					info.Version,
					code,
					uuid.UUID(info.UID()),
					info.Description)
			}
			return w.Flush()
		},
	}
}

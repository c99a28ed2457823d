package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/realknobs/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render IN.mid OUT.mid",
		Short: "Run a Standard MIDI File through the knob bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := opts.instance(cmd)
			if err != nil {
				return err
			}
			res, err := render.File(args[0], args[1], inst.Bank())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tracks, %d events, %d replaced\n",
				args[1], res.Tracks, res.Events, res.Replaced)
			return nil
		},
	}
}

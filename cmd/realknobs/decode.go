package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/realknobs/pkg/knobs"
)

func newDecodeCmd() *cobra.Command {
	var sensitivity float64

	cmd := &cobra.Command{
		Use:   "decode BYTE...",
		Short: "Show the knob delta each encoder byte produces",
		Long: `Show the delta a relative encoder byte (data2 of the CC) produces under
signed-relative and thresholded decoding. Bytes may be decimal or 0x hex.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]uint8, len(args))
			for i, arg := range args {
				v, err := strconv.ParseUint(arg, 0, 8)
				if err != nil || v > 127 {
					return fmt.Errorf("decode: %q is not a 7-bit value", arg)
				}
				values[i] = uint8(v)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "IN\tSIGNED\tTHRESHOLDED x%g\n", sensitivity)
			for _, v := range values {
				fmt.Fprintf(w, "%d\t%+d\t%+d\n", v, knobs.SignedRelative(v), knobs.Thresholded(v, sensitivity))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64VarP(&sensitivity, "sensitivity", "s", 1, "sensitivity for thresholded decoding")
	return cmd
}

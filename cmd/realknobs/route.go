package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/justyntemme/realknobs/pkg/control"
	"github.com/justyntemme/realknobs/pkg/framework/debug"
	"github.com/justyntemme/realknobs/pkg/live"
)

func newRouteCmd(opts *options) *cobra.Command {
	var (
		in, out   string
		httpAddr  string
		listPorts bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Route a live MIDI input through the knob bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer gomidi.CloseDriver()

			if listPorts {
				ins, outs := live.Ports()
				for _, p := range ins {
					fmt.Fprintf(cmd.OutOrStdout(), "in\t%s\n", p)
				}
				for _, p := range outs {
					fmt.Fprintf(cmd.OutOrStdout(), "out\t%s\n", p)
				}
				return nil
			}
			if in == "" || out == "" {
				return fmt.Errorf("route: --in and --out are required")
			}

			inst, err := opts.instance(cmd)
			if err != nil {
				return err
			}
			inPort, outPort, err := live.Open(in, out)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := debug.Default().With(inst.Info.ID)
			if httpAddr != "" {
				srv := control.NewServer(inst.Bank(), log.With("http"))
				go func() {
					if err := srv.ListenAndServe(ctx, httpAddr); err != nil {
						log.Error("%v", err)
						stop()
					}
				}()
			}

			_, err = live.Run(ctx, inst.Bank(), inPort, outPort, log)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in, "in", "", "input port name (substring match)")
	flags.StringVar(&out, "out", "", "output port name (substring match)")
	flags.StringVar(&httpAddr, "http", "", "serve the parameter surface on this address")
	flags.BoolVar(&listPorts, "list-ports", false, "list MIDI ports and exit")
	return cmd
}

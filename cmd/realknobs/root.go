package main

import (
	"github.com/spf13/cobra"

	"github.com/justyntemme/realknobs/pkg/config"
	"github.com/justyntemme/realknobs/pkg/framework/debug"
	"github.com/justyntemme/realknobs/pkg/plugin"
)

type options struct {
	logLevel string
	pluginID string
	layout   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "realknobs",
		Short: "Absolute CC knobs for relative endless encoders",
		Long: `realknobs turns relative encoder movement into absolute MIDI CC values.

It renders MIDI files offline, routes live MIDI ports and serves the knob
parameters over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := debug.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			debug.SetOutput(cmd.ErrOrStderr())
			debug.SetLevel(level)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn, error or off")
	flags.StringVarP(&opts.pluginID, "plugin", "p", plugin.RealKnobsX8ID, "plugin to build")
	flags.StringVarP(&opts.layout, "layout", "l", "", "knob layout file (YAML or JSON)")

	cmd.AddCommand(
		newListCmd(),
		newParamsCmd(opts),
		newRenderCmd(opts),
		newRouteCmd(opts),
		newDecodeCmd(),
	)
	return cmd
}

// instance builds the selected plugin and applies the layout file. A plugin
// named in the layout wins unless --plugin was given explicitly.
func (o *options) instance(cmd *cobra.Command) (*plugin.Instance, error) {
	var layout *config.Layout
	id := o.pluginID
	if o.layout != "" {
		l, err := config.Load(o.layout)
		if err != nil {
			return nil, err
		}
		layout = l
		if l.Plugin != "" && !cmd.Flags().Changed("plugin") {
			id = l.Plugin
		}
	}

	p, err := plugin.Lookup(id)
	if err != nil {
		return nil, err
	}
	inst, err := p.CreateProcessor()
	if err != nil {
		return nil, err
	}
	if layout != nil {
		if err := layout.Apply(inst.Bank()); err != nil {
			return nil, err
		}
		debug.Debug("applied %d knob overrides from %s", len(layout.Knobs), o.layout)
	}
	return inst, nil
}

package plugin

import (
	"github.com/justyntemme/realknobs/pkg/framework/plugin"
	"github.com/justyntemme/realknobs/pkg/knobs"
)

const (
	maker   = "Anguselheim Studios"
	version = "0.1.0"
)

// Built-in plugin IDs.
const (
	RealKnobsID          = "real_knobs"
	RealKnobsX8ID        = "real_knobs_x8"
	RealKnobsX8ReducedID = "real_knobs_x8_reduced"
)

// KnobPlugin is a catalog entry that builds knob banks of one shape.
type KnobPlugin struct {
	info plugin.Info
	cfg  knobs.Config
}

// NewKnobPlugin pairs metadata with a bank configuration.
func NewKnobPlugin(info plugin.Info, cfg knobs.Config) *KnobPlugin {
	return &KnobPlugin{info: info, cfg: cfg}
}

// GetInfo implements Plugin.
func (p *KnobPlugin) GetInfo() plugin.Info {
	return p.info
}

// Config returns the bank configuration instances are built with.
func (p *KnobPlugin) Config() knobs.Config {
	return p.cfg
}

// CreateProcessor implements Plugin.
func (p *KnobPlugin) CreateProcessor() (*Instance, error) {
	return NewInstance(p.info, p.cfg)
}

func builtin(id, label, description string, cfg knobs.Config) *KnobPlugin {
	return NewKnobPlugin(plugin.Info{
		ID:          id,
		Label:       label,
		Description: description,
		Maker:       maker,
		HomePage:    "TBD",
		License:     "ISC",
		Version:     version,
		Category:    "MIDI|Utility",
	}, cfg)
}

func init() {
	for _, p := range []*KnobPlugin{
		builtin(RealKnobsID, "real_knobs",
			"Virtual absolute CC knob for use with relative endless encoders.",
			knobs.Single),
		builtin(RealKnobsX8ID, "real_knobs_x8",
			"8 virtual absolute CC knobs for use with relative endless encoders.",
			knobs.Bank8),
		builtin(RealKnobsX8ReducedID, "real_knobs_x8_reduced",
			"8 virtual absolute CC knobs without sensitivity control.",
			knobs.Bank8Reduced),
	} {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}

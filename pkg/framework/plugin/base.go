package plugin

import (
	"github.com/justyntemme/realknobs/pkg/framework/param"
)

// Base provides core functionality for all plugins
type Base struct {
	Info   Info
	params *param.Registry
}

// NewBase creates a new plugin base around an existing registry. A nil
// registry gets a fresh one.
func NewBase(info Info, params *param.Registry) *Base {
	if params == nil {
		params = param.NewRegistry()
	}
	return &Base{
		Info:   info,
		params: params,
	}
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// AudioPorts reports the number of audio inputs and outputs. MIDI plugins
// declare none.
func (b *Base) AudioPorts() (inputs, outputs int) {
	return 0, 0
}

// Package plugin provides base processor functionality to reduce boilerplate in MIDI plugins.
package plugin

import (
	"github.com/justyntemme/realknobs/pkg/framework/param"
	"github.com/justyntemme/realknobs/pkg/framework/process"
)

// Processor is what a host drives once per cycle.
type Processor interface {
	// Initialize is called once before the first cycle.
	Initialize(sampleRate float64, maxEvents int) error

	// ProcessEvents runs one cycle. No allocations.
	ProcessEvents(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// SetActive is called when processing starts/stops
	SetActive(active bool) error
}

// BaseProcessor provides common functionality for MIDI processors
type BaseProcessor struct {
	params     *param.Registry
	sampleRate float64
	maxEvents  int
	active     bool

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxEvents int) error
	onReset      func()
}

// NewBaseProcessor creates a base processor over params
func NewBaseProcessor(params *param.Registry) *BaseProcessor {
	if params == nil {
		params = param.NewRegistry()
	}
	return &BaseProcessor{params: params}
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxEvents int) error {
	b.sampleRate = sampleRate
	b.maxEvents = maxEvents

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxEvents)
	}

	return nil
}

// GetParameters implements the Processor interface
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// SetActive implements the Processor interface. Deactivation fires the
// reset callback first.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.active && b.onReset != nil {
		b.onReset()
	}
	b.active = active
	return nil
}

// Active reports the last state passed to SetActive.
func (b *BaseProcessor) Active() bool {
	return b.active
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxEvents returns the per-cycle event capacity passed to Initialize
func (b *BaseProcessor) MaxEvents() int {
	return b.maxEvents
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxEvents int) error) {
	b.onInitialize = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}

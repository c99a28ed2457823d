// Package process provides the per-cycle MIDI processing context handed from
// the host to a plugin.
package process

import (
	"github.com/justyntemme/realknobs/pkg/midi"
)

// Context carries one cycle's inbound events and the outbound sink. Buffers
// are allocated once in NewContext.
type Context struct {
	// Frames is the length of the current cycle.
	Frames uint32

	input   *midi.EventQueue
	scratch []midi.Event
	output  *midi.EventBuffer
}

// NewContext creates a context whose buffers hold maxEvents events per cycle.
func NewContext(maxEvents int) *Context {
	if maxEvents <= 0 {
		maxEvents = midi.DefaultCapacity
	}
	return &Context{
		input:   midi.NewEventQueue(),
		scratch: make([]midi.Event, 0, maxEvents),
		output:  midi.NewEventBuffer(maxEvents),
	}
}

// AddInputEvent queues an inbound event for the cycle.
func (c *Context) AddInputEvent(e midi.Event) {
	c.input.Add(e)
}

// AddInputEvents queues several inbound events.
func (c *Context) AddInputEvents(events []midi.Event) {
	c.input.AddMultiple(events)
}

// HasInputEvents reports whether any inbound events are queued.
func (c *Context) HasInputEvents() bool {
	return !c.input.IsEmpty()
}

// TakeInputEvents moves the queued events into the context's scratch slice
// and returns it. The slice is only valid until the next call.
func (c *Context) TakeInputEvents() []midi.Event {
	c.scratch = c.input.Drain(c.scratch[:0])
	return c.scratch
}

func (c *Context) ClearInputEvents() {
	c.input.Clear()
}

// Output returns the sink outbound events are written to.
func (c *Context) Output() midi.Writer {
	return c.output
}

// GetOutputEvents returns the outbound events written this cycle.
func (c *Context) GetOutputEvents() []midi.Event {
	return c.output.Events()
}

// DroppedOutputEvents reports how many outbound events did not fit.
func (c *Context) DroppedOutputEvents() int {
	return c.output.Dropped()
}

func (c *Context) ClearOutputEvents() {
	c.output.Reset()
}

func (c *Context) ClearAllEvents() {
	c.ClearInputEvents()
	c.ClearOutputEvents()
}

// ProcessEvents hands the queued events in [startFrame, endFrame) to
// processor in frame order. The events stay queued.
func (c *Context) ProcessEvents(processor midi.EventProcessor, startFrame, endFrame uint32) {
	c.input.ProcessEvents(processor, startFrame, endFrame)
}

package knobs

import "github.com/justyntemme/realknobs/pkg/midi"

// Process routes one cycle of inbound events to out in order. Every input
// event produces exactly one output event: either the event itself, or, when
// it is a CC matching a knob, a replacement CC carrying the knob's new
// absolute value. It returns the number of replaced events.
//
// Process does not allocate or lock and is meant for the real-time thread.
func (b *Bank) Process(in []midi.Event, out midi.Writer) int {
	replaced := 0
	for i := range in {
		if b.ProcessEvent(in[i], out) {
			replaced++
		}
	}
	return replaced
}

// ProcessEvent routes a single event and reports whether it was replaced.
func (b *Bank) ProcessEvent(e midi.Event, out midi.Writer) bool {
	if !e.IsControlChange() {
		out.WriteMidiEvent(e)
		return false
	}

	channel, cc := e.Channel(), e.Controller()
	for k := range b.knobs {
		knob := &b.knobs[k]
		if !knob.Matches(channel, cc) {
			continue
		}

		delta := b.cfg.Decoding.Delta(e.Value(), knob.Sensitivity())
		value := knob.apply(delta)
		out.WriteMidiEvent(midi.ControlChange(e.Frame, uint8(knob.Channel()-1), uint8(knob.CCNumber()), value))
		if b.onMove != nil {
			b.onMove(k, value)
		}
		return true
	}

	out.WriteMidiEvent(e)
	return false
}

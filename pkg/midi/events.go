// Package midi models the fixed three-byte channel voice events exchanged
// with a plugin host, and bridges them to gitlab.com/gomidi/midi/v2 messages.
package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Status and data masks of a channel voice message.
const (
	StatusNoteOff         byte = 0x80
	StatusNoteOn          byte = 0x90
	StatusPolyPressure    byte = 0xA0
	StatusControlChange   byte = 0xB0
	StatusProgramChange   byte = 0xC0
	StatusChannelPressure byte = 0xD0
	StatusPitchBend       byte = 0xE0
	StatusSystem          byte = 0xF0

	StatusMask  byte = 0xF0
	ChannelMask byte = 0x0F
	DataMask    byte = 0x7F
)

// MaxDataValue is the largest 7-bit data byte.
const MaxDataValue = 127

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
	EventTypeSystem
)

func (t EventType) String() string {
	switch t {
	case EventTypeNoteOff:
		return "NoteOff"
	case EventTypeNoteOn:
		return "NoteOn"
	case EventTypePolyPressure:
		return "PolyPressure"
	case EventTypeControlChange:
		return "CC"
	case EventTypeProgramChange:
		return "ProgramChange"
	case EventTypeChannelPressure:
		return "ChannelPressure"
	case EventTypePitchBend:
		return "PitchBend"
	default:
		return "System"
	}
}

// Event is one timestamped MIDI message of at most three bytes.
// Frame is the offset of the event inside the current processing cycle.
type Event struct {
	Frame uint32
	Size  uint8
	Data  [3]byte
}

// ControlChange builds a three-byte CC event. channel is 0-based.
func ControlChange(frame uint32, channel, controller, value uint8) Event {
	return Event{
		Frame: frame,
		Size:  3,
		Data: [3]byte{
			StatusControlChange | (channel & ChannelMask),
			controller & DataMask,
			value & DataMask,
		},
	}
}

// Status returns the raw status byte.
func (e Event) Status() byte {
	return e.Data[0]
}

// Type classifies the event by its status nibble.
func (e Event) Type() EventType {
	switch e.Data[0] & StatusMask {
	case StatusNoteOff:
		return EventTypeNoteOff
	case StatusNoteOn:
		return EventTypeNoteOn
	case StatusPolyPressure:
		return EventTypePolyPressure
	case StatusControlChange:
		return EventTypeControlChange
	case StatusProgramChange:
		return EventTypeProgramChange
	case StatusChannelPressure:
		return EventTypeChannelPressure
	case StatusPitchBend:
		return EventTypePitchBend
	default:
		return EventTypeSystem
	}
}

// IsControlChange reports whether the status nibble is 0xB.
func (e Event) IsControlChange() bool {
	return e.Data[0]&StatusMask == StatusControlChange
}

// Channel returns the 0-based channel nibble.
func (e Event) Channel() uint8 {
	return e.Data[0] & ChannelMask
}

// Controller returns data1 masked to 7 bits.
func (e Event) Controller() uint8 {
	return e.Data[1] & DataMask
}

// Value returns data2 masked to 7 bits.
func (e Event) Value() uint8 {
	return e.Data[2] & DataMask
}

// Message copies the event bytes into a gomidi message.
func (e Event) Message() gomidi.Message {
	size := int(e.Size)
	if size > len(e.Data) {
		size = len(e.Data)
	}
	msg := make(gomidi.Message, size)
	copy(msg, e.Data[:size])
	return msg
}

// FromMessage converts a gomidi message into an Event at the given frame.
// Messages longer than three bytes (SysEx) are rejected.
func FromMessage(frame uint32, msg gomidi.Message) (Event, bool) {
	if len(msg) == 0 || len(msg) > 3 {
		return Event{}, false
	}
	e := Event{Frame: frame, Size: uint8(len(msg))}
	copy(e.Data[:], msg)
	return e, true
}

func (e Event) String() string {
	if e.IsControlChange() {
		return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, frame:%d}",
			e.Channel(), e.Controller(), e.Value(), e.Frame)
	}
	return fmt.Sprintf("%s{% X, frame:%d}", e.Type(), e.Data[:e.size()], e.Frame)
}

// Describe renders the event through gomidi's message formatter.
func (e Event) Describe() string {
	return e.Message().String()
}

func (e Event) size() int {
	if int(e.Size) > len(e.Data) {
		return len(e.Data)
	}
	return int(e.Size)
}

const (
	CCModWheel   uint8 = 1
	CCBreath     uint8 = 2
	CCFoot       uint8 = 4
	CCVolume     uint8 = 7
	CCBalance    uint8 = 8
	CCPan        uint8 = 10
	CCExpression uint8 = 11
	CCSustain    uint8 = 64

	// CCUndefined102 is the first of the undefined controllers 102-119,
	// free for user assignment.
	CCUndefined102 uint8 = 102
)

// Writer receives outbound events. WriteMidiEvent returns false when the
// event could not be stored.
type Writer interface {
	WriteMidiEvent(e Event) bool
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(e Event) bool

func (f WriterFunc) WriteMidiEvent(e Event) bool {
	return f(e)
}

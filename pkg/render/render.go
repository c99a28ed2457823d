// Package render runs Standard MIDI Files through a knob bank offline.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/realknobs/pkg/knobs"
	"github.com/justyntemme/realknobs/pkg/midi"
)

// Result summarizes a render.
type Result struct {
	Tracks int
	// Events counts channel voice events handed to the bank.
	Events   int
	Replaced int
}

type located struct {
	tick  uint64
	track int
	index int
}

// Render returns a copy of src with every channel voice event routed
// through bank. Events from all tracks are fed in absolute tick order so
// knobs driven from several tracks integrate in playback order. Meta and
// SysEx events are copied unchanged.
func Render(src *smf.SMF, bank *knobs.Bank) (*smf.SMF, Result, error) {
	res := Result{Tracks: len(src.Tracks)}

	tracks := make([][]smf.Event, len(src.Tracks))
	var queue []located
	for t, track := range src.Tracks {
		tracks[t] = make([]smf.Event, len(track))
		var tick uint64
		for i, ev := range track {
			tracks[t][i] = ev
			tick += uint64(ev.Delta)
			if isChannelVoice(ev.Message) {
				queue = append(queue, located{tick: tick, track: t, index: i})
			}
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].tick < queue[j].tick
	})

	var out midi.Event
	sink := midi.WriterFunc(func(e midi.Event) bool {
		out = e
		return true
	})
	for _, loc := range queue {
		ev := &tracks[loc.track][loc.index]
		in, ok := midi.FromMessage(uint32(loc.tick), gomidi.Message(ev.Message))
		if !ok {
			continue
		}
		res.Events++
		if bank.ProcessEvent(in, sink) {
			res.Replaced++
			ev.Message = smf.Message(out.Message())
		}
	}

	dst := smf.New()
	dst.TimeFormat = src.TimeFormat
	for t, events := range tracks {
		var track smf.Track
		closed := false
		for _, ev := range events {
			if isEndOfTrack(ev.Message) {
				track.Close(ev.Delta)
				closed = true
				break
			}
			track.Add(ev.Delta, ev.Message)
		}
		if !closed {
			track.Close(0)
		}
		if err := dst.Add(track); err != nil {
			return nil, res, fmt.Errorf("render: track %d: %w", t, err)
		}
	}
	return dst, res, nil
}

// Stream reads an SMF from r, renders it and writes the result to w.
func Stream(r io.Reader, w io.Writer, bank *knobs.Bank) (Result, error) {
	src, err := smf.ReadFrom(r)
	if err != nil {
		return Result{}, fmt.Errorf("render: read: %w", err)
	}
	dst, res, err := Render(src, bank)
	if err != nil {
		return res, err
	}
	if _, err := dst.WriteTo(w); err != nil {
		return res, fmt.Errorf("render: write: %w", err)
	}
	return res, nil
}

// File renders the SMF at inPath into outPath.
func File(inPath, outPath string, bank *knobs.Bank) (Result, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	res, err := Stream(bytes.NewReader(data), &buf, bank)
	if err != nil {
		return res, fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return res, fmt.Errorf("render: %w", err)
	}
	return res, nil
}

func isChannelVoice(msg smf.Message) bool {
	return len(msg) > 0 && len(msg) <= 3 && msg[0] >= 0x80 && msg[0] < 0xF0
}

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

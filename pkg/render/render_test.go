package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/realknobs/pkg/knobs"
)

func twoTrackFile(t *testing.T) []byte {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)

	var a smf.Track
	a.Add(10, gomidi.ControlChange(0, 7, 10))
	a.Add(0, gomidi.NoteOn(0, 60, 100))
	a.Add(4, gomidi.ControlChange(0, 1, 64))
	a.Close(0)
	require.NoError(t, s.Add(a))

	var b smf.Track
	b.Add(5, gomidi.ControlChange(0, 7, 1))
	b.Close(20)
	require.NoError(t, s.Add(b))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func controlChanges(track smf.Track) [][3]uint8 {
	var out [][3]uint8
	for _, ev := range track {
		var ch, ctrl, val uint8
		if gomidi.Message(ev.Message).GetControlChange(&ch, &ctrl, &val) {
			out = append(out, [3]uint8{ch, ctrl, val})
		}
	}
	return out
}

func TestStream(t *testing.T) {
	bank := knobs.MustNew(knobs.Single)

	var out bytes.Buffer
	res, err := Stream(bytes.NewReader(twoTrackFile(t)), &out, bank)
	require.NoError(t, err)
	assert.Equal(t, Result{Tracks: 2, Events: 4, Replaced: 2}, res)

	rendered, err := smf.ReadFrom(&out)
	require.NoError(t, err)
	require.Len(t, rendered.Tracks, 2)

	// track b moves first at tick 5 (+2), track a follows at tick 10 (+11)
	assert.Equal(t, [][3]uint8{{0, 7, 13}, {0, 1, 64}}, controlChanges(rendered.Tracks[0]))
	assert.Equal(t, [][3]uint8{{0, 7, 2}}, controlChanges(rendered.Tracks[1]))
	assert.Equal(t, 13, bank.Knob(0).Value())
}

func TestRenderKeepsTiming(t *testing.T) {
	src, err := smf.ReadFrom(bytes.NewReader(twoTrackFile(t)))
	require.NoError(t, err)

	dst, _, err := Render(src, knobs.MustNew(knobs.Single))
	require.NoError(t, err)
	require.Len(t, dst.Tracks, len(src.Tracks))

	for i := range src.Tracks {
		require.Len(t, dst.Tracks[i], len(src.Tracks[i]))
		for j := range src.Tracks[i] {
			assert.Equal(t, src.Tracks[i][j].Delta, dst.Tracks[i][j].Delta)
		}
	}

	var ch, key, vel uint8
	assert.True(t, gomidi.Message(dst.Tracks[0][1].Message).GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(60), key)
}

func TestRenderLeavesSourceUntouched(t *testing.T) {
	src, err := smf.ReadFrom(bytes.NewReader(twoTrackFile(t)))
	require.NoError(t, err)
	before := controlChanges(src.Tracks[0])

	_, _, err = Render(src, knobs.MustNew(knobs.Single))
	require.NoError(t, err)
	assert.Equal(t, before, controlChanges(src.Tracks[0]))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mid")
	out := filepath.Join(dir, "out.mid")
	require.NoError(t, os.WriteFile(in, twoTrackFile(t), 0o644))

	res, err := File(in, out, knobs.MustNew(knobs.Bank8))
	require.NoError(t, err)
	assert.Zero(t, res.Replaced, "no knob listens on CC 7 in the eight-knob bank")

	_, err = File(filepath.Join(dir, "missing.mid"), out, knobs.MustNew(knobs.Bank8))
	assert.Error(t, err)
}

func TestStreamRejectsGarbage(t *testing.T) {
	_, err := Stream(bytes.NewReader([]byte("not a midi file")), &bytes.Buffer{}, knobs.MustNew(knobs.Single))
	assert.Error(t, err)
}

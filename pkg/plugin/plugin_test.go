package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/realknobs/pkg/framework/plugin"
	"github.com/justyntemme/realknobs/pkg/knobs"
	"github.com/justyntemme/realknobs/pkg/midi"
)

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{RealKnobsID, RealKnobsX8ID, RealKnobsX8ReducedID}, IDs())

	for _, id := range IDs() {
		p, err := Lookup(id)
		require.NoError(t, err)

		info := p.GetInfo()
		assert.Equal(t, id, info.ID)
		assert.Equal(t, "Anguselheim Studios", info.Maker)
		assert.Equal(t, "ISC", info.License)
		assert.Equal(t, "TBD", info.HomePage)

		code, err := info.VersionCode()
		require.NoError(t, err)
		assert.Equal(t, uint32(0x000100), code)
	}

	_, err := Lookup("real_knobs_x16")
	assert.True(t, errors.Is(err, ErrUnknownPlugin))
}

func TestRegisterRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	err := Register(NewKnobPlugin(plugin.Info{ID: RealKnobsID}, knobs.Single))
	assert.Error(t, err)

	err = Register(NewKnobPlugin(plugin.Info{}, knobs.Single))
	assert.True(t, errors.Is(err, plugin.ErrEmptyID))
}

func TestCatalogShapes(t *testing.T) {
	tests := []struct {
		id     string
		params int
	}{
		{RealKnobsID, 4},
		{RealKnobsX8ID, 32},
		{RealKnobsX8ReducedID, 24},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := Lookup(tt.id)
			require.NoError(t, err)

			inst, err := p.CreateProcessor()
			require.NoError(t, err)
			assert.Equal(t, tt.params, inst.Bank().ParamCount())
			assert.Equal(t, tt.params, inst.GetParameters().Count())

			in, out := inst.AudioPorts()
			assert.Zero(t, in)
			assert.Zero(t, out)
		})
	}
}

func TestInstanceParameters(t *testing.T) {
	p, err := Lookup(RealKnobsX8ID)
	require.NoError(t, err)
	inst, err := p.CreateProcessor()
	require.NoError(t, err)

	desc, ok := inst.InitParameter(9)
	require.True(t, ok)
	assert.Equal(t, "CC_Number1", desc.Name)
	assert.Equal(t, 103.0, desc.DefaultValue)

	_, ok = inst.InitParameter(32)
	assert.False(t, ok)

	inst.SetParameterValue(17, 64.7)
	assert.Equal(t, 64.0, inst.GetParameterValue(17))
	assert.Equal(t, float64(knobs.Sentinel), inst.GetParameterValue(40))

	inst.SetParameterValue(40, 3)
	assert.Equal(t, float64(knobs.Sentinel), inst.GetParameterValue(40))
}

func TestInstanceRun(t *testing.T) {
	p, err := Lookup(RealKnobsID)
	require.NoError(t, err)
	inst, err := p.CreateProcessor()
	require.NoError(t, err)
	require.NoError(t, inst.Initialize(48000, 8))
	require.NoError(t, inst.SetActive(true))

	noteOn := midi.Event{Frame: 0, Size: 3, Data: [3]byte{0x90, 60, 100}}
	out := inst.Run([]midi.Event{
		midi.ControlChange(4, 0, 7, 10),
		noteOn,
	})
	require.Len(t, out, 2)
	assert.Equal(t, midi.ControlChange(4, 0, 7, 11), out[0], "events keep the order given")
	assert.Equal(t, noteOn, out[1])

	out = inst.Run([]midi.Event{midi.ControlChange(0, 0, 7, 3)})
	require.Len(t, out, 1)
	assert.Equal(t, uint8(15), out[0].Value())
	assert.Equal(t, 15.0, inst.GetParameterValue(2))
	assert.False(t, inst.Context().HasInputEvents())
}

func TestInstanceQueuedEventsFollowFrames(t *testing.T) {
	inst, err := NewInstance(plugin.Info{ID: "test"}, knobs.Single)
	require.NoError(t, err)
	require.NoError(t, inst.Initialize(48000, 8))

	noteOn := midi.Event{Frame: 0, Size: 3, Data: [3]byte{0x90, 60, 100}}
	ctx := inst.Context()
	ctx.AddInputEvent(midi.ControlChange(4, 0, 7, 1))
	ctx.AddInputEvent(noteOn)

	inst.ProcessEvents(ctx)
	out := ctx.GetOutputEvents()
	require.Len(t, out, 2)
	assert.Equal(t, noteOn, out[0])
	assert.Equal(t, midi.ControlChange(4, 0, 7, 2), out[1])
	assert.False(t, ctx.HasInputEvents())

	inst.ProcessEvents(ctx)
	assert.Len(t, ctx.GetOutputEvents(), 2, "an empty queue writes nothing")
}

func TestInstanceProcessRange(t *testing.T) {
	inst, err := NewInstance(plugin.Info{ID: "test"}, knobs.Single)
	require.NoError(t, err)
	require.NoError(t, inst.Initialize(48000, 8))

	noteOn := midi.Event{Frame: 6, Size: 3, Data: [3]byte{0x90, 60, 100}}
	ctx := inst.Context()
	ctx.AddInputEvents([]midi.Event{
		noteOn,
		midi.ControlChange(9, 0, 7, 1),
		midi.ControlChange(2, 0, 7, 1),
	})

	inst.ProcessRange(0, 5)
	require.Len(t, ctx.GetOutputEvents(), 1)
	assert.Equal(t, midi.ControlChange(2, 0, 7, 2), ctx.GetOutputEvents()[0])

	inst.ProcessRange(5, 10)
	out := ctx.GetOutputEvents()
	require.Len(t, out, 3)
	assert.Equal(t, noteOn, out[1])
	assert.Equal(t, midi.ControlChange(9, 0, 7, 4), out[2])
	assert.Equal(t, 4, inst.Bank().Knob(0).Value())

	assert.True(t, ctx.HasInputEvents())
	ctx.ClearInputEvents()
	assert.False(t, ctx.HasInputEvents())
}

func TestInstanceDropsPastCapacity(t *testing.T) {
	inst, err := NewInstance(plugin.Info{ID: "test"}, knobs.Bank8Reduced)
	require.NoError(t, err)
	require.NoError(t, inst.Initialize(44100, 2))

	in := make([]midi.Event, 5)
	for i := range in {
		in[i] = midi.ControlChange(uint32(i), 0, 102, 1)
	}
	out := inst.Run(in)
	assert.Len(t, out, 2)
	assert.Equal(t, 3, inst.Dropped())
	assert.Equal(t, 5, inst.Bank().Knob(0).Value(), "dropped replacements still move the knob")
}

func TestDeactivateClearsPendingEvents(t *testing.T) {
	inst, err := NewInstance(plugin.Info{ID: "test"}, knobs.Single)
	require.NoError(t, err)
	require.NoError(t, inst.Initialize(48000, 16))
	require.NoError(t, inst.SetActive(true))

	inst.Context().AddInputEvent(midi.ControlChange(0, 0, 7, 1))
	require.NoError(t, inst.SetActive(false))
	assert.False(t, inst.Context().HasInputEvents())
}

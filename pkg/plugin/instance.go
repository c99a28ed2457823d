package plugin

import (
	"github.com/justyntemme/realknobs/pkg/framework/param"
	"github.com/justyntemme/realknobs/pkg/framework/plugin"
	"github.com/justyntemme/realknobs/pkg/framework/process"
	"github.com/justyntemme/realknobs/pkg/knobs"
	"github.com/justyntemme/realknobs/pkg/midi"
)

var (
	_ plugin.Processor    = (*Instance)(nil)
	_ midi.EventProcessor = (*Instance)(nil)
)

// Instance is one host-side plugin instance: a knob bank plus the per-cycle
// context a host fills with inbound events.
type Instance struct {
	*plugin.Base
	*plugin.BaseProcessor

	bank *knobs.Bank
	ctx  *process.Context
}

// NewInstance builds a bank from cfg and a context sized for
// midi.DefaultCapacity events per cycle.
func NewInstance(info plugin.Info, cfg knobs.Config) (*Instance, error) {
	bank, err := knobs.New(cfg)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		Base:          plugin.NewBase(info, bank.Parameters()),
		BaseProcessor: plugin.NewBaseProcessor(bank.Parameters()),
		bank:          bank,
		ctx:           process.NewContext(midi.DefaultCapacity),
	}
	inst.OnInitialize(func(_ float64, maxEvents int) error {
		inst.ctx = process.NewContext(maxEvents)
		return nil
	})
	inst.OnReset(func() { inst.ctx.ClearAllEvents() })
	return inst, nil
}

// Bank returns the knob bank behind the instance.
func (i *Instance) Bank() *knobs.Bank {
	return i.bank
}

// Context returns the cycle context hosts queue inbound events on.
func (i *Instance) Context() *process.Context {
	return i.ctx
}

// InitParameter describes the parameter at index. ok is false for an index
// the bank does not define.
func (i *Instance) InitParameter(index uint32) (p *param.Parameter, ok bool) {
	p = i.bank.Describe(int(index))
	return p, p != nil
}

// GetParameterValue returns the plain value at index, or knobs.Sentinel.
func (i *Instance) GetParameterValue(index uint32) float64 {
	return i.bank.Get(int(index))
}

// SetParameterValue stores a plain value at index. Unknown indices are ignored.
func (i *Instance) SetParameterValue(index uint32, value float64) {
	i.bank.Set(int(index), value)
}

// ProcessEvents implements the framework Processor: it routes every queued
// inbound event of ctx to ctx's output. The queue hands events out in frame
// order, so events queued out of frame order are reordered.
func (i *Instance) ProcessEvents(ctx *process.Context) {
	if !ctx.HasInputEvents() {
		return
	}
	i.bank.Process(ctx.TakeInputEvents(), ctx.Output())
}

// ProcessEvent routes a single event to the instance context's output.
func (i *Instance) ProcessEvent(e midi.Event) {
	i.bank.ProcessEvent(e, i.ctx.Output())
}

// ProcessRange routes the events queued on the instance context whose frame
// falls in [startFrame, endFrame), for hosts that split a cycle into
// sub-blocks. The events stay queued; clear them once the cycle is done.
func (i *Instance) ProcessRange(startFrame, endFrame uint32) {
	i.ctx.ProcessEvents(i, startFrame, endFrame)
}

// Run processes one cycle of events in the order given and returns the
// outbound events. The returned slice is reused by the next call.
func (i *Instance) Run(events []midi.Event) []midi.Event {
	i.ctx.ClearOutputEvents()
	i.bank.Process(events, i.ctx.Output())
	return i.ctx.GetOutputEvents()
}

// Dropped reports outbound events lost because the output buffer was full.
func (i *Instance) Dropped() int {
	return i.ctx.DroppedOutputEvents()
}

// Package live routes a hardware MIDI input through a knob bank to an
// output port.
package live

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/justyntemme/realknobs/pkg/framework/debug"
	"github.com/justyntemme/realknobs/pkg/knobs"
	"github.com/justyntemme/realknobs/pkg/midi"
)

// DefaultLogDelay is how long knob changes settle before they are logged.
const DefaultLogDelay = 250 * time.Millisecond

// Router feeds incoming messages through a bank and sends the result on.
type Router struct {
	bank *knobs.Bank
	send func(gomidi.Message) error
	log  *debug.Logger

	mu       sync.Mutex
	moved    []bool
	debounce func(func())

	received   atomic.Uint64
	replaced   atomic.Uint64
	sendErrors atomic.Uint64
}

// NewRouter routes through bank and hands every outbound message to send.
// Knob changes are logged at info level once they settle for delay.
func NewRouter(bank *knobs.Bank, send func(gomidi.Message) error, log *debug.Logger, delay time.Duration) *Router {
	if log == nil {
		log = debug.Default()
	}
	if delay <= 0 {
		delay = DefaultLogDelay
	}

	r := &Router{
		bank:     bank,
		send:     send,
		log:      log,
		moved:    make([]bool, bank.Len()),
		debounce: debounce.New(delay),
	}
	bank.OnMove(r.markMoved)
	return r
}

// Handle is a gomidi listener callback.
func (r *Router) Handle(msg gomidi.Message, timestampms int32) {
	r.received.Add(1)

	ev, ok := midi.FromMessage(uint32(timestampms), msg)
	if !ok {
		r.forward(msg)
		return
	}

	r.mu.Lock()
	replaced := r.bank.ProcessEvent(ev, midi.WriterFunc(r.write))
	r.mu.Unlock()

	if replaced {
		r.replaced.Add(1)
		r.debounce(r.logMoves)
	}
}

func (r *Router) write(e midi.Event) bool {
	return r.forward(e.Message())
}

func (r *Router) forward(msg gomidi.Message) bool {
	if err := r.send(msg); err != nil {
		if r.sendErrors.Add(1) == 1 {
			r.log.Warn("send %s: %v", msg, err)
		}
		return false
	}
	return true
}

// markMoved runs under mu from inside ProcessEvent.
func (r *Router) markMoved(knob int, _ uint8) {
	r.moved[knob] = true
}

func (r *Router) logMoves() {
	r.mu.Lock()
	var moved []int
	for k, m := range r.moved {
		if m {
			moved = append(moved, k)
			r.moved[k] = false
		}
	}
	r.mu.Unlock()

	sort.Ints(moved)
	for _, k := range moved {
		knob := r.bank.Knob(k)
		r.log.Info("knob %d: ch %d cc %d = %d", k, knob.Channel(), knob.CCNumber(), knob.Value())
	}
}

// Stats reports message counters since the router was created.
func (r *Router) Stats() (received, replaced, sendErrors uint64) {
	return r.received.Load(), r.replaced.Load(), r.sendErrors.Load()
}

// Ports lists the names of the available input and output ports.
func Ports() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}

// Open finds the input and output ports whose names contain the given
// substrings.
func Open(inName, outName string) (drivers.In, drivers.Out, error) {
	in, err := gomidi.FindInPort(inName)
	if err != nil {
		return nil, nil, fmt.Errorf("live: can't find input %q: %w", inName, err)
	}
	out, err := gomidi.FindOutPort(outName)
	if err != nil {
		return nil, nil, fmt.Errorf("live: can't find output %q: %w", outName, err)
	}
	return in, out, nil
}

// Run routes in through bank to out until ctx is cancelled.
func Run(ctx context.Context, bank *knobs.Bank, in drivers.In, out drivers.Out, log *debug.Logger) (*Router, error) {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("live: open output: %w", err)
	}

	r := NewRouter(bank, send, log, DefaultLogDelay)
	stop, err := gomidi.ListenTo(in, r.Handle, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("live: listen: %w", err)
	}
	r.log.Info("routing %s -> %s", in, out)

	<-ctx.Done()
	stop()

	received, replaced, sendErrors := r.Stats()
	r.log.Info("stopped: %d received, %d replaced, %d send errors", received, replaced, sendErrors)
	return r, nil
}

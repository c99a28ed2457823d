// Package knobs turns relative encoder movement into absolute CC values for a
// bank of independent knobs.
package knobs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/realknobs/pkg/framework/param"
)

var (
	// ErrUnknownParameter is returned for an index that maps to no parameter.
	ErrUnknownParameter = errors.New("knobs: unknown parameter index")
	// ErrOutOfRange is returned for a value outside the declared range.
	ErrOutOfRange = errors.New("knobs: value out of range")
)

// Sentinel is returned by Get for an index that maps to no parameter.
const Sentinel = -1

// Bank is a fixed-size collection of knobs addressed through a flat
// parameter index in knob-major order: index = kind*N + knob.
type Bank struct {
	cfg    Config
	knobs  []Knob
	params *param.Registry
	onMove func(knob int, value uint8)
}

// New builds a bank and initializes every knob to its defaults.
func New(cfg Config) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Bank{
		cfg:    cfg,
		knobs:  make([]Knob, cfg.Knobs),
		params: param.NewRegistry(),
	}

	for index := 0; index < b.ParamCount(); index++ {
		k, kind, _ := b.Locate(index)
		p := b.build(uint32(index), k, kind)
		if err := b.params.Add(p); err != nil {
			return nil, err
		}
		knob := &b.knobs[k]
		switch kind {
		case KindChannel:
			knob.channel = p
		case KindCCNumber:
			knob.ccNumber = p
		case KindCCValue:
			knob.value = p
		case KindSensitivity:
			knob.sensitivity = p
		}
	}

	return b, nil
}

// MustNew is New for preset configurations known to be valid.
func MustNew(cfg Config) *Bank {
	b, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Bank) build(id uint32, k int, kind ParamKind) *param.Parameter {
	name := kind.String()
	symbol := strings.ToLower(name)
	if !b.cfg.BareNames {
		name += strconv.Itoa(k)
		symbol += "_" + strconv.Itoa(k)
	}

	var builder *param.Builder
	switch kind {
	case KindChannel:
		builder = param.ChannelParameter(id, name)
	case KindCCNumber:
		builder = param.ControllerParameter(id, name, float64(b.cfg.BaseCC+k))
	case KindCCValue:
		builder = param.ControlValueParameter(id, name)
	default:
		if b.cfg.Sensitivity == SensitivitySteps {
			builder = param.SensitivityStepsParameter(id, name)
		} else {
			builder = param.SensitivityParameter(id, name)
		}
	}
	return builder.Symbol(symbol).Build()
}

// Config returns the configuration the bank was built with.
func (b *Bank) Config() Config {
	return b.cfg
}

// Len returns N, the number of knobs.
func (b *Bank) Len() int {
	return len(b.knobs)
}

// ParamCount returns N*P.
func (b *Bank) ParamCount() int {
	return len(b.knobs) * b.cfg.ParamsPerKnob()
}

// Knob returns knob k, or nil when k is out of range.
func (b *Bank) Knob(k int) *Knob {
	if k < 0 || k >= len(b.knobs) {
		return nil
	}
	return &b.knobs[k]
}

// Parameters returns the registry holding every knob parameter in index order.
func (b *Bank) Parameters() *param.Registry {
	return b.params
}

// Locate maps a flat index to its knob and parameter kind. ok is false when
// the index addresses no defined parameter.
func (b *Bank) Locate(index int) (knob int, kind ParamKind, ok bool) {
	n := len(b.knobs)
	if index < 0 {
		return 0, 0, false
	}
	knob, kind = index%n, ParamKind(index/n)
	return knob, kind, int(kind) < b.cfg.ParamsPerKnob()
}

// Index is the inverse of Locate.
func (b *Bank) Index(knob int, kind ParamKind) int {
	return int(kind)*len(b.knobs) + knob
}

func (b *Bank) lookup(index int) (*Knob, *param.Parameter) {
	k, kind, ok := b.Locate(index)
	if !ok {
		return nil, nil
	}
	knob := &b.knobs[k]
	return knob, knob.field(kind)
}

// Describe returns the descriptor for index, or nil. With EagerReset the
// addressed knob is re-initialized as a side effect.
func (b *Bank) Describe(index int) *param.Parameter {
	knob, p := b.lookup(index)
	if p == nil {
		return nil
	}
	if b.cfg.EagerReset {
		knob.reset()
	}
	return p
}

// Get returns the current value at index, or Sentinel.
func (b *Bank) Get(index int) float64 {
	_, p := b.lookup(index)
	if p == nil {
		return Sentinel
	}
	return p.GetValue()
}

// Set stores v at index, truncated and saturated to the field's storage
// type. Unknown indices are ignored and declared ranges are not enforced.
func (b *Bank) Set(index int, v float64) {
	if _, p := b.lookup(index); p != nil {
		p.SetValue(v)
	}
}

// SetStrict is Set with validation of the index and the declared range.
func (b *Bank) SetStrict(index int, v float64) error {
	_, p := b.lookup(index)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownParameter, index)
	}
	if math.IsNaN(v) || !p.InRange(v) {
		return fmt.Errorf("%w: %s=%g, want [%g, %g]", ErrOutOfRange, p.Name, v, p.Min, p.Max)
	}
	p.SetValue(v)
	return nil
}

// Reset restores every knob to its defaults.
func (b *Bank) Reset() {
	for i := range b.knobs {
		b.knobs[i].reset()
	}
}

// ResetKnob restores knob k to its defaults.
func (b *Bank) ResetKnob(k int) {
	if knob := b.Knob(k); knob != nil {
		knob.reset()
	}
}

// Snapshot copies the state of every knob.
func (b *Bank) Snapshot() []State {
	out := make([]State, len(b.knobs))
	for i := range b.knobs {
		k := &b.knobs[i]
		out[i] = State{
			Index:       i,
			Channel:     k.Channel(),
			CCNumber:    k.CCNumber(),
			Value:       k.Value(),
			Sensitivity: k.Sensitivity(),
		}
	}
	return out
}

// OnMove registers fn to be called from Process each time a knob moves.
// It must be set before processing starts and must not block.
func (b *Bank) OnMove(fn func(knob int, value uint8)) {
	b.onMove = fn
}

package knobs

import (
	"fmt"

	"github.com/justyntemme/realknobs/pkg/framework/param"
)

// ParamKind names the per-knob parameters in registration order.
type ParamKind int

const (
	KindChannel ParamKind = iota
	KindCCNumber
	KindCCValue
	KindSensitivity
)

func (k ParamKind) String() string {
	switch k {
	case KindChannel:
		return "Channel"
	case KindCCNumber:
		return "CC_Number"
	case KindCCValue:
		return "CC_Value"
	case KindSensitivity:
		return "Sensitivity"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Knob is one tracker. Every field lives in its own atomically accessed
// parameter, so host writes from a control goroutine never tear a read on
// the processing goroutine.
type Knob struct {
	channel     *param.Parameter
	ccNumber    *param.Parameter
	value       *param.Parameter
	sensitivity *param.Parameter // nil without a Sensitivity parameter
}

// Channel returns the 1-based listen channel.
func (k *Knob) Channel() int {
	return int(k.channel.GetValue())
}

// CCNumber returns the listen and output controller number.
func (k *Knob) CCNumber() int {
	return int(k.ccNumber.GetValue())
}

// Value returns the running absolute value.
func (k *Knob) Value() int {
	return int(k.value.GetValue())
}

// Sensitivity returns the delta multiplier, 1 when the knob has none.
func (k *Knob) Sensitivity() float64 {
	if k.sensitivity == nil {
		return 1
	}
	return k.sensitivity.GetValue()
}

// Matches reports whether a CC on the 0-based channel with controller cc
// belongs to this knob.
func (k *Knob) Matches(channel, cc uint8) bool {
	return int(channel) == k.Channel()-1 && int(cc) == k.CCNumber()
}

// apply adds delta to the value, saturating to 0..127, and returns the result.
func (k *Knob) apply(delta int) uint8 {
	v := param.Clamp(k.Value()+delta, 0, 127)
	k.value.SetValue(float64(v))
	return uint8(v)
}

func (k *Knob) reset() {
	k.channel.Reset()
	k.ccNumber.Reset()
	k.value.Reset()
	if k.sensitivity != nil {
		k.sensitivity.Reset()
	}
}

func (k *Knob) field(kind ParamKind) *param.Parameter {
	switch kind {
	case KindChannel:
		return k.channel
	case KindCCNumber:
		return k.ccNumber
	case KindCCValue:
		return k.value
	case KindSensitivity:
		return k.sensitivity
	}
	return nil
}

// State is a point-in-time copy of a knob's fields.
type State struct {
	Index       int     `json:"index"`
	Channel     int     `json:"channel"`
	CCNumber    int     `json:"cc"`
	Value       int     `json:"value"`
	Sensitivity float64 `json:"sensitivity"`
}

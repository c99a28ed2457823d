package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Parameter describes one host-addressable parameter and holds its current
// plain value. The value is stored atomically so the processing thread and a
// control thread can read and write it without locks.
type Parameter struct {
	ID           uint32
	Name         string
	Symbol       string
	Min          float64
	Max          float64
	DefaultValue float64
	StepCount    int32
	Flags        uint32
	Storage      Storage

	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsInteger   uint32 = 1 << 2
)

// GetValue returns the current plain value.
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores value after quantizing it to the parameter's storage type.
// The declared range is not enforced.
func (p *Parameter) SetValue(value float64) {
	p.value.Store(math.Float64bits(p.Storage.Quantize(value)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// InRange reports whether value lies inside [Min, Max].
func (p *Parameter) InRange(value float64) bool {
	return value >= p.Min && value <= p.Max
}

// Integer reports whether the host should treat the value as integral.
func (p *Parameter) Integer() bool {
	return p.Flags&IsInteger != 0
}

// Automatable reports whether the host may automate the parameter.
func (p *Parameter) Automatable() bool {
	return p.Flags&CanAutomate != 0
}

// FormatValue formats a plain value for display.
func (p *Parameter) FormatValue(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.Integer() {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string into a plain value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		return p.parseFunc(str)
	}
	return strconv.ParseFloat(str, 64)
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return Clamp((plain-p.Min)/(p.Max-p.Min), 0, 1)
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + Clamp(normalized, 0, 1)*(p.Max-p.Min)
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%s [%g..%g] default %g", p.Name, p.Min, p.Max, p.DefaultValue)
}

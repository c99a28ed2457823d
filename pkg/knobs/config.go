package knobs

import (
	"errors"
	"fmt"

	"github.com/justyntemme/realknobs/pkg/midi"
)

// Decoding selects how a relative encoder byte becomes a signed delta.
type Decoding uint8

const (
	// DecodeSignedRelative reads the byte as a 7-bit signed offset:
	// 1..63 up, 64 no change, 65..127 down by v-64.
	DecodeSignedRelative Decoding = iota
	// DecodeThresholded scales by sensitivity with 64 as the centre.
	DecodeThresholded
)

func (d Decoding) String() string {
	if d == DecodeThresholded {
		return "thresholded"
	}
	return "signed"
}

// SensitivityMode selects whether knobs carry a Sensitivity parameter.
type SensitivityMode uint8

const (
	SensitivityNone SensitivityMode = iota
	// SensitivityContinuous is a float multiplier in [0.1, 5.0].
	SensitivityContinuous
	// SensitivitySteps is an integer multiplier in [1, 10].
	SensitivitySteps
)

// Config fixes the shape of a bank at construction time.
type Config struct {
	// Knobs is the number of independent trackers.
	Knobs int

	// BaseCC is the default CC number of knob 0; knob k defaults to BaseCC+k.
	BaseCC int

	Decoding    Decoding
	Sensitivity SensitivityMode

	// BareNames drops the knob index suffix from parameter names.
	BareNames bool

	// EagerReset re-initializes a knob every time one of its parameters is
	// described, for hosts that rely on describe to initialize state.
	EagerReset bool
}

var (
	// Single is the one-knob plugin: CC 7, thresholded decoding with a
	// continuous sensitivity.
	Single = Config{
		Knobs:       1,
		BaseCC:      int(midi.CCVolume),
		Decoding:    DecodeThresholded,
		Sensitivity: SensitivityContinuous,
		BareNames:   true,
	}

	// Bank8 is the eight-knob plugin on CC 102-109 with an integer
	// sensitivity scaling the signed delta. The first release of the
	// eight-knob plugin exposed Sensitivity without applying it; at its
	// default of 1 the behavior is the same.
	Bank8 = Config{
		Knobs:       8,
		BaseCC:      int(midi.CCUndefined102),
		Decoding:    DecodeSignedRelative,
		Sensitivity: SensitivitySteps,
	}

	// Bank8Reduced is Bank8 without the Sensitivity parameter.
	Bank8Reduced = Config{
		Knobs:       8,
		BaseCC:      int(midi.CCUndefined102),
		Decoding:    DecodeSignedRelative,
		Sensitivity: SensitivityNone,
	}
)

// ErrInvalidConfig is returned by New for unusable configurations.
var ErrInvalidConfig = errors.New("knobs: invalid config")

// ParamsPerKnob returns P, the number of parameters each knob exposes.
func (c Config) ParamsPerKnob() int {
	if c.Sensitivity == SensitivityNone {
		return 3
	}
	return 4
}

// Validate checks the knob count and that every default CC is a valid
// controller number.
func (c Config) Validate() error {
	if c.Knobs < 1 {
		return fmt.Errorf("%w: knob count %d", ErrInvalidConfig, c.Knobs)
	}
	if c.BaseCC < 0 || c.BaseCC+c.Knobs-1 > midi.MaxDataValue {
		return fmt.Errorf("%w: base cc %d with %d knobs exceeds 127", ErrInvalidConfig, c.BaseCC, c.Knobs)
	}
	if c.Decoding > DecodeThresholded {
		return fmt.Errorf("%w: decoding %d", ErrInvalidConfig, c.Decoding)
	}
	if c.Sensitivity > SensitivitySteps {
		return fmt.Errorf("%w: sensitivity mode %d", ErrInvalidConfig, c.Sensitivity)
	}
	return nil
}

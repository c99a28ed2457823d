// Package config loads knob layout files: which plugin to build and the
// starting channel, controller, value and sensitivity of each knob.
//
// Layouts are YAML. JSON documents parse as well.
//
//	plugin: real_knobs_x8
//	knobs:
//	  - knob: 3
//	    channel: 2
//	    cc: 105
//	    value: 40
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/realknobs/pkg/knobs"
)

// ErrInvalid is returned for layouts that do not fit the bank they are
// applied to.
var ErrInvalid = errors.New("config: invalid layout")

// Layout is the on-disk description of a bank.
type Layout struct {
	Plugin string       `yaml:"plugin,omitempty" json:"plugin,omitempty"`
	Knobs  []KnobLayout `yaml:"knobs" json:"knobs"`
}

// KnobLayout overrides the defaults of one knob. Nil fields keep the default.
type KnobLayout struct {
	Knob        int      `yaml:"knob" json:"knob"`
	Channel     *int     `yaml:"channel,omitempty" json:"channel,omitempty"`
	CC          *int     `yaml:"cc,omitempty" json:"cc,omitempty"`
	Value       *int     `yaml:"value,omitempty" json:"value,omitempty"`
	Sensitivity *float64 `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// Load reads and parses the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	l, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a layout. Unknown keys are rejected.
func Parse(r io.Reader) (*Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return &l, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	seen := make(map[int]bool, len(l.Knobs))
	for _, k := range l.Knobs {
		if seen[k.Knob] {
			return nil, fmt.Errorf("%w: knob %d listed twice", ErrInvalid, k.Knob)
		}
		seen[k.Knob] = true
	}
	return &l, nil
}

// Apply writes the layout into b through the validating setter, so a value
// outside a parameter's range fails instead of saturating.
func (l *Layout) Apply(b *knobs.Bank) error {
	for _, k := range l.Knobs {
		if b.Knob(k.Knob) == nil {
			return fmt.Errorf("%w: knob %d, bank has %d", ErrInvalid, k.Knob, b.Len())
		}

		fields := []struct {
			kind  knobs.ParamKind
			value *float64
		}{
			{knobs.KindChannel, intPtr(k.Channel)},
			{knobs.KindCCNumber, intPtr(k.CC)},
			{knobs.KindCCValue, intPtr(k.Value)},
			{knobs.KindSensitivity, k.Sensitivity},
		}
		for _, f := range fields {
			if f.value == nil {
				continue
			}
			if err := b.SetStrict(b.Index(k.Knob, f.kind), *f.value); err != nil {
				return fmt.Errorf("%w: knob %d %s: %v", ErrInvalid, k.Knob, f.kind, err)
			}
		}
	}
	return nil
}

// FromBank captures the current state of b as a layout.
func FromBank(pluginID string, b *knobs.Bank) *Layout {
	withSensitivity := b.Config().Sensitivity != knobs.SensitivityNone

	l := &Layout{Plugin: pluginID, Knobs: make([]KnobLayout, 0, b.Len())}
	for _, s := range b.Snapshot() {
		k := KnobLayout{
			Knob:    s.Index,
			Channel: &s.Channel,
			CC:      &s.CCNumber,
			Value:   &s.Value,
		}
		if withSensitivity {
			k.Sensitivity = &s.Sensitivity
		}
		l.Knobs = append(l.Knobs, k)
	}
	return l
}

// Write encodes the layout as YAML.
func (l *Layout) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return enc.Close()
}

func intPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

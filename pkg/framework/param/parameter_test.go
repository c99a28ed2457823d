package param

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestStorageQuantize(t *testing.T) {
	tests := []struct {
		name    string
		storage Storage
		in      float64
		want    float64
	}{
		{"float64 passes through", StorageFloat64, 1.23456789, 1.23456789},
		{"float32 rounds", StorageFloat32, 0.1, float64(float32(0.1))},
		{"uint8 truncates", StorageUint8, 7.9, 7},
		{"uint8 saturates high", StorageUint8, 300, 255},
		{"uint8 saturates low", StorageUint8, -4, 0},
		{"int8 saturates", StorageInt8, 200, 127},
		{"int8 negative", StorageInt8, -3.7, -3},
		{"int16 keeps out of range values", StorageInt16, 200.5, 200},
		{"int16 saturates", StorageInt16, 1e6, math.MaxInt16},
		{"NaN becomes zero", StorageUint8, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.storage.Quantize(tt.in); got != tt.want {
				t.Errorf("Quantize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParameterRoundTrip(t *testing.T) {
	p := ChannelParameter(0, "Channel").Build()

	if p.GetValue() != 1 {
		t.Errorf("Expected default 1, got %v", p.GetValue())
	}

	p.SetValue(3.9)
	if p.GetValue() != 3 {
		t.Errorf("Expected 3, got %v", p.GetValue())
	}

	// No range validation beyond storage
	p.SetValue(40)
	if p.GetValue() != 40 {
		t.Errorf("Expected 40, got %v", p.GetValue())
	}
	if p.InRange(40) {
		t.Error("40 should be outside the channel range")
	}

	p.Reset()
	if p.GetValue() != 1 {
		t.Errorf("Expected reset to 1, got %v", p.GetValue())
	}
}

func TestParameterFlags(t *testing.T) {
	cc := ControllerParameter(1, "CC_Number", 7).Build()
	if !cc.Integer() || !cc.Automatable() {
		t.Error("Controller parameter should be integer and automatable")
	}
	if cc.StepCount != 126 {
		t.Errorf("Expected 126 steps, got %d", cc.StepCount)
	}

	sens := SensitivityParameter(3, "Sensitivity").Build()
	if sens.Integer() {
		t.Error("Continuous sensitivity should not be integer")
	}

	fixed := New(9, "Fixed").Flags(0).Build()
	if fixed.Automatable() || fixed.Integer() {
		t.Error("Flags(0) should clear automation")
	}
}

func TestNormalize(t *testing.T) {
	p := ControlValueParameter(2, "CC_Value").Build()

	if got := p.Normalize(63.5); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
	if got := p.Normalize(500); got != 1 {
		t.Errorf("Expected clamp to 1, got %v", got)
	}
	if got := p.Denormalize(1); got != 127 {
		t.Errorf("Expected 127, got %v", got)
	}
	if got := p.Denormalize(-0.5); got != 0 {
		t.Errorf("Expected clamp to 0, got %v", got)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		p    *Parameter
		in   float64
		want string
	}{
		{ChannelParameter(0, "Channel").Build(), 10, "Ch 10"},
		{ControllerParameter(1, "CC_Number", 7).Build(), 105, "CC 105"},
		{ControlValueParameter(2, "CC_Value").Build(), 64, "64"},
		{SensitivityParameter(3, "Sensitivity").Build(), 1.5, "x1.50"},
		{New(4, "Plain").Build(), 0.25, "0.25"},
	}

	for _, tt := range tests {
		if got := tt.p.FormatValue(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.p.Name, tt.want, got)
		}
	}
}

func TestParsing(t *testing.T) {
	ch := ChannelParameter(0, "Channel").Build()
	for _, in := range []string{"Ch 3", "ch3", " 3 "} {
		v, err := ch.ParseValue(in)
		if err != nil || v != 3 {
			t.Errorf("ParseValue(%q) = %v, %v", in, v, err)
		}
	}

	if _, err := ch.ParseValue("three"); err == nil {
		t.Error("Expected parse error")
	}

	plain := New(4, "Plain").Build()
	if v, err := plain.ParseValue("0.5"); err != nil || v != 0.5 {
		t.Errorf("Default parser failed: %v, %v", v, err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := ChannelParameter(0, "Channel0").Build()
	b := ChannelParameter(1, "Channel1").Build()

	if err := r.Add(a, b); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Expected 2 parameters, got %d", r.Count())
	}
	if r.Get(1) != b || r.GetByIndex(0) != a {
		t.Error("Lookup returned the wrong parameter")
	}
	if r.GetByIndex(5) != nil || r.GetByIndex(-1) != nil {
		t.Error("Out of range index should return nil")
	}
	if r.GetBySymbol("Channel1") != b {
		t.Error("Symbol lookup failed")
	}

	err := r.Add(ChannelParameter(1, "Dup").Build())
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	a.SetValue(9)
	r.ResetAll()
	if a.GetValue() != 1 {
		t.Errorf("ResetAll should restore default, got %v", a.GetValue())
	}
}

func TestConcurrentAccess(t *testing.T) {
	p := ControlValueParameter(2, "CC_Value").Build()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.SetValue(float64(n))
				_ = p.GetValue()
			}
		}(i)
	}
	wg.Wait()

	if v := p.GetValue(); v < 0 || v > 3 {
		t.Errorf("Unexpected final value %v", v)
	}
}

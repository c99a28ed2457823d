package knobs

import "math"

// SignedRelative decodes a relative encoder byte: 1..63 is +1..+63,
// 65..127 is -1..-63 (64 is the zero point), 0 and 64 are no movement.
func SignedRelative(in uint8) int {
	v := int(in & 0x7F)
	if v > 64 {
		return 64 - v
	}
	if v == 64 {
		return 0
	}
	return v
}

// Thresholded decodes a relative encoder byte scaled by sensitivity.
// Below 64 the knob moves up by floor(v*s)+1. Above 64 it moves down by
// floor((127-v)*s)+1. Exactly 64 does not move the knob.
func Thresholded(in uint8, sensitivity float64) int {
	v := int(in & 0x7F)
	switch {
	case v < 64:
		return int(math.Floor(float64(v)*sensitivity)) + 1
	case v > 64:
		return -(int(math.Floor(float64(64-(v-63))*sensitivity)) + 1)
	default:
		return 0
	}
}

// Delta decodes in according to d. For signed decoding a sensitivity other
// than 1 scales the delta, truncated toward zero.
func (d Decoding) Delta(in uint8, sensitivity float64) int {
	if d == DecodeThresholded {
		return Thresholded(in, sensitivity)
	}
	delta := SignedRelative(in)
	if sensitivity == 1 {
		return delta
	}
	return int(float64(delta) * sensitivity)
}

package param

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Storage is the native type a parameter value is kept in on the plugin side.
// Writes are truncated toward zero and saturated to the type's range.
type Storage uint8

const (
	StorageFloat64 Storage = iota
	StorageFloat32
	StorageUint8
	StorageInt8
	StorageInt16
)

func (s Storage) String() string {
	switch s {
	case StorageFloat32:
		return "float32"
	case StorageUint8:
		return "uint8"
	case StorageInt8:
		return "int8"
	case StorageInt16:
		return "int16"
	default:
		return "float64"
	}
}

// Quantize converts v to what the storage type can hold.
func (s Storage) Quantize(v float64) float64 {
	switch s {
	case StorageFloat32:
		return float64(float32(v))
	case StorageUint8:
		return truncate(v, 0, math.MaxUint8)
	case StorageInt8:
		return truncate(v, math.MinInt8, math.MaxInt8)
	case StorageInt16:
		return truncate(v, math.MinInt16, math.MaxInt16)
	default:
		return v
	}
}

func truncate(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(math.Trunc(v), lo, hi)
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

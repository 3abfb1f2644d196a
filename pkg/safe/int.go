// Package safe provides checked integer conversions for values decoded from untrusted sources.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds accepted by the converters.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// split reports whether v is negative and, if not, its magnitude as uint64.
func split[T Integer](v T) (negative bool, magnitude uint64) {
	if v < 0 {
		return true, 0
	}
	return false, uint64(v)
}

// Uint32 converts v to uint32, rejecting negatives and values above math.MaxUint32.
func Uint32[T Integer](v T) (uint32, error) {
	neg, m := split(v)
	if neg || m > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(m), nil
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	neg, m := split(v)
	if neg {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return m, nil
}

// Int64 converts v to int64, rejecting unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	neg, m := split(v)
	if neg {
		return int64(v), nil
	}
	if m > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(m), nil
}

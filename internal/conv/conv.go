// Package conv provides conversion helpers shared by the engine packages.
//
// Narrowing conversions check their bounds and panic on overflow, since
// that indicates a programming error rather than bad input.
package conv

import (
	"math"
	"unsafe"
)

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// StringBytes returns the bytes of s without copying.
// The result must never be modified.
func StringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

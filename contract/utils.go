package contract

import "strconv"

// -----------------------------------------------------------------------------
// Checked Arithmetic
// -----------------------------------------------------------------------------

// addUint64 adds and reports false instead of wrapping around.
func addUint64(a, b uint64) (uint64, bool) {
	if a > ^uint64(0)-b {
		return 0, false
	}
	return a + b, true
}

// subUint64 subtracts and reports false instead of going below zero.
func subUint64(a, b uint64) (uint64, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// -----------------------------------------------------------------------------
// String Conversion Helpers
// -----------------------------------------------------------------------------

// UInt64ToString turns an id back into decimal text for logs or return values.
// Example payload: UInt64ToString(9001)
func UInt64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}

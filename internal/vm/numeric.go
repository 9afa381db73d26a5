package vm

import "fortio.org/safecast"

// numberToIndex converts a Value's float64 payload to an int list
// index. fortio.org/safecast rejects values that don't round-trip
// exactly or overflow int — a
// fractional or out-of-range index is simply not a valid index, the
// same outcome AS_NUMBER's truncating C cast produces for integer-valued
// floats but without silently truncating a fractional index into a
// valid-looking integer one.
func numberToIndex(n float64) (int, bool) {
	i, err := safecast.Convert[int](n)
	if err != nil {
		return 0, false
	}
	if float64(i) != n {
		return 0, false
	}
	return i, true
}

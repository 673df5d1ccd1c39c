package core

// EnsureLen reslices buf to n samples, allocating a fresh slice only when
// its capacity is too small. Reused samples keep their old values.
func EnsureLen(buf []float64, n int) []float64 {
	switch {
	case n <= 0:
		return buf[:0]
	case cap(buf) < n:
		return make([]float64, n)
	default:
		return buf[:n]
	}
}

// Zero clears buf.
func Zero(buf []float64) {
	clear(buf)
}

// CopyInto copies the leading samples of src into dst, truncating src when
// dst is shorter and leaving the tail of dst alone when src is. It returns
// the number of samples copied.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

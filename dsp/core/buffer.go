package core

// EnsureLen returns a slice of length n, reusing buf's capacity if possible.
// Reused elements keep their previous values.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to their zero value.
func Zero[T any](buf []T) {
	clear(buf)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[T any](dst, src []T) int {
	return copy(dst, src)
}

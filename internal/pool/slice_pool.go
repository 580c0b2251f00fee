// Package pool provides pooled scratch slices for the estimators.
//
// Design matrices are rebuilt for every stage of every estimator call; their
// backing arrays are short-lived and of similar size across calls, which makes
// them a good fit for sync.Pool reuse in batch workloads.
package pool

import "sync"

var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetFloat64Slice retrieves a zeroed float64 slice of the given length from the pool.
//
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// The caller must call the returned cleanup function to return the slice to the
// pool and must not retain the slice afterwards.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A zeroed slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	data, cleanup := pool.GetFloat64Slice(rows * cols)
//	defer cleanup()
//	a := mat.NewDense(rows, cols, data)
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves an int slice of the given length from the pool.
//
// The contents of the returned slice are unspecified. The caller must call the
// returned cleanup function to return the slice to the pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}

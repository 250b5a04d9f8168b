package pool

import "sync"

// float64SlicePool reuses scratch float64 slices across fit iterations.
// The fit engine allocates residual and Jacobian column buffers once per
// iteration; pooling keeps the optimizer loop allocation-free after warmup.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of the requested length from
// the pool, growing it when the pooled capacity is insufficient.
//
// The caller must invoke the returned cleanup function (typically with
// defer) to return the slice to the pool. The slice contents are not
// zeroed; callers overwrite every element.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}

// Package mempool provides sized pools for []float32 scratch buffers used
// on hot paths, such as the per-query weight vector of the MLS solver.
package mempool

import (
	"sync"
)

var float32Pools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to a power-of-two bucket to reduce churn. Weight
// vectors are one entry per control point, so classes start small.
func sizeClass(n int) int {
	cls := 64
	for cls < n {
		cls *= 2
	}
	return cls
}

// GetFloat32 retrieves a []float32 buffer of length n from the pool. The
// returned slice may have larger capacity and holds stale contents; the
// caller must overwrite before reading and return it via PutFloat32.
func GetFloat32(n int) []float32 {
	cls := sizeClass(n)
	pAny, _ := float32Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float32, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]float32, n)
	}
	buf, ok := p.Get().([]float32)
	if !ok || cap(buf) < n {
		buf = make([]float32, cls)
	}
	return buf[:n]
}

// PutFloat32 returns a buffer to the pool. It is safe to pass a nil slice.
func PutFloat32(buf []float32) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := float32Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float32, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return
	}
	p.Put(buf[:cap(buf)]) //nolint:staticcheck
}

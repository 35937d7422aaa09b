// Package window provides precomputed analysis windows for FFT refinement:
// lazily-built, cached window tables guarded by a mutex instead of
// per-call trig evaluation.
package window

import (
	"math"
	"sync"
)

var (
	mu    sync.Mutex
	cache = make(map[int][]float32)
)

// Hann returns a cached length-n Hann window, computing and caching it on
// first request for that size.
func Hann(n int) []float32 {
	mu.Lock()
	defer mu.Unlock()

	if w, ok := cache[n]; ok {
		return w
	}
	w := make([]float32, n)
	if n > 1 {
		for i := 0; i < n; i++ {
			w[i] = float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1))))
		}
	} else if n == 1 {
		w[0] = 1
	}
	cache[n] = w
	return w
}

// Apply multiplies block by the Hann window of matching length in place.
func Apply(block []float32) {
	w := Hann(len(block))
	for i := range block {
		block[i] *= w[i]
	}
}

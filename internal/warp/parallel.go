package warp

import (
	"runtime"
	"sync"
)

// parallelRows runs fn once for every row index in [0, height) across a
// pool of workers. Every row writes a disjoint slice of the output, so no
// synchronization beyond the pool join is needed. workers <= 0 selects
// runtime.NumCPU().
func parallelRows(height, workers int, fn func(y int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	rows := make(chan int, height)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				fn(y)
			}
		}()
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}

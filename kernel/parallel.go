package kernel

import (
	"runtime"
	"sync"
)

// parallelFor is the Go-native analogue of "thread t handles element t;
// out-of-range threads return immediately" (spec §4.4): it splits [0, n)
// into contiguous chunks across runtime.GOMAXPROCS(0) goroutines. Safe to
// call with n == 0.
func parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

package similarity

import "runtime"

// workerLimit returns the goroutine limit for parallel stages.
func workerLimit(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// chunks splits [0, n) into at most parts contiguous ranges.
func chunks(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts <= 0 || parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	out := make([][2]int, 0, parts)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// Package benchmark reports execution time and memory usage around a
// wrapped analysis run, matching the --benchmark flag's contract.
package benchmark

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Run wraps f, measuring its runtime and memory usage, and writes a
// resource-usage report to w once f returns.
func Run(w *os.File, label string, f func() error) error {
	fmt.Fprintf(w, "[Benchmark] Running: %s\n", label)
	fmt.Fprintln(w, "[Benchmark] Timestamp:", time.Now().Format(time.RFC1123))
	if host, err := os.Hostname(); err == nil {
		fmt.Fprintln(w, "[Benchmark] Hostname:", host)
	}
	fmt.Fprintln(w, "[Benchmark] Go Version:", runtime.Version())
	fmt.Fprintf(w, "[Benchmark] OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	start := time.Now()
	numCPU := runtime.NumCPU()
	startGoroutines := runtime.NumGoroutine()

	err := f()

	elapsed := time.Since(start)
	runtime.ReadMemStats(&memEnd)
	endGoroutines := runtime.NumGoroutine()

	fmt.Fprintf(w, "[Benchmark] Time Elapsed: %v\n", elapsed)
	fmt.Fprintf(w, "[Benchmark] Memory Used: %.2f MB\n", float64(memEnd.Alloc-memStart.Alloc)/1024.0/1024.0)
	fmt.Fprintf(w, "[Benchmark] Total Allocated: %.2f MB\n", float64(memEnd.TotalAlloc-memStart.TotalAlloc)/1024.0/1024.0)
	fmt.Fprintf(w, "[Benchmark] Heap Allocated: %.2f MB\n", float64(memEnd.HeapAlloc)/1024.0/1024.0)
	fmt.Fprintf(w, "[Benchmark] GC Cycles: %d\n", memEnd.NumGC-memStart.NumGC)
	fmt.Fprintf(w, "[Benchmark] CPU Cores: %d\n", numCPU)
	fmt.Fprintf(w, "[Benchmark] Goroutines Started: %d -> %d\n", startGoroutines, endGoroutines)
	fmt.Fprintln(w, "[Benchmark] ----------------------------------------")

	return err
}

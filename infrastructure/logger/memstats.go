package logger

import (
	"fmt"
	"runtime"
)

func memoryStatsString() string {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return fmt.Sprintf("heap alloc: %d MiB, sys: %d MiB, gc cycles: %d",
		stats.HeapAlloc/1024/1024, stats.Sys/1024/1024, stats.NumGC)
}

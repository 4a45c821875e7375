package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs functionName at debug level and returns a
// callback that logs the elapsed time when deferred.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}

// LogMemoryStats is a debug helper used around long-running loops such as
// index resyncs.
func LogMemoryStats(log *Logger, functionName string) {
	log.Debugf("%s: %s", functionName, memoryStatsString())
}

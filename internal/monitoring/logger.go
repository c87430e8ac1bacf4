// Package monitoring holds the diagnostic logger shared by the pipeline
// and the renderer.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// LogStage reports a completed pipeline stage with its item count and
// elapsed time, e.g. "[project] 250 values in 12µs".
func LogStage(stage string, items int, unit string, elapsed time.Duration) {
	Logf("[%s] %d %s in %s", stage, items, unit, elapsed)
}

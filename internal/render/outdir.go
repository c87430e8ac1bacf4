package render

import (
	"path/filepath"
	"time"

	"github.com/banshee-data/invariant/internal/timeutil"
)

// File names written into an output directory.
const (
	FigureFile = "figure.png"
	PageFile   = "figure.html"
)

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// OutputDir returns a timestamped directory for one run's charts, e.g.
// "plots/20260107_173129_1b4e28ba". Only the first eight characters of the
// run ID are used.
func OutputDir(baseDir string, clock timeutil.Clock, runID string) string {
	name := FormatTimestamp(clock.Now())
	if runID != "" {
		if len(runID) > 8 {
			runID = runID[:8]
		}
		name += "_" + runID
	}
	return filepath.Join(baseDir, name)
}

// Package reporter provides progress reporting interfaces and implementations.
package reporter

import (
	"time"

	"github.com/five82/vidsweep/internal/metadata"
)

// ScanStartInfo describes a scan about to probe its candidates.
type ScanStartInfo struct {
	Root       string
	Candidates int
}

// ProbeProgress reports the file currently being probed.
type ProbeProgress struct {
	Current int
	Total   int
	Path    string
}

// SkippedFile is a candidate that could not be turned into a record.
type SkippedFile struct {
	Path   string
	Reason string
}

// ScanSummary contains scan completion information.
type ScanSummary struct {
	Root       string
	Candidates int
	Probed     int
	Skipped    int
	Duration   time.Duration
}

// FilterSummary contains the filtered set.
type FilterSummary struct {
	Condition string
	Total     int
	Matches   []metadata.Record
}

// ActionStartInfo describes a batch action about to run.
type ActionStartInfo struct {
	Action string
	Total  int
	DryRun bool
}

// ActionFailure is a single failed delete or trash.
type ActionFailure struct {
	Action  string
	Path    string
	Message string
}

// ActionSummary contains batch action results.
type ActionSummary struct {
	Action     string
	Total      int
	Succeeded  int
	Failed     int
	FreedBytes uint64
	DryRun     bool
	Cancelled  bool
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

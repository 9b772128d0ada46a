package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line.
type JSONReporter struct {
	writer      io.Writer
	mu          sync.Mutex
	lastPercent int
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:      w,
		lastPercent: -1,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) ScanStarted(info ScanStartInfo) {
	r.mu.Lock()
	r.lastPercent = -1
	r.mu.Unlock()

	r.write(map[string]any{
		"type":       "scan_started",
		"root":       info.Root,
		"candidates": info.Candidates,
		"timestamp":  r.timestamp(),
	})
}

// FileProbed emits at most one event per 5% of progress, plus the final one.
func (r *JSONReporter) FileProbed(progress ProbeProgress) {
	const bucketSize = 5

	if progress.Total <= 0 {
		return
	}
	percent := progress.Current * 100 / progress.Total

	r.mu.Lock()
	bucket := percent / bucketSize
	shouldEmit := bucket > r.lastPercent/bucketSize || r.lastPercent < 0 || progress.Current == progress.Total
	if shouldEmit {
		r.lastPercent = percent
	}
	r.mu.Unlock()

	if !shouldEmit {
		return
	}

	r.write(map[string]any{
		"type":      "probe_progress",
		"current":   progress.Current,
		"total":     progress.Total,
		"percent":   percent,
		"path":      progress.Path,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) FileSkipped(skip SkippedFile) {
	r.write(map[string]any{
		"type":      "file_skipped",
		"path":      skip.Path,
		"reason":    skip.Reason,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ScanComplete(summary ScanSummary) {
	r.write(map[string]any{
		"type":             "scan_complete",
		"root":             summary.Root,
		"candidates":       summary.Candidates,
		"probed":           summary.Probed,
		"skipped":          summary.Skipped,
		"duration_seconds": summary.Duration.Seconds(),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) FilterComplete(summary FilterSummary) {
	for _, m := range summary.Matches {
		r.write(map[string]any{
			"type":       "match",
			"path":       m.Path,
			"filename":   m.Filename,
			"width":      m.Width,
			"height":     m.Height,
			"fps":        m.FPS,
			"size_mb":    m.SizeMB,
			"size_bytes": m.SizeBytes,
			"timestamp":  r.timestamp(),
		})
	}

	r.write(map[string]any{
		"type":      "filter_complete",
		"condition": summary.Condition,
		"total":     summary.Total,
		"matched":   len(summary.Matches),
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ActionStarted(info ActionStartInfo) {
	r.write(map[string]any{
		"type":      "action_started",
		"action":    info.Action,
		"total":     info.Total,
		"dry_run":   info.DryRun,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ActionItemFailed(failure ActionFailure) {
	r.write(map[string]any{
		"type":      "action_item_failed",
		"action":    failure.Action,
		"path":      failure.Path,
		"message":   failure.Message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ActionComplete(summary ActionSummary) {
	r.write(map[string]any{
		"type":        "action_complete",
		"action":      summary.Action,
		"total":       summary.Total,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
		"freed_bytes": summary.FreedBytes,
		"dry_run":     summary.DryRun,
		"cancelled":   summary.Cancelled,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]any{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

// Verbose messages are terminal-only.
func (r *JSONReporter) Verbose(string) {}

// Package action deletes or trashes matched video files.
package action

import (
	"context"
	"os"

	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/logging"
	"github.com/five82/vidsweep/internal/metadata"
	"github.com/five82/vidsweep/internal/reporter"
	"github.com/five82/vidsweep/internal/trash"
	"github.com/five82/vidsweep/internal/util"
)

// Action names.
const (
	Delete = "delete"
	Trash  = "trash"
)

// Logger defines the logging surface used by the executor.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Failure records one file the action could not process.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a batch.
type Result struct {
	Action     string
	Total      int
	Succeeded  int
	Failures   []Failure
	FreedBytes uint64
	DryRun     bool
	Cancelled  bool
}

// Failed returns the number of failed items.
func (r Result) Failed() int { return len(r.Failures) }

// Executor applies a destructive action to each record independently.
type Executor struct {
	Logger   Logger
	Reporter reporter.Reporter

	// Remove deletes a file; os.Remove when nil.
	Remove func(string) error

	// Trasher moves a file to the trash; the platform trash when nil.
	Trasher trash.Trasher

	// DryRun counts every record as a success without touching it.
	DryRun bool
}

// DeletePermanently removes every record's file. One failure never stops
// the batch.
func (e *Executor) DeletePermanently(ctx context.Context, records []metadata.Record) Result {
	remove := e.Remove
	if remove == nil {
		remove = os.Remove
	}
	return e.run(ctx, Delete, records, remove)
}

// MoveToTrash moves every record's file into the trash.
func (e *Executor) MoveToTrash(ctx context.Context, records []metadata.Record) Result {
	t := e.Trasher
	if t == nil {
		t = trash.New()
	}
	return e.run(ctx, Trash, records, t.Trash)
}

func (e *Executor) run(ctx context.Context, action string, records []metadata.Record, apply func(string) error) Result {
	var logger Logger = logging.Nop{}
	if e.Logger != nil {
		logger = e.Logger
	}
	var rep reporter.Reporter = reporter.NullReporter{}
	if e.Reporter != nil {
		rep = e.Reporter
	}

	result := Result{Action: action, Total: len(records), DryRun: e.DryRun}
	rep.ActionStarted(reporter.ActionStartInfo{Action: action, Total: len(records), DryRun: e.DryRun})
	logger.Infof("Starting %s of %d %s (dry run: %t)", action, len(records),
		util.Pluralize(len(records), "file", "files"), e.DryRun)

	for _, rec := range records {
		if ctx.Err() != nil {
			result.Cancelled = true
			logger.Warnf("%s cancelled after %d of %d files", action, result.Succeeded+result.Failed(), len(records))
			break
		}

		if e.DryRun {
			logger.Infof("Would %s %s", action, rec.Path)
			result.Succeeded++
			result.FreedBytes += rec.SizeBytes
			continue
		}

		if err := apply(rec.Path); err != nil {
			wrapped := verrors.NewActionFailedError(action, rec.Path, err)
			logger.Warnf("Failed to %s %s: %v", action, rec.Path, err)
			if trash.IsCrossDevice(err) {
				logger.Warnf("%s is on a different filesystem than its trash directory", rec.Path)
			}
			result.Failures = append(result.Failures, Failure{Path: rec.Path, Err: wrapped})
			rep.ActionItemFailed(reporter.ActionFailure{Action: action, Path: rec.Path, Message: err.Error()})
			continue
		}

		logger.Infof("%s: %s", action, rec.Path)
		result.Succeeded++
		result.FreedBytes += rec.SizeBytes
	}

	logger.Infof("%s finished: %d succeeded, %d failed", action, result.Succeeded, result.Failed())
	rep.ActionComplete(reporter.ActionSummary{
		Action:     action,
		Total:      result.Total,
		Succeeded:  result.Succeeded,
		Failed:     result.Failed(),
		FreedBytes: result.FreedBytes,
		DryRun:     result.DryRun,
		Cancelled:  result.Cancelled,
	})

	return result
}

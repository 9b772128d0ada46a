// Package vidsweep finds video files below a quality bar and removes them.
//
// A sweep has three stages: scan a directory tree and probe every video
// with ffprobe, filter the records by minimum resolution, frame rate and
// size, then delete or trash the matches.
//
// Basic usage:
//
//	sweeper := vidsweep.New()
//
//	scan, err := sweeper.Scan(ctx, "/videos")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matches, err := sweeper.Filter(scan.Records, vidsweep.Condition{
//	    MinWidth:   vidsweep.Int(1280),
//	    MinHeight:  vidsweep.Int(720),
//	    Combinator: vidsweep.And,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := sweeper.Trash(ctx, matches)
//	fmt.Printf("trashed %d of %d\n", result.Succeeded, result.Total)
package vidsweep

import (
	"context"

	"github.com/five82/vidsweep/internal/action"
	"github.com/five82/vidsweep/internal/discovery"
	"github.com/five82/vidsweep/internal/ffprobe"
	"github.com/five82/vidsweep/internal/filter"
	"github.com/five82/vidsweep/internal/logging"
	"github.com/five82/vidsweep/internal/metadata"
	"github.com/five82/vidsweep/internal/reporter"
	"github.com/five82/vidsweep/internal/trash"
)

// Re-export record and filter types
type (
	Record     = metadata.Record
	Condition  = filter.Condition
	Combinator = filter.Combinator
	Reporter   = reporter.Reporter
	Prober     = ffprobe.Prober
	Trasher    = trash.Trasher
	Logger     = logging.Printf
)

const (
	And = filter.And
	Or  = filter.Or
)

// Int returns a pointer to v for use as a Condition threshold.
func Int(v int) *int { return filter.Int(v) }

// Float returns a pointer to v for use as a Condition threshold.
func Float(v float64) *float64 { return filter.Float(v) }

// ParseCombinator converts "and" or "or" (case-insensitive) to a Combinator.
func ParseCombinator(s string) (Combinator, error) {
	return filter.ParseCombinator(s)
}

// ScanResult is the outcome of Scan.
type ScanResult = discovery.Result

// ActionResult is the outcome of Delete or Trash.
type ActionResult = action.Result

// Sweeper is the main entry point.
type Sweeper struct {
	prober   ffprobe.Prober
	logger   logging.Printf
	reporter reporter.Reporter
	trasher  trash.Trasher
	dryRun   bool
}

// Option configures the sweeper.
type Option func(*Sweeper)

// New creates a Sweeper. Without options it probes with ffprobe on PATH,
// logs through the global logger, reports nothing and uses the platform trash.
func New(opts ...Option) *Sweeper {
	s := &Sweeper{
		prober:   ffprobe.NewCommandProber(ffprobe.DefaultBinary),
		logger:   logging.Global(),
		reporter: reporter.NullReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.trasher == nil {
		s.trasher = trash.New()
	}
	return s
}

// WithProber replaces the ffprobe invocation.
func WithProber(p Prober) Option {
	return func(s *Sweeper) {
		if p != nil {
			s.prober = p
		}
	}
}

// WithFFprobe uses the ffprobe binary at path.
func WithFFprobe(path string) Option {
	return func(s *Sweeper) {
		s.prober = ffprobe.NewCommandProber(path)
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(s *Sweeper) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithTrasher replaces the platform trash.
func WithTrasher(t Trasher) Option {
	return func(s *Sweeper) {
		s.trasher = t
	}
}

// WithDryRun makes Delete and Trash report what they would do without
// touching any file.
func WithDryRun() Option {
	return func(s *Sweeper) {
		s.dryRun = true
	}
}

// Scan walks root recursively and probes every video file. Files that
// cannot be probed are skipped and listed in the result.
func (s *Sweeper) Scan(ctx context.Context, root string) (*ScanResult, error) {
	scanner := discovery.NewScanner(metadata.NewExtractor(s.prober), s.logger, s.reporter)
	return scanner.Scan(ctx, root)
}

// Filter returns the records that satisfy cond, in input order.
func (s *Sweeper) Filter(records []Record, cond Condition) ([]Record, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	if cond.PartialResolution() {
		s.reporter.Warning("resolution filter needs both width and height; ignoring it")
		s.logger.Warnf("Ignoring partial resolution condition")
	}

	matches := filter.Apply(records, cond)
	s.logger.Infof("Filter %s matched %d of %d records", cond.Describe(), len(matches), len(records))
	s.reporter.FilterComplete(reporter.FilterSummary{
		Condition: cond.Describe(),
		Total:     len(records),
		Matches:   matches,
	})
	return matches, nil
}

// Delete permanently removes every record's file.
func (s *Sweeper) Delete(ctx context.Context, records []Record) ActionResult {
	return s.executor().DeletePermanently(ctx, records)
}

// Trash moves every record's file to the trash.
func (s *Sweeper) Trash(ctx context.Context, records []Record) ActionResult {
	return s.executor().MoveToTrash(ctx, records)
}

func (s *Sweeper) executor() *action.Executor {
	return &action.Executor{
		Logger:   s.logger,
		Reporter: s.reporter,
		Trasher:  s.trasher,
		DryRun:   s.dryRun,
	}
}

// FindVideos lists video files under dir without probing them.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir, nil)
}

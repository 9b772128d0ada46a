// Package discovery walks a directory tree for video files and probes them.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/logging"
	"github.com/five82/vidsweep/internal/metadata"
	"github.com/five82/vidsweep/internal/reporter"
	"github.com/five82/vidsweep/internal/util"
)

// Extractor turns a candidate path into a record.
type Extractor interface {
	Extract(ctx context.Context, path string) (metadata.Record, error)
}

// Logger defines the logging surface used during discovery.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Skipped is a candidate the extractor rejected.
type Skipped struct {
	Path string
	Err  error
}

// Result is the outcome of a scan.
type Result struct {
	Root       string
	Candidates int
	Records    []metadata.Record
	Skipped    []Skipped
	Duration   time.Duration
}

// FindVideoFiles walks root and returns every allow-listed file in walk
// order (lexical within each directory), hidden files included. Symlinked
// directories are not followed; symlinked files are returned. Trash
// directories below root are skipped. Unreadable subdirectories are logged
// and skipped.
func FindVideoFiles(root string, logger Logger) ([]string, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, verrors.NewPathError("directory does not exist: "+root, err)
	}
	if !info.IsDir() {
		return nil, verrors.NewPathError(root+" is not a directory", nil)
	}

	skipDirs := make(map[string]bool)
	for _, dir := range util.HomeTrashDirs() {
		skipDirs[filepath.Clean(dir)] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warnf("Skipping unreadable path %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && (util.IsTrashDirName(d.Name()) || skipDirs[filepath.Clean(path)]) {
				logger.Debugf("Skipping trash directory %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if util.HasVideoExtension(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, verrors.NewPathError("cannot read directory "+root, err)
	}

	return files, nil
}

// Scanner probes every candidate under a root.
type Scanner struct {
	extractor Extractor
	logger    Logger
	reporter  reporter.Reporter
}

// NewScanner creates a scanner. Nil logger and reporter are replaced by no-ops.
func NewScanner(extractor Extractor, logger Logger, rep reporter.Reporter) *Scanner {
	if logger == nil {
		logger = logging.Nop{}
	}
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Scanner{extractor: extractor, logger: logger, reporter: rep}
}

// Scan walks root and extracts a record for every candidate. Files that
// fail extraction are logged, reported and skipped. If ctx is cancelled the
// partial result is returned with a cancellation error.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	files, err := FindVideoFiles(root, s.logger)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:       root,
		Candidates: len(files),
		Records:    make([]metadata.Record, 0, len(files)),
	}

	s.logger.Infof("Found %d video %s in %s", len(files), util.Pluralize(len(files), "file", "files"), root)
	s.reporter.ScanStarted(reporter.ScanStartInfo{Root: root, Candidates: len(files)})

	for i, path := range files {
		if ctx.Err() != nil {
			result.Duration = time.Since(start)
			s.logger.Warnf("Scan cancelled after %d of %d files", i, len(files))
			return result, verrors.NewCancelledError()
		}

		rec, err := s.extractor.Extract(ctx, path)
		switch {
		case err == nil:
			s.logger.Debugf("Probed %s: %dx%d %.2f fps %.2f MB", path, rec.Width, rec.Height, rec.FPS, rec.SizeMB)
			result.Records = append(result.Records, rec)
		case ctx.Err() != nil:
			result.Duration = time.Since(start)
			s.logger.Warnf("Scan cancelled while probing %s", path)
			return result, verrors.NewCancelledError()
		case verrors.IsSkippable(err):
			s.logger.Warnf("Skipping %s: %v", path, err)
			result.Skipped = append(result.Skipped, Skipped{Path: path, Err: err})
			s.reporter.FileSkipped(reporter.SkippedFile{Path: path, Reason: err.Error()})
		default:
			s.logger.Errorf("Skipping %s after unexpected error: %v", path, err)
			result.Skipped = append(result.Skipped, Skipped{Path: path, Err: err})
			s.reporter.FileSkipped(reporter.SkippedFile{Path: path, Reason: err.Error()})
		}

		s.reporter.FileProbed(reporter.ProbeProgress{Current: i + 1, Total: len(files), Path: path})
	}

	result.Duration = time.Since(start)
	s.logger.Infof("Scan complete: %d probed, %d skipped", len(result.Records), len(result.Skipped))
	s.reporter.ScanComplete(reporter.ScanSummary{
		Root:       root,
		Candidates: result.Candidates,
		Probed:     len(result.Records),
		Skipped:    len(result.Skipped),
		Duration:   result.Duration,
	})

	return result, nil
}

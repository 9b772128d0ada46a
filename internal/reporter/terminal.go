package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/five82/vidsweep/internal/util"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	progress *progressbar.ProgressBar
	skipped  []SkippedFile
	cyan     *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
	faint    *color.Color
	success  *color.Color
}

// NewTerminalReporter creates a terminal reporter writing results to stdout
// and progress/errors to stderr.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriters(os.Stdout, os.Stderr, verbose)
}

// NewTerminalReporterWithWriters creates a terminal reporter with custom writers.
func NewTerminalReporterWithWriters(out, errOut io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
		success: color.New(color.FgGreen, color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to keep alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) header(title string) {
	fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

func (r *TerminalReporter) ScanStarted(info ScanStartInfo) {
	r.header("SCAN")
	r.printLabel(11, "Folder:", info.Root)
	r.printLabel(11, "Candidates:", fmt.Sprintf("%d video %s", info.Candidates, util.Pluralize(info.Candidates, "file", "files")))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = nil
	if info.Candidates == 0 {
		return
	}
	r.progress = progressbar.NewOptions(
		info.Candidates,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Probing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProbed(progress ProbeProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}
	_ = r.progress.Set(progress.Current)
	r.progress.Describe(filepath.Base(progress.Path))
}

func (r *TerminalReporter) FileSkipped(skip SkippedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, skip)
}

func (r *TerminalReporter) ScanComplete(summary ScanSummary) {
	r.finishProgress()

	r.printLabel(11, "Probed:", fmt.Sprintf("%d in %s", summary.Probed,
		util.FormatDurationFromSecs(int64(summary.Duration.Seconds()))))

	if summary.Skipped == 0 {
		return
	}

	fmt.Fprintf(r.out, "  %s\n", r.yellow.Sprintf("errors processing %d %s",
		summary.Skipped, util.Pluralize(summary.Skipped, "file", "files")))

	r.mu.Lock()
	skipped := r.skipped
	r.skipped = nil
	r.mu.Unlock()

	if !r.verbose {
		return
	}
	for _, s := range skipped {
		fmt.Fprintf(r.out, "  %s %s %s\n", r.magenta.Sprint("›"), s.Path, r.faint.Sprintf("(%s)", s.Reason))
	}
}

func (r *TerminalReporter) FilterComplete(summary FilterSummary) {
	r.header("MATCHES")
	r.printLabel(10, "Condition:", summary.Condition)

	if len(summary.Matches) == 0 {
		fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint("no matching files"))
		return
	}

	var totalBytes uint64
	for _, m := range summary.Matches {
		totalBytes += m.SizeBytes
		fmt.Fprintln(r.out)
		r.printLabel(11, "File:", r.bold.Sprint(m.Filename))
		r.printLabel(11, "Path:", m.Path)
		r.printLabel(11, "Resolution:", util.FormatResolution(m.Width, m.Height))
		r.printLabel(11, "Frame rate:", util.FormatFPS(m.FPS))
		r.printLabel(11, "Size:", util.FormatMegabytes(m.SizeMB))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d of %d %s matched (%s)",
		len(summary.Matches), summary.Total, util.Pluralize(summary.Total, "file", "files"),
		util.FormatBytes(totalBytes)))
}

func (r *TerminalReporter) ActionStarted(info ActionStartInfo) {
	title := strings.ToUpper(info.Action)
	if info.DryRun {
		title += " (DRY RUN)"
	}
	r.header(title)
	fmt.Fprintf(r.out, "  Processing %d %s\n", info.Total, util.Pluralize(info.Total, "file", "files"))
}

func (r *TerminalReporter) ActionItemFailed(failure ActionFailure) {
	fmt.Fprintf(r.out, "  %s %s %s\n", r.red.Sprint("✗"), failure.Path, r.faint.Sprintf("(%s)", failure.Message))
}

func (r *TerminalReporter) ActionComplete(summary ActionSummary) {
	verb := "deleted"
	if summary.Action == "trash" {
		verb = "moved to trash"
	}
	if summary.DryRun {
		verb = "would be " + verb
	}

	fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d of %d %s %s", summary.Succeeded, summary.Total,
		util.Pluralize(summary.Total, "file", "files"), verb))
	if summary.FreedBytes > 0 {
		r.printLabel(6, "Freed:", util.FormatBytes(summary.FreedBytes))
	}
	if summary.Failed > 0 {
		fmt.Fprintf(r.out, "  %s\n", r.red.Sprintf("errors processing %d %s", summary.Failed,
			util.Pluralize(summary.Failed, "file", "files")))
	}
	if summary.Cancelled {
		fmt.Fprintf(r.out, "  %s\n", r.yellow.Sprint("cancelled before all files were processed"))
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Fprintln(r.out)
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s\n", r.success.Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint(message))
}

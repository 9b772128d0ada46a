package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/vidsweep"
	"github.com/five82/vidsweep/internal/config"
	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/filter"
	"github.com/five82/vidsweep/internal/logging"
	"github.com/five82/vidsweep/internal/reporter"
	"github.com/five82/vidsweep/internal/util"
)

const (
	actionDelete = "delete"
	actionTrash  = "trash"
)

// flagProfile collects only the threshold flags the user actually set.
func flagProfile(cmd *cobra.Command, fo *filterOptions) config.Profile {
	var p config.Profile
	flags := cmd.Flags()
	if flags.Changed("min-width") {
		p.MinWidth = filter.Int(fo.minWidth)
	}
	if flags.Changed("min-height") {
		p.MinHeight = filter.Int(fo.minHeight)
	}
	if flags.Changed("min-fps") {
		p.MinFPS = filter.Float(fo.minFPS)
	}
	if flags.Changed("min-size") {
		p.MinSizeMB = filter.Float(fo.minSizeMB)
	}
	if flags.Changed("mode") {
		p.Mode = fo.mode
	}
	return p
}

// resolveProfile loads the --config profile, if any, and applies explicit flags on top.
func resolveProfile(cmd *cobra.Command, fo *filterOptions) (config.Profile, error) {
	var base config.Profile
	if fo.configPath != "" {
		p, err := config.LoadProfile(fo.configPath)
		if err != nil {
			return config.Profile{}, err
		}
		base = *p
	}
	return base.Override(flagProfile(cmd, fo)), nil
}

// buildConfig assembles and validates the run configuration.
func buildConfig(cmd *cobra.Command, g *globalOptions, fo *filterOptions, ao *actionOptions, dir string) (*config.Config, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, verrors.NewPathError("invalid directory "+dir, err)
	}

	cfg := config.NewConfig(root, g.logDir)
	cfg.Verbose = g.verbose
	cfg.NoLog = g.noLog
	cfg.JSON = g.json
	cfg.EventsPath = g.events
	if g.ffprobe != "" {
		cfg.FFprobePath = g.ffprobe
	}
	if ao != nil {
		cfg.DryRun = ao.dryRun
		cfg.AssumeYes = ao.yes
	}

	profile, err := resolveProfile(cmd, fo)
	if err != nil {
		return nil, verrors.NewConfigError("cannot load filter profile", err)
	}
	cfg.Profile = cfg.Profile.Override(profile)

	if err := cfg.Validate(); err != nil {
		return nil, verrors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// newReporter picks the stdout reporter and, when an events file is set,
// tees every event into it as NDJSON. The returned closer releases the file.
func newReporter(cfg *config.Config, out, errOut io.Writer) (reporter.Reporter, func() error, error) {
	var primary reporter.Reporter
	if cfg.JSON {
		primary = reporter.NewJSONReporterWithWriter(out)
	} else {
		primary = reporter.NewTerminalReporterWithWriters(out, errOut, cfg.Verbose)
	}

	if cfg.EventsPath == "" {
		return primary, func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.EventsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, verrors.NewIOError("cannot open events file "+cfg.EventsPath, err)
	}
	rep := reporter.NewCompositeReporter(primary, reporter.NewJSONReporterWithWriter(f))
	return rep, f.Close, nil
}

func runSweep(cmd *cobra.Command, g *globalOptions, fo *filterOptions, ao *actionOptions, dir, action string) error {
	cfg, err := buildConfig(cmd, g, fo, ao, dir)
	if err != nil {
		return err
	}
	cond, err := cfg.Condition()
	if err != nil {
		return verrors.NewConfigError("invalid filter", err)
	}

	command := cmd.Name()
	fileLogger, err := logging.Setup(cfg.LogDir, command, cfg.Verbose, cfg.NoLog)
	if err != nil {
		return verrors.NewIOError("failed to setup logging", err)
	}
	defer func() { _ = fileLogger.Close() }()

	var logger logging.Printf = fileLogger
	if cfg.Verbose && !cfg.JSON {
		logging.Init(slog.LevelDebug, os.Stderr)
		logger = logging.Multi{fileLogger, logging.Global()}
	}

	sys := util.GetSystemInfo()
	logger.Infof("Host: %s (%s/%s)", sys.Hostname, sys.OS, sys.Arch)
	logger.Infof("Root: %s", cfg.Root)
	logger.Infof("Condition: %s", cond.Describe())
	if action != "" {
		logger.Infof("Action: %s (dry run: %t, confirmed by flag: %t)", action, cfg.DryRun, cfg.AssumeYes)
	}

	rep, closeEvents, err := newReporter(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}
	defer func() { _ = closeEvents() }()
	if path := fileLogger.FilePath(); path != "" {
		rep.Verbose("Log file: " + path)
	}

	if !util.CommandAvailable(cfg.FFprobePath) {
		err := verrors.NewConfigError(fmt.Sprintf("%s not found", cfg.FFprobePath), nil)
		rep.Error(reporter.ReporterError{
			Title:      "ffprobe unavailable",
			Message:    err.Error(),
			Suggestion: "Install FFmpeg or pass --ffprobe <path>",
		})
		return err
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warnf("Interrupt received, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := []vidsweep.Option{
		vidsweep.WithFFprobe(cfg.FFprobePath),
		vidsweep.WithLogger(logger),
		vidsweep.WithReporter(rep),
	}
	if cfg.DryRun {
		opts = append(opts, vidsweep.WithDryRun())
	}
	sweeper := vidsweep.New(opts...)

	return sweep(ctx, sweeper, cfg, cond, action, rep, logger, cmd.InOrStdin(), cmd.ErrOrStderr())
}

// sweep runs scan, filter and the optional action. Per-file failures are
// reported but never returned.
func sweep(ctx context.Context, sweeper *vidsweep.Sweeper, cfg *config.Config, cond filter.Condition,
	action string, rep reporter.Reporter, logger logging.Printf, in io.Reader, prompt io.Writer) error {
	if cond.Supplied() == 0 {
		rep.Warning("no thresholds given: " + cond.Describe())
	}

	scan, err := sweeper.Scan(ctx, cfg.Root)
	if err != nil {
		if verrors.IsCancelled(err) {
			rep.Warning("scan cancelled, no files were changed")
			logger.Warnf("Scan cancelled")
			return err
		}
		rep.Error(reporter.ReporterError{Title: "Scan failed", Message: err.Error(), Context: cfg.Root})
		logger.Errorf("Scan failed: %v", err)
		return err
	}
	if scan.Candidates == 0 {
		rep.Warning(verrors.NewNoFilesFoundError(cfg.Root).Message)
	}

	matches, err := sweeper.Filter(scan.Records, cond)
	if err != nil {
		return verrors.NewConfigError("invalid filter", err)
	}

	if action == "" {
		rep.OperationComplete(fmt.Sprintf("Scan complete: %d of %d %s matched", len(matches),
			len(scan.Records), util.Pluralize(len(scan.Records), "file", "files")))
		return nil
	}

	if len(matches) == 0 {
		rep.OperationComplete("Nothing to " + action)
		return nil
	}

	if !cfg.AssumeYes && !cfg.DryRun {
		if !confirm(in, prompt, confirmPrompt(action, len(matches))) {
			logger.Infof("User declined %s of %d files", action, len(matches))
			rep.OperationComplete("Aborted, no files were changed")
			return nil
		}
	}

	var result vidsweep.ActionResult
	if action == actionTrash {
		result = sweeper.Trash(ctx, matches)
	} else {
		result = sweeper.Delete(ctx, matches)
	}

	if result.Cancelled {
		return verrors.NewCancelledError()
	}
	rep.OperationComplete(fmt.Sprintf("%s complete", strings.ToUpper(action[:1])+action[1:]))
	return nil
}

func confirmPrompt(action string, n int) string {
	if action == actionTrash {
		return fmt.Sprintf("Move %d %s to the trash?", n, util.Pluralize(n, "file", "files"))
	}
	return fmt.Sprintf("Permanently delete %d %s?", n, util.Pluralize(n, "file", "files"))
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

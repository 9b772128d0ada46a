// Package main provides the CLI entry point for vidsweep.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/vidsweep/internal/logging"
)

const (
	appName    = "vidsweep"
	appVersion = "0.1.0"
)

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	verbose bool
	noLog   bool
	json    bool
	events  string
	logDir  string
	ffprobe string
}

// filterOptions holds the threshold flags of scan, delete and trash.
type filterOptions struct {
	minWidth   int
	minHeight  int
	minFPS     float64
	minSizeMB  float64
	mode       string
	configPath string
}

// actionOptions holds the flags of delete and trash.
type actionOptions struct {
	yes    bool
	dryRun bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Find and remove low-quality video files",
		Long: `vidsweep scans a directory tree for video files, probes each one with
ffprobe and lists the files that meet minimum resolution, frame rate and
size thresholds. Matches can then be deleted or moved to the trash.

Examples:
  vidsweep scan ~/Videos --min-width 1920 --min-height 1080
  vidsweep trash ~/Videos --min-size 500 --min-fps 50 --mode or
  vidsweep delete ~/Videos --config profile.yaml --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appVersion,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&g.noLog, "no-log", false, "Disable log file creation")
	pf.BoolVar(&g.json, "json", false, "Emit NDJSON events on stdout")
	pf.StringVar(&g.events, "events", "", "Also write NDJSON events to this file")
	pf.StringVar(&g.logDir, "log-dir", logging.DefaultLogDir(), "Log directory")
	pf.StringVar(&g.ffprobe, "ffprobe", "ffprobe", "Path to the ffprobe binary")

	root.AddCommand(
		newScanCmd(g),
		newActionCmd(g, actionDelete),
		newActionCmd(g, actionTrash),
		newVersionCmd(),
	)
	return root
}

func newScanCmd(g *globalOptions) *cobra.Command {
	fo := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List video files matching the thresholds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, g, fo, nil, args[0], "")
		},
	}
	addFilterFlags(cmd, fo)
	return cmd
}

func newActionCmd(g *globalOptions, action string) *cobra.Command {
	fo := &filterOptions{}
	ao := &actionOptions{}

	short := "Permanently delete video files matching the thresholds"
	if action == actionTrash {
		short = "Move video files matching the thresholds to the trash"
	}

	cmd := &cobra.Command{
		Use:   action + " <dir>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, g, fo, ao, args[0], action)
		},
	}
	addFilterFlags(cmd, fo)
	cmd.Flags().BoolVarP(&ao.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&ao.dryRun, "dry-run", false, "Show what would happen without touching any file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
}

func addFilterFlags(cmd *cobra.Command, fo *filterOptions) {
	f := cmd.Flags()
	f.IntVar(&fo.minWidth, "min-width", 0, "Minimum width in pixels (needs --min-height)")
	f.IntVar(&fo.minHeight, "min-height", 0, "Minimum height in pixels (needs --min-width)")
	f.Float64Var(&fo.minFPS, "min-fps", 0, "Minimum frame rate")
	f.Float64Var(&fo.minSizeMB, "min-size", 0, "Minimum file size in MB")
	f.StringVar(&fo.mode, "mode", "and", "How conditions combine: and, or")
	f.StringVar(&fo.configPath, "config", "", "YAML filter profile; explicit flags take precedence")
}

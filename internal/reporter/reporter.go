package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	ScanStarted(info ScanStartInfo)
	FileProbed(progress ProbeProgress)
	FileSkipped(skip SkippedFile)
	ScanComplete(summary ScanSummary)
	FilterComplete(summary FilterSummary)
	ActionStarted(info ActionStartInfo)
	ActionItemFailed(failure ActionFailure)
	ActionComplete(summary ActionSummary)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) ScanStarted(ScanStartInfo)      {}
func (NullReporter) FileProbed(ProbeProgress)       {}
func (NullReporter) FileSkipped(SkippedFile)        {}
func (NullReporter) ScanComplete(ScanSummary)       {}
func (NullReporter) FilterComplete(FilterSummary)   {}
func (NullReporter) ActionStarted(ActionStartInfo)  {}
func (NullReporter) ActionItemFailed(ActionFailure) {}
func (NullReporter) ActionComplete(ActionSummary)   {}
func (NullReporter) Warning(string)                 {}
func (NullReporter) Error(ReporterError)            {}
func (NullReporter) OperationComplete(string)       {}
func (NullReporter) Verbose(string)                 {}

package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) ScanStarted(info ScanStartInfo) {
	for _, r := range c.reporters {
		r.ScanStarted(info)
	}
}

func (c *CompositeReporter) FileProbed(progress ProbeProgress) {
	for _, r := range c.reporters {
		r.FileProbed(progress)
	}
}

func (c *CompositeReporter) FileSkipped(skip SkippedFile) {
	for _, r := range c.reporters {
		r.FileSkipped(skip)
	}
}

func (c *CompositeReporter) ScanComplete(summary ScanSummary) {
	for _, r := range c.reporters {
		r.ScanComplete(summary)
	}
}

func (c *CompositeReporter) FilterComplete(summary FilterSummary) {
	for _, r := range c.reporters {
		r.FilterComplete(summary)
	}
}

func (c *CompositeReporter) ActionStarted(info ActionStartInfo) {
	for _, r := range c.reporters {
		r.ActionStarted(info)
	}
}

func (c *CompositeReporter) ActionItemFailed(failure ActionFailure) {
	for _, r := range c.reporters {
		r.ActionItemFailed(failure)
	}
}

func (c *CompositeReporter) ActionComplete(summary ActionSummary) {
	for _, r := range c.reporters {
		r.ActionComplete(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}

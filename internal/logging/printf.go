package logging

// Printf is the formatted logging surface shared by FileLogger and Logger.
type Printf interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Multi fans formatted messages out to several loggers. Nil entries are skipped.
type Multi []Printf

func (m Multi) Debugf(format string, args ...any) {
	for _, l := range m {
		if l != nil {
			l.Debugf(format, args...)
		}
	}
}

func (m Multi) Infof(format string, args ...any) {
	for _, l := range m {
		if l != nil {
			l.Infof(format, args...)
		}
	}
}

func (m Multi) Warnf(format string, args ...any) {
	for _, l := range m {
		if l != nil {
			l.Warnf(format, args...)
		}
	}
}

func (m Multi) Errorf(format string, args ...any) {
	for _, l := range m {
		if l != nil {
			l.Errorf(format, args...)
		}
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

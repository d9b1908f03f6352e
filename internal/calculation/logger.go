package calculation

// Logger receives diagnostics from the engine, chiefly Warnf lines when an
// effect rule zeroes out over malformed scenario parameters. The rules never
// return errors, so the warning channel is the only visibility into dropped
// input. Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all engine diagnostics.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

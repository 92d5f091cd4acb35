package health

import "log/slog"

// Ctx bundles a logger for embedding in options structs. A zero Ctx is usable:
// logging is a no-op until Logger is set.
type Ctx struct {
	Logger *slog.Logger
}

func NewCtx(logger *slog.Logger) Ctx {
	return Ctx{Logger: logger}
}

func (c Ctx) LogNewErr(msg string, args ...any) error {
	return LogNewErr(c.Logger, msg, args...)
}

func (c Ctx) LogWrappedErr(msg string, wrapped error, args ...any) error {
	return LogWrappedErr(c.Logger, msg, wrapped, args...)
}

func (c Ctx) Log(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}

// Debug logs at debug level, for diagnostics like match counts and rewrite previews.
func (c Ctx) Debug(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}

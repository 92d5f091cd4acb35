// Package health provides a tiny error/logging kit shared by the rewrite
// pipeline. A HealthErr carries a message, an optional wrapped error, and
// slog-style key/value attrs, so errors can be logged once with full context
// and still returned to the caller.
package health

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type HealthErr struct {
	Message string
	wrapped error
	attrs   []any
}

// Error satisfies the error interface. All aspects are serialized to the
// string: msg, attrs, and the wrapped error.
func (e *HealthErr) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.attrs) > 0 {
		b.WriteString("[")
		writeAttrs(&b, e.attrs)
		b.WriteString("]")
	}

	if e.wrapped != nil {
		b.WriteString(" via ")
		b.WriteString(e.wrapped.Error())
	}

	return b.String()
}

func (e *HealthErr) Unwrap() error {
	return e.wrapped
}

// NewErr returns a new error (unlogged). args is in the same format as slog's
// args to Info: key/value pairs, or slog.Attrs.
// NOTE: to wrap an error, use Wrap.
func NewErr(msg string, args ...any) error {
	return &HealthErr{Message: msg, attrs: args}
}

// Wrap returns a new error that wraps `wrapped`.
func Wrap(msg string, wrapped error, args ...any) error {
	if wrapped == nil {
		// A footgun, but probably don't want to panic. An error at least makes it likely the caller can fix their code.
		wrapped = errors.New("nil wrapped error. WARNING: you should not call Wrap with a nil error")
	}
	return &HealthErr{Message: msg, wrapped: wrapped, attrs: args}
}

// LogNewErr creates a new error with msg and args, logs it, and returns it.
func LogNewErr(logger *slog.Logger, msg string, args ...any) error {
	return LogErr(logger, NewErr(msg, args...))
}

// LogWrappedErr creates a new error wrapping `wrapped`, logs it, and returns it.
func LogWrappedErr(logger *slog.Logger, msg string, wrapped error, args ...any) error {
	return LogErr(logger, Wrap(msg, wrapped, args...))
}

// LogErr logs err to logger (if it's not nil) and returns the error. It enables
// the pattern of logging and returning an error in one line:
//
//	return health.LogErr(logger, errors.New("myerr"))
//
// When err is a HealthErr (created via NewErr or Wrap), its attrs are logged
// first (then args -- duplicates are permitted), and the wrapped error is
// logged with a "via" kv.
func LogErr(logger *slog.Logger, err error, args ...any) error {
	if logger == nil || err == nil {
		return err
	}

	h, isHealthErr := err.(*HealthErr)
	if !isHealthErr {
		logger.Error(err.Error(), args...)
		return err
	}

	allArgs := make([]any, 0, len(h.attrs)+len(args)+1)
	allArgs = append(allArgs, h.attrs...)
	if h.wrapped != nil {
		allArgs = append(allArgs, slog.String("via", h.wrapped.Error()))
	}
	allArgs = append(allArgs, args...)

	logger.Error(h.Message, allArgs...)
	return err
}

// writeAttrs writes attrs (in the protocol of slog attrs to .Log) to b in
// key=value format. Ex: `num=3 str=hi`.
func writeAttrs(b *strings.Builder, attrs []any) {
	first := true
	emit := func(key string, value any) {
		if !first {
			b.WriteString(" ")
		}
		first = false
		fmt.Fprintf(b, "%s=%v", key, value)
	}

	for i := 0; i < len(attrs); {
		switch a := attrs[i].(type) {
		case slog.Attr:
			emit(a.Key, a.Value.Any())
			i++
		case string:
			if i+1 < len(attrs) {
				emit(a, attrs[i+1])
				i += 2
			} else {
				emit("!BADKEY", a)
				i++
			}
		default:
			emit("!BADKEY", a)
			i++
		}
	}
}

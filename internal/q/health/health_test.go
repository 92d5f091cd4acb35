package health

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthErrString(t *testing.T) {
	err := NewErr("something failed", "path", "a.cs", "count", 3)
	assert.Equal(t, "something failed[path=a.cs count=3]", err.Error())

	wrapped := Wrap("outer", errors.New("inner"))
	assert.Equal(t, "outer via inner", wrapped.Error())
	assert.Equal(t, "inner", errors.Unwrap(wrapped).Error())
}

func TestLogErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := LogNewErr(logger, "boom", "path", "a.cs")
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "path=a.cs")

	// nil logger is a no-op but still returns the error
	assert.Error(t, LogErr(nil, errors.New("x")))
	assert.NoError(t, LogErr(logger, nil))
}

func TestCtxZeroValue(t *testing.T) {
	var ctx Ctx
	ctx.Log("ignored")   // must not panic
	ctx.Debug("ignored") // must not panic
	assert.Error(t, ctx.LogNewErr("still an error"))
}

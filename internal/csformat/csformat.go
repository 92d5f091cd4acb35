// Package csformat runs an external code formatter over a single rewritten
// file. The hook is strictly best-effort: a non-zero exit is reported to the
// caller as an error, but callers log it and move on; it never rolls back a
// rewrite and never blocks other files.
package csformat

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/jcant0n/improvecomments/internal/q/health"
)

// Runner formats one file and returns the formatter's combined stdout/stderr.
type Runner interface {
	Format(ctx context.Context, path string) (output string, err error)
}

// commandRunner invokes name with args plus the target path appended.
type commandRunner struct {
	name string
	args []string
}

// NewDotnetRunner returns a Runner that invokes `dotnet format` scoped to a
// single file via `--folder --include <path>`.
func NewDotnetRunner() Runner {
	return commandRunner{name: "dotnet", args: []string{"format", "--folder", "--include"}}
}

func (r commandRunner) Format(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, r.name, append(append([]string(nil), r.args...), path)...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return buf.String(), health.Wrap("dotnet format failed", err, "path", path)
	}
	return buf.String(), nil
}

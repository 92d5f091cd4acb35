// Package improver drives one rewrite run: it enumerates eligible source
// files under a base directory, fans them out to a fixed-size worker pool,
// and rewrites each file's documentation-comment blocks through a Completer.
// Per-file work is independent; the only shared state is the pair of run
// counters. Within a file, span calls are made sequentially in document order,
// which keeps splicing trivially correct and bounds memory.
package improver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jcant0n/improvecomments/internal/comments"
	"github.com/jcant0n/improvecomments/internal/csformat"
	"github.com/jcant0n/improvecomments/internal/llmrewrite"
	"github.com/jcant0n/improvecomments/internal/q/health"
	"github.com/jcant0n/improvecomments/internal/scan"
)

// Options configures a rewrite run.
type Options struct {
	// MaxWorkers is the number of files processed concurrently. If zero or negative, 1 is used.
	MaxWorkers int

	// Ext is the eligible source-file extension. If empty, ".cs" is used.
	Ext string

	// Recursive walks all subdirectories when true; otherwise only the base directory's immediate entries are scanned.
	Recursive bool

	// GrammarOnly selects the grammar-fix prompt variant instead of the clarity/precision one.
	GrammarOnly bool

	// Completer performs the remote rewrite calls. Required. Inject a mock (llmrewrite.NewMockCompleter) for tests.
	Completer llmrewrite.Completer

	// Formatter, when non-nil, is run over each file after a successful rewrite. Failures are logged and never affect the rewrite or the counts.
	Formatter csformat.Runner

	// Out receives user-facing progress and the final summary. If nil, os.Stdout is used.
	Out io.Writer

	// Logging for diagnostics (match counts, rewrite previews, errors).
	health.Ctx
}

// Results tallies one run. Counters are shared across workers for the
// duration of the run and read once at the end; nothing is persisted.
type Results struct {
	Processed int64 // files processed without error (including files with zero spans)
	Modified  int64 // files with at least one span that were successfully written, counted exactly once each
}

// Run processes every eligible file under baseDir and reports the tally and
// elapsed time. A missing baseDir is reported and yields zero results without
// an error. A per-file failure (read, remote call, write) is reported with the
// file path and skips only that file; sibling files still complete.
func Run(baseDir string, options Options) (Results, error) {
	start := time.Now()

	if options.Completer == nil {
		return Results{}, options.LogNewErr("improver: no completer configured")
	}

	ext := options.Ext
	if ext == "" {
		ext = ".cs"
	}

	files, err := scan.Eligible(baseDir, ext, options.Recursive)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			options.userMessagef("The directory %s does not exist.", baseDir)
			return Results{}, nil
		}
		return Results{}, health.LogErr(options.Logger, err)
	}

	workers := options.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	var processed, modified atomic.Int64

	// Semaphore channel to limit parallelism.
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			wasModified, err := processFile(path, &options)
			if err != nil {
				options.userMessagef("Error processing file %s: %v", path, err)
				return
			}
			processed.Add(1)
			if wasModified {
				modified.Add(1)
			}
		}()
	}

	wg.Wait()

	results := Results{Processed: processed.Load(), Modified: modified.Load()}

	options.userMessagef("Total modified files: %d / %d", results.Modified, results.Processed)
	options.userMessagef("Total time: %s", formatElapsed(time.Since(start)))

	return results, nil
}

// processFile rewrites every documentation-comment span in path and writes the
// result back as a single whole-file overwrite. It returns whether the file
// was modified. A failed span call aborts the whole file before any write, so
// a file is never left partially rewritten.
func processFile(path string, options *Options) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, health.Wrap("read file", err, "path", path)
	}
	content := string(raw)

	spans := comments.Extract(content)
	options.Debug("file.matches", "path", path, "count", len(spans))

	if len(spans) == 0 {
		return false, nil
	}

	replacements := make([]string, len(spans))
	for i, span := range spans {
		prompt := rewritePrompt(span.Text, options.GrammarOnly)
		improved, err := options.Completer.Complete(systemPrompt, prompt)
		if err != nil {
			return false, health.Wrap("rewrite comment", err, "path", path, "span", i)
		}
		options.Debug("span.rewrite", "path", path, "span", i, "multiline", renderRewritePreview(span.Text, improved))
		replacements[i] = improved
	}

	newContent, err := comments.Splice(content, spans, replacements)
	if err != nil {
		return false, health.Wrap("splice file", err, "path", path)
	}

	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		return false, health.Wrap("write file", err, "path", path)
	}
	options.userMessagef("File modified: %s", path)

	if options.Formatter != nil {
		// Best-effort: a formatter failure never affects the rewrite or the counts.
		out, err := options.Formatter.Format(context.Background(), path)
		if err != nil {
			_ = options.LogWrappedErr("post-format failed", err, "path", path, "multiline", out)
		}
	}

	return true, nil
}

// outMu serializes user-facing writes from concurrent file tasks.
var outMu sync.Mutex

// userMessagef writes msg/args (in printf format) to options.Out. If the
// logger is set, the message is logged there as well.
func (o *Options) userMessagef(msg string, args ...any) {
	str := fmt.Sprintf(strings.TrimRight(msg, "\n"), args...)
	out := o.Out
	if out == nil {
		out = os.Stdout
	}
	outMu.Lock()
	fmt.Fprintln(out, str)
	outMu.Unlock()
	if o.Logger != nil {
		o.Logger.Info(str)
	}
}

// formatElapsed renders elapsed as seconds under a minute, minutes otherwise.
func formatElapsed(elapsed time.Duration) string {
	if elapsed < time.Minute {
		return fmt.Sprintf("%.2f seconds", elapsed.Seconds())
	}
	return fmt.Sprintf("%.2f minutes", elapsed.Minutes())
}

// Package cli wires the command line to a rewrite run: argument parsing,
// startup validation, logger construction, and exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jcant0n/improvecomments/internal/csformat"
	"github.com/jcant0n/improvecomments/internal/improver"
	"github.com/jcant0n/improvecomments/internal/llmrewrite"
	"github.com/jcant0n/improvecomments/internal/q/health"

	"github.com/spf13/pflag"
)

// Version is the improvecomments version. It is a var (not a const) so build
// tooling can override it via `-ldflags "-X .../internal/cli.Version=1.2.3"`.
var Version = "1.0.0"

const usageLine = "Usage: improvecomments [flags] <baseDirectory> [<maxWorkers>=1] [<includeSubdirectories>=true]"

// Out/Err override standard I/O. If nil, defaults are used. Overriding is
// useful for testing.
type RunOptions struct {
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code and an error, if any:
//   - 0 -> err == nil
//   - 1 -> startup or runtime failure (missing directory argument, missing
//     credential, unusable remote client, run failure)
//   - 2 -> flag parse error
//
// In cases of errors, Run has already displayed a message to opts.Err ||
// Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	flags := pflag.NewFlagSet("improvecomments", pflag.ContinueOnError)
	flags.SetOutput(errW)
	grammar := flags.Bool("grammar", false, "fix only grammar; preserve fixed-prefix summary and constructor-intro lines")
	format := flags.Bool("format", false, "run dotnet format on each modified file")
	model := flags.String("model", "gpt-4o", "completion model id")
	ext := flags.String("ext", ".cs", "eligible source-file extension")
	showVersion := flags.Bool("version", false, "print the version and exit")
	flags.Usage = func() {
		fmt.Fprintln(errW, usageLine)
		fmt.Fprintln(errW, "\nFlags:")
		fmt.Fprint(errW, flags.FlagUsages())
	}

	if err := flags.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0, nil
		}
		return 2, err
	}

	if *showVersion {
		fmt.Fprintln(out, "improvecomments "+Version)
		return 0, nil
	}

	positional := flags.Args()
	if len(positional) < 1 {
		flags.Usage()
		return 1, errors.New("missing <baseDirectory> argument")
	}
	if len(positional) > 3 {
		flags.Usage()
		return 2, fmt.Errorf("expected at most 3 args, got %d", len(positional))
	}

	baseDir := positional[0]

	maxWorkers := 1
	if len(positional) >= 2 {
		n, err := strconv.Atoi(positional[1])
		if err != nil || n < 1 {
			msg := fmt.Sprintf("invalid <maxWorkers> value %q: expected a positive integer", positional[1])
			fmt.Fprintln(errW, msg)
			return 1, errors.New(msg)
		}
		maxWorkers = n
	}

	recursive := true
	if len(positional) >= 3 {
		recursive = includeSubdirectories(positional[2])
	}

	// The credential must be present before any file I/O begins.
	if !llmrewrite.HasAPIKey() {
		msg := fmt.Sprintf("Please set the %s environment variable", llmrewrite.APIKeyEnv)
		fmt.Fprintln(errW, msg)
		return 1, errors.New(msg)
	}

	healthCtx := health.NewCtx(newLogger(errW))

	completer, err := llmrewrite.NewOpenAICompleter(*model, healthCtx)
	if err != nil {
		fmt.Fprintln(errW, err.Error())
		return 1, err
	}

	options := improver.Options{
		MaxWorkers:  maxWorkers,
		Ext:         *ext,
		Recursive:   recursive,
		GrammarOnly: *grammar,
		Completer:   completer,
		Out:         out,
		Ctx:         healthCtx,
	}
	if *format {
		options.Formatter = csformat.NewDotnetRunner()
	}

	if _, err := improver.Run(baseDir, options); err != nil {
		fmt.Fprintln(errW, err.Error())
		return 1, err
	}

	return 0, nil
}

// includeSubdirectories parses the third positional argument: only the literal
// token "true" (case-insensitive) enables recursion; anything else, including
// typos, means false.
func includeSubdirectories(token string) bool {
	return strings.EqualFold(token, "true")
}

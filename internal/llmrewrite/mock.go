package llmrewrite

import (
	"strings"
	"sync"

	"github.com/jcant0n/improvecomments/internal/q/health"
)

type mockCompleter struct {
	responses map[string]string

	mu    sync.Mutex
	calls []string
}

var _ Completer = (*mockCompleter)(nil) // ensure mockCompleter is a Completer

// NewMockCompleter returns a mock that replies with the value for any key
// contained (case-insensitively) in the user message. A message matching no
// key errors, which makes the mock double as a failure injector: just leave a
// file's comment text out of responses.
//
// The mock is safe for concurrent use, matching how the worker pool drives
// real completers.
func NewMockCompleter(responses map[string]string) Completer {
	return &mockCompleter{responses: responses}
}

func (c *mockCompleter) Complete(systemMessage string, userMessage string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, userMessage)
	c.mu.Unlock()

	lower := strings.ToLower(userMessage)
	for k, resp := range c.responses {
		if strings.Contains(lower, strings.ToLower(k)) {
			return resp, nil
		}
	}
	return "", health.NewErr("no mock response for user message", "bytes", len(userMessage))
}

// Calls returns the user messages received so far, in arrival order.
func (c *mockCompleter) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

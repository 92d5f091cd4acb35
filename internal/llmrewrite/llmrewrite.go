// Package llmrewrite abstracts the hosted completion service behind a narrow
// interface: submit the text of one comment block, receive replacement text or
// an error. It purposefully does not expose provider features like tools or
// streaming; the tool only needs basic text completion, and keeping the
// surface small lets tests substitute a mock without any network access.
package llmrewrite

import "os"

// APIKeyEnv is the environment variable carrying the completion-service
// credential. Its absence is a startup-fatal condition: callers must check
// HasAPIKey before any file I/O begins.
const APIKeyEnv = "OPENAI_API_KEY"

// Completer submits one comment block's rewrite request and returns the
// completion text verbatim. No retries are performed and the response is not
// validated beyond the provider's basic response shape; a failure is reported
// as an error for the caller to handle at the per-file boundary.
type Completer interface {
	Complete(systemMessage string, userMessage string) (string, error)
}

// HasAPIKey reports whether the completion-service credential is present in
// the environment.
func HasAPIKey() bool {
	return os.Getenv(APIKeyEnv) != ""
}

// Package comments locates XML documentation-comment blocks in C# source text
// and splices replacement text back in. Matching is a regex heuristic over raw
// text, not a parse of the language: blocks are found in textual order,
// first-match-wins, and nested or malformed blocks are undefined.
package comments

import (
	"regexp"

	"github.com/jcant0n/improvecomments/internal/q/health"
)

// Span is one documentation-comment block: a half-open byte range [Start, End)
// into the content it was extracted from, plus the matched text.
type Span struct {
	Start int
	End   int
	Text  string
}

// blockPattern matches a `/// <summary>` block through its `/// </summary>`
// close tag, then greedily takes any number of further `///` continuation
// lines (ex: <param>, <returns>).
var blockPattern = regexp.MustCompile(`/// <summary>(?s:.*?)/// </summary>(?:\r?\n[ \t]*///[^\r\n]*)*`)

// Extract returns the ordered, non-overlapping documentation-comment spans in
// content. A matched block only counts as a span if it is followed by a
// newline (ignoring trailing spaces/tabs); a block truncated by EOF is
// dropped. The scan resumes after each match end, so overlapping candidates
// are never produced.
func Extract(content string) []Span {
	var spans []Span
	for _, loc := range blockPattern.FindAllStringIndex(content, -1) {
		start, end := loc[0], loc[1]
		if !followedByNewline(content, end) {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Text: content[start:end]})
	}
	return spans
}

// followedByNewline reports whether content[pos:] begins with a newline,
// allowing horizontal whitespace before it.
func followedByNewline(content string, pos int) bool {
	for ; pos < len(content); pos++ {
		switch content[pos] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return false
}

// Splice reconstructs content by replacing each span with the replacement at
// the same index, preserving everything outside the spans: prefix before the
// first span, the gaps between spans, and the suffix after the last one, all
// in original left-to-right order.
//
// spans must be the ordered, non-overlapping output of Extract on the same
// content, and len(replacements) must equal len(spans); otherwise an error is
// returned and content is not reconstructed.
func Splice(content string, spans []Span, replacements []string) (string, error) {
	if len(spans) != len(replacements) {
		return "", health.NewErr("splice: spans/replacements length mismatch", "spans", len(spans), "replacements", len(replacements))
	}

	var b []byte
	last := 0
	for i, span := range spans {
		if span.Start < last || span.End > len(content) || span.End < span.Start {
			return "", health.NewErr("splice: span out of order or out of range", "index", i, "start", span.Start, "end", span.End)
		}
		b = append(b, content[last:span.Start]...)
		b = append(b, replacements[i]...)
		last = span.End
	}
	b = append(b, content[last:]...)

	return string(b), nil
}

package improver

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderRewritePreview returns a line-oriented preview of one span rewrite:
// "-" for removed lines, "+" for inserted lines, " " for unchanged ones. Only
// used for debug logging.
func renderRewritePreview(original, rewritten string) string {
	dmp := diffmatchpatch.New()

	// Diff based on lines:
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(original, rewritten)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	// Decode rune-string back to the original lines using the lineArray mapping.
	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	var b strings.Builder
	writeLines := func(prefix string, lines []string) {
		for _, line := range lines {
			b.WriteString(prefix)
			b.WriteString(strings.TrimRight(line, "\r\n"))
			b.WriteString("\n")
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			writeLines(" ", decode(d.Text))
		case diffmatchpatch.DiffDelete:
			writeLines("-", decode(d.Text))
		case diffmatchpatch.DiffInsert:
			writeLines("+", decode(d.Text))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

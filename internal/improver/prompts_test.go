package improver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePromptEmbedsSpan(t *testing.T) {
	span := "/// <summary>\n/// Does things.\n/// </summary>"

	improve := rewritePrompt(span, false)
	assert.True(t, strings.HasSuffix(improve, span))
	assert.Contains(t, improve, "improve the comments without modifying the code")
	assert.Contains(t, improve, "Maintain the original indentation")

	grammar := rewritePrompt(span, true)
	assert.True(t, strings.HasSuffix(grammar, span))
	assert.Contains(t, grammar, "only grammar and spelling")
	assert.Contains(t, grammar, "Initializes a new instance of")
}

func TestRenderRewritePreview(t *testing.T) {
	preview := renderRewritePreview("/// line one\n/// line two\n", "/// line one\n/// line 2\n")
	assert.Contains(t, preview, " /// line one")
	assert.Contains(t, preview, "-/// line two")
	assert.Contains(t, preview, "+/// line 2")
}

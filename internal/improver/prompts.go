package improver

import "strings"

// systemPrompt is sent as the system role message on every rewrite request.
const systemPrompt = "You are a helpful assistant."

// rewritePrompt builds the user message for one comment block. grammarOnly
// selects the restrictive grammar-fix variant.
func rewritePrompt(commentText string, grammarOnly bool) string {
	if grammarOnly {
		return promptFixGrammar(commentText)
	}
	return promptImproveComments(commentText)
}

// promptImproveComments asks for clearer, more precise comments while leaving
// the code and indentation alone.
func promptImproveComments(commentText string) string {
	var b strings.Builder

	b.WriteString("I have the following C# code. I need you to correct and improve the comments without modifying the code. ")
	b.WriteString("Maintain the original indentation and ensure that the comments are clear, precise. ")
	b.WriteString("Do not include any introductory phrases or markdown formatting in your response.\n")
	b.WriteString("\n")
	b.WriteString(commentText)

	return b.String()
}

// promptFixGrammar restricts the rewrite to grammar and spelling. Fixed-prefix
// summary lines and constructor-intro lines must come back unchanged.
func promptFixGrammar(commentText string) string {
	var b strings.Builder

	b.WriteString("I have the following C# XML documentation comments. Correct only grammar and spelling mistakes; do not rephrase or restructure. ")
	b.WriteString("Keep summary lines that begin with a fixed prefix exactly as they are, and keep constructor introduction lines (ex: 'Initializes a new instance of ...') exactly as they are. ")
	b.WriteString("Maintain the original indentation and do not modify any code. ")
	b.WriteString("Do not include any introductory phrases or markdown formatting in your response.\n")
	b.WriteString("\n")
	b.WriteString(commentText)

	return b.String()
}

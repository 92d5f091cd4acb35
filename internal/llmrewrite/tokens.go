package llmrewrite

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// CountTokens returns the token count for text using the O200kBase encoding
// (the encoding used by the chat models this tool targets). If the text can't
// be encoded, it falls back to a bytes/4 estimate.
func CountTokens(text string) int {
	enc, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		panic(fmt.Errorf("invalid encoder: %v", tokenizer.O200kBase))
	}

	count, err := enc.Count(text)
	if err != nil {
		return len(text) / 4
	}

	return count
}

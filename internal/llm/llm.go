// Package llm provides the embedding and text-generation clients backing the
// question-answering flow. Two providers are supported; exactly one is
// selected by configuration at startup.
package llm

// Generation is the outcome of a single text-generation call, including the
// token bookkeeping forwarded to the observability backend.
type Generation struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// TotalTokens returns the combined prompt and completion token count.
func (g *Generation) TotalTokens() int {
	return g.PromptTokens + g.CompletionTokens
}

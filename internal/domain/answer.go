package domain

// NoContentAnswer is returned when no readable chunks survive filtering.
// The generative model is not called in that case.
const NoContentAnswer = "No readable content found in the retrieved chunks."

// FallbackAnswer is returned when the generation call fails for any reason.
const FallbackAnswer = "Sorry, I couldn't generate a response at the moment."

// Answer is the result of the retrieve-then-generate flow for one question.
type Answer struct {
	Text string
	// SourcePDFs lists the distinct filenames the context was drawn from.
	SourcePDFs []string
	NumChunks  int
	// ContextPreview holds at most the first two context chunks.
	ContextPreview   []string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

package domain

// Chunk is a bounded substring of a PDF's extracted text, stored as a graph
// node together with its embedding vector.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
	// Source is the filename of the PDF the chunk was extracted from.
	Source  string
	Project string
	// Index is the ordinal position of the chunk in split order.
	Index int
}

// ScoredChunk is a chunk returned by similarity search together with its
// similarity score.
type ScoredChunk struct {
	Text    string
	Source  string
	Project string
	Score   float64
}

package service

import (
	"regexp"
	"strings"
)

// ChunkConfig controls how extracted text is split before embedding.
type ChunkConfig struct {
	ChunkSize int
	Overlap   int
	MaxChunks int
}

// DefaultChunkConfig provides the chunking parameters used for indexing.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize: 500,
		Overlap:   50,
		MaxChunks: 10,
	}
}

// splitText splits text into fixed-size overlapping windows of runes.
// Inputs shorter than one window yield a single trimmed chunk. The number
// of chunks is capped at cfg.MaxChunks, keeping them in document order.
func splitText(text string, cfg ChunkConfig) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if cfg.ChunkSize <= 0 {
		cfg = DefaultChunkConfig()
	}

	runes := []rune(clean)
	if len(runes) <= cfg.ChunkSize {
		return []string{clean}
	}

	step := cfg.ChunkSize - cfg.Overlap
	if step <= 0 {
		step = cfg.ChunkSize
	}

	chunks := make([]string, 0, cfg.MaxChunks)
	for start := 0; start < len(runes); start += step {
		if cfg.MaxChunks > 0 && len(chunks) >= cfg.MaxChunks {
			break
		}

		end := start + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}
	}

	return chunks
}

var wordPattern = regexp.MustCompile(`\w+`)

// cleanChunk strips characters outside printable ASCII, keeping newlines.
func cleanChunk(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7E) || r == '\n' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanChunks sanitizes chunks and drops those too short or too sparse to
// be worth embedding: a chunk survives only if its trimmed text is longer
// than 50 characters and contains more than 10 word tokens.
func cleanChunks(chunks []string) []string {
	kept := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		cleaned := cleanChunk(chunk)
		if len(strings.TrimSpace(cleaned)) <= 50 {
			continue
		}
		if len(wordPattern.FindAllString(cleaned, -1)) <= 10 {
			continue
		}
		kept = append(kept, cleaned)
	}
	return kept
}

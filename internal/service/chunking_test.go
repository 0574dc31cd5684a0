package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_Empty(t *testing.T) {
	assert.Nil(t, splitText("", DefaultChunkConfig()))
	assert.Nil(t, splitText("   \n\t  ", DefaultChunkConfig()))
}

func TestSplitText_ShortInputSingleChunk(t *testing.T) {
	chunks := splitText("  hello world  ", DefaultChunkConfig())
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitText_ExactWindowSingleChunk(t *testing.T) {
	text := strings.Repeat("a", 500)
	chunks := splitText(text, DefaultChunkConfig())
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitText_OverlappingWindows(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100) // 1000 runes
	chunks := splitText(text, DefaultChunkConfig())
	require.Len(t, chunks, 3)

	assert.Len(t, []rune(chunks[0]), 500)
	assert.Len(t, []rune(chunks[1]), 500)
	assert.Len(t, []rune(chunks[2]), 100)

	// Consecutive windows share the trailing 50 runes.
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	assert.Equal(t, string(first[450:]), string(second[:50]))
}

func TestSplitText_CapsAtMaxChunks(t *testing.T) {
	text := strings.Repeat("x", 20000)
	chunks := splitText(text, DefaultChunkConfig())
	assert.Len(t, chunks, 10)
}

func TestSplitText_PreservesOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 1500; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	chunks := splitText(b.String(), DefaultChunkConfig())
	require.True(t, len(chunks) >= 2)

	text := b.String()
	offset := 0
	for _, chunk := range chunks {
		idx := strings.Index(text[offset:], chunk)
		require.GreaterOrEqual(t, idx, 0, "chunks must appear in document order")
		offset += idx
	}
}

func TestCleanChunks_StripsNonPrintable(t *testing.T) {
	dirty := "café " + strings.Repeat("one two three four five six ", 3) + "\x00\x1b[0m end"
	cleaned := cleanChunks([]string{dirty})
	require.Len(t, cleaned, 1)
	assert.NotContains(t, cleaned[0], "é")
	assert.NotContains(t, cleaned[0], "\x00")
	assert.Contains(t, cleaned[0], "caf")
}

func TestCleanChunks_KeepsNewlines(t *testing.T) {
	chunk := strings.Repeat("alpha beta gamma delta\n", 5)
	cleaned := cleanChunks([]string{chunk})
	require.Len(t, cleaned, 1)
	assert.Contains(t, cleaned[0], "\n")
}

func TestCleanChunks_DropsShortChunks(t *testing.T) {
	cleaned := cleanChunks([]string{"too short to keep"})
	assert.Empty(t, cleaned)
}

func TestCleanChunks_DropsSparseChunks(t *testing.T) {
	// Long enough but fewer than eleven word tokens.
	sparse := "aaaaaaaaaaaaaaaaaaaa bbbbbbbbbbbbbbbbbbbb cccccccccccccccccccc"
	require.Greater(t, len(sparse), 50)
	cleaned := cleanChunks([]string{sparse})
	assert.Empty(t, cleaned)
}

func TestCleanChunks_KeepsSubstantiveChunks(t *testing.T) {
	good := strings.Repeat("the quick brown fox jumps over the lazy dog ", 3)
	cleaned := cleanChunks([]string{good, "junk"})
	require.Len(t, cleaned, 1)
	assert.Contains(t, cleaned[0], "quick brown fox")
}

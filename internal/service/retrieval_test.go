package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wizvault/wizvault/internal/domain"
)

// MockChunkReader is a mock implementation of ChunkReaderInterface
type MockChunkReader struct {
	mock.Mock
}

func (m *MockChunkReader) ChunksByPDF(ctx context.Context, filename, project string) ([]string, error) {
	args := m.Called(ctx, filename, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChunkReader) SimilaritySearch(ctx context.Context, embedding []float32, project string, limit int) ([]domain.ScoredChunk, error) {
	args := m.Called(ctx, embedding, project, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredChunk), args.Error(1)
}

func (m *MockChunkReader) ListPDFs(ctx context.Context, project string) ([]string, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func substantiveChunk(seed string) string {
	return seed + " " + strings.Repeat("one two three four five six seven eight nine ten eleven ", 2)
}

func TestRetrieve_ScopedUsesIndexOrder(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	texts := []string{substantiveChunk("first"), substantiveChunk("second")}
	store.On("ChunksByPDF", mock.Anything, "report.pdf", "acme").Return(texts, nil)

	svc := NewRetrievalService(embedder, store)
	result, err := svc.Retrieve(context.Background(), "acme", "what is this about", "report.pdf")

	require.NoError(t, err)
	require.Len(t, result.Chunks, 2)
	assert.True(t, strings.HasPrefix(result.Chunks[0], "first"))
	assert.True(t, strings.HasPrefix(result.Chunks[1], "second"))
	assert.Equal(t, []string{"report.pdf"}, result.Sources)

	// Scoped retrieval never embeds the question.
	embedder.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
}

func TestRetrieve_ScopedUnknownPDFIsEmpty(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	store.On("ChunksByPDF", mock.Anything, "missing.pdf", "acme").Return([]string{}, nil)

	svc := NewRetrievalService(embedder, store)
	result, err := svc.Retrieve(context.Background(), "acme", "anything", "missing.pdf")

	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.Empty(t, result.Sources)
}

func TestRetrieve_UnscopedSimilaritySearch(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	embedding := []float32{0.1, 0.2, 0.3}
	embedder.On("GenerateEmbedding", mock.Anything, "what is the refund policy").Return(embedding, nil)
	store.On("SimilaritySearch", mock.Anything, embedding, "acme", RetrievalLimit).Return([]domain.ScoredChunk{
		{Text: substantiveChunk("alpha"), Source: "a.pdf", Score: 0.9},
		{Text: substantiveChunk("beta"), Source: "b.pdf", Score: 0.8},
		{Text: substantiveChunk("gamma"), Source: "a.pdf", Score: 0.7},
	}, nil)

	svc := NewRetrievalService(embedder, store)
	result, err := svc.Retrieve(context.Background(), "acme", "what is the refund policy", "")

	require.NoError(t, err)
	assert.Len(t, result.Chunks, 3)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, result.Sources)
}

func TestRetrieve_UnscopedFiltersNoisyChunks(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
	store.On("SimilaritySearch", mock.Anything, mock.Anything, "acme", RetrievalLimit).Return([]domain.ScoredChunk{
		{Text: "short noise", Source: "a.pdf", Score: 0.9},
		{Text: substantiveChunk("useful"), Source: "b.pdf", Score: 0.8},
	}, nil)

	svc := NewRetrievalService(embedder, store)
	result, err := svc.Retrieve(context.Background(), "acme", "question", "")

	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, []string{"b.pdf"}, result.Sources)
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("quota"))

	svc := NewRetrievalService(embedder, store)
	_, err := svc.Retrieve(context.Background(), "acme", "question", "")

	assert.Error(t, err)
	store.AssertNotCalled(t, "SimilaritySearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListPDFs(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockChunkReader)

	store.On("ListPDFs", mock.Anything, "acme").Return([]string{"a.pdf", "b.pdf"}, nil)

	svc := NewRetrievalService(embedder, store)
	names, err := svc.ListPDFs(context.Background(), "acme")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names)
}

package service

import (
	"context"

	"github.com/wizvault/wizvault/internal/domain"
	"github.com/wizvault/wizvault/internal/telemetry"
)

// RetrievalLimit is the number of chunks returned by unscoped retrieval.
const RetrievalLimit = 5

// ChunkReaderInterface defines the graph-side read interface for retrieval
type ChunkReaderInterface interface {
	ChunksByPDF(ctx context.Context, filename, project string) ([]string, error)
	SimilaritySearch(ctx context.Context, embedding []float32, project string, limit int) ([]domain.ScoredChunk, error)
	ListPDFs(ctx context.Context, project string) ([]string, error)
}

// RetrievedContext is the context assembled for one question: sanitized chunk
// texts plus the distinct filenames they came from.
type RetrievedContext struct {
	Chunks  []string
	Sources []string
}

// RetrievalService assembles question context from the chunk graph. A
// question scoped to a named PDF reads that document's chunks in index
// order; an unscoped question runs a vector similarity search within the
// project.
type RetrievalService struct {
	embedder EmbedderInterface
	store    ChunkReaderInterface
}

// NewRetrievalService creates a new RetrievalService instance.
func NewRetrievalService(embedder EmbedderInterface, store ChunkReaderInterface) *RetrievalService {
	return &RetrievalService{embedder: embedder, store: store}
}

// Retrieve returns the context for a question. Retrieved texts pass through
// the same cleanliness filter used at indexing time, so chunks written by
// older or foreign tooling cannot smuggle noise into the prompt. An empty
// context is not an error; the answer flow handles it.
func (s *RetrievalService) Retrieve(ctx context.Context, project, question, pdfName string) (*RetrievedContext, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		Project:   project,
		PDFName:   pdfName,
		Operation: "retrieve",
	})
	defer span.End()

	if pdfName != "" {
		return s.retrieveScoped(ctx, project, pdfName)
	}
	return s.retrieveUnscoped(ctx, project, question)
}

func (s *RetrievalService) retrieveScoped(ctx context.Context, project, pdfName string) (*RetrievedContext, error) {
	texts, err := s.store.ChunksByPDF(ctx, pdfName, project)
	if err != nil {
		return nil, err
	}

	cleaned := cleanChunks(texts)
	result := &RetrievedContext{Chunks: cleaned}
	if len(cleaned) > 0 {
		result.Sources = []string{pdfName}
	}
	return result, nil
}

func (s *RetrievalService) retrieveUnscoped(ctx context.Context, project, question string) (*RetrievedContext, error) {
	embedding, err := s.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, err
	}

	scored, err := s.store.SimilaritySearch(ctx, embedding, project, RetrievalLimit)
	if err != nil {
		return nil, err
	}

	result := &RetrievedContext{}
	seen := make(map[string]bool)
	for _, chunk := range scored {
		cleaned := cleanChunks([]string{chunk.Text})
		if len(cleaned) == 0 {
			continue
		}
		result.Chunks = append(result.Chunks, cleaned[0])
		if !seen[chunk.Source] {
			seen[chunk.Source] = true
			result.Sources = append(result.Sources, chunk.Source)
		}
	}
	return result, nil
}

// ListPDFs returns the distinct indexed filenames for a project.
func (s *RetrievalService) ListPDFs(ctx context.Context, project string) ([]string, error) {
	return s.store.ListPDFs(ctx, project)
}

// ChunksByPDF exposes a document's stored chunk texts in index order.
func (s *RetrievalService) ChunksByPDF(ctx context.Context, filename, project string) ([]string, error) {
	return s.store.ChunksByPDF(ctx, filename, project)
}

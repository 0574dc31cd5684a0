package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wizvault/wizvault/internal/domain"
	"github.com/wizvault/wizvault/internal/telemetry"
)

// TextExtractor turns raw PDF bytes into plain text.
type TextExtractor func(data []byte) (string, error)

// EmbedderInterface defines the embedding interface for chunk vectors
type EmbedderInterface interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkWriterInterface defines the graph-side persistence interface for indexing
type ChunkWriterInterface interface {
	CreateChunks(ctx context.Context, chunks []domain.Chunk) error
	LinkChunks(ctx context.Context, filename, project string) error
}

// UploadRecorderInterface defines the audit-log interface for upload records
type UploadRecorderInterface interface {
	Record(ctx context.Context, rec domain.UploadRecord) error
}

// PDFArchiverInterface defines the optional raw-file archival interface
type PDFArchiverInterface interface {
	ArchivePDF(ctx context.Context, project, filename string, data []byte) error
}

// IndexingService turns an uploaded PDF into embedded chunk nodes linked
// under its project. The audit row is written as soon as chunking settles,
// before embedding or persistence; uploads that fail extraction leave no row.
type IndexingService struct {
	extract  TextExtractor
	embedder EmbedderInterface
	chunks   ChunkWriterInterface
	records  UploadRecorderInterface
	archiver PDFArchiverInterface
	cfg      ChunkConfig
}

// NewIndexingService creates a new IndexingService instance. archiver may be
// nil when no object storage is configured.
func NewIndexingService(
	extract TextExtractor,
	embedder EmbedderInterface,
	chunks ChunkWriterInterface,
	records UploadRecorderInterface,
	archiver PDFArchiverInterface,
) *IndexingService {
	return &IndexingService{
		extract:  extract,
		embedder: embedder,
		chunks:   chunks,
		records:  records,
		archiver: archiver,
		cfg:      DefaultChunkConfig(),
	}
}

// Index processes a single uploaded PDF end to end: extract, chunk, clean,
// embed, persist, link and audit. Per-file failures are reported in the
// returned result rather than as an error, so one bad file cannot abort a
// multi-file upload.
func (s *IndexingService) Index(ctx context.Context, project, filename string, data []byte) domain.IndexResult {
	ctx, span := telemetry.StartSpan(ctx, "IndexingService.Index", telemetry.SpanAttributes{
		Project:   project,
		PDFName:   filename,
		Operation: "index",
	})
	defer span.End()

	text, err := s.extract(data)
	if err != nil {
		// Invalid PDF bytes leave no trace: no chunks and no audit row.
		return domain.IndexResult{
			Filename: filename,
			Status:   domain.IndexStatusFailed,
			Detail:   fmt.Sprintf("text extraction failed: %v", err),
		}
	}

	cleaned := cleanChunks(splitText(text, s.cfg))
	if len(cleaned) == 0 {
		s.record(ctx, project, filename, domain.UploadStatusFailed, 0)
		return domain.IndexResult{
			Filename: filename,
			Status:   domain.IndexStatusFailed,
			Detail:   "no indexable text after filtering",
		}
	}

	// The audit row is written before embedding, with the filtered chunk
	// count. An "indexed" row therefore does not guarantee the chunks are
	// queryable; the typed result carries the real outcome.
	s.record(ctx, project, filename, domain.UploadStatusIndexed, len(cleaned))

	embedded := make([]domain.Chunk, 0, len(cleaned))
	skipped := 0
	for i, chunkText := range cleaned {
		embedding, err := s.embedder.GenerateEmbedding(ctx, chunkText)
		if err != nil {
			log.Printf("Embedding failed for %s chunk %d: %v", filename, i, err)
			skipped++
			continue
		}
		embedded = append(embedded, domain.Chunk{
			ID:        uuid.NewString(),
			Text:      chunkText,
			Embedding: embedding,
			Source:    filename,
			Project:   project,
			Index:     i,
		})
	}

	if len(embedded) == 0 {
		return domain.IndexResult{
			Filename: filename,
			Status:   domain.IndexStatusFailed,
			Detail:   "embedding failed for every chunk",
		}
	}

	if err := s.chunks.CreateChunks(ctx, embedded); err != nil {
		return domain.IndexResult{
			Filename: filename,
			Status:   domain.IndexStatusFailed,
			Detail:   fmt.Sprintf("failed to persist chunks: %v", err),
		}
	}
	if err := s.chunks.LinkChunks(ctx, filename, project); err != nil {
		return domain.IndexResult{
			Filename:  filename,
			Status:    domain.IndexStatusPartial,
			NumChunks: len(embedded),
			Detail:    fmt.Sprintf("chunks persisted but linking failed: %v", err),
		}
	}

	if s.archiver != nil {
		if err := s.archiver.ArchivePDF(ctx, project, filename, data); err != nil {
			log.Printf("Archival failed for %s/%s: %v", project, filename, err)
		}
	}

	result := domain.IndexResult{
		Filename:  filename,
		Status:    domain.IndexStatusIndexed,
		NumChunks: len(embedded),
	}
	if skipped > 0 {
		result.Status = domain.IndexStatusPartial
		result.Detail = fmt.Sprintf("%d of %d chunks skipped", skipped, len(cleaned))
	}
	return result
}

// record writes one audit row. Audit failures are logged and swallowed: the
// indexing outcome stands regardless.
func (s *IndexingService) record(ctx context.Context, project, filename string, status domain.UploadStatus, numChunks int) {
	rec := domain.UploadRecord{
		Project:   project,
		Filename:  filename,
		Timestamp: time.Now().UTC(),
		NumChunks: numChunks,
		Status:    status,
	}
	if err := s.records.Record(ctx, rec); err != nil {
		log.Printf("Failed to record upload of %s/%s: %v", project, filename, err)
	}
}

package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/wizvault/wizvault/internal/domain"
)

const vectorIndexName = "chunk_embeddings"

// Unscoped similarity search over-fetches well past the requested limit so
// that the project filter cannot starve in-project matches.
const similarityOverfetch = 50

// ChunkStore persists chunks as Chunk nodes and maintains the
// Project -> PDF -> Chunk relationship structure.
type ChunkStore struct {
	client *Client
}

func NewChunkStore(client *Client) *ChunkStore {
	return &ChunkStore{client: client}
}

// EnsureSchema creates the vector index over Chunk embeddings if it does not
// exist yet. Called once at startup.
func (s *ChunkStore) EnsureSchema(ctx context.Context, dimensions int) error {
	query := fmt.Sprintf(`
		CREATE VECTOR INDEX %s IF NOT EXISTS
		FOR (c:Chunk) ON (c.embedding)
		OPTIONS {indexConfig: {
			`+"`vector.dimensions`"+`: $dimensions,
			`+"`vector.similarity_function`"+`: 'cosine'
		}}`, vectorIndexName)

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		_, err := tx.Run(ctx, query, map[string]interface{}{"dimensions": dimensions})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to ensure chunk vector index: %w", err)
	}
	return nil
}

// CreateChunks persists chunk nodes with their embeddings. Chunks are
// append-only; there is no update or delete path.
func (s *ChunkStore) CreateChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(chunks))
	for _, c := range chunks {
		rows = append(rows, map[string]interface{}{
			"id":          c.ID,
			"text":        c.Text,
			"embedding":   toFloat64s(c.Embedding),
			"source":      c.Source,
			"project":     c.Project,
			"chunk_index": c.Index,
		})
	}

	query := `
		UNWIND $rows AS row
		CREATE (c:Chunk {
			id: row.id,
			text: row.text,
			source: row.source,
			project: row.project,
			chunk_index: row.chunk_index
		})
		WITH c, row
		CALL db.create.setNodeVectorProperty(c, 'embedding', row.embedding)
		RETURN count(c)`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]interface{}{"rows": rows})
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to create chunk nodes: %w", err)
	}
	return nil
}

// LinkChunks ensures the Project and PDF nodes exist and links every chunk of
// the given (filename, project) pair to them. All merges are idempotent:
// running this twice produces the same relationship set.
func (s *ChunkStore) LinkChunks(ctx context.Context, filename, project string) error {
	query := `
		MERGE (p:Project {name: $project})
		MERGE (d:PDF {name: $filename, project: $project})
		MERGE (p)-[:HAS_PDF]->(d)
		WITH d
		MATCH (c:Chunk {source: $filename, project: $project})
		MERGE (d)-[:HAS_CHUNK]->(c)
		RETURN count(c)`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]interface{}{
			"filename": filename,
			"project":  project,
		})
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to link chunks for %s: %w", filename, err)
	}
	return nil
}

// ChunksByPDF returns every chunk text stored for (filename, project),
// ordered by chunk index ascending.
func (s *ChunkStore) ChunksByPDF(ctx context.Context, filename, project string) ([]string, error) {
	query := `
		MATCH (c:Chunk {source: $filename, project: $project})
		RETURN c.text AS text
		ORDER BY c.chunk_index ASC`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, query, map[string]interface{}{
			"filename": filename,
			"project":  project,
		})
		if err != nil {
			return nil, err
		}

		var texts []string
		for records.Next(ctx) {
			if text, ok := records.Record().Get("text"); ok {
				texts = append(texts, text.(string))
			}
		}
		return texts, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunks for %s: %w", filename, err)
	}
	return result.([]string), nil
}

// SimilaritySearch runs a nearest-neighbor query against the chunk vector
// index. The project predicate is applied inside the query over an
// over-fetched candidate set, so results are isolated per project.
func (s *ChunkStore) SimilaritySearch(ctx context.Context, embedding []float32, project string, limit int) ([]domain.ScoredChunk, error) {
	query := fmt.Sprintf(`
		CALL db.index.vector.queryNodes('%s', $k, $embedding)
		YIELD node, score
		WHERE node.project = $project
		RETURN node.text AS text, node.source AS source, node.project AS project, score
		ORDER BY score DESC
		LIMIT $limit`, vectorIndexName)

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, query, map[string]interface{}{
			"k":         similarityOverfetch,
			"embedding": toFloat64s(embedding),
			"project":   project,
			"limit":     limit,
		})
		if err != nil {
			return nil, err
		}

		var chunks []domain.ScoredChunk
		for records.Next(ctx) {
			record := records.Record()
			chunk := domain.ScoredChunk{}
			if text, ok := record.Get("text"); ok {
				chunk.Text = text.(string)
			}
			if source, ok := record.Get("source"); ok {
				chunk.Source = source.(string)
			}
			if proj, ok := record.Get("project"); ok {
				chunk.Project = proj.(string)
			}
			if score, ok := record.Get("score"); ok {
				chunk.Score = score.(float64)
			}
			chunks = append(chunks, chunk)
		}
		return chunks, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	return result.([]domain.ScoredChunk), nil
}

// ListPDFs returns the distinct filenames with chunks indexed under the
// given project.
func (s *ChunkStore) ListPDFs(ctx context.Context, project string) ([]string, error) {
	query := `
		MATCH (c:Chunk {project: $project})
		RETURN DISTINCT c.source AS source
		ORDER BY source ASC`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, query, map[string]interface{}{"project": project})
		if err != nil {
			return nil, err
		}

		names := []string{}
		for records.Next(ctx) {
			if source, ok := records.Record().Get("source"); ok {
				names = append(names, source.(string))
			}
		}
		return names, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list PDFs: %w", err)
	}
	return result.([]string), nil
}

func toFloat64s(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

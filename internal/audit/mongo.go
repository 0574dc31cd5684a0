// Package audit records upload events in MongoDB. The trail is append-only
// and best-effort: the query path never reads it.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wizvault/wizvault/internal/domain"
)

const uploadRecordCollection = "upload_records"

// Connect creates a Mongo client and verifies the connection with a ping.
// The caller owns the client and must Disconnect it at shutdown.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// UploadRecordStore appends upload-event records.
type UploadRecordStore struct {
	collection *mongo.Collection
}

func NewUploadRecordStore(db *mongo.Database) *UploadRecordStore {
	return &UploadRecordStore{collection: db.Collection(uploadRecordCollection)}
}

// Record inserts one audit row. There is no update, delete, or dedup path;
// concurrent uploads of the same file may produce duplicate rows.
func (s *UploadRecordStore) Record(ctx context.Context, rec domain.UploadRecord) error {
	_, err := s.collection.InsertOne(ctx, rec)
	return err
}

// ListByProject returns the audit rows for a project, newest first. Used by
// operators only; the query path never consults the audit trail.
func (s *UploadRecordStore) ListByProject(ctx context.Context, project string) ([]domain.UploadRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{"project": project}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.UploadRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

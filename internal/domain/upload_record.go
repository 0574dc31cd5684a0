package domain

import "time"

// UploadStatus is the terminal status of an upload as recorded in the audit
// trail.
type UploadStatus string

const (
	UploadStatusIndexed UploadStatus = "indexed"
	UploadStatusFailed  UploadStatus = "failed"
)

// UploadRecord is an append-only audit row written once per uploaded PDF.
// Records are never updated or deleted and are not read by the query path.
type UploadRecord struct {
	Project   string       `bson:"project"`
	Filename  string       `bson:"filename"`
	Timestamp time.Time    `bson:"timestamp"`
	NumChunks int          `bson:"num_chunks"`
	Status    UploadStatus `bson:"status"`
}

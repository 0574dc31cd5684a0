package domain

// IndexStatus is the outcome of indexing a single uploaded PDF.
type IndexStatus string

const (
	// IndexStatusIndexed means all surviving chunks were embedded, persisted,
	// and linked to their Project and PDF nodes.
	IndexStatusIndexed IndexStatus = "indexed"
	// IndexStatusPartial means some chunks are queryable but the upload did
	// not complete cleanly: embedding skipped some chunks, or the Project/PDF
	// link step failed after chunks were persisted.
	IndexStatusPartial IndexStatus = "partial"
	// IndexStatusFailed means no chunks are queryable for this upload.
	IndexStatusFailed IndexStatus = "failed"
)

// IndexResult reports the per-file outcome of an upload. The facade forwards
// it to the caller instead of an unconditional success message.
type IndexResult struct {
	Filename  string      `json:"filename"`
	Status    IndexStatus `json:"status"`
	NumChunks int         `json:"num_chunks"`
	// Detail carries a human-readable failure description for partial/failed
	// results. Empty on success.
	Detail string `json:"detail,omitempty"`
}

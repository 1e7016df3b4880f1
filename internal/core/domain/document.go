package domain

import "time"

// Format identifies the source file format of a document.
type Format string

// Supported source formats.
const (
	FormatPlainText Format = "text"
	FormatMarkdown  Format = "markdown"
	FormatPDF       Format = "pdf"
	FormatEPUB      Format = "epub"
)

// Document represents a source file considered for import.
// Identity is the content hash, not the path: two files with identical
// bytes are the same Document regardless of name or location.
type Document struct {
	// Path is the absolute path of the source file.
	Path string

	// Format is the detected source format.
	Format Format

	// Size is the file size in bytes.
	Size int64

	// ContentHash is the hex SHA-256 digest of the full file bytes.
	ContentHash string
}

// ImportStatus is the lifecycle state of an ImportRecord.
type ImportStatus string

// Import record states.
const (
	// StatusPending marks a record created before any chunk was embedded.
	StatusPending ImportStatus = "pending"

	// StatusCompleted marks a record whose chunks are all durably upserted.
	StatusCompleted ImportStatus = "completed"

	// StatusFailed marks a record that hit an unrecoverable error.
	// Failed records do not block re-import.
	StatusFailed ImportStatus = "failed"
)

// ImportRecord is the durable bookkeeping row for one (collection, hash)
// pair in the tracking store. At most one non-failed record exists per pair.
type ImportRecord struct {
	// ID is the record identifier assigned by the tracking store.
	ID string

	// ContentHash is the dedup key.
	ContentHash string

	// FileName is the base name of the file at first import.
	FileName string

	// Collection is the logical partition this record belongs to.
	Collection string

	// Format is the detected source format.
	Format Format

	// Status is the lifecycle state.
	Status ImportStatus

	// ChunkCount is the number of chunks upserted; set on completion.
	ChunkCount int

	// Error holds the failure reason when Status is failed.
	Error string

	// CreatedAt is when the record was first created.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed state.
	UpdatedAt time.Time
}

// Chunk is a bounded text window derived from one document. Chunks exist
// only for the duration of an import call; their durable representation
// lives in the vector store, addressed by a deterministic point id.
type Chunk struct {
	// ContentHash links back to the parent document.
	ContentHash string

	// Index is the 0-based, dense sequence index in emission order.
	Index int

	// Text is the chunk content, including leading overlap.
	Text string

	// Overlap is the length in bytes of the leading overlap carried from
	// the previous chunk. Text[Overlap:] is the chunk's own span.
	Overlap int

	// Embedding is the vector representation, set by the embedding step.
	Embedding []float32
}

// Point is the vector-store unit: an embedding plus payload, addressed by
// a deterministic id derived from (content hash, chunk index).
type Point struct {
	ID      string
	Vector  []float32
	Payload PointPayload
}

// PointPayload is the metadata stored alongside each vector.
type PointPayload struct {
	ContentHash string `json:"content_hash"`
	FileName    string `json:"file_name"`
	Collection  string `json:"collection"`
	ChunkIndex  int    `json:"chunk_index"`
	Format      string `json:"source_format"`
}

// Segment is a piece of extracted text with an optional page hint.
// Page numbers are alignment hints for chunk grouping, never chunk
// boundaries.
type Segment struct {
	// Text is the normalised segment text.
	Text string

	// Page is the 1-based source page, or 0 when not applicable.
	Page int
}

// OutcomeKind classifies the terminal state of one file's import.
type OutcomeKind string

// Per-file outcomes. Skipped is distinct from both success and failure:
// it means the dedup gate found a completed record for the same bytes.
const (
	OutcomeCompleted OutcomeKind = "completed"
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomeFailed    OutcomeKind = "failed"
)

// FileOutcome is the per-file result reported in a batch summary.
type FileOutcome struct {
	// Path is the file the outcome refers to.
	Path string

	// Kind is the terminal state.
	Kind OutcomeKind

	// ContentHash is set when hashing succeeded.
	ContentHash string

	// ChunkCount is set for completed imports.
	ChunkCount int

	// Err is the failure cause for failed outcomes, nil otherwise.
	Err error
}

// BatchSummary aggregates per-file outcomes for one ImportPath call.
type BatchSummary struct {
	Completed int
	Skipped   int
	Failed    int

	// Outcomes holds every per-file result in discovery order.
	Outcomes []FileOutcome
}

// Add records one outcome and bumps the matching counter.
func (s *BatchSummary) Add(o FileOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Kind {
	case OutcomeCompleted:
		s.Completed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Errors returns the outcomes that failed.
func (s *BatchSummary) Errors() []FileOutcome {
	var failed []FileOutcome
	for _, o := range s.Outcomes {
		if o.Kind == OutcomeFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

package domain

import "time"

type ProcessingStatus string

const (
	StatusReceived  ProcessingStatus = "received"
	StatusExtracted ProcessingStatus = "extracted"
	StatusStored    ProcessingStatus = "stored"
	StatusCompleted ProcessingStatus = "completed"
	StatusError     ProcessingStatus = "error"
)

// Terminal reports whether no further pipeline transition is expected.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// StatusChange is one audit entry in a record's status history.
type StatusChange struct {
	Status ProcessingStatus `json:"status"`
	At     time.Time        `json:"at"`
}

// FileRecord is the durable state of one distinct document content.
// The ID is content-addressed: md5 hex of the leading byte sample, so
// re-uploading identical content maps onto the same record.
type FileRecord struct {
	ID               string            `json:"id"`
	FileName         string            `json:"file_name"`
	FileURL          string            `json:"file_url"`
	FileSize         int64             `json:"file_size"`
	FileType         string            `json:"file_type"`
	Content          string            `json:"content"`
	ProcessingStatus ProcessingStatus  `json:"processing_status"`
	EmbeddingStatus  string            `json:"embedding_status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	History          []StatusChange    `json:"history"`
}

// FileView is the read-only shape handed to callers and exploration
// strategies: record fields with history flattened to status -> ISO timestamp.
type FileView struct {
	ID               string            `json:"pk"`
	FileName         string            `json:"file_name"`
	FileURL          string            `json:"url"`
	FileSize         int64             `json:"file_size"`
	FileType         string            `json:"file_type"`
	Content          string            `json:"content"`
	ProcessingStatus ProcessingStatus  `json:"processing_status"`
	EmbeddingStatus  string            `json:"embedding_status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	Metadata         map[string]string `json:"metadata"`
	History          map[string]string `json:"history"`
}

// View flattens the record for external consumption.
func (r *FileRecord) View() *FileView {
	history := make(map[string]string, len(r.History))
	for _, change := range r.History {
		history[string(change.Status)] = change.At.UTC().Format(time.RFC3339Nano)
	}
	metadata := r.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &FileView{
		ID:               r.ID,
		FileName:         r.FileName,
		FileURL:          r.FileURL,
		FileSize:         r.FileSize,
		FileType:         r.FileType,
		Content:          r.Content,
		ProcessingStatus: r.ProcessingStatus,
		EmbeddingStatus:  r.EmbeddingStatus,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ErrorMessage:     r.ErrorMessage,
		Metadata:         metadata,
		History:          history,
	}
}

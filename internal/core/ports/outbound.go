package ports

import (
	"context"
	"io"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

// KeyValueItem is one row returned by a prefix query.
type KeyValueItem struct {
	Key   string
	Value []byte
}

// KeyValueStore is the generic persistence collaborator: get/put/query by
// primary key with begins_with semantics on the key. No transactions, no
// secondary indexes. A limit of 0 means no limit.
type KeyValueStore interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	QueryPrefix(ctx context.Context, prefix string, limit int) ([]KeyValueItem, error)
}

// RecordStore persists file processing records and chat history entries.
// Every record write refreshes updated_at and applies the history-append rule.
type RecordStore interface {
	SaveRecord(ctx context.Context, record *domain.FileRecord) error
	FindRecord(ctx context.Context, id string) (*domain.FileRecord, error)
	ListRecords(ctx context.Context) ([]domain.FileRecord, error)
	SaveChatEntry(ctx context.Context, entry *domain.ChatEntry) error
	ListChatEntries(ctx context.Context, fileID string, limit int) ([]domain.ChatEntry, error)
}

// TextExtractor converts raw document bytes into plain or markdown text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName, contentType string) (string, error)
}

// ObjectStorage stores raw document bytes and returns a resolvable URL.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ContentExplorer answers a query against a file's extracted content.
// Implementations choose how much of the query they honor: the basic
// strategy ignores it, the AI strategy feeds it to a model backend.
type ContentExplorer interface {
	Explore(ctx context.Context, query string, file *domain.FileView) (string, error)
}

// EventPublisher emits pipeline completion events for downstream consumers.
type EventPublisher interface {
	PublishFileCompleted(ctx context.Context, fileID string) error
}

// EventSubscriber consumes pipeline completion events.
type EventSubscriber interface {
	SubscribeFileCompleted(ctx context.Context, handler func(context.Context, string) error) error
}

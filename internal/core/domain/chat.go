package domain

import (
	"fmt"
	"time"
)

// ChatEntry is one immutable query/answer interaction with a file.
// Entries are append-only; nothing in the core mutates or deletes them.
type ChatEntry struct {
	Key       string            `json:"pk"`
	FileID    string            `json:"file_id"`
	Query     string            `json:"query"`
	Response  string            `json:"response"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// chatKeyTimeLayout is RFC 3339 with a fixed-width nanosecond fraction.
// RFC3339Nano trims trailing zeros, which breaks lexicographic ordering
// within a second; fixed width keeps key order equal to creation order.
const chatKeyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChatEntryKey builds the composite key "{fileID}:{isoTimestamp}".
// Keys for the same file share a prefix and sort by creation time.
func ChatEntryKey(fileID string, at time.Time) string {
	return fmt.Sprintf("%s:%s", fileID, at.UTC().Format(chatKeyTimeLayout))
}

package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
)

// Key namespaces inside the shared key-value store. Chat keys embed the
// composite "{fileID}:{isoTimestamp}" so a prefix query over
// "chat:{fileID}:" returns exactly one file's history.
const (
	recordKeyPrefix = "record:"
	chatKeyPrefix   = "chat:"
)

// Store implements ports.RecordStore on top of the generic key-value
// collaborator. It owns the write semantics the pipeline relies on:
// updated_at refresh and the status-history append rule.
type Store struct {
	kv  ports.KeyValueStore
	now func() time.Time
}

func NewStore(kv ports.KeyValueStore) *Store {
	return &Store{
		kv:  kv,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SaveRecord refreshes updated_at and appends a history entry unless the
// last entry already carries the current status. Idempotent re-saves of the
// same status therefore log once per maximal run; a status reappearing
// non-consecutively logs again.
func (s *Store) SaveRecord(ctx context.Context, record *domain.FileRecord) error {
	now := s.now()
	record.UpdatedAt = now

	if record.ProcessingStatus != "" {
		last := len(record.History) - 1
		if last < 0 || record.History[last].Status != record.ProcessingStatus {
			record.History = append(record.History, domain.StatusChange{
				Status: record.ProcessingStatus,
				At:     now,
			})
		}
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := s.kv.Put(ctx, recordKeyPrefix+record.ID, raw); err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (s *Store) FindRecord(ctx context.Context, id string) (*domain.FileRecord, error) {
	raw, found, err := s.kv.Get(ctx, recordKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if !found {
		return nil, domain.WrapError(domain.ErrNotFound, "find record", fmt.Errorf("id %s", id))
	}

	var record domain.FileRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &record, nil
}

func (s *Store) ListRecords(ctx context.Context) ([]domain.FileRecord, error) {
	items, err := s.kv.QueryPrefix(ctx, recordKeyPrefix, 0)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	out := make([]domain.FileRecord, 0, len(items))
	for _, item := range items {
		var record domain.FileRecord
		if err := json.Unmarshal(item.Value, &record); err != nil {
			return nil, fmt.Errorf("unmarshal record %s: %w", item.Key, err)
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *Store) SaveChatEntry(ctx context.Context, entry *domain.ChatEntry) error {
	if entry.Key == "" {
		return domain.WrapError(domain.ErrInvalidInput, "save chat entry", fmt.Errorf("empty key"))
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal chat entry: %w", err)
	}
	if err := s.kv.Put(ctx, chatKeyPrefix+entry.Key, raw); err != nil {
		return fmt.Errorf("put chat entry: %w", err)
	}
	return nil
}

// ListChatEntries returns a file's chat history newest-first, truncated
// to limit when limit > 0.
func (s *Store) ListChatEntries(ctx context.Context, fileID string, limit int) ([]domain.ChatEntry, error) {
	prefix := chatKeyPrefix + fileID + ":"
	items, err := s.kv.QueryPrefix(ctx, prefix, 0)
	if err != nil {
		return nil, fmt.Errorf("query chat entries: %w", err)
	}

	entries := make([]domain.ChatEntry, 0, len(items))
	for _, item := range items {
		var entry domain.ChatEntry
		if err := json.Unmarshal(item.Value, &entry); err != nil {
			return nil, fmt.Errorf("unmarshal chat entry %s: %w", item.Key, err)
		}
		if !strings.HasPrefix(entry.Key, fileID+":") {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
)

const DefaultHistoryLimit = 10

type ChatUseCase struct {
	store    ports.RecordStore
	explorer ports.ContentExplorer
	logger   *slog.Logger
	now      func() time.Time
}

func NewChatUseCase(store ports.RecordStore, explorer ports.ContentExplorer, logger *slog.Logger) *ChatUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatUseCase{
		store:    store,
		explorer: explorer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ProcessQuery answers a query against a completed file. The strategy is
// only invoked once the record is found and completed; the history write is
// best-effort and never affects the returned answer.
func (uc *ChatUseCase) ProcessQuery(ctx context.Context, fileID, query string) (string, error) {
	record, err := uc.store.FindRecord(ctx, fileID)
	if err != nil {
		return "", err
	}
	if record.ProcessingStatus != domain.StatusCompleted {
		return "", domain.WrapError(
			domain.ErrNotReady,
			"process query",
			fmt.Errorf("file %s has status %s", fileID, record.ProcessingStatus),
		)
	}

	answer, err := uc.explorer.Explore(ctx, query, record.View())
	if err != nil {
		return "", fmt.Errorf("explore content: %w", err)
	}

	uc.saveHistory(ctx, fileID, query, answer)

	return answer, nil
}

// GetHistory returns a file's chat history newest-first. History is
// non-critical: any retrieval failure degrades to an empty result.
func (uc *ChatUseCase) GetHistory(ctx context.Context, fileID string, limit int) ([]domain.ChatEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := uc.store.ListChatEntries(ctx, fileID, limit)
	if err != nil {
		uc.logger.Error("fetch chat history failed", "file_id", fileID, "error", err)
		return []domain.ChatEntry{}, nil
	}
	return entries, nil
}

func (uc *ChatUseCase) saveHistory(ctx context.Context, fileID, query, answer string) {
	now := uc.now()
	iso := now.Format(time.RFC3339Nano)
	entry := &domain.ChatEntry{
		Key:       domain.ChatEntryKey(fileID, now),
		FileID:    fileID,
		Query:     query,
		Response:  answer,
		CreatedAt: now,
		Metadata:  map[string]string{"timestamp": iso},
	}
	if err := uc.store.SaveChatEntry(ctx, entry); err != nil {
		uc.logger.Error("save chat history failed", "file_id", fileID, "error", err)
	}
}

package usecase

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
)

// idSampleSize caps how many leading bytes feed the content hash. Two files
// sharing an identical first 32KB collide onto one record; that is the dedup
// contract, not an accident.
const idSampleSize = 32768

type ProcessFileUseCase struct {
	store     ports.RecordStore
	extractor ports.TextExtractor
	storage   ports.ObjectStorage
	events    ports.EventPublisher
	logger    *slog.Logger
}

func NewProcessFileUseCase(
	store ports.RecordStore,
	extractor ports.TextExtractor,
	storage ports.ObjectStorage,
	events ports.EventPublisher,
	logger *slog.Logger,
) *ProcessFileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessFileUseCase{
		store:     store,
		extractor: extractor,
		storage:   storage,
		events:    events,
		logger:    logger,
	}
}

// ContentID derives the content-addressed identifier from a leading byte
// sample. md5 here is a dedup key, not a security boundary.
func ContentID(data []byte) string {
	sample := data
	if len(sample) > idSampleSize {
		sample = sample[:idSampleSize]
	}
	sum := md5.Sum(sample)
	return hex.EncodeToString(sum[:])
}

// ProcessAndUpload runs the full pipeline for one upload:
// dedup lookup, then received -> extracted -> stored -> completed, with any
// step failure persisted as a terminal error status before returning.
func (uc *ProcessFileUseCase) ProcessAndUpload(
	ctx context.Context,
	fileName, contentType string,
	data []byte,
) (*domain.FileView, error) {
	if len(data) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "process file", fmt.Errorf("empty file %q", fileName))
	}

	id := ContentID(data)

	if existing, err := uc.store.FindRecord(ctx, id); err == nil {
		uc.logger.Info("duplicate upload short-circuited", "file_id", id, "file_name", fileName)
		return existing.View(), nil
	} else if !domain.IsKind(err, domain.ErrNotFound) {
		return nil, domain.WrapError(domain.ErrProcessing, "dedup lookup", err)
	}

	now := time.Now().UTC()
	record := &domain.FileRecord{
		ID:               id,
		FileName:         fileName,
		FileSize:         int64(len(data)),
		FileType:         contentType,
		ProcessingStatus: domain.StatusReceived,
		EmbeddingStatus:  "pending",
		CreatedAt:        now,
		Metadata: map[string]string{
			"original_filename": fileName,
			"content_type":      contentType,
		},
	}
	if err := uc.store.SaveRecord(ctx, record); err != nil {
		return nil, domain.WrapError(domain.ErrProcessing, "persist received record", err)
	}

	text, err := uc.extractor.Extract(ctx, data, fileName, contentType)
	if err != nil {
		uc.markError(ctx, record, err)
		return nil, domain.WrapError(domain.ErrExtraction, "extract text", err)
	}
	record.ProcessingStatus = domain.StatusExtracted
	if err := uc.store.SaveRecord(ctx, record); err != nil {
		return nil, domain.WrapError(domain.ErrProcessing, "persist extracted status", err)
	}

	url, err := uc.storage.Save(ctx, id, bytes.NewReader(data))
	if err != nil {
		uc.markError(ctx, record, err)
		return nil, domain.WrapError(domain.ErrUpload, "upload file", err)
	}
	record.ProcessingStatus = domain.StatusStored
	if err := uc.store.SaveRecord(ctx, record); err != nil {
		return nil, domain.WrapError(domain.ErrProcessing, "persist stored status", err)
	}

	record.FileURL = url
	record.Content = text
	record.ProcessingStatus = domain.StatusCompleted
	if err := uc.store.SaveRecord(ctx, record); err != nil {
		return nil, domain.WrapError(domain.ErrProcessing, "persist completed record", err)
	}

	uc.publishCompleted(ctx, id)

	return record.View(), nil
}

// markError leaves a durable breadcrumb before the pipeline fails the
// caller. A save failure here is logged, not returned: the original step
// error is what the caller must see.
func (uc *ProcessFileUseCase) markError(ctx context.Context, record *domain.FileRecord, cause error) {
	record.ProcessingStatus = domain.StatusError
	record.ErrorMessage = cause.Error()
	if err := uc.store.SaveRecord(ctx, record); err != nil {
		uc.logger.Error("persist error status failed", "file_id", record.ID, "error", err)
	}
}

func (uc *ProcessFileUseCase) publishCompleted(ctx context.Context, fileID string) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishFileCompleted(ctx, fileID); err != nil {
		uc.logger.Warn("publish completion event failed", "file_id", fileID, "error", err)
	}
}

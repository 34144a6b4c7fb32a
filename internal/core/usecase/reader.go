package usecase

import (
	"context"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
)

// FileReaderUseCase exposes record state to the HTTP layer as flattened views.
type FileReaderUseCase struct {
	store ports.RecordStore
}

func NewFileReaderUseCase(store ports.RecordStore) *FileReaderUseCase {
	return &FileReaderUseCase{store: store}
}

func (uc *FileReaderUseCase) GetByID(ctx context.Context, id string) (*domain.FileView, error) {
	record, err := uc.store.FindRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return record.View(), nil
}

package ports

import (
	"context"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

// FileProcessor is the inbound contract for the upload/processing pipeline.
type FileProcessor interface {
	ProcessAndUpload(ctx context.Context, fileName, contentType string, data []byte) (*domain.FileView, error)
}

// FileChat is the inbound contract for querying a processed file.
type FileChat interface {
	ProcessQuery(ctx context.Context, fileID, query string) (string, error)
	GetHistory(ctx context.Context, fileID string, limit int) ([]domain.ChatEntry, error)
}

// FileReader is the inbound read model for record state.
type FileReader interface {
	GetByID(ctx context.Context, id string) (*domain.FileView, error)
}

// Sweeper reconciles records stuck in non-terminal statuses.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

package basic

import (
	"context"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

// Explorer is the pass-through strategy: it ignores the query and returns
// the file's extracted content unchanged. Used as a test double and as a
// fallback when no model backend is configured.
type Explorer struct{}

func New() *Explorer {
	return &Explorer{}
}

func (e *Explorer) Explore(_ context.Context, _ string, file *domain.FileView) (string, error) {
	return file.Content, nil
}

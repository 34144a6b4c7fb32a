package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrNotReady     = errors.New("file processing not complete")
	ErrInvalidInput = errors.New("invalid input")
	ErrExtraction   = errors.New("text extraction failed")
	ErrUpload       = errors.New("file upload failed")
	ErrProcessing   = errors.New("file processing failed")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// Package markup extracts plain or markdown text from uploaded documents,
// choosing a format-specific strategy by content type and file extension.
package markup

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch detectFormat(fileName, contentType) {
	case formatPDF:
		return extractPDF(data)
	case formatXLSX:
		return extractXLSX(data)
	default:
		return extractPlain(data, fileName)
	}
}

type format int

const (
	formatPlain format = iota
	formatPDF
	formatXLSX
)

func detectFormat(fileName, contentType string) format {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case mime == "application/pdf" || ext == ".pdf":
		return formatPDF
	case mime == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" || ext == ".xlsx":
		return formatXLSX
	default:
		return formatPlain
	}
}

func extractPlain(data []byte, fileName string) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("unsupported binary format: %s", fileName)
	}
	return strings.TrimSpace(string(data)), nil
}

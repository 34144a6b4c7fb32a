package markup

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(context.Background(), []byte("  hello world\n"), "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hello world" {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractRejectsBinaryAsPlain(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0x00, 0x81}, "blob.bin", "application/octet-stream")
	if err == nil {
		t.Fatalf("expected error for invalid utf-8")
	}
	if !strings.Contains(err.Error(), "blob.bin") {
		t.Fatalf("error should name the file, got %v", err)
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("not a pdf"), "a.pdf", "application/pdf")
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestExtractMalformedXLSX(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("not a workbook"), "a.xlsx", "")
	if err == nil {
		t.Fatalf("expected error for malformed workbook")
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name        string
		fileName    string
		contentType string
		want        format
	}{
		{"pdf by mime", "doc", "application/pdf", formatPDF},
		{"pdf by extension", "doc.PDF", "", formatPDF},
		{"xlsx by mime", "sheet", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", formatXLSX},
		{"xlsx by extension", "sheet.xlsx", "application/octet-stream", formatXLSX},
		{"mime with charset", "a.md", "text/markdown; charset=utf-8", formatPlain},
		{"default plain", "a.txt", "text/plain", formatPlain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectFormat(tc.fileName, tc.contentType); got != tc.want {
				t.Fatalf("detectFormat(%q, %q) = %v, want %v", tc.fileName, tc.contentType, got, tc.want)
			}
		})
	}
}

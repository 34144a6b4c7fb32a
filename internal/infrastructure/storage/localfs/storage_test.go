package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveReturnsURLAndRoundTrips(t *testing.T) {
	storage, err := New(t.TempDir(), "http://files.local/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	url, err := storage.Save(context.Background(), "abc123", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if url != "http://files.local/abc123" {
		t.Fatalf("url = %s", url)
	}

	reader, err := storage.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(raw) != "hello" {
		t.Fatalf("content = %q", raw)
	}
}

func TestOpenMissingKey(t *testing.T) {
	storage, err := New(t.TempDir(), "http://files.local")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := storage.Open(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

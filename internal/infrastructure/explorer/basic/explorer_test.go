package basic

import (
	"context"
	"testing"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

func TestExploreReturnsContentIgnoringQuery(t *testing.T) {
	explorer := New()
	view := &domain.FileView{Content: "raw extracted text"}

	answer, err := explorer.Explore(context.Background(), "completely ignored", view)
	if err != nil {
		t.Fatalf("Explore() error = %v", err)
	}
	if answer != "raw extracted text" {
		t.Fatalf("answer = %q", answer)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

func TestSweepMarksOnlyStaleNonTerminalRecords(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newRecordStoreFake()
	store.records["stale"] = &domain.FileRecord{
		ID:               "stale",
		ProcessingStatus: domain.StatusExtracted,
		UpdatedAt:        now.Add(-2 * time.Hour),
	}
	store.records["fresh"] = &domain.FileRecord{
		ID:               "fresh",
		ProcessingStatus: domain.StatusReceived,
		UpdatedAt:        now.Add(-time.Minute),
	}
	store.records["done"] = &domain.FileRecord{
		ID:               "done",
		ProcessingStatus: domain.StatusCompleted,
		UpdatedAt:        now.Add(-2 * time.Hour),
	}

	uc := NewSweepUseCase(store, 30*time.Minute, testLogger())
	uc.now = func() time.Time { return now }

	marked, err := uc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}

	stale := store.records["stale"]
	if stale.ProcessingStatus != domain.StatusError {
		t.Fatalf("stale record status = %s, want error", stale.ProcessingStatus)
	}
	if !strings.Contains(stale.ErrorMessage, "reconciliation sweep") {
		t.Fatalf("error message = %q", stale.ErrorMessage)
	}
	if store.records["fresh"].ProcessingStatus != domain.StatusReceived {
		t.Fatalf("fresh record must be untouched")
	}
	if store.records["done"].ProcessingStatus != domain.StatusCompleted {
		t.Fatalf("completed record must be untouched")
	}
}

func TestSweepListFailure(t *testing.T) {
	store := newRecordStoreFake()
	store.listErr = errors.New("kv down")
	uc := NewSweepUseCase(store, 30*time.Minute, testLogger())

	if _, err := uc.Sweep(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

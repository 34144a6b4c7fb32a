package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
)

// SweepUseCase reconciles records abandoned mid-pipeline: a crash between
// two status writes leaves a record parked in a non-terminal status forever.
// The sweep marks such records as errored once they have been idle past the
// cutoff, so callers polling them stop waiting.
type SweepUseCase struct {
	store      ports.RecordStore
	stuckAfter time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewSweepUseCase(store ports.RecordStore, stuckAfter time.Duration, logger *slog.Logger) *SweepUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if stuckAfter <= 0 {
		stuckAfter = 30 * time.Minute
	}
	return &SweepUseCase{
		store:      store,
		stuckAfter: stuckAfter,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Sweep returns how many records were marked errored.
func (uc *SweepUseCase) Sweep(ctx context.Context) (int, error) {
	all, err := uc.store.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	cutoff := uc.now().Add(-uc.stuckAfter)
	marked := 0
	for i := range all {
		record := &all[i]
		if record.ProcessingStatus.Terminal() {
			continue
		}
		if record.UpdatedAt.After(cutoff) {
			continue
		}

		record.ErrorMessage = fmt.Sprintf(
			"abandoned in status %q since %s, marked by reconciliation sweep",
			record.ProcessingStatus,
			record.UpdatedAt.UTC().Format(time.RFC3339),
		)
		record.ProcessingStatus = domain.StatusError
		if err := uc.store.SaveRecord(ctx, record); err != nil {
			uc.logger.Error("sweep: mark record failed", "file_id", record.ID, "error", err)
			continue
		}
		uc.logger.Warn("sweep: marked stuck record", "file_id", record.ID)
		marked++
	}
	return marked, nil
}

package kv

import (
	"context"
	"errors"

	"github.com/mkravets/smart-file-search/internal/core/domain"
	"github.com/mkravets/smart-file-search/internal/core/ports"
	"github.com/mkravets/smart-file-search/internal/infrastructure/resilience"
)

// Resilient decorates a KeyValueStore with bounded retry and a circuit
// breaker. This is the only layer that retries persistence calls; the
// pipeline above it sees each operation succeed or fail exactly once.
type Resilient struct {
	inner    ports.KeyValueStore
	runner   *resilience.Runner
	classify resilience.Classifier
}

func NewResilient(inner ports.KeyValueStore, runner *resilience.Runner, classify resilience.Classifier) *Resilient {
	if classify == nil {
		classify = classifyStoreError
	}
	return &Resilient{inner: inner, runner: runner, classify: classify}
}

func (r *Resilient) Put(ctx context.Context, key string, value []byte) error {
	err := r.runner.Do(ctx, "kv.put", func(ctx context.Context) error {
		return r.inner.Put(ctx, key, value)
	}, r.classify)
	return markTemporary("kv.put", err)
}

func (r *Resilient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	var found bool
	err := r.runner.Do(ctx, "kv.get", func(ctx context.Context) error {
		var innerErr error
		raw, found, innerErr = r.inner.Get(ctx, key)
		return innerErr
	}, r.classify)
	return raw, found, markTemporary("kv.get", err)
}

func (r *Resilient) QueryPrefix(ctx context.Context, prefix string, limit int) ([]ports.KeyValueItem, error) {
	var items []ports.KeyValueItem
	err := r.runner.Do(ctx, "kv.query", func(ctx context.Context) error {
		var innerErr error
		items, innerErr = r.inner.QueryPrefix(ctx, prefix, limit)
		return innerErr
	}, r.classify)
	return items, markTemporary("kv.query", err)
}

// markTemporary surfaces an open breaker as the temporary error kind, so
// callers can answer "try again later" instead of a generic failure.
func markTemporary(operation string, err error) error {
	if err == nil {
		return nil
	}
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

func classifyStoreError(err error) resilience.Outcome {
	if err == nil {
		return resilience.Outcome{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Outcome{Retry: false, CountAsFailure: false}
	}
	// Backend errors are treated as transient; retries stop at the cap.
	return resilience.Outcome{Retry: true, CountAsFailure: true}
}

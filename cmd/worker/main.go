package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkravets/smart-file-search/internal/bootstrap"
	"github.com/mkravets/smart-file-search/internal/config"
	"github.com/mkravets/smart-file-search/internal/observability/logging"
	"github.com/mkravets/smart-file-search/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics()
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", workerMetrics.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	go runSweepLoop(ctx, app, workerMetrics, cfg.SweepInterval)

	logger.Info("worker subscribed", "subject", cfg.NATSSubject, "sweep_interval", cfg.SweepInterval.String())
	err = app.Queue.SubscribeFileCompleted(ctx, func(handlerCtx context.Context, fileID string) error {
		lookupCtx, cancel := context.WithTimeout(handlerCtx, 10*time.Second)
		defer cancel()

		record, err := app.Records.FindRecord(lookupCtx, fileID)
		if err != nil {
			return err
		}
		workerMetrics.RecordCompletionLag(serviceName, time.Since(record.CreatedAt))
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}

func runSweepLoop(ctx context.Context, app *bootstrap.App, workerMetrics *metrics.WorkerMetrics, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
			start := time.Now()
			marked, err := app.SweepUC.Sweep(sweepCtx)
			cancel()

			status := "ok"
			if err != nil {
				status = "error"
				app.Logger.Error("reconciliation sweep failed", "error", err)
			}
			workerMetrics.RecordSweep(serviceName, status, time.Since(start), marked)
		}
	}
}

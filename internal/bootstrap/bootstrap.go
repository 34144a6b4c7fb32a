package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravets/smart-file-search/internal/config"
	"github.com/mkravets/smart-file-search/internal/core/ports"
	"github.com/mkravets/smart-file-search/internal/core/records"
	"github.com/mkravets/smart-file-search/internal/core/usecase"
	"github.com/mkravets/smart-file-search/internal/infrastructure/explorer/basic"
	"github.com/mkravets/smart-file-search/internal/infrastructure/explorer/gemini"
	"github.com/mkravets/smart-file-search/internal/infrastructure/extractor/markup"
	"github.com/mkravets/smart-file-search/internal/infrastructure/kv"
	badgerkv "github.com/mkravets/smart-file-search/internal/infrastructure/kv/badger"
	postgreskv "github.com/mkravets/smart-file-search/internal/infrastructure/kv/postgres"
	natsqueue "github.com/mkravets/smart-file-search/internal/infrastructure/queue/nats"
	"github.com/mkravets/smart-file-search/internal/infrastructure/resilience"
	"github.com/mkravets/smart-file-search/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Records   ports.RecordStore
	Queue     *natsqueue.Queue
	ProcessUC ports.FileProcessor
	ChatUC    ports.FileChat
	ReaderUC  ports.FileReader
	SweepUC   ports.Sweeper

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	runner := resilience.NewRunner(resilience.DefaultPolicy())

	store, closeKV, err := openKeyValueStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	resilientKV := kv.NewResilient(store, runner, nil)
	recordStore := records.NewStore(resilientKV)

	storage, err := localfs.New(cfg.StoragePath, cfg.StoragePublicURL)
	if err != nil {
		closeKV()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		Runner: runner,
	})
	if err != nil {
		closeKV()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	contentExplorer, err := openExplorer(ctx, cfg)
	if err != nil {
		closeKV()
		queue.Close()
		return nil, err
	}

	extractor := markup.NewExtractor()

	processUC := usecase.NewProcessFileUseCase(recordStore, extractor, storage, queue, logger)
	chatUC := usecase.NewChatUseCase(recordStore, contentExplorer, logger)
	readerUC := usecase.NewFileReaderUseCase(recordStore)
	sweepUC := usecase.NewSweepUseCase(recordStore, cfg.SweepStuckAfter, logger)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Records: recordStore,
		Queue:   queue,

		ProcessUC: processUC,
		ChatUC:    chatUC,
		ReaderUC:  readerUC,
		SweepUC:   sweepUC,

		closeFn: func() {
			queue.Close()
			closeKV()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func openKeyValueStore(ctx context.Context, cfg config.Config) (ports.KeyValueStore, func(), error) {
	switch cfg.KVBackend {
	case "badger":
		store, err := badgerkv.Open(cfg.BadgerPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		db, err := postgreskv.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store := postgreskv.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown kv backend %q (want badger or postgres)", cfg.KVBackend)
	}
}

func openExplorer(ctx context.Context, cfg config.Config) (ports.ContentExplorer, error) {
	switch cfg.Explorer {
	case "basic":
		return basic.New(), nil
	case "gemini":
		explorer, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("init gemini explorer: %w", err)
		}
		return explorer, nil
	default:
		return nil, fmt.Errorf("unknown explorer %q (want basic or gemini)", cfg.Explorer)
	}
}

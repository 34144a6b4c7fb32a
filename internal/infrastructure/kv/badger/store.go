package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/mkravets/smart-file-search/internal/core/ports"
)

// Store is the embedded key-value backend. Badger's ordered key iteration
// gives the begins_with query the persistence contract asks for without a
// separate index.
type Store struct {
	db *badgerdb.DB
}

var _ ports.KeyValueStore = (*Store)(nil)

type loggerAdapter struct {
	logger *slog.Logger
}

func (l *loggerAdapter) Errorf(msg string, items ...any)   { l.logger.Error(fmt.Sprintf(msg, items...)) }
func (l *loggerAdapter) Warningf(msg string, items ...any) { l.logger.Warn(fmt.Sprintf(msg, items...)) }
func (l *loggerAdapter) Infof(msg string, items ...any)    { l.logger.Info(fmt.Sprintf(msg, items...)) }
func (l *loggerAdapter) Debugf(msg string, items ...any)   { l.logger.Debug(fmt.Sprintf(msg, items...)) }

// Open opens (creating if needed) a badger database at path. An empty path
// opens an in-memory database, used by tests.
func Open(path string) (*Store, error) {
	var opts badgerdb.Options
	if path == "" {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badgerdb.DefaultOptions(path)
	}
	opts.Logger = &loggerAdapter{logger: slog.Default()}

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badgerdb.ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *Store) QueryPrefix(_ context.Context, prefix string, limit int) ([]ports.KeyValueItem, error) {
	var items []ports.KeyValueItem
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if limit > 0 && len(items) == limit {
				break
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			items = append(items, ports.KeyValueItem{
				Key:   string(item.KeyCopy(nil)),
				Value: value,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger prefix scan %s: %w", prefix, err)
	}
	return items, nil
}

package kv

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Badger persists keys in an embedded Badger database on local disk.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens (or creates) a Badger database in dir.
func OpenBadger(dir string, logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Every mutation is flushed before the call returns
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", dir)
	}

	return &Badger{db: db, logger: logger}, nil
}

// OpenBadgerInMemory opens a Badger instance that never touches disk.
func OpenBadgerInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger db: %w", err)
	}
	return &Badger{db: db}, nil
}

// Close gracefully closes the database.
func (b *Badger) Close() error {
	if b.logger != nil {
		b.logger.Info("Closing database connection")
	}
	return b.db.Close()
}

// Get implements Backend.
func (b *Badger) Get(key string) (string, bool, error) {
	var value string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Backend.
func (b *Badger) Set(key, value string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// SetMany implements Batcher. All entries commit in a single transaction.
func (b *Badger) SetMany(entries []Entry) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			if err := txn.Set([]byte(e.Key), []byte(e.Value)); err != nil {
				return fmt.Errorf("failed to set key %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

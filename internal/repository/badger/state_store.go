package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger"

	"shoresquad/internal/domain"
)

// Options selects where the embedded store keeps its files.
type Options struct {
	Dir string
}

// StateStore persists blobs in an embedded Badger database.
type StateStore struct {
	DB *badger.DB
}

// Open opens (or creates) the Badger database.
func Open(opts Options) (*StateStore, error) {
	if opts.Dir == "" {
		return nil, errors.New("open badger: directory is required")
	}
	db, err := badger.Open(badger.DefaultOptions(opts.Dir))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &StateStore{DB: db}, nil
}

func (s *StateStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("badger get %q: %w", key, err)
	}
	return value, nil
}

func (s *StateStore) Put(_ context.Context, key string, value []byte) error {
	err := s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger put %q: %w", key, err)
	}
	return nil
}

func (s *StateStore) Close() error {
	return s.DB.Close()
}

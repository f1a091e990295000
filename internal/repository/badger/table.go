package badger

import (
	"context"
	"errors"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"github.com/dgraph-io/badger/v4"
)

type table[T domain.Record[T]] struct {
	store  *Store
	prefix string
}

func newTable[T domain.Record[T]](store *Store, collection string) *table[T] {
	return &table[T]{store: store, prefix: collection + "/"}
}

func (t *table[T]) key(id string) []byte {
	return []byte(t.prefix + id)
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	err := t.store.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(t.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := repository.Decode[T](data)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (t *table[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var (
		item  T
		found bool
	)
	err := t.store.view(ctx, func(txn *badger.Txn) error {
		entry, err := txn.Get(t.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data, err := entry.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err = repository.Decode[T](data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return item, found, nil
}

func (t *table[T]) Put(ctx context.Context, item T) (T, error) {
	var zero T
	item = repository.EnsureID(item)
	data, err := repository.Encode(item)
	if err != nil {
		return zero, err
	}

	err = t.store.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(t.key(item.GetID()), data)
	})
	if err != nil {
		return zero, err
	}
	return repository.Decode[T](data)
}

func (t *table[T]) Remove(ctx context.Context, id string) error {
	return t.store.update(ctx, func(txn *badger.Txn) error {
		return txn.Delete(t.key(id))
	})
}

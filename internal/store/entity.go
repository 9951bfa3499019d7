package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD operations for any domain type.
//
// Key layout under the entity prefix:
//
//	<prefix><id>                        primary record (JSON)
//	<prefix>idx:<name>:<key>            unique index entry -> id
//	<prefix>idx:<name>:<key>:<id>       multi index entry -> id
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []index[T]
}

// index defines a secondary index on an entity.
type index[T any] struct {
	name            string
	keyGen          func(*T) []string
	lookupTransform func(string) string // optional transformation for lookups
	multi           bool                // multi-valued: many entities may share one key
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithUniqueIndex adds a secondary index where each key maps to exactly one
// entity. Creating a second entity with the same key fails with
// ErrAlreadyExists.
func (e *Entity[T]) WithUniqueIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

// WithUniqueIndexTransform is WithUniqueIndex with a lookup transformation
// applied to search values, enabling case-insensitive lookups.
func (e *Entity[T]) WithUniqueIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen, lookupTransform: lookupTransform})
	return e
}

// WithMultiIndex adds a secondary index where many entities may share a key.
func (e *Entity[T]) WithMultiIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen, multi: true})
	return e
}

func (e *Entity[T]) indexEntryKey(idx index[T], indexKey, id string) string {
	if idx.multi {
		return e.prefix + "idx:" + idx.name + ":" + indexKey + ":" + id
	}
	return e.prefix + "idx:" + idx.name + ":" + indexKey
}

// Create creates a new entity with the given ID.
// Returns ErrAlreadyExists if the ID or a unique index key is already taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	key := e.prefix + id

	return e.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		for _, idx := range e.indexes {
			if idx.multi {
				continue
			}
			for _, indexKey := range idx.keyGen(entity) {
				idxKey := e.indexEntryKey(idx, indexKey, id)
				if _, err := txn.Get([]byte(idxKey)); err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, indexKey, ErrAlreadyExists)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexEntries(txn, id, entity)
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, e.prefix+id, &entity)
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity by a unique secondary index.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	indexKey := []byte(e.prefix + "idx:" + indexName + ":" + value)

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return e.Get(ctx, id)
}

// ListByIndex returns all entities sharing a multi index key.
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanPrefix := []byte(e.prefix + "idx:" + indexName + ":" + value + ":")

	var out []T
	err := e.store.db.View(func(txn *badger.Txn) error {
		ids, err := scanIndexIDs(txn, scanPrefix)
		if err != nil {
			return err
		}
		for _, id := range ids {
			var entity T
			if err := getEntity(txn, e.prefix+id, &entity); err != nil {
				return err
			}
			out = append(out, entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update updates an existing entity, rewriting index entries whose keys changed.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	key := e.prefix + id

	return e.store.db.Update(func(txn *badger.Txn) error {
		var oldEntity T
		if err := getEntity(txn, key, &oldEntity); err != nil {
			return err
		}

		if err := e.deleteIndexEntries(txn, id, &oldEntity); err != nil {
			return err
		}

		// Unique index conflicts, ignoring keys we just vacated.
		for _, idx := range e.indexes {
			if idx.multi {
				continue
			}
			oldKeys := make(map[string]bool)
			for _, k := range idx.keyGen(&oldEntity) {
				oldKeys[k] = true
			}
			for _, indexKey := range idx.keyGen(entity) {
				if oldKeys[indexKey] {
					continue
				}
				idxKey := e.indexEntryKey(idx, indexKey, id)
				if _, err := txn.Get([]byte(idxKey)); err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, indexKey, ErrAlreadyExists)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return e.writeIndexEntries(txn, id, entity)
	})
}

// Delete deletes an entity by ID.
// This operation is idempotent - it does not return an error if the entity does not exist.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := e.prefix + id

	return e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		err := getEntity(txn, key, &entity)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := e.deleteIndexEntries(txn, id, &entity); err != nil {
			return err
		}

		if err := txn.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// List returns an iterator over all entities.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index entries.
				if strings.HasPrefix(string(it.Item().Key())[len(e.prefix):], "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // consumer stopped early
				}
			}
			return nil
		})
	}
}

// writeIndexEntries writes all index entries for entity within txn.
func (e *Entity[T]) writeIndexEntries(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, indexKey := range idx.keyGen(entity) {
			idxKey := e.indexEntryKey(idx, indexKey, id)
			if err := txn.Set([]byte(idxKey), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

// deleteIndexEntries removes all index entries for entity within txn.
func (e *Entity[T]) deleteIndexEntries(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, indexKey := range idx.keyGen(entity) {
			idxKey := e.indexEntryKey(idx, indexKey, id)
			if err := txn.Delete([]byte(idxKey)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

// getEntity reads and unmarshals a primary record within txn.
func getEntity(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		return nil
	})
}

// scanIndexIDs collects entity IDs under a multi index scan prefix within txn.
func scanIndexIDs(txn *badger.Txn, scanPrefix []byte) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = scanPrefix
	opts.PrefetchValues = true

	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Seek(scanPrefix); it.ValidForPrefix(scanPrefix); it.Next() {
		var id string
		err := it.Item().Value(func(val []byte) error {
			id = string(val)
			return nil
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

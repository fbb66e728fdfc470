package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"fan_showcase/internal/storage"

	"github.com/boltdb/bolt"
)

const boltStateBucket = "visitor-state"

type boltEntry struct {
	Value     []byte
	ExpiresAt time.Time
}

func (e boltEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// BoltKV хранит состояние посетителей в файле bolt, переживает перезапуск.
type BoltKV struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltKV(path string) (*BoltKV, error) {
	const op = "repository.NewBoltKV"

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltStateBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: create bucket: %w", op, err)
	}

	return &BoltKV{db: db, now: time.Now}, nil
}

func (b *BoltKV) Close() error {
	return b.db.Close()
}

func (b *BoltKV) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "repository.BoltKV.Get"

	var entry boltEntry
	found := false

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltStateBucket)).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		return gob.NewDecoder(bytes.NewReader(v)).Decode(&entry)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !found {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrorNoSuchKey)
	}

	if entry.expired(b.now()) {
		if err := b.Delete(ctx, key); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w", op, storage.ErrorNoSuchKey)
	}

	return entry.Value, nil
}

func (b *BoltKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const op = "repository.BoltKV.Set"

	entry := boltEntry{Value: value}
	if ttl > 0 {
		entry.ExpiresAt = b.now().Add(ttl)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltStateBucket)).Put([]byte(key), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (b *BoltKV) Delete(ctx context.Context, key string) error {
	const op = "repository.BoltKV.Delete"

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltStateBucket)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PurgeExpired удаляет истёкшие записи и возвращает их количество.
func (b *BoltKV) PurgeExpired(ctx context.Context) (int, error) {
	const op = "repository.BoltKV.PurgeExpired"

	now := b.now()
	removed := 0

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltStateBucket))

		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var entry boltEntry
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&entry); err != nil {
				return err
			}
			if entry.expired(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return removed, nil
}

package session

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

// BoltStorage keeps the session in a local bolt file, surviving restarts.
type BoltStorage struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bolt file at path.
func OpenBolt(path string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Get(_ context.Context, key string) (string, bool, error) {
	var (
		val string
		ok  bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get([]byte(key)); v != nil {
			val, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("bolt get %s: %w", key, err)
	}
	return val, ok, nil
}

func (b *BoltStorage) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("bolt set %s: %w", key, err)
	}
	return nil
}

func (b *BoltStorage) Delete(_ context.Context, keys ...string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(sessionBucket)
		for _, k := range keys {
			if err := bkt.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt delete: %w", err)
	}
	return nil
}

func (b *BoltStorage) Close() error {
	return b.db.Close()
}

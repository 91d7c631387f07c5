// Package mirror is the on-device cache of the remote counter store. It is
// a best-effort replica with no independent authority: every record can be
// rebuilt from the remote store, and on disagreement the reconciliation
// engine keeps whichever side carries the larger counters.
package mirror

import (
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/jaapghar/jaapghar-backend/internal/config"
)

var bucketName = []byte("mirror")

// Store is a string-keyed store of JSON blobs backed by a single bbolt file.
// All operations are synchronous; reads never fail (a broken or missing
// record reads as a cache miss).
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the mirror file.
func Open(cfg config.MirrorConfig) (*Store, error) {
	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: cfg.OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("mirror: open %s: %w", cfg.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror: init bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw blob stored under key, and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			val = append(val, v...)
		}
		return nil
	})
	if err != nil || val == nil {
		return "", false
	}
	return string(val), true
}

// Set stores the raw blob under key, replacing any previous value.
func (s *Store) Set(key, val string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(val))
	})
	if err != nil {
		return fmt.Errorf("mirror: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("mirror: delete %s: %w", key, err)
	}
	return nil
}

// Scan returns every key/value pair whose key starts with prefix.
func (s *Store) Scan(prefix string) map[string]string {
	out := make(map[string]string)
	s.db.View(func(tx *bolt.Tx) error { //nolint:errcheck
		c := tx.Bucket(bucketName).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			out[string(k)] = string(v)
		}
		return nil
	})
	return out
}

// DeletePrefix removes every key starting with prefix.
func (s *Store) DeletePrefix(prefix string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		c := b.Cursor()
		p := []byte(prefix)
		var keys [][]byte
		for k, _ := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("mirror: delete prefix %s: %w", prefix, err)
	}
	return nil
}

package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Collection names persisted under the namespace bucket.
const (
	CollectionUsers = "users"
	CollectionTasks = "tasks"
)

// Store wraps BoltDB as a namespaced key-value store. All data lives in a
// single bucket keyed by app id and schema version, so incompatible schema
// generations never collide inside the same file.
type Store struct {
	db        *bolt.DB
	namespace []byte
	version   string
}

// Open initializes the Bolt file and ensures the namespace bucket exists.
func Open(path, appID, version string) (*Store, error) {
	if appID == "" {
		appID = "taskdesk"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	namespace := []byte(fmt.Sprintf("%s:%s", appID, version))
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(namespace)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		namespace: namespace,
		version:   version,
	}, nil
}

// Get returns the raw value stored for the collection. A collection that was
// never written returns (nil, nil): callers treat that as "no data persisted
// yet", not as a failure.
func (s *Store) Get(collection string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.namespace).Get([]byte(collection)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// Set replaces the collection value in a single write transaction. A failed
// write leaves the previously stored value untouched.
func (s *Store) Set(collection string, value []byte) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.namespace).Put([]byte(collection), value)
	})
}

// ExportAll reads both collections in one view transaction and returns the
// snapshot that backup files are built from.
func (s *Store) ExportAll() (*Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	snap := &Snapshot{
		ExportedAt: time.Now().UTC(),
		Version:    s.version,
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		snap.Users = rawOrEmpty(b.Get([]byte(CollectionUsers)))
		snap.Tasks = rawOrEmpty(b.Get([]byte(CollectionTasks)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportAll restores both collections atomically: either the whole snapshot
// lands or nothing changes.
func (s *Store) ImportAll(snap *Snapshot) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		if err := b.Put([]byte(CollectionUsers), rawOrEmpty(snap.Users)); err != nil {
			return err
		}
		return b.Put([]byte(CollectionTasks), rawOrEmpty(snap.Tasks))
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for diagnostics.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

func rawOrEmpty(v []byte) []byte {
	if len(v) == 0 {
		return []byte("[]")
	}
	return append([]byte(nil), v...)
}

// Package session manages authenticated admin sessions entirely through
// client-side persisted state: a single storage key holding a JSON array
// of session records, with absolute expiry, activity tracking and
// selective or global revocation. There is no server-side validation of
// session tokens anywhere in this design.
package session

import (
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// KV is the persistence boundary: one blob per key. The concrete storage
// medium is swappable without touching the session logic.
type KV interface {
	// Get returns the blob stored under key, or (nil, nil) when absent.
	Get(key string) ([]byte, error)

	// Put stores the blob under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying storage.
	Close() error
}

const boltBucket = "sessions"

// boltKV implements KV over a single-file bbolt database.
type boltKV struct {
	db *bolt.DB
}

// NewBoltKV opens (or creates) the session database at path.
func NewBoltKV(path string) (KV, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session bucket: %w", err)
	}

	return &boltKV{db: db}, nil
}

func (b *boltKV) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if stored := tx.Bucket([]byte(boltBucket)).Get([]byte(key)); stored != nil {
			value = make([]byte, len(stored))
			copy(value, stored)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, nil
}

func (b *boltKV) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

func (b *boltKV) Delete(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session key %s: %w", key, err)
	}
	return nil
}

func (b *boltKV) Close() error {
	return b.db.Close()
}

// memKV is an in-memory KV used in tests and as a last-resort store when
// no database path is configured.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemKV creates an empty in-memory KV.
func NewMemKV() KV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	value := make([]byte, len(stored))
	copy(value, stored)
	return value, nil
}

func (m *memKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *memKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error {
	return nil
}

package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	stateBucket = "state"
	stateKey    = "rbe-app-storage"
)

// BoltPersistence stores the durable UI state in a single bbolt key.
type BoltPersistence struct {
	db *bolt.DB
}

// OpenBolt initializes the bbolt file and ensures the bucket exists.
func OpenBolt(path string) (*BoltPersistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoltPersistence{db: db}, nil
}

// Load reads the persisted state. The boolean reports whether any prior
// state existed.
func (p *BoltPersistence) Load() (Persisted, bool, error) {
	var saved Persisted
	var found bool

	err := p.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(stateBucket)).Get([]byte(stateKey))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &saved)
	})
	if err != nil {
		return Persisted{}, false, err
	}
	return saved, found, nil
}

// Save overwrites the persisted state.
func (p *BoltPersistence) Save(saved Persisted) error {
	payload, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(stateKey), payload)
	})
}

// Close closes the underlying database.
func (p *BoltPersistence) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

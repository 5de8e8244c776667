package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

type boltStore struct {
	db     *bolt.DB
	bucket []byte
}

// NewBoltStore opens (or creates) a file backed store. Entries written by a previous
// process are served again for as long as they have not expired.
func NewBoltStore(path, bucket string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %s", err.Error())
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file %s: %s", path, err.Error())
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket %s: %s", bucket, err.Error())
	}

	return &boltStore{db: db, bucket: []byte(bucket)}, nil
}

func (s *boltStore) Get(ctx context.Context, id string) (Entry, bool, error) {
	var e Entry
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket).Get([]byte(id))
		if b == nil {
			return nil
		}
		found = true
		return json.Unmarshal(b, &e)
	})
	if err != nil {
		return Entry{}, false, err
	}

	return e, found, nil
}

func (s *boltStore) Set(ctx context.Context, id string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(id), b)
	})
}

func (s *boltStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(id))
	})
}

func (s *boltStore) Purge(ctx context.Context, now time.Time) (int, error) {
	count := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)

		// deleting while iterating with a cursor skips keys
		expired := [][]byte{}
		err := bucket.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil || e.expired(now) {
				expired = append(expired, append([]byte{}, k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		count = len(expired)
		return nil
	})

	return count, err
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

package bboltstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"
)

const (
	bboltFile = "cheesyblog.db"
	bucketKV  = "kv"
)

var (
	// ErrNotOpen is returned when the store is used before Init or after Close.
	ErrNotOpen        = errors.New("bbolt store is not open")
	errBucketNotFound = errors.New("bucket not found")
)

// BBoltStore is a key-value store kept in a single bbolt file inside dataDir.
type BBoltStore struct {
	boltIndex *bbolt.DB
	dataDir   string // dataDir is the directory where the bbolt file is kept.
	logger    *slog.Logger
	mu        sync.RWMutex // mu guards boltIndex.
}

// New creates a new BBoltStore. Init must be called before use.
func New(dataDir string, logger *slog.Logger) *BBoltStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &BBoltStore{
		dataDir: dataDir,
		logger:  logger,
	}
}

// Init opens the bbolt file and creates the bucket
func (bbs *BBoltStore) Init() error {
	if err := os.MkdirAll(bbs.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	boltIndex, err := bbs.initBolt()
	if err != nil {
		return fmt.Errorf("failed to initialize bbolt: %w", err)
	}

	bbs.mu.Lock()
	bbs.boltIndex = boltIndex
	bbs.mu.Unlock()

	return nil
}

// Path returns the path of the bbolt file
func (bbs *BBoltStore) Path() string {
	return filepath.Join(bbs.dataDir, bboltFile)
}

// Clear removes the bbolt file and reopens an empty one
func (bbs *BBoltStore) Clear() error {
	bbs.mu.Lock()
	defer bbs.mu.Unlock()

	if err := bbs.closeBolt(); err != nil {
		return fmt.Errorf("failed to close bbolt: %w", err)
	}

	if err := os.Remove(bbs.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove bolt file: %w", err)
	}

	boltIndex, err := bbs.initBolt()
	if err != nil {
		return fmt.Errorf("failed to reinitialize bolt: %w", err)
	}
	bbs.boltIndex = boltIndex

	return nil
}

// Close closes the bbolt file. Closing a closed store is a no-op.
func (bbs *BBoltStore) Close() error {
	bbs.mu.Lock()
	defer bbs.mu.Unlock()

	return bbs.closeBolt()
}

// closeBolt must be called with mu held
func (bbs *BBoltStore) closeBolt() error {
	if bbs.boltIndex != nil {
		err := bbs.boltIndex.Close()
		bbs.boltIndex = nil
		return err
	}

	return nil
}

// Get returns the value stored under key
func (bbs *BBoltStore) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	bbs.mu.RLock()
	defer bbs.mu.RUnlock()

	if bbs.boltIndex == nil {
		return "", false, fmt.Errorf("error getting %s: %w", key, ErrNotOpen)
	}

	err := bbs.boltIndex.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketKV))
		if b == nil {
			return errBucketNotFound
		}

		// The returned slice is only valid for the life of the transaction
		if data := b.Get([]byte(key)); data != nil {
			value = string(data)
			found = true
		}

		return nil
	})

	if err != nil {
		return "", false, fmt.Errorf("error getting %s: %w", key, err)
	}
	return value, found, nil
}

// Set stores value under key
func (bbs *BBoltStore) Set(key, value string) error {
	return bbs.SetMany(map[string]string{key: value})
}

// SetMany stores all values in a single transaction
func (bbs *BBoltStore) SetMany(values map[string]string) error {
	bbs.mu.Lock()
	defer bbs.mu.Unlock()

	if bbs.boltIndex == nil {
		return fmt.Errorf("failed to update bolt: %w", ErrNotOpen)
	}

	err := bbs.boltIndex.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketKV))
		if b == nil {
			return errBucketNotFound
		}

		for key, value := range values {
			if err := b.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("failed to put %s in bucket: %w", key, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt: %w", err)
	}

	bbs.logger.Debug("stored values", slog.Int("count", len(values)))
	return nil
}

func (bbs *BBoltStore) initBolt() (*bbolt.DB, error) {
	boltIndex, err := bbolt.Open(bbs.Path(), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt index: %w", err)
	}

	err = boltIndex.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketKV)); err != nil {
			return fmt.Errorf("failed to create kv bucket: %w", err)
		}
		return nil
	})

	if err != nil {
		_ = boltIndex.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return boltIndex, nil
}

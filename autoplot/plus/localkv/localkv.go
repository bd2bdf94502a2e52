package localkv

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/tidwall/buntdb"

	"github.com/ezquant/autoplot/autoplot/tools/log"
)

const memoryPath = ":memory:"

// ErrNotFound is returned when a key was never archived.
var ErrNotFound = buntdb.ErrNotFound

// LocalKV is a small key/value archive for rendered figures, keyed by artifact name.
type LocalKV struct {
	db     *buntdb.DB
	dbPath string
}

// NewLocalKV opens the archive under databasePath, or in memory when it is nil.
func NewLocalKV(databasePath *string) (*LocalKV, error) {
	dbPath := memoryPath
	if databasePath != nil {
		if err := os.MkdirAll(*databasePath, 0755); err != nil {
			return nil, fmt.Errorf("localkv: create directory: %w", err)
		}
		dbPath = path.Join(*databasePath, "figures.db")
	}

	db, err := buntdb.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("localkv: open: %w", err)
	}

	return &LocalKV{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (l *LocalKV) Close() error {
	return l.db.Close()
}

// Get returns the value stored at key, ErrNotFound when absent.
func (l *LocalKV) Get(key string) (string, error) {
	var val string

	err := l.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}

		val = v
		return nil
	})

	return val, err
}

// Set stores value at key, replacing any previous value.
func (l *LocalKV) Set(key, value string) error {
	return l.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)

		return err
	})
}

// Delete removes key. Missing keys are not an error.
func (l *LocalKV) Delete(key string) error {
	err := l.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil
	}
	return err
}

// Keys lists the stored keys in ascending order.
func (l *LocalKV) Keys() ([]string, error) {
	var keys []string
	err := l.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys("*", func(key, _ string) bool {
			keys = append(keys, key)
			return true
		})
	})
	return keys, err
}

// RemoveDB closes the archive and removes its file.
func (l *LocalKV) RemoveDB() error {
	if l.db != nil {
		l.db.Close()
	}

	if l.dbPath != memoryPath && l.dbPath != "" {
		if err := os.Remove(l.dbPath); err != nil && !os.IsNotExist(err) {
			log.Warnf("localkv: remove %s: %v", l.dbPath, err)
		}
	}
	return nil
}

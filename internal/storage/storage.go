// Package storage is the string key/value port the board and settings
// persist through, plus the backends that implement it.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"kban/internal/config"
	"kban/internal/logs"
)

// ErrClosed is returned by every operation on a closed Store
var ErrClosed = errors.New("storage: store is closed")

// Store holds string values by key. Get reports ok=false for a key that was
// never set or has been removed.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open creates the backend selected in cfg under cfg.DataDir
func Open(cfg *config.Config) (Store, error) {
	log := logs.Logger.WithField("storage", cfg.Storage)

	var (
		s   Store
		err error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		s = NewMemory()
	case config.StorageFile:
		s, err = NewFile(filepath.Join(cfg.DataDir, "state.json"))
	case config.StorageSQLite:
		s, err = NewSQLite(filepath.Join(cfg.DataDir, "kban.db"))
	case config.StorageBadger:
		s, err = NewBadger(filepath.Join(cfg.DataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if err != nil {
		log.WithError(err).Error("failed to open store")
		return nil, err
	}

	log.WithField("data_dir", cfg.DataDir).Debug("store opened")
	return s, nil
}

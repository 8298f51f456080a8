// Package storage provides the persistence layer for workreport.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/workreport/internal/errors"
)

const (
	// AppName is the application name used for data directories.
	AppName = "workreport"
)

// DB wraps a Badger database connection.
type DB struct {
	db           *badger.DB
	path         string
	minFreeSpace uint64
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
	// MinFreeSpace is the free space required before a write. Zero uses the
	// package default. Ignored in memory.
	MinFreeSpace uint64
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := ""

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := EnsureDirectory(opts.Path); err != nil {
			return nil, err
		}
		path = opts.Path
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, classifyOpenError(err)
	}

	minFree := opts.MinFreeSpace
	if minFree == 0 {
		minFree = MinFreeSpace
	}
	return &DB{db: db, path: path, minFreeSpace: minFree}, nil
}

func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "directory lock"):
		return errors.NewSystemErrorWithOp("open database", "database is in use", errors.Wrap(errors.ErrLockHeld, err.Error()))
	case os.IsPermission(err):
		return errors.NewSystemErrorWithOp("open database", "permission denied", errors.Wrap(errors.ErrPermissionDenied, err.Error()))
	case IsDatabaseCorrupted(err):
		return errors.NewSystemErrorWithOp("open database", "database corrupted", errors.Wrap(errors.ErrDatabaseCorrupted, err.Error()))
	default:
		return errors.NewSystemErrorWithOp("open database", "failed to open database", err)
	}
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// InMemory reports whether the database lives only in memory.
func (d *DB) InMemory() bool {
	return d.path == ""
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}

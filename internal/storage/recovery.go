package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/model"
)

// KeyStatus describes the health of one persisted key.
type KeyStatus struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// RecoveryStatus represents the result of a database health check.
type RecoveryStatus struct {
	Healthy   bool        `json:"healthy"`
	Corrupted bool        `json:"corrupted"`
	LastCheck time.Time   `json:"last_check"`
	Keys      []KeyStatus `json:"keys"`
}

// CheckIntegrity verifies that every persisted key decodes as JSON of the
// expected shape. Absent keys are healthy.
func CheckIntegrity(kv KV) *RecoveryStatus {
	status := &RecoveryStatus{
		LastCheck: time.Now(),
		Healthy:   true,
	}

	for _, key := range model.CollectionKeys {
		ks := KeyStatus{Key: key, Valid: true}
		data, err := kv.Get(key)
		switch {
		case IsErrKeyNotFound(err):
		case err != nil:
			ks.Present = true
			ks.Valid = false
			ks.Error = err.Error()
		default:
			ks.Present = true
			ks.Records, err = CountRecords(key, data)
			if err != nil {
				ks.Valid = false
				ks.Error = err.Error()
			}
		}
		if !ks.Valid {
			status.Healthy = false
			status.Corrupted = true
		}
		status.Keys = append(status.Keys, ks)
	}

	return status
}

// CountRecords checks that data has the shape stored under key and returns
// the number of records it holds. The settings object counts as one.
func CountRecords(key string, data []byte) (int, error) {
	if key == model.KeyDesignSettings {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return 0, err
		}
		return 1, nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return 0, err
	}
	return len(arr), nil
}

// SnapshotDir is where Snapshot puts files, next to the database directory.
func (d *DB) SnapshotDir() string {
	return filepath.Join(filepath.Dir(d.path), "backups")
}

// Snapshot streams a consistent copy of the whole database, in Badger's
// backup format, to a timestamped file in SnapshotDir and returns its path.
func (d *DB) Snapshot(now time.Time) (string, error) {
	if d.InMemory() {
		return "", errors.NewUserError("an in-memory database has no snapshot directory",
			"Use 'workreport export --backup -o FILE' instead")
	}
	dir := d.SnapshotDir()
	if err := EnsureDirectory(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "db-"+now.Format("20060102-150405")+".bak")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fsError("snapshot", path, err)
	}
	if _, err := d.db.Backup(f, 0); err != nil {
		f.Close()
		os.Remove(path)
		return "", fsError("snapshot", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fsError("snapshot", path, err)
	}

	logging.Info("database snapshot written", logging.KeyOperation, "snapshot", logging.KeyPath, path)
	return path, nil
}

// LoadSnapshot copies every key of a Snapshot file into the database and
// returns the keys written. Keys missing from the snapshot are left alone.
// The snapshot is staged in a scratch in-memory database so its entries get
// fresh versions here instead of their old ones.
func (d *DB) LoadSnapshot(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewUserErrorWithField("file", path, "snapshot not found", "")
		}
		return nil, fsError("read snapshot", path, err)
	}
	defer f.Close()

	scratch, err := Open(Options{InMemory: true})
	if err != nil {
		return nil, err
	}
	defer scratch.Close()
	if err := scratch.db.Load(f, 256); err != nil {
		return nil, errors.NewSystemErrorWithOp("load snapshot", "snapshot is unreadable", fmt.Errorf("%s: %w", path, err))
	}

	keys, err := scratch.Keys()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		value, err := scratch.Get(key)
		if err != nil {
			return nil, err
		}
		if err := d.Set(key, value); err != nil {
			return nil, err
		}
	}
	logging.LogOperation("load_snapshot", logging.KeyPath, path, logging.KeyCount, len(keys))
	return keys, nil
}

// IsDatabaseCorrupted checks if the given error indicates database corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"checksum mismatch",
		"corrupt",
		"unexpected eof",
		"bad magic",
		"truncated",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

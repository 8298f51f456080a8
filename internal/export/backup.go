package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/storage"
)

const backupVersion = "1"

// Backup is a full copy of every persisted key, each document embedded as
// it is stored.
type Backup struct {
	Version    string                     `json:"version"`
	ExportedAt string                     `json:"exported_at"`
	Data       map[string]json.RawMessage `json:"data"`
}

// KeyCount is the number of records restored or backed up under a key.
type KeyCount struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
}

// Reloader is implemented by every store that caches a key in memory.
type Reloader interface {
	Reload()
}

// CreateBackup reads every persisted key from kv. Absent keys are skipped.
func CreateBackup(kv storage.KV, now time.Time) (*Backup, []KeyCount, error) {
	b := &Backup{
		Version:    backupVersion,
		ExportedAt: now.Format(time.RFC3339),
		Data:       make(map[string]json.RawMessage, len(model.CollectionKeys)),
	}

	var counts []KeyCount
	for _, key := range model.CollectionKeys {
		data, err := kv.Get(key)
		if storage.IsErrKeyNotFound(err) {
			continue
		}
		if err != nil {
			return nil, nil, errors.NewSystemErrorWithOp("backup "+key, "failed to read data", err)
		}
		n, err := storage.CountRecords(key, data)
		if err != nil {
			// Keep the raw bytes out of the backup; they would not restore.
			logging.Warn("skipping malformed key in backup", logging.KeyKey, key, logging.KeyError, err)
			continue
		}
		b.Data[key] = json.RawMessage(data)
		counts = append(counts, KeyCount{Key: key, Records: n})
	}
	return b, counts, nil
}

// WriteBackup encodes b as indented JSON.
func WriteBackup(w io.Writer, b *Backup) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(b)
}

// BackupToFile writes b to path atomically, readable only by the owner.
func BackupToFile(path string, b *Backup) error {
	var buf bytes.Buffer
	if err := WriteBackup(&buf, b); err != nil {
		return err
	}
	return storage.SafeWrite(path, buf.Bytes(), 0o600)
}

// ReadBackup decodes a backup document and checks every key it carries.
// Unknown keys are dropped.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.NewUserError("File is not a workreport backup", "Create one with 'workreport export --backup -o FILE'")
	}
	if b.Version == "" || b.Data == nil {
		return nil, errors.NewUserError("File is not a workreport backup", "Create one with 'workreport export --backup -o FILE'")
	}
	if b.Version != backupVersion {
		return nil, errors.NewUserErrorWithField("version", b.Version, "Unsupported backup version", "")
	}

	for key, data := range b.Data {
		if !slices.Contains(model.CollectionKeys, key) {
			logging.Warn("ignoring unknown key in backup", logging.KeyKey, key)
			delete(b.Data, key)
			continue
		}
		if _, err := storage.CountRecords(key, data); err != nil {
			return nil, errors.NewUserErrorWithField(key, "", fmt.Sprintf("Backup entry %q is malformed", key), "")
		}
	}
	return &b, nil
}

// Restore writes every key of b to kv and reloads the given stores so they
// see the restored data. Keys absent from b are left untouched. The stores
// are reloaded even when a write fails partway.
func Restore(kv storage.KV, b *Backup, stores ...Reloader) ([]KeyCount, error) {
	defer func() {
		for _, s := range stores {
			s.Reload()
		}
	}()

	var counts []KeyCount
	for _, key := range model.CollectionKeys {
		data, ok := b.Data[key]
		if !ok {
			continue
		}
		n, err := storage.CountRecords(key, data)
		if err != nil {
			return counts, errors.NewUserErrorWithField(key, "", fmt.Sprintf("Backup entry %q is malformed", key), "")
		}
		if err := kv.Set(key, data); err != nil {
			if !errors.IsSystemError(err) {
				err = errors.NewSystemErrorWithOp("restore "+key, "failed to write data", err)
			}
			return counts, err
		}
		counts = append(counts, KeyCount{Key: key, Records: n})
	}

	logging.LogOperation("restore", logging.KeyCount, len(counts))
	return counts, nil
}

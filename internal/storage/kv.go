package storage

import (
	"maps"
	"slices"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/workreport/internal/errors"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the store.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// KV is the persistence provider: a string key maps to one opaque value.
// Get returns ErrKeyNotFound for absent keys.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Get retrieves raw bytes by key.
func (d *DB) Get(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

// Set stores raw bytes with the given key. File-backed databases refuse the
// write when the disk is nearly full.
func (d *DB) Set(key string, value []byte) error {
	if !d.InMemory() {
		if err := CheckDiskSpace(d.path, d.minFreeSpace); err != nil {
			return err
		}
	}
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil && isDiskFullError(err) {
		return errors.NewSystemErrorWithOp("write "+key, "disk full", errors.Wrap(errors.ErrDiskFull, err.Error()))
	}
	return err
}

// Delete removes a key from the database.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Keys lists every key in the database in byte order.
func (d *DB) Keys() ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// MemoryKV is an in-process KV. Failures can be injected to exercise the
// error paths of the stores.
type MemoryKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	getErr   map[string]error
	setErr   map[string]error
	setCalls map[string]int
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:     map[string][]byte{},
		getErr:   map[string]error{},
		setErr:   map[string]error{},
		setCalls: map[string]int{},
	}
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.getErr[key]; err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls[key]++
	if err := m.setErr[key]; err != nil {
		return err
	}
	m.data[key] = slices.Clone(value)
	return nil
}

// FailGet makes every Get of key return err. A nil err clears the failure.
func (m *MemoryKV) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr[key] = err
}

// FailSet makes every Set of key return err. A nil err clears the failure.
func (m *MemoryKV) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr[key] = err
}

// SetCalls returns how many times Set was called for key, failed calls included.
func (m *MemoryKV) SetCalls(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls[key]
}

// Keys lists the stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data))
}

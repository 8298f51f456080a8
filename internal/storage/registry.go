package storage

import (
	"slices"
	"sync"
	"time"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/validate"
)

// registryKind describes one reference collection to the generic registry.
type registryKind[T any, F any] struct {
	name     string // "colleague", used in logs
	key      string
	notFound error

	decode  func(data []byte, newID func() string) ([]T, bool, int, error)
	id      func(*T) string
	label   func(F) string
	clean   func(F) F
	build   func(id string, createdAt time.Time, f F) T
	apply   func(*T, F)
	matches func(*T, string) bool
}

// registry is the shared core of the colleague, worksite and project
// collections. Records are listed in insertion order.
type registry[T any, F any] struct {
	mu    sync.RWMutex
	kv    KV
	opts  storeOptions
	kind  registryKind[T, F]
	items []T

	// loadErr is set when undecodable stored data could not be preserved.
	loadErr error
}

func newRegistry[T any, F any](kv KV, kind registryKind[T, F], opts []Option) *registry[T, F] {
	r := &registry[T, F]{kv: kv, opts: applyOptions(opts), kind: kind}
	r.Reload()
	return r
}

// Reload discards the in-memory collection and reads it again.
func (r *registry[T, F]) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = []T{}
	r.loadErr = nil
	data, found := readKey(r.kv, r.kind.key)
	if !found {
		return
	}

	items, changed, skipped, err := r.kind.decode(data, r.opts.newID)
	if err != nil || skipped > 0 {
		if qerr := quarantine(r.kv, r.kind.key, data); qerr != nil {
			logging.Error("stored records could not be preserved, refusing writes",
				logging.KeyKey, r.kind.key, logging.KeyError, qerr)
			r.loadErr = qerr
		}
	}
	if err != nil {
		logging.Warn("stored records are malformed, starting empty",
			logging.KeyKey, r.kind.key, logging.KeyError, err)
		return
	}
	r.items = items

	if changed && r.loadErr == nil {
		if err := writeJSON(r.kv, r.kind.key, items); err != nil {
			logging.Warn("failed to persist migrated records",
				logging.KeyKey, r.kind.key, logging.KeyError, err)
		}
	}
}

func (r *registry[T, F]) check(f F) (F, error) {
	if r.kind.clean != nil {
		f = r.kind.clean(f)
	}
	if err := validate.Name(r.kind.label(f)); err != nil {
		return f, err
	}
	return f, validate.Struct(f)
}

func (r *registry[T, F]) commitLocked(op string, next []T) error {
	if r.loadErr != nil {
		return errors.NewSystemErrorWithOp(op+" "+r.kind.name, "stored records are unreadable", errors.ErrDatabaseCorrupted)
	}
	if err := writeJSON(r.kv, r.kind.key, next); err != nil {
		logging.Error("failed to persist records",
			logging.KeyOperation, op, logging.KeyKind, r.kind.name, logging.KeyError, err)
		return err
	}
	r.items = next
	return nil
}

func (r *registry[T, F]) indexLocked(id string) int {
	return slices.IndexFunc(r.items, func(item T) bool {
		return r.kind.id(&item) == id
	})
}

// Create validates f and appends a new record. A blank name is rejected and
// nothing is stored.
func (r *registry[T, F]) Create(f F) (*T, error) {
	f, err := r.check(f)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.kind.build(r.opts.newID(), r.opts.now(), f)
	next := append(slices.Clone(r.items), item)
	if err := r.commitLocked("create", next); err != nil {
		return nil, err
	}

	logging.LogOperation("create", logging.KeyKind, r.kind.name, logging.KeyRecordID, r.kind.id(&item))
	return &item, nil
}

// Update replaces the editable fields of the record with the given id.
func (r *registry[T, F]) Update(id string, f F) (*T, error) {
	f, err := r.check(f)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, errors.NotFound(r.kind.notFound, id)
	}

	next := slices.Clone(r.items)
	r.kind.apply(&next[idx], f)
	if err := r.commitLocked("update", next); err != nil {
		return nil, err
	}

	logging.LogOperation("update", logging.KeyKind, r.kind.name, logging.KeyRecordID, id)
	item := next[idx]
	return &item, nil
}

// Delete removes the record with the given id.
func (r *registry[T, F]) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return errors.NotFound(r.kind.notFound, id)
	}

	next := slices.Delete(slices.Clone(r.items), idx, idx+1)
	if err := r.commitLocked("delete", next); err != nil {
		return err
	}

	logging.LogOperation("delete", logging.KeyKind, r.kind.name, logging.KeyRecordID, id)
	return nil
}

// Get returns a copy of the record with the given id.
func (r *registry[T, F]) Get(id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, errors.NotFound(r.kind.notFound, id)
	}
	item := r.items[idx]
	return &item, nil
}

// List returns copies of the records matching search in insertion order.
// A blank search returns every record.
func (r *registry[T, F]) List(search string) []*T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*T, 0, len(r.items))
	for i := range r.items {
		if !r.kind.matches(&r.items[i], search) {
			continue
		}
		item := r.items[i]
		out = append(out, &item)
	}
	return out
}

// Count returns the number of records.
func (r *registry[T, F]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

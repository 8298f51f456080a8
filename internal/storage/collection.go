package storage

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
)

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	now   func() time.Time
	newID func() string
}

func defaultStoreOptions() storeOptions {
	return storeOptions{
		now:   time.Now,
		newID: NewID,
	}
}

func applyOptions(opts []Option) storeOptions {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

// WithIDGenerator sets the source of record ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *storeOptions) { o.newID = newID }
}

// NewID returns a time-ordered UUID v7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// readKey fetches key. found is false when the key is absent or unreadable;
// unreadable keys are logged.
func readKey(kv KV, key string) (data []byte, found bool) {
	data, err := kv.Get(key)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("failed to read key, using empty state",
				logging.KeyKey, key, logging.KeyError, err)
		}
		return nil, false
	}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, false
	}
	return data, true
}

// writeJSON marshals v and stores it under key in a single Set.
func writeJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewSystemErrorWithOp("save "+key, "failed to encode data", err)
	}
	if err := kv.Set(key, data); err != nil {
		if errors.IsSystemError(err) {
			return err
		}
		return errors.NewSystemErrorWithOp("save "+key, "failed to write data", err)
	}
	return nil
}

// QuarantineKey names the side key that keeps the raw bytes of a collection
// that could not be fully decoded.
func QuarantineKey(key string) string { return key + ".corrupt" }

// quarantine copies data to the side key of key, so a later commit of the
// decodable records cannot destroy the rest.
func quarantine(kv KV, key string, data []byte) error {
	side := QuarantineKey(key)
	if err := kv.Set(side, data); err != nil {
		return errors.NewSystemErrorWithOp("quarantine "+key, "failed to preserve unreadable data", err)
	}
	logging.Warn("preserved unreadable stored data", logging.KeyKey, side)
	return nil
}

// decodeRecords decodes a JSON array one element at a time. Elements that do
// not decode into S are logged and counted in skipped. err is set only when
// data is not an array.
func decodeRecords[S any](key string, data []byte) (records []S, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	records = make([]S, 0, len(raw))
	for i, msg := range raw {
		var s S
		if err := json.Unmarshal(msg, &s); err != nil {
			logging.Warn("skipping malformed stored record",
				logging.KeyKey, key, logging.KeyIndex, i, logging.KeyError, err)
			skipped++
			continue
		}
		records = append(records, s)
	}
	return records, skipped, nil
}

// flexibleID accepts string ids and the numeric millisecond ids of older
// data files.
type flexibleID struct {
	value      string
	fromNumber bool
}

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.value)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.value = n.String()
	f.fromNumber = true
	return nil
}

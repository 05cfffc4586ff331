// Package kv defines the synchronous string key-value medium the catalog
// persists into, and the backends that implement it.
package kv

import "errors"

// ErrQuotaExceeded is returned by backends that enforce a size limit.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// Backend is a synchronous string-keyed, string-valued store.
// Get reports ok=false for an absent key.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Entry is a single key/value pair written as part of a batch.
type Entry struct {
	Key   string
	Value string
}

// Batcher is implemented by backends that can write several keys in one
// transaction: either every entry lands or none does.
type Batcher interface {
	SetMany(entries []Entry) error
}

// WriteAll writes entries atomically when b supports it, otherwise one by
// one in order. In the sequential case the first failure stops the write and
// the remaining keys keep their previous values.
func WriteAll(b Backend, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if batcher, ok := b.(Batcher); ok {
		return batcher.SetMany(entries)
	}
	for _, e := range entries {
		if err := b.Set(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

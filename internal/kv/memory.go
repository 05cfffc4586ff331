package kv

import (
	"fmt"
	"sync"
)

// Memory is an in-process backend. It is the default for tests and for
// ephemeral sessions (STORAGE_BACKEND=memory).
//
// Quota mimics a browser storage limit: a write that would push the total
// size of all values over Quota bytes fails with ErrQuotaExceeded.
type Memory struct {
	mu        sync.RWMutex
	data      map[string]string
	quota     int
	failWrite error
	failRead  map[string]error
	writes    int
}

// NewMemory creates an empty in-memory backend with no quota.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// SetQuota limits the total bytes of stored values. Zero disables the limit.
func (m *Memory) SetQuota(bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = bytes
}

// FailWrites makes every subsequent write return err. Pass nil to recover.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

// FailReads makes Get for key return err. Pass nil to recover.
func (m *Memory) FailReads(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failRead, key)
		return
	}
	if m.failRead == nil {
		m.failRead = make(map[string]error)
	}
	m.failRead[key] = err
}

// Writes returns the number of successful Set/SetMany calls.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Get implements Backend.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.failRead[key]; err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Backend.
func (m *Memory) Set(key, value string) error {
	return m.SetMany([]Entry{{Key: key, Value: value}})
}

// SetMany implements Batcher.
func (m *Memory) SetMany(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite != nil {
		return m.failWrite
	}

	if m.quota > 0 {
		size := 0
		pending := make(map[string]string, len(entries))
		for _, e := range entries {
			pending[e.Key] = e.Value
		}
		for k, v := range m.data {
			if _, replaced := pending[k]; !replaced {
				size += len(v)
			}
		}
		for _, v := range pending {
			size += len(v)
		}
		if size > m.quota {
			return fmt.Errorf("%w: %d > %d bytes", ErrQuotaExceeded, size, m.quota)
		}
	}

	for _, e := range entries {
		m.data[e.Key] = e.Value
	}
	m.writes++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Get when nothing is stored under a key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a named key/value handle holding one serialized blob per key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// MemorySlot keeps blobs in process memory. The zero value is ready to use.
type MemorySlot struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{items: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), data...), nil
}

// Put replaces the blob stored under key.
func (m *MemorySlot) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string][]byte)
	}
	m.items[key] = append([]byte(nil), data...)
	return nil
}

// Package storagetest provides an in-memory image host for tests.
package storagetest

import (
	"context"
	"io"
	"sort"
	"sync"
)

// Memory keeps objects in a map. SaveErr and DeleteErr force failures.
type Memory struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	SaveErr   error
	DeleteErr error
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Save(_ context.Context, key string, file io.Reader, _ string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *Memory) URL(key string) string {
	return "https://cdn.test/" + key
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Keys lists stored objects in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Deleted lists every key passed to Delete, in call order.
func (m *Memory) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

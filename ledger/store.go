package ledger

import (
	"bytes"
	"sort"
	"sync"
)

// Store is the committed key-value backend of a ledger. Write must apply the
// whole batch or nothing.
type Store interface {
	Get(key []byte) ([]byte, error)
	Write(b *Batch) error
	Iterate(prefix []byte, fn func(key, value []byte) bool) error
	Close() error
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// Batch is an ordered list of puts and deletes.
type Batch struct {
	ops []batchOp
}

func (b *Batch) Put(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: key, value: value})
}

func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
}

func (b *Batch) Len() int { return len(b.ops) }

// MemoryStore keeps everything in a map, used by tests and throwaway cli runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

// Get returns nil, nil for missing keys.
func (m *MemoryStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Write(b *Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range b.ops {
		if op.delete {
			delete(m.data, string(op.key))
			continue
		}
		m.data[string(op.key)] = append([]byte(nil), op.value...)
	}
	return nil
}

// Iterate walks keys under prefix in byte order.
func (m *MemoryStore) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	m.mu.RLock()
	keys := make([]string, 0)
	for k := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	snapshot := make([][2][]byte, 0, len(keys))
	for _, k := range keys {
		snapshot = append(snapshot, [2][]byte{[]byte(k), append([]byte(nil), m.data[k]...)})
	}
	m.mu.RUnlock()

	for _, kv := range snapshot {
		if !fn(kv[0], kv[1]) {
			break
		}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

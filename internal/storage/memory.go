package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// MemoryRepository is an in-memory ContentRepository for tests and for hosts
// that assemble content programmatically.
type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]map[string][]byte
}

var _ interfaces.ContentRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		files: make(map[string]map[string][]byte),
	}
}

// Put stores source under kind/fileName, replacing any previous value.
func (m *MemoryRepository) Put(kind, fileName string, source []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	collection, ok := m.files[kind]
	if !ok {
		collection = make(map[string][]byte)
		m.files[kind] = collection
	}
	collection[fileName] = append([]byte(nil), source...)
}

// Delete removes kind/fileName when present.
func (m *MemoryRepository) Delete(kind, fileName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if collection, ok := m.files[kind]; ok {
		delete(collection, fileName)
	}
}

// List implements interfaces.ContentRepository.
func (m *MemoryRepository) List(ctx context.Context, kind string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := []string{}
	for name := range m.files[kind] {
		if MatchDocument(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read implements interfaces.ContentRepository.
func (m *MemoryRepository) Read(ctx context.Context, kind, slug string) (*RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validSegment(kind) || !validSegment(slug) {
		return nil, NotFound(kind, slug)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	collection := m.files[kind]
	for _, ext := range Extensions {
		name := slug + ext
		if source, ok := collection[name]; ok {
			return &RawDocument{
				Kind:     kind,
				Slug:     slug,
				FileName: name,
				Source:   append([]byte(nil), source...),
			}, nil
		}
	}
	return nil, NotFound(kind, slug)
}

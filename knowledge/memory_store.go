package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is a process-local Store using brute-force cosine similarity.
// Suitable for tests and small offline demos.
//
// Concurrency: protected by RWMutex.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	dimension int
	docs      map[string]Document
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// Recreate implements Store.
func (m *MemoryStore) Recreate(_ context.Context, collection string, dimension int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = &memoryCollection{dimension: dimension, docs: make(map[string]Document)}
	return nil
}

// Upsert implements Store.
func (m *MemoryStore) Upsert(_ context.Context, collection string, docs []Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return fmt.Errorf("collection %q not found", collection)
	}

	for _, d := range docs {
		if len(d.Vector) != c.dimension {
			return fmt.Errorf("document %s: expected dimension %d, got %d", d.ID, c.dimension, len(d.Vector))
		}
	}
	for _, d := range docs {
		c.docs[d.ID] = d
	}

	return nil
}

// Search implements Store. Ties are broken by title for a stable order.
func (m *MemoryStore) Search(_ context.Context, collection string, vector []float32, limit int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", collection)
	}

	matches := make([]Match, 0, len(c.docs))
	for _, d := range c.docs {
		matches = append(matches, Match{Article: d.Article, Score: cosine(vector, d.Vector)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Title < matches[j].Title
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// Len returns the number of documents in collection.
func (m *MemoryStore) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.collections[collection]; ok {
		return len(c.docs)
	}
	return 0
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

var _ Store = (*MemoryStore)(nil)

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store used by tests and local runs. It
// honors the same query semantics as the remote store: conjunctive
// filters, single-field ordering with inclusive bounds, and a result
// limit.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound{Collection: collection, ID: id}
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	s.collections[collection][id] = copyDocument(doc)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, q Query) ([]Document, error) {
	matched := s.match(q)

	if q.OrderField != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i][q.OrderField], matched[j][q.OrderField])
			if q.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if q.LimitCount > 0 && len(matched) > q.LimitCount {
		matched = matched[:q.LimitCount]
	}

	return matched, nil
}

func (s *MemoryStore) Count(ctx context.Context, q Query) (int, error) {
	return len(s.match(q)), nil
}

func (s *MemoryStore) match(q Query) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Document
	for _, doc := range s.collections[q.Collection] {
		if matchesQuery(doc, q) {
			matched = append(matched, copyDocument(doc))
		}
	}
	return matched
}

func matchesQuery(doc Document, q Query) bool {
	for _, f := range q.Filters {
		if !matchesFilter(doc, f) {
			return false
		}
	}

	if q.OrderField != "" {
		v, ok := doc[q.OrderField]
		if q.StartValue != nil && (!ok || compareValues(v, q.StartValue) < 0) {
			return false
		}
		if q.EndValue != nil && (!ok || compareValues(v, q.EndValue) > 0) {
			return false
		}
	}

	return true
}

func matchesFilter(doc Document, f Filter) bool {
	v, ok := doc[f.Field]
	if !ok {
		return false
	}

	switch f.Op {
	case OpEqual:
		return compareValues(v, f.Value) == 0
	case OpIn:
		values, ok := f.Value.([]interface{})
		if !ok {
			return false
		}
		for _, candidate := range values {
			if compareValues(v, candidate) == 0 {
				return true
			}
		}
		return false
	case OpGreaterThanOrEqual:
		return compareValues(v, f.Value) >= 0
	case OpLessThanOrEqual:
		return compareValues(v, f.Value) <= 0
	}
	return false
}

// compareValues orders the value types documents actually carry:
// strings, numbers, booleans and timestamps. Mismatched or unknown
// types compare as unequal but stable.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	default:
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if aok && bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	return -1
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case map[string]interface{}:
			out[k] = copyDocument(val)
		case []interface{}:
			items := make([]interface{}, len(val))
			copy(items, val)
			out[k] = items
		default:
			out[k] = v
		}
	}
	return out
}

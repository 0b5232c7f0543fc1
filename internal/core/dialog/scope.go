package dialog

import (
	"maps"
	"sync"
)

// Scope is an isolated data context handed to a window template. Lookups
// fall back to the parent scope; writes never touch the parent.
type Scope struct {
	mu     sync.RWMutex
	parent *Scope
	values map[string]any
}

// NewScope returns an empty root scope.
func NewScope() *Scope {
	return &Scope{values: map[string]any{}}
}

// NewChild creates a scope that inherits lookups from s.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, values: map[string]any{}}
}

// Merge copies the top-level keys of data into s. The data map itself is
// not retained.
func (s *Scope) Merge(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.values, data)
}

// Set stores a single value on s.
func (s *Scope) Set(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
}

// Get looks up key on s, then on its ancestors.
func (s *Scope) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.values[key]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Parent returns the scope s was created from, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Values flattens s and its ancestors into a new map. Keys on s shadow
// keys of the same name on ancestors.
func (s *Scope) Values() map[string]any {
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	out := map[string]any{}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].mu.RLock()
		maps.Copy(out, chain[i].values)
		chain[i].mu.RUnlock()
	}
	return out
}

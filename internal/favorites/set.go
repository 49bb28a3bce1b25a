// Package favorites keeps each customer's client-visible list of favorite
// hotels in step with the backend.
package favorites

// Set is an insertion-ordered set of hotel ids.  Add and Remove are
// idempotent.
type Set struct {
	ids   []string
	index map[string]int
}

// NewSet builds a set from ids, dropping duplicates and empty ids.
func NewSet(ids ...string) *Set {
	s := &Set{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether the set changed.
func (s *Set) Add(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id and reports whether the set changed.
func (s *Set) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

func (s *Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int { return len(s.ids) }

// IDs returns a copy of the ids in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

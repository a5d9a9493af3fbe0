package interactions

// appliedSet remembers the most recent event ids applied to a projection so
// replays after a transport reconnect are suppressed. Bounded: the oldest ids
// are evicted once the limit is reached, which is enough because replays only
// cover the reconnect window.
type appliedSet struct {
	ids   map[string]struct{}
	order []string
	limit int
}

func newAppliedSet(limit int) *appliedSet {
	return &appliedSet{
		ids:   make(map[string]struct{}),
		limit: limit,
	}
}

// Add records the id and reports whether it was new.
func (s *appliedSet) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	if len(s.order) >= s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.ids, oldest)
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

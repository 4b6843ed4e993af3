package senam

import "github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"

// SelectionSet keeps full record snapshots keyed by id. It is independent of
// the filtered view: filtering never adds or removes members.
type SelectionSet struct {
	items map[string]senam.EmployeeRecord
	order []string
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{items: make(map[string]senam.EmployeeRecord)}
}

// Toggle flips membership of r and reports whether it is now selected.
func (s *SelectionSet) Toggle(r senam.EmployeeRecord) bool {
	if s.Has(r.ID) {
		s.remove(r.ID)
		return false
	}
	s.add(r)
	return true
}

// Set forces membership of r.
func (s *SelectionSet) Set(r senam.EmployeeRecord, selected bool) {
	if selected {
		s.add(r)
		return
	}
	s.remove(r.ID)
}

// SetAll applies one checkbox state to every row in rows.
func (s *SelectionSet) SetAll(rows []senam.EmployeeRecord, selected bool) {
	for _, r := range rows {
		s.Set(r, selected)
	}
}

func (s *SelectionSet) Clear() {
	s.items = make(map[string]senam.EmployeeRecord)
	s.order = nil
}

func (s *SelectionSet) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.items)
}

// IDs returns member ids in insertion order.
func (s *SelectionSet) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Records returns the retained snapshots in insertion order.
func (s *SelectionSet) Records() []senam.EmployeeRecord {
	records := make([]senam.EmployeeRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.items[id])
	}
	return records
}

// SelectAllState derives the tri-state header checkbox for the visible rows.
func (s *SelectionSet) SelectAllState(rows []senam.EmployeeRecord) senam.SelectAllState {
	selected := 0
	for _, r := range rows {
		if s.Has(r.ID) {
			selected++
		}
	}
	switch {
	case len(rows) == 0 || selected == 0:
		return senam.SelectAllUnchecked
	case selected == len(rows):
		return senam.SelectAllChecked
	default:
		return senam.SelectAllIndeterminate
	}
}

func (s *SelectionSet) add(r senam.EmployeeRecord) {
	if _, ok := s.items[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.items[r.ID] = r
}

func (s *SelectionSet) remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

package reconcile

import (
	"encoding/json"
	"sort"
)

// SelectionSet holds the ids of the accounts chosen for import.
type SelectionSet map[string]struct{}

func NewSelectionSet(ids ...string) SelectionSet {
	s := make(SelectionSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SelectionSet) Add(id string) {
	s[id] = struct{}{}
}

func (s SelectionSet) Remove(id string) {
	delete(s, id)
}

func (s SelectionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SelectionSet) Len() int {
	return len(s)
}

// IDs returns the members in ascending order.
func (s SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s SelectionSet) Clone() SelectionSet {
	c := make(SelectionSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

func (s SelectionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *SelectionSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelectionSet(ids...)
	return nil
}

// DefaultSelection selects every item that can be imported.
func DefaultSelection(items []Item) SelectionSet {
	s := NewSelectionSet()
	for _, item := range items {
		if item.Mode.Importable() {
			s.Add(item.Account.ID)
		}
	}
	return s
}

// ToggleSelection returns a copy of selection with accountID added or removed.
func ToggleSelection(selection SelectionSet, accountID string, included bool) SelectionSet {
	next := selection.Clone()
	if included {
		next.Add(accountID)
	} else {
		next.Remove(accountID)
	}
	return next
}

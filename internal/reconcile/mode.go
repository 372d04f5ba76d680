package reconcile

import (
	"fmt"

	"wallet-import/internal/models"
)

// Mode is the outcome of reconciling one descriptor against local accounts.
type Mode string

const (
	// ModeCreate: the account is new and will be added.
	ModeCreate Mode = "create"
	// ModePatch: the account exists under another name and will be renamed.
	ModePatch Mode = "patch"
	// ModeID: the account exists and nothing changes.
	ModeID Mode = "id"
	// ModeUnsupported: the account cannot be added on this install.
	ModeUnsupported Mode = "unsupported"
)

var modeRank = map[Mode]int{
	ModeCreate:      1,
	ModePatch:       2,
	ModeID:          3,
	ModeUnsupported: 4,
}

// Modes lists every mode in display order.
var Modes = []Mode{ModeCreate, ModePatch, ModeID, ModeUnsupported}

// Rank orders modes for display. Unknown modes sort last.
func (m Mode) Rank() int {
	if r, ok := modeRank[m]; ok {
		return r
	}
	return len(modeRank) + 1
}

// Importable reports whether items of this mode may be selected.
func (m Mode) Importable() bool {
	return m == ModeCreate || m == ModePatch
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode := Mode(text)
	if _, ok := modeRank[mode]; !ok {
		return fmt.Errorf("unknown reconcile mode %q", text)
	}
	*m = mode
	return nil
}

// Item pairs an account with how it reconciled.
type Item struct {
	Account models.Account `json:"account"`
	Mode    Mode           `json:"mode"`
}

// SkippedDescriptor records a descriptor that could not be turned into an
// account.
type SkippedDescriptor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Section groups items of the same mode.
type Section struct {
	Mode  Mode   `json:"mode"`
	Items []Item `json:"items"`
}

// Sections groups items by mode, in rank order, omitting empty groups.
func Sections(items []Item) []Section {
	grouped := make(map[Mode][]Item)
	for _, item := range items {
		grouped[item.Mode] = append(grouped[item.Mode], item)
	}

	sections := make([]Section, 0, len(grouped))
	for _, mode := range Modes {
		if list, ok := grouped[mode]; ok {
			sections = append(sections, Section{Mode: mode, Items: list})
		}
	}
	return sections
}

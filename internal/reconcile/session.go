package reconcile

import (
	"time"

	"wallet-import/internal/models"
)

type SessionStatus string

const (
	StatusReviewing SessionStatus = "reviewing"
	StatusCompleted SessionStatus = "completed"
	StatusCanceled  SessionStatus = "canceled"
)

// Session is the state of one user reviewing one import result.
//
// Memo keeps every item classified so far, keyed by account id, so that a
// later change in the local accounts does not reclassify what the user is
// already looking at.
type Session struct {
	Code           string              `json:"code"`
	UserID         int                 `json:"user_id"`
	Status         SessionStatus       `json:"status"`
	Result         models.ImportResult `json:"result"`
	Items          []Item              `json:"items"`
	Memo           map[string]Item     `json:"memo"`
	Selection      SelectionSet        `json:"selection"`
	Seeded         bool                `json:"seeded"`
	ImportSettings bool                `json:"import_settings"`
	Skipped        []SkippedDescriptor `json:"skipped"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func NewSession(code string, userID int, result models.ImportResult) *Session {
	now := time.Now()
	return &Session{
		Code:           code,
		UserID:         userID,
		Status:         StatusReviewing,
		Result:         result,
		Memo:           make(map[string]Item),
		Selection:      NewSelectionSet(),
		ImportSettings: result.Settings != nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Recompute rebuilds the item list against a fresh accounts snapshot. The
// selection is seeded with every importable item the first time the list is
// non-empty and left alone afterwards.
func (s *Session) Recompute(r *Reconciler, existing map[string]models.Account) {
	if s.Memo == nil {
		s.Memo = make(map[string]Item)
	}
	if s.Selection == nil {
		s.Selection = NewSelectionSet()
	}

	items, skipped := r.BuildReconciledList(s.Result.Accounts, existing, s.Memo)
	for _, item := range items {
		s.Memo[item.Account.ID] = item
	}
	s.Items = items
	s.Skipped = skipped

	if !s.Seeded && len(items) > 0 {
		s.Selection = DefaultSelection(items)
		s.Seeded = true
	}
	s.UpdatedAt = time.Now()
}

// Toggle includes or excludes one account. Only create and patch items can
// be included; excluding an id that is not selected is a no-op.
func (s *Session) Toggle(accountID string, included bool) error {
	if s.Status != StatusReviewing {
		return ErrSessionClosed
	}
	item, ok := s.Memo[accountID]
	if !ok {
		return ErrUnknownAccount
	}
	if included && !item.Mode.Importable() {
		return ErrNotImportable
	}
	s.Selection = ToggleSelection(s.Selection, accountID, included)
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Session) SetImportSettings(enabled bool) error {
	if s.Status != StatusReviewing {
		return ErrSessionClosed
	}
	s.ImportSettings = enabled
	s.UpdatedAt = time.Now()
	return nil
}

// Operations returns what committing the session would do right now.
func (s *Session) Operations() []Operation {
	return CommitImport(s.Items, s.Selection, s.ImportSettings, s.Result.Settings)
}

// Empty reports whether there is nothing to review.
func (s *Session) Empty() bool {
	return len(s.Items) == 0
}

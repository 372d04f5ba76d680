package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAccountsImported = "accounts:imported"

// AccountsImportedPayload describes a committed import review.
type AccountsImportedPayload struct {
	SessionCode      string   `json:"session_code"`
	UserID           int      `json:"user_id"`
	Created          []string `json:"created"`
	Patched          []string `json:"patched"`
	SettingsImported bool     `json:"settings_imported"`
}

func NewAccountsImportedTask(payload AccountsImportedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeAccountsImported, data, asynq.MaxRetry(3)), nil
}

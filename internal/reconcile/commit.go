package reconcile

import (
	"context"
	"fmt"

	"wallet-import/internal/models"
)

type OperationKind string

const (
	OpAddAccount     OperationKind = "add_account"
	OpUpdateAccount  OperationKind = "update_account"
	OpImportSettings OperationKind = "import_settings"
)

// Operation is one store mutation produced by a commit.
type Operation struct {
	Kind     OperationKind           `json:"kind"`
	Account  *models.Account         `json:"account,omitempty"`
	Patch    *models.AccountPatch    `json:"patch,omitempty"`
	Settings *models.DesktopSettings `json:"settings,omitempty"`
}

// Store is the local state the operations are applied to.
type Store interface {
	AddAccount(ctx context.Context, account models.Account) error
	UpdateAccount(ctx context.Context, patch models.AccountPatch) error
	ImportSettings(ctx context.Context, settings models.DesktopSettings) error
}

// CommitImport turns the selected items into operations, in list order, with
// the settings import last. Selected items whose mode is not importable emit
// nothing. No settings operation is emitted without a settings payload.
func CommitImport(items []Item, selection SelectionSet, importSettings bool, settings *models.DesktopSettings) []Operation {
	var ops []Operation
	for _, item := range items {
		if !selection.Contains(item.Account.ID) {
			continue
		}
		switch item.Mode {
		case ModeCreate:
			account := item.Account
			ops = append(ops, Operation{Kind: OpAddAccount, Account: &account})
		case ModePatch:
			ops = append(ops, Operation{
				Kind:  OpUpdateAccount,
				Patch: &models.AccountPatch{ID: item.Account.ID, Name: item.Account.Name},
			})
		}
	}

	if importSettings && settings != nil {
		s := *settings
		ops = append(ops, Operation{Kind: OpImportSettings, Settings: &s})
	}
	return ops
}

// Apply runs the operations one after another, stopping at the first failure.
func Apply(ctx context.Context, store Store, ops []Operation) error {
	for i, op := range ops {
		var err error
		switch op.Kind {
		case OpAddAccount:
			err = store.AddAccount(ctx, *op.Account)
		case OpUpdateAccount:
			err = store.UpdateAccount(ctx, *op.Patch)
		case OpImportSettings:
			err = store.ImportSettings(ctx, *op.Settings)
		default:
			err = fmt.Errorf("unknown operation %q", op.Kind)
		}
		if err != nil {
			return fmt.Errorf("failed to apply operation %d (%s): %w", i, op.Kind, err)
		}
	}
	return nil
}

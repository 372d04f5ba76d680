package repository

import (
	"context"
	"fmt"

	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"

	"github.com/jmoiron/sqlx"
)

// ImportStore applies committed import operations inside one transaction.
type ImportStore struct {
	db *sqlx.DB
}

func NewImportStore(db *sqlx.DB) *ImportStore {
	return &ImportStore{db: db}
}

type txStore struct {
	accounts *AccountRepository
	settings *SettingsRepository
}

func (s txStore) AddAccount(ctx context.Context, account models.Account) error {
	return s.accounts.AddAccount(ctx, account)
}

func (s txStore) UpdateAccount(ctx context.Context, patch models.AccountPatch) error {
	return s.accounts.UpdateAccount(ctx, patch)
}

func (s txStore) ImportSettings(ctx context.Context, settings models.DesktopSettings) error {
	return s.settings.ImportSettings(ctx, settings)
}

// Apply runs ops in order and commits only if all of them succeed.
func (s *ImportStore) Apply(ctx context.Context, ops []reconcile.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	store := txStore{
		accounts: &AccountRepository{db: tx},
		settings: &SettingsRepository{db: tx},
	}
	if err := reconcile.Apply(ctx, store, ops); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallet-import/internal/models"

	"github.com/jmoiron/sqlx"
)

var ErrAccountNotFound = errors.New("account not found")

const accountColumns = `id,
	       name,
	       currency_id,
	       COALESCE(seed_identifier, '') as seed_identifier,
	       COALESCE(derivation_mode, '') as derivation_mode,
	       account_index,
	       COALESCE(fresh_address, '') as fresh_address,
	       COALESCE(fresh_address_path, '') as fresh_address_path,
	       balance,
	       block_height,
	       unit,
	       created_at,
	       updated_at`

// accountOrderColumns maps API ordering keys to SQL columns.
var accountOrderColumns = map[string]string{
	"name":       "name",
	"currency":   "currency_id",
	"created_at": "created_at",
}

type AccountRepository struct {
	db sqlx.ExtContext
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Snapshot returns every local account keyed by id.
func (r *AccountRepository) Snapshot(ctx context.Context) (map[string]models.Account, error) {
	accounts, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}
	return byID, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	query := fmt.Sprintf("SELECT %s FROM accounts ORDER BY currency_id, account_index", accountColumns)
	if err := sqlx.SelectContext(ctx, r.db, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) FindAll(ctx context.Context, limit, offset int, search, orderBy, orderDir string) ([]models.Account, int, error) {
	var accounts []models.Account
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE name LIKE ? OR currency_id LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM accounts %s", whereClause)
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	column, ok := accountOrderColumns[orderBy]
	if !ok {
		column = "name"
	}
	if orderDir != "desc" {
		orderDir = "asc"
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts %s ORDER BY %s %s LIMIT ? OFFSET ?`,
		accountColumns, whereClause, column, orderDir)
	args = append(args, limit, offset)
	if err := sqlx.SelectContext(ctx, r.db, &accounts, query, args...); err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = ? LIMIT 1", accountColumns)
	err := sqlx.GetContext(ctx, r.db, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) AddAccount(ctx context.Context, account models.Account) error {
	query := `INSERT INTO accounts (id, name, currency_id, seed_identifier, derivation_mode, account_index,
	          fresh_address, fresh_address_path, balance, block_height, unit)
	          VALUES (:id, :name, :currency_id, :seed_identifier, :derivation_mode, :account_index,
	          :fresh_address, :fresh_address_path, :balance, :block_height, :unit)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, account)
	return err
}

// UpdateAccount renames an account. Other fields are never touched.
func (r *AccountRepository) UpdateAccount(ctx context.Context, patch models.AccountPatch) error {
	query := "UPDATE accounts SET name = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, patch.Name, patch.ID)
	return err
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a wallet account known to this install. Only Name may change
// once the account exists.
type Account struct {
	ID               string          `db:"id" json:"id"`
	Name             string          `db:"name" json:"name"`
	CurrencyID       string          `db:"currency_id" json:"currency_id"`
	SeedIdentifier   string          `db:"seed_identifier" json:"seed_identifier"`
	DerivationMode   string          `db:"derivation_mode" json:"derivation_mode"`
	Index            int             `db:"account_index" json:"index"`
	FreshAddress     string          `db:"fresh_address" json:"fresh_address"`
	FreshAddressPath string          `db:"fresh_address_path" json:"fresh_address_path"`
	Balance          decimal.Decimal `db:"balance" json:"balance"`
	BlockHeight      int64           `db:"block_height" json:"block_height"`
	Unit             string          `db:"unit" json:"unit"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// AccountPatch carries the fields an import is allowed to change on an
// existing account.
type AccountPatch struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

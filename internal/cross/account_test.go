package cross

import (
	"testing"

	"wallet-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDataToAccount(t *testing.T) {
	acc, err := AccountDataToAccount(models.AccountData{
		ID:               "libcore:1:bitcoin:xpub6:",
		Name:             "Savings",
		CurrencyID:       "bitcoin",
		DerivationMode:   "segwit",
		Index:            2,
		FreshAddress:     "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy",
		FreshAddressPath: "49'/0'/2'/0/0",
		Balance:          "150000",
		BlockHeight:      600000,
	})
	require.NoError(t, err)

	assert.Equal(t, "libcore:1:bitcoin:xpub6:", acc.ID)
	assert.Equal(t, "Savings", acc.Name)
	assert.Equal(t, "BTC", acc.Unit)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, int64(600000), acc.BlockHeight)
}

func TestAccountDataToAccount_DefaultName(t *testing.T) {
	acc, err := AccountDataToAccount(models.AccountData{ID: "eth-0", CurrencyID: "ethereum"})
	require.NoError(t, err)

	assert.Equal(t, "Ethereum 1", acc.Name)
	assert.True(t, acc.Balance.IsZero())
}

func TestAccountDataToAccount_Errors(t *testing.T) {
	tests := []struct {
		name string
		data models.AccountData
		want error
	}{
		{"missing id", models.AccountData{CurrencyID: "bitcoin"}, ErrMissingID},
		{"unknown currency", models.AccountData{ID: "x", CurrencyID: "nocoin"}, ErrUnknownCurrency},
		{"negative index", models.AccountData{ID: "x", CurrencyID: "bitcoin", Index: -1}, ErrInvalidIndex},
		{"bad balance", models.AccountData{ID: "x", CurrencyID: "bitcoin", Balance: "12abc"}, ErrInvalidBalance},
		{"negative balance", models.AccountData{ID: "x", CurrencyID: "bitcoin", Balance: "-1"}, ErrInvalidBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AccountDataToAccount(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSupportsExistingAccount(t *testing.T) {
	defaults := NewSupport(nil)

	assert.True(t, defaults.SupportsExistingAccount(models.AccountData{CurrencyID: "bitcoin"}))
	assert.False(t, defaults.SupportsExistingAccount(models.AccountData{CurrencyID: "stellar"}))
	assert.False(t, defaults.SupportsExistingAccount(models.AccountData{CurrencyID: "nocoin"}))
	assert.False(t, defaults.SupportsExistingAccount(models.AccountData{CurrencyID: "bitcoin", DerivationMode: "segwit_on_legacy"}))

	restricted := NewSupport([]string{"stellar"})
	assert.True(t, restricted.SupportsExistingAccount(models.AccountData{CurrencyID: "stellar"}))
	assert.False(t, restricted.SupportsExistingAccount(models.AccountData{CurrencyID: "bitcoin"}))
}

func TestCurrenciesSorted(t *testing.T) {
	list := Currencies()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

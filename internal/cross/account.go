package cross

import (
	"errors"
	"fmt"
	"strings"

	"wallet-import/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingID       = errors.New("account id is required")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidIndex    = errors.New("account index must not be negative")
	ErrInvalidBalance  = errors.New("invalid balance")
)

// AccountDataToAccount builds a local account from an exported descriptor.
func AccountDataToAccount(data models.AccountData) (models.Account, error) {
	if strings.TrimSpace(data.ID) == "" {
		return models.Account{}, ErrMissingID
	}

	currency, ok := FindCurrency(data.CurrencyID)
	if !ok {
		return models.Account{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, data.CurrencyID)
	}

	if data.Index < 0 {
		return models.Account{}, fmt.Errorf("%w: %d", ErrInvalidIndex, data.Index)
	}

	balance := decimal.Zero
	if data.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(data.Balance)
		if err != nil {
			return models.Account{}, fmt.Errorf("%w %q: %v", ErrInvalidBalance, data.Balance, err)
		}
		if balance.IsNegative() {
			return models.Account{}, fmt.Errorf("%w %q: negative", ErrInvalidBalance, data.Balance)
		}
	}

	name := data.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", currency.Name, data.Index+1)
	}

	return models.Account{
		ID:               data.ID,
		Name:             name,
		CurrencyID:       currency.ID,
		SeedIdentifier:   data.SeedIdentifier,
		DerivationMode:   data.DerivationMode,
		Index:            data.Index,
		FreshAddress:     data.FreshAddress,
		FreshAddressPath: data.FreshAddressPath,
		Balance:          balance,
		BlockHeight:      data.BlockHeight,
		Unit:             currency.Unit,
	}, nil
}

// Support decides whether an exported account can be added on this install.
type Support struct {
	allowed map[string]bool
}

// NewSupport restricts support to the given currency ids. An empty list falls
// back to the registry's own supported flags.
func NewSupport(currencyIDs []string) *Support {
	s := &Support{}
	if len(currencyIDs) > 0 {
		s.allowed = make(map[string]bool, len(currencyIDs))
		for _, id := range currencyIDs {
			s.allowed[id] = true
		}
	}
	return s
}

func (s *Support) SupportsExistingAccount(data models.AccountData) bool {
	currency, ok := FindCurrency(data.CurrencyID)
	if !ok {
		return false
	}
	if unsupportedDerivationModes[data.DerivationMode] {
		return false
	}
	if s.allowed != nil {
		return s.allowed[currency.ID]
	}
	return currency.Supported
}

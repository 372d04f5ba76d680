package models

// AccountData describes one account as exported by another install.
type AccountData struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CurrencyID       string `json:"currencyId"`
	SeedIdentifier   string `json:"seedIdentifier"`
	DerivationMode   string `json:"derivationMode"`
	Index            int    `json:"index"`
	FreshAddress     string `json:"freshAddress"`
	FreshAddressPath string `json:"freshAddressPath"`
	Balance          string `json:"balance"`
	BlockHeight      int64  `json:"blockHeight,omitempty"`
}

type CurrencySettings struct {
	ConfirmationsNb int    `json:"confirmationsNb"`
	Exchange        string `json:"exchange,omitempty"`
}

// DesktopSettings is the settings payload attached to an import result.
type DesktopSettings struct {
	CounterValue         string                      `json:"counterValue,omitempty"`
	CounterValueExchange string                      `json:"counterValueExchange,omitempty"`
	DeveloperModeEnabled bool                        `json:"developerModeEnabled"`
	PairExchanges        map[string]string           `json:"pairExchanges,omitempty"`
	CurrenciesSettings   map[string]CurrencySettings `json:"currenciesSettings,omitempty"`
}

// ImportResult is the decoded export payload.
type ImportResult struct {
	Accounts []AccountData   `json:"accounts"`
	Settings *DesktopSettings `json:"settings,omitempty"`
}

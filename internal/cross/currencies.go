package cross

import "sort"

// Currency is a crypto currency this install knows how to describe.
type Currency struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	// Unit is the display unit code of the currency's main unit.
	Unit string `json:"unit"`
	// Supported reports whether accounts of this currency can be added here.
	Supported bool `json:"supported"`
}

var currencies = map[string]Currency{
	"bitcoin":          {ID: "bitcoin", Name: "Bitcoin", Ticker: "BTC", Unit: "BTC", Supported: true},
	"bitcoin_cash":     {ID: "bitcoin_cash", Name: "Bitcoin Cash", Ticker: "BCH", Unit: "BCH", Supported: true},
	"bitcoin_gold":     {ID: "bitcoin_gold", Name: "Bitcoin Gold", Ticker: "BTG", Unit: "BTG", Supported: true},
	"litecoin":         {ID: "litecoin", Name: "Litecoin", Ticker: "LTC", Unit: "LTC", Supported: true},
	"dogecoin":         {ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE", Unit: "DOGE", Supported: true},
	"dash":             {ID: "dash", Name: "Dash", Ticker: "DASH", Unit: "DASH", Supported: true},
	"zcash":            {ID: "zcash", Name: "Zcash", Ticker: "ZEC", Unit: "ZEC", Supported: true},
	"komodo":           {ID: "komodo", Name: "Komodo", Ticker: "KMD", Unit: "KMD", Supported: true},
	"digibyte":         {ID: "digibyte", Name: "DigiByte", Ticker: "DGB", Unit: "DGB", Supported: true},
	"qtum":             {ID: "qtum", Name: "Qtum", Ticker: "QTUM", Unit: "QTUM", Supported: true},
	"ethereum":         {ID: "ethereum", Name: "Ethereum", Ticker: "ETH", Unit: "ETH", Supported: true},
	"ethereum_classic": {ID: "ethereum_classic", Name: "Ethereum Classic", Ticker: "ETC", Unit: "ETC", Supported: true},
	"ripple":           {ID: "ripple", Name: "XRP", Ticker: "XRP", Unit: "XRP", Supported: true},
	"stellar":          {ID: "stellar", Name: "Stellar", Ticker: "XLM", Unit: "XLM"},
	"tezos":            {ID: "tezos", Name: "Tezos", Ticker: "XTZ", Unit: "XTZ"},
	"neo":              {ID: "neo", Name: "Neo", Ticker: "NEO", Unit: "NEO"},
}

// unsupportedDerivationModes lists derivation schemes accounts can be
// exported with but that this install cannot sync.
var unsupportedDerivationModes = map[string]bool{
	"segwit_on_legacy": true,
	"legacy_on_bch":    true,
	"vertcoin_legacy":  true,
}

// FindCurrency looks up a currency by id.
func FindCurrency(id string) (Currency, bool) {
	c, ok := currencies[id]
	return c, ok
}

// Currencies returns every known currency ordered by id.
func Currencies() []Currency {
	list := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"wallet-import/internal/models"
	"wallet-import/internal/service"
	"wallet-import/internal/utils"
)

// Writes a sample import result as xlsx and JSON so the review flow can be
// exercised by hand.
func main() {
	log := utils.GetLogger()

	outDir := flag.String("out", "./storage/samples", "output directory")
	flag.Parse()

	result := models.ImportResult{
		Accounts: []models.AccountData{
			{ID: "js:2:bitcoin:xpub6BosfCnifzxcFwrSzQiqu2DBVTshkCXacvNsWGYJVVhhawA7d4R5WSWGFNbi8Aw6ZRc1brxMyWMzG3DSSSSoekkudhUd9yLb6qx39T9nMdj:native_segwit",
				Name: "Bitcoin 1 (native segwit)", CurrencyID: "bitcoin", DerivationMode: "native_segwit", Index: 0,
				FreshAddress: "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", FreshAddressPath: "84'/0'/0'/0/0",
				SeedIdentifier: "0468d4e1", Balance: "150000", BlockHeight: 820000},
			{ID: "js:2:ethereum:0x71C7656EC7ab88b098defB751B7401B5f6d8976F:",
				Name: "Ethereum 1", CurrencyID: "ethereum", Index: 0,
				FreshAddress: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F", FreshAddressPath: "44'/60'/0'/0/0",
				SeedIdentifier: "0468d4e1", Balance: "2500000000000000000", BlockHeight: 19000000},
			{ID: "js:2:litecoin:Ltub2YRH5b3Bv6zSyyZ8HRJ1kyM4AWPfQWYBkBezQbSw5MLM7TKKQAaHwKjeQwvmRh8zXYsu9NKX6jmfKTKeh9AK7KQQUJoWBFAvQZmVWcHvm5V:segwit",
				Name: "", CurrencyID: "litecoin", DerivationMode: "segwit", Index: 1,
				FreshAddress: "MQMcJhpWHYVeQArcZR3sBgyPZxxRtnH441", FreshAddressPath: "49'/2'/1'/0/0",
				SeedIdentifier: "0468d4e1", Balance: "0"},
			{ID: "js:2:stellar:GAT4LBXYJGJJJRSNK74NPFLO55CDDXSYVMQODSEAAH3M6EY4S7LPH5GV:",
				Name: "Stellar 1", CurrencyID: "stellar", FreshAddress: "GAT4LBXYJGJJJRSNK74NPFLO55CDDXSYVMQODSEAAH3M6EY4S7LPH5GV",
				FreshAddressPath: "44'/148'/0'", Balance: "100000000"},
			{ID: "js:2:bitcoin:broken:legacy", Name: "Broken", CurrencyID: "bitcoin", Index: 0, Balance: "not-a-number"},
		},
		Settings: &models.DesktopSettings{
			CounterValue:         "USD",
			CounterValueExchange: "Kraken",
			PairExchanges:        map[string]string{"BTC/USD": "Kraken"},
			CurrenciesSettings:   map[string]models.CurrencySettings{"bitcoin": {ConfirmationsNb: 2}},
		},
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.WithError(err).Fatal("Failed to create output directory")
	}

	xlsxPath := filepath.Join(*outDir, "sample_import.xlsx")
	if err := service.NewExcelService().WriteImportResult(result, xlsxPath); err != nil {
		log.WithError(err).Fatal("Failed to write workbook")
	}

	jsonPath := filepath.Join(*outDir, "sample_import.json")
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("Failed to encode JSON")
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		log.WithError(err).Fatal("Failed to write JSON")
	}

	log.WithField("accounts", len(result.Accounts)).
		WithField("xlsx", xlsxPath).
		WithField("json", jsonPath).
		Info("Sample import written")
}

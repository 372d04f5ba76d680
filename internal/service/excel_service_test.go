package service

import (
	"path/filepath"
	"testing"
	"time"

	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelService_ImportResultRoundTrip(t *testing.T) {
	svc := NewExcelService()
	path := filepath.Join(t.TempDir(), "import.xlsx")

	in := models.ImportResult{
		Accounts: []models.AccountData{
			{ID: "btc-1", Name: "Savings", CurrencyID: "bitcoin", DerivationMode: "segwit", Index: 2,
				FreshAddress: "bc1q", FreshAddressPath: "84'/0'/2'/0/0", SeedIdentifier: "xpub", Balance: "150000", BlockHeight: 800000},
			{ID: "eth-1", Name: "", CurrencyID: "ethereum"},
		},
		Settings: &models.DesktopSettings{CounterValue: "EUR", CounterValueExchange: "Kraken", DeveloperModeEnabled: true},
	}
	require.NoError(t, svc.WriteImportResult(in, path))

	out, err := svc.ParseImportResult(path)
	require.NoError(t, err)
	require.Len(t, out.Accounts, 2)
	assert.Equal(t, in.Accounts[0], out.Accounts[0])
	assert.Equal(t, "eth-1", out.Accounts[1].ID)
	assert.Equal(t, "", out.Accounts[1].Name)

	require.NotNil(t, out.Settings)
	assert.Equal(t, "EUR", out.Settings.CounterValue)
	assert.Equal(t, "Kraken", out.Settings.CounterValueExchange)
	assert.True(t, out.Settings.DeveloperModeEnabled)
}

func TestExcelService_ParseWithoutSettingsSheet(t *testing.T) {
	svc := NewExcelService()
	path := filepath.Join(t.TempDir(), "import.xlsx")

	require.NoError(t, svc.WriteImportResult(models.ImportResult{
		Accounts: []models.AccountData{{ID: "a", Name: "A", CurrencyID: "bitcoin"}},
	}, path))

	out, err := svc.ParseImportResult(path)
	require.NoError(t, err)
	assert.Nil(t, out.Settings)
	assert.Len(t, out.Accounts, 1)
}

func TestExcelService_ParseBadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	f := excelize.NewFile()
	writeRow(f, "Sheet1", 1, []interface{}{"ID", "Name", "Currency", "Derivation Mode", "Index"})
	writeRow(f, "Sheet1", 2, []interface{}{"a", "A", "bitcoin", "", "first"})
	writeRow(f, "Sheet1", 3, []interface{}{"", "", "", "", ""})
	writeRow(f, "Sheet1", 4, []interface{}{"b", "B", "bitcoin", "", "3"})
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := NewExcelService().ParseImportResult(path)
	require.NoError(t, err)
	require.Len(t, out.Accounts, 2)
	assert.Equal(t, -1, out.Accounts[0].Index)
	assert.Equal(t, 3, out.Accounts[1].Index)
}

func TestExcelService_ParseRejectsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.xlsx")

	f := excelize.NewFile()
	writeRow(f, "Sheet1", 1, []interface{}{"Date", "Amount", "Memo"})
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewExcelService().ParseImportResult(path)
	assert.EqualError(t, err, "invalid header format")
}

func TestExcelService_ExportAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.xlsx")
	accounts := []models.Account{
		{ID: "btc-1", Name: "Savings", CurrencyID: "bitcoin", Balance: decimal.RequireFromString("1.5"), Unit: "BTC", CreatedAt: time.Now()},
	}

	require.NoError(t, NewExcelService().ExportAccounts(accounts, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(accountsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "btc-1", rows[1][0])
	assert.Equal(t, "1.5", rows[1][5])
}

func TestExcelService_GenerateSkippedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skipped.xlsx")
	skipped := []reconcile.SkippedDescriptor{
		{ID: "bad", Name: "Broken", Reason: "unknown currency"},
	}

	require.NoError(t, NewExcelService().GenerateSkippedReport("IMPORT-1", skipped, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Skipped Accounts")
	require.NoError(t, err)
	assert.Equal(t, []string{"Row", "Account ID", "Name", "Reason"}, rows[0])
	assert.Equal(t, "bad", rows[1][1])
	assert.Equal(t, "unknown currency", rows[1][3])

	value, err := f.GetCellValue("Skipped Accounts", "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}

func TestGetColumnName(t *testing.T) {
	assert.Equal(t, "A", getColumnName(0))
	assert.Equal(t, "Z", getColumnName(25))
	assert.Equal(t, "AA", getColumnName(26))
}

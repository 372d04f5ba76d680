package service

import (
	"fmt"
	"strconv"
	"strings"

	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	accountsSheet = "Accounts"
	settingsSheet = "Settings"
)

var importHeaders = []string{
	"ID", "Name", "Currency", "Derivation Mode", "Index", "Fresh Address",
	"Fresh Address Path", "Seed Identifier", "Balance", "Block Height",
}

// Settings sheet keys, one per row: key in column A, value in column B.
const (
	settingCounterValue         = "Counter Value"
	settingCounterValueExchange = "Counter Value Exchange"
	settingDeveloperMode        = "Developer Mode"
)

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ParseImportResult reads an exported import result from a workbook. The
// accounts come from the "Accounts" sheet (or the first sheet); settings are
// read from an optional "Settings" sheet.
func (s *ExcelService) ParseImportResult(filePath string) (models.ImportResult, error) {
	var result models.ImportResult

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return result, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	if contains(sheets, accountsSheet) {
		sheetName = accountsSheet
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return result, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 1 {
		return result, fmt.Errorf("file must contain a header row")
	}
	if len(rows[0]) < 3 || !strings.EqualFold(strings.TrimSpace(rows[0][0]), "ID") {
		return result, fmt.Errorf("invalid header format")
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if strings.TrimSpace(getCellValue(row, 0)) == "" && strings.TrimSpace(getCellValue(row, 1)) == "" {
			continue // blank line
		}
		result.Accounts = append(result.Accounts, models.AccountData{
			ID:               strings.TrimSpace(getCellValue(row, 0)),
			Name:             getCellValue(row, 1),
			CurrencyID:       strings.TrimSpace(getCellValue(row, 2)),
			DerivationMode:   strings.TrimSpace(getCellValue(row, 3)),
			Index:            parseIndex(getCellValue(row, 4)),
			FreshAddress:     getCellValue(row, 5),
			FreshAddressPath: getCellValue(row, 6),
			SeedIdentifier:   getCellValue(row, 7),
			Balance:          strings.TrimSpace(getCellValue(row, 8)),
			BlockHeight:      parseInt64(getCellValue(row, 9)),
		})
	}

	if contains(sheets, settingsSheet) {
		settingRows, err := f.GetRows(settingsSheet)
		if err != nil {
			return result, fmt.Errorf("failed to read settings: %w", err)
		}
		result.Settings = parseSettingsRows(settingRows)
	}

	return result, nil
}

// WriteImportResult writes result in the layout ParseImportResult reads.
func (s *ExcelService) WriteImportResult(result models.ImportResult, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(accountsSheet)
	if err != nil {
		return err
	}
	writeHeader(f, accountsSheet, importHeaders, "#E0E0E0")

	for i, acc := range result.Accounts {
		values := []interface{}{
			acc.ID, acc.Name, acc.CurrencyID, acc.DerivationMode, acc.Index, acc.FreshAddress,
			acc.FreshAddressPath, acc.SeedIdentifier, acc.Balance, acc.BlockHeight,
		}
		writeRow(f, accountsSheet, i+2, values)
	}
	f.SetColWidth(accountsSheet, "A", "A", 40)
	f.SetColWidth(accountsSheet, "B", "B", 25)
	f.SetColWidth(accountsSheet, "F", "G", 30)

	if result.Settings != nil {
		if _, err := f.NewSheet(settingsSheet); err != nil {
			return err
		}
		writeRow(f, settingsSheet, 1, []interface{}{settingCounterValue, result.Settings.CounterValue})
		writeRow(f, settingsSheet, 2, []interface{}{settingCounterValueExchange, result.Settings.CounterValueExchange})
		writeRow(f, settingsSheet, 3, []interface{}{settingDeveloperMode, strconv.FormatBool(result.Settings.DeveloperModeEnabled)})
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// ExportAccounts exports local accounts to an Excel file
func (s *ExcelService) ExportAccounts(accounts []models.Account, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(accountsSheet)
	if err != nil {
		return err
	}

	headers := []string{"ID", "Name", "Currency", "Index", "Fresh Address", "Balance", "Unit", "Created At"}
	writeHeader(f, accountsSheet, headers, "#E0E0E0")

	for i, acc := range accounts {
		writeRow(f, accountsSheet, i+2, []interface{}{
			acc.ID, acc.Name, acc.CurrencyID, acc.Index, acc.FreshAddress,
			acc.Balance.String(), acc.Unit, acc.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	f.SetColWidth(accountsSheet, "A", "A", 40)
	f.SetColWidth(accountsSheet, "B", "B", 25)
	f.SetColWidth(accountsSheet, "E", "E", 45)
	f.SetColWidth(accountsSheet, "F", "F", 20)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filePath)
}

// GenerateSkippedReport lists the descriptors an import review had to drop.
func (s *ExcelService) GenerateSkippedReport(sessionCode string, skipped []reconcile.SkippedDescriptor, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Skipped Accounts"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	writeHeader(f, sheetName, []string{"Row", "Account ID", "Name", "Reason"}, "#FFE6E6")

	errorStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFFFCC"}, Pattern: 1},
	})
	for i, sk := range skipped {
		row := i + 2
		writeRow(f, sheetName, row, []interface{}{i + 1, sk.ID, sk.Name, sk.Reason})
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), errorStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "D", 60)

	summaryRow := len(skipped) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Session")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), sessionCode)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Skipped")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), len(skipped))

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

func writeHeader(f *excelize.File, sheet string, headers []string, color string) {
	for i, header := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", getColumnName(i)), header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for col, value := range values {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", getColumnName(col), row), value)
	}
}

func parseSettingsRows(rows [][]string) *models.DesktopSettings {
	settings := &models.DesktopSettings{}
	for _, row := range rows {
		value := strings.TrimSpace(getCellValue(row, 1))
		switch strings.TrimSpace(getCellValue(row, 0)) {
		case settingCounterValue:
			settings.CounterValue = value
		case settingCounterValueExchange:
			settings.CounterValueExchange = value
		case settingDeveloperMode:
			settings.DeveloperModeEnabled = parseBoolValue(value)
		}
	}
	return settings
}

// Helper functions
func getCellValue(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// parseIndex returns -1 for anything that is not a whole number so that
// account construction rejects the row instead of guessing an index.
func parseIndex(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v
}

func parseBoolValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "1", "true":
		return true
	}
	return false
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

package fundamentals

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Row is one local-table record keyed by column header.
type Row map[string]string

// Table is a local fundamentals table loaded from CSV or XLSX.
type Table struct {
	rows []Row
}

// LoadTable reads a fundamentals table, picking the parser by file extension.
func LoadTable(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fundamentals: open table %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields
	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "fundamentals: read csv %s", path)
	}
	return tableFromRecords(records), nil
}

func loadXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fundamentals: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("fundamentals: %s has no sheets", path)
	}

	var records [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		records = append(records, cells)
	}
	return tableFromRecords(records), nil
}

// tableFromRecords maps the header row onto each data row. Rows shorter than
// the header leave the remaining columns empty.
func tableFromRecords(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the first row whose ticker column matches, case-insensitively.
func (t *Table) Row(ticker string) (Row, bool) {
	for _, row := range t.rows {
		if strings.EqualFold(strings.TrimSpace(row["ticker"]), ticker) {
			return row, true
		}
	}
	return nil, false
}

// toNumber converts a cell to a nullable float. Empty and malformed cells are
// both null, never an error.
func toNumber(row Row, key string) *float64 {
	val := strings.TrimSpace(row[key])
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// FromRow builds a fundamentals document from one local-table row. Columns
// the row does not carry come out null; unknown columns are ignored.
func FromRow(row Row) *Document {
	doc := NewDocument()
	doc.AsOf = row["asOf"]

	doc.Market.SharePrice = toNumber(row, "sharePrice")
	doc.Market.SharesOutstanding = toNumber(row, "sharesOut")
	doc.Market.MarketCap = toNumber(row, "marketCap")
	doc.Market.EnterpriseValue = toNumber(row, "enterpriseValue")

	inc := &doc.Statements.IncomeStatement
	inc.Revenue = toNumber(row, "revenue")
	inc.COGS = toNumber(row, "cogs")
	inc.OperatingIncomeEBIT = toNumber(row, "opIncome")
	inc.NetIncome = toNumber(row, "netIncome")

	bal := &doc.Statements.BalanceSheet
	bal.TotalAssets = toNumber(row, "totalAssets")
	bal.TotalCurrentAssets = toNumber(row, "currAssets")
	bal.CashAndEquivalents = toNumber(row, "cash")
	bal.CurrentLiabilities = toNumber(row, "currLiab")
	bal.LongTermDebt = toNumber(row, "ltDebt")
	bal.ShortTermDebt = toNumber(row, "stDebt")

	cfs := &doc.Statements.CashFlow
	cfs.OperatingCashFlow = toNumber(row, "opCF")
	cfs.FreeCashFlow = toNumber(row, "fcf")
	cfs.CapitalExpenditures = toNumber(row, "capex")

	return doc
}

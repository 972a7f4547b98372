// Package fundamentals selects annual XBRL values and assembles the
// fixed-shape fundamentals document consumed by the front-end.
package fundamentals

// YearValue is one fiscal-year entry in a multi-year series.
type YearValue struct {
	FY    int     `json:"fy"`
	Value float64 `json:"value"`
}

// Document is the canonical output. Its key set is fixed regardless of how
// much source data was available: absent numbers serialize as null and absent
// series as [], never as missing keys.
type Document struct {
	AsOf       string     `json:"asOf"`
	Market     Market     `json:"market"`
	Statements Statements `json:"statements"`
	Optional   Optional   `json:"optional"`
}

// Market holds market-data fields. Company facts carry none of these, so the
// EDGAR variant leaves them null for a later price source to fill.
type Market struct {
	SharePrice        *float64    `json:"sharePrice"`
	SharesOutstanding *float64    `json:"sharesOutstanding"`
	MarketCap         *float64    `json:"marketCap"`
	EnterpriseValue   *float64    `json:"enterpriseValue"`
	HistoricalPrices  []YearValue `json:"historicalPrices"`
}

// Statements groups the three financial statements.
type Statements struct {
	IncomeStatement IncomeStatement `json:"incomeStatement"`
	BalanceSheet    BalanceSheet    `json:"balanceSheet"`
	CashFlow        CashFlow        `json:"cashFlow"`
}

// IncomeStatement line items.
type IncomeStatement struct {
	Revenue             *float64 `json:"revenue"`
	COGS                *float64 `json:"cogs"`
	GrossProfit         *float64 `json:"grossProfit"`
	OperatingExpenses   *float64 `json:"operatingExpenses"`
	DepreciationAmort   *float64 `json:"depreciationAmort"`
	OperatingIncomeEBIT *float64 `json:"operatingIncomeEBIT"`
	EBITDA              *float64 `json:"ebitda"`
	InterestExpense     *float64 `json:"interestExpense"`
	PretaxIncome        *float64 `json:"pretaxIncome"`
	NetIncome           *float64 `json:"netIncome"`
	NetIncomeExNRI      *float64 `json:"netIncomeExNRI"`
}

// BalanceSheet line items.
type BalanceSheet struct {
	TotalAssets        *float64 `json:"totalAssets"`
	TotalCurrentAssets *float64 `json:"totalCurrentAssets"`
	CashAndEquivalents *float64 `json:"cashAndEquivalents"`
	AccountsReceivable *float64 `json:"accountsReceivable"`
	Inventory          *float64 `json:"inventory"`
	OtherCurrentAssets *float64 `json:"otherCurrentAssets"`
	TotalLiabilities   *float64 `json:"totalLiabilities"`
	CurrentLiabilities *float64 `json:"currentLiabilities"`
	AccountsPayable    *float64 `json:"accountsPayable"`
	LongTermDebt       *float64 `json:"longTermDebt"`
	ShortTermDebt      *float64 `json:"shortTermDebt"`
	ShareholdersEquity *float64 `json:"shareholdersEquity"`
	InvestedCapital    *float64 `json:"investedCapital"`
}

// CashFlow line items.
type CashFlow struct {
	OperatingCashFlow     *float64 `json:"operatingCashFlow"`
	FreeCashFlow          *float64 `json:"freeCashFlow"`
	CapitalExpenditures   *float64 `json:"capitalExpenditures"`
	OwnerEarnings         *float64 `json:"ownerEarnings"`
	DividendsPaid         *float64 `json:"dividendsPaid"`
	CashFlowFromFinancing *float64 `json:"cashFlowFromFinancing"`
	TaxRate               *float64 `json:"taxRate"`
}

// Optional holds quality metrics, multi-year series, and financing detail.
type Optional struct {
	Quality         Quality         `json:"quality"`
	MultiYear       MultiYear       `json:"multiYearFinancials"`
	FinancingDetail FinancingDetail `json:"financingDetail"`
}

// Quality metrics.
type Quality struct {
	RetainedEarnings     *float64    `json:"retainedEarnings"`
	WorkingCapital       *float64    `json:"workingCapital"`
	TenYearProfitHistory []YearValue `json:"tenYearProfitHistory"`
	SegmentRevenue       []YearValue `json:"segmentRevenue"`
}

// MultiYear holds the per-concept annual series.
type MultiYear struct {
	Revenue      []YearValue `json:"revenue"`
	EBITDA       []YearValue `json:"ebitda"`
	NetIncome    []YearValue `json:"netIncome"`
	FreeCashFlow []YearValue `json:"freeCashFlow"`
	BookValue    []YearValue `json:"bookValue"`
}

// FinancingDetail fields.
type FinancingDetail struct {
	ShareRepurchases *float64 `json:"shareRepurchases"`
	ShareIssuances   *float64 `json:"shareIssuances"`
}

// NewDocument returns a document with every numeric leaf null and every
// series empty, so even a build with no source data serializes the full
// key set.
func NewDocument() *Document {
	return &Document{
		Market: Market{HistoricalPrices: []YearValue{}},
		Optional: Optional{
			Quality: Quality{
				TenYearProfitHistory: []YearValue{},
				SegmentRevenue:       []YearValue{},
			},
			MultiYear: MultiYear{
				Revenue:      []YearValue{},
				EBITDA:       []YearValue{},
				NetIncome:    []YearValue{},
				FreeCashFlow: []YearValue{},
				BookValue:    []YearValue{},
			},
		},
	}
}

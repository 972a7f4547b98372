package fundamentals

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Chains lists the ordered us-gaap concept candidates per output line item.
// Filers tag economically equivalent facts under different concepts across
// years and companies, so each line item is resolved by trying its candidates
// in order and taking the first that yields a value.
type Chains struct {
	Revenue             []string `yaml:"revenue"`
	COGS                []string `yaml:"cogs"`
	GrossProfit         []string `yaml:"gross_profit"`
	OperatingIncome     []string `yaml:"operating_income"`
	NetIncome           []string `yaml:"net_income"`
	TotalAssets         []string `yaml:"total_assets"`
	TotalLiabilities    []string `yaml:"total_liabilities"`
	Equity              []string `yaml:"equity"`
	Cash                []string `yaml:"cash"`
	LongTermDebt        []string `yaml:"long_term_debt"`
	ShortTermDebt       []string `yaml:"short_term_debt"`
	CurrentAssets       []string `yaml:"current_assets"`
	CurrentLiabilities  []string `yaml:"current_liabilities"`
	RetainedEarnings    []string `yaml:"retained_earnings"`
	OperatingCashFlow   []string `yaml:"operating_cash_flow"`
	CapitalExpenditures []string `yaml:"capital_expenditures"`
	Dividends           []string `yaml:"dividends"`
}

// DefaultChains returns the built-in concept chains.
func DefaultChains() Chains {
	return Chains{
		Revenue:          []string{"Revenues", "SalesRevenueNet"},
		COGS:             []string{"CostOfRevenue", "CostOfGoodsAndServicesSold"},
		GrossProfit:      []string{"GrossProfit"},
		OperatingIncome:  []string{"OperatingIncomeLoss", "OperatingIncome"},
		NetIncome:        []string{"NetIncomeLoss"},
		TotalAssets:      []string{"Assets"},
		TotalLiabilities: []string{"Liabilities"},
		Equity: []string{
			"StockholdersEquity",
			"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		},
		Cash: []string{
			"CashAndCashEquivalentsAtCarryingValue",
			"CashAndCashEquivalentsFairValueDisclosure",
		},
		LongTermDebt:       []string{"LongTermDebtNoncurrent", "LongTermDebt"},
		ShortTermDebt:      []string{"DebtCurrent", "ShortTermBorrowings"},
		CurrentAssets:      []string{"AssetsCurrent"},
		CurrentLiabilities: []string{"LiabilitiesCurrent"},
		RetainedEarnings:   []string{"RetainedEarningsAccumulatedDeficit"},
		OperatingCashFlow: []string{
			"NetCashProvidedByUsedInOperatingActivities",
			"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
		},
		CapitalExpenditures: []string{
			"PaymentsToAcquirePropertyPlantAndEquipment",
			"CapitalExpenditures",
		},
		Dividends: []string{"PaymentsOfDividends", "PaymentsOfDividendsCommonStock"},
	}
}

// LoadChains returns the default chains overlaid with a YAML override file.
// An empty path returns the defaults; keys absent from the file keep their
// built-in candidates.
func LoadChains(path string) (Chains, error) {
	chains := DefaultChains()
	if path == "" {
		return chains, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chains, eris.Wrapf(err, "fundamentals: read chains file %s", path)
	}
	if err := yaml.Unmarshal(data, &chains); err != nil {
		return chains, eris.Wrapf(err, "fundamentals: parse chains file %s", path)
	}
	return chains, nil
}

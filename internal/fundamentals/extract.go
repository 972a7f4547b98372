package fundamentals

import (
	"encoding/json"
	"slices"
	"sort"
	"strconv"

	"github.com/transparentmetrics/fundamentals-cli/internal/edgar"
)

const (
	annualForm = "10-K"
	fullYear   = "FY"
	usdUnit    = "USD"
)

// DefaultSeriesLimit caps multi-year series at ten distinct fiscal years.
const DefaultSeriesLimit = 10

// Extractor builds fundamentals documents from EDGAR company facts.
type Extractor struct {
	chains Chains
	limit  int
}

// NewExtractor creates an extractor with the given concept chains and
// series year cap.
func NewExtractor(chains Chains, limit int) *Extractor {
	if limit <= 0 {
		limit = DefaultSeriesLimit
	}
	return &Extractor{chains: chains, limit: limit}
}

// numericVal coerces an observation value to float64. EDGAR reports most
// values as JSON numbers, but some dei facts carry strings; anything
// non-numeric disqualifies the observation.
func numericVal(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// qualifying returns the concept's annual full-year USD observations sorted
// newest fiscal year first. The sort is stable, so within a fiscal year the
// source order decides which of several filings (original vs amended) wins.
func qualifying(gaap edgar.Namespace, concept string) []edgar.Observation {
	fact, ok := gaap[concept]
	if !ok {
		return nil
	}

	var out []edgar.Observation
	for _, obs := range fact.Units[usdUnit] {
		if obs.Form != annualForm || obs.FP != fullYear || obs.FY == 0 {
			continue
		}
		if _, ok := numericVal(obs.Val); !ok {
			continue
		}
		out = append(out, obs)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].FY > out[j].FY })
	return out
}

// latestAnnualEntry returns the most recent qualifying observation for the
// concept, or nil when none qualify.
func latestAnnualEntry(gaap edgar.Namespace, concept string) *edgar.Observation {
	obs := qualifying(gaap, concept)
	if len(obs) == 0 {
		return nil
	}
	return &obs[0]
}

// latestAnnualValue returns just the numeric value of the latest qualifying
// observation.
func latestAnnualValue(gaap edgar.Namespace, concept string) *float64 {
	entry := latestAnnualEntry(gaap, concept)
	if entry == nil {
		return nil
	}
	v, _ := numericVal(entry.Val)
	return &v
}

// value resolves a line item through its concept chain, taking the first
// candidate that yields a non-null latest annual value.
func value(gaap edgar.Namespace, chain []string) *float64 {
	for _, concept := range chain {
		if v := latestAnnualValue(gaap, concept); v != nil {
			return v
		}
	}
	return nil
}

// AnnualSeries builds the oldest-to-newest annual series for a concept,
// keeping the first observation per distinct fiscal year and at most the
// configured number of years. No qualifying observations yield an empty
// series, never nil.
func (e *Extractor) AnnualSeries(gaap edgar.Namespace, concept string) []YearValue {
	out := []YearValue{}
	seen := make(map[int]bool)

	for _, obs := range qualifying(gaap, concept) {
		if seen[obs.FY] {
			continue
		}
		seen[obs.FY] = true

		v, _ := numericVal(obs.Val)
		out = append(out, YearValue{FY: obs.FY, Value: v})
		if len(out) >= e.limit {
			break
		}
	}

	slices.Reverse(out)
	return out
}

// seriesChain returns the series of the first concept in the chain producing
// a non-empty result.
func (e *Extractor) seriesChain(gaap edgar.Namespace, chain []string) []YearValue {
	for _, concept := range chain {
		if s := e.AnnualSeries(gaap, concept); len(s) > 0 {
			return s
		}
	}
	return []YearValue{}
}

// FromFacts assembles the fundamentals document from a company facts payload.
// Data-shape problems in the source never fail the build; they surface as
// nulls and empty series.
func (e *Extractor) FromFacts(cf *edgar.CompanyFacts) *Document {
	doc := NewDocument()
	if cf == nil {
		return doc
	}
	gaap := cf.USGAAP()

	inc := &doc.Statements.IncomeStatement
	inc.Revenue = value(gaap, e.chains.Revenue)
	inc.COGS = value(gaap, e.chains.COGS)
	inc.GrossProfit = value(gaap, e.chains.GrossProfit)
	inc.OperatingIncomeEBIT = value(gaap, e.chains.OperatingIncome)
	inc.NetIncome = value(gaap, e.chains.NetIncome)

	bal := &doc.Statements.BalanceSheet
	bal.TotalAssets = value(gaap, e.chains.TotalAssets)
	bal.TotalCurrentAssets = value(gaap, e.chains.CurrentAssets)
	bal.CashAndEquivalents = value(gaap, e.chains.Cash)
	bal.TotalLiabilities = value(gaap, e.chains.TotalLiabilities)
	bal.CurrentLiabilities = value(gaap, e.chains.CurrentLiabilities)
	bal.LongTermDebt = value(gaap, e.chains.LongTermDebt)
	bal.ShortTermDebt = value(gaap, e.chains.ShortTermDebt)
	bal.ShareholdersEquity = value(gaap, e.chains.Equity)

	cfs := &doc.Statements.CashFlow
	cfs.OperatingCashFlow = value(gaap, e.chains.OperatingCashFlow)
	cfs.CapitalExpenditures = value(gaap, e.chains.CapitalExpenditures)
	cfs.DividendsPaid = value(gaap, e.chains.Dividends)
	// Capital expenditures arrive sign-negative from the source, so free
	// cash flow is the direct sum with operating cash flow. A source that
	// reports capex as a positive magnitude would silently inflate this.
	if cfs.OperatingCashFlow != nil && cfs.CapitalExpenditures != nil {
		fcf := *cfs.OperatingCashFlow + *cfs.CapitalExpenditures
		cfs.FreeCashFlow = &fcf
	}

	q := &doc.Optional.Quality
	q.RetainedEarnings = value(gaap, e.chains.RetainedEarnings)
	if bal.TotalCurrentAssets != nil && bal.CurrentLiabilities != nil {
		wc := *bal.TotalCurrentAssets - *bal.CurrentLiabilities
		q.WorkingCapital = &wc
	}

	profits := e.seriesChain(gaap, e.chains.NetIncome)
	q.TenYearProfitHistory = profits
	doc.Optional.MultiYear.NetIncome = profits
	doc.Optional.MultiYear.Revenue = e.seriesChain(gaap, e.chains.Revenue)

	doc.AsOf = e.asOf(cf, gaap)
	return doc
}

// asOf prefers the period end of the newest annual entry for total assets,
// then revenue, then net income; the fiscal year stands in when the entry has
// no end date. With no qualifying entry at all, the entity name is used.
func (e *Extractor) asOf(cf *edgar.CompanyFacts, gaap edgar.Namespace) string {
	for _, chain := range [][]string{e.chains.TotalAssets, e.chains.Revenue, e.chains.NetIncome} {
		for _, concept := range chain {
			entry := latestAnnualEntry(gaap, concept)
			if entry == nil {
				continue
			}
			if entry.End != "" {
				return entry.End
			}
			return strconv.Itoa(entry.FY)
		}
	}
	return cf.EntityName
}

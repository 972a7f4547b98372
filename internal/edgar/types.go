// Package edgar fetches and decodes SEC EDGAR XBRL company facts.
package edgar

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// CompanyFacts is the top-level EDGAR company facts document.
type CompanyFacts struct {
	CIK        int                  `json:"cik"`
	EntityName string               `json:"entityName"`
	Facts      map[string]Namespace `json:"facts"`
}

// Namespace groups facts by taxonomy namespace (e.g. "us-gaap", "dei").
type Namespace map[string]Fact

// Fact is a single reported concept with its per-unit observations.
type Fact struct {
	Label       string                   `json:"label"`
	Description string                   `json:"description"`
	Units       map[string][]Observation `json:"units"`
}

// Observation is one reported value for a concept. Restatements repeat the
// same fiscal year across filings, so observations are not unique per year.
type Observation struct {
	End   string `json:"end"`
	Val   any    `json:"val"`
	Accn  string `json:"accn"`
	FY    int    `json:"fy"`
	FP    string `json:"fp"`
	Form  string `json:"form"`
	Filed string `json:"filed"`
	Frame string `json:"frame,omitempty"`
}

// USGAAP returns the us-gaap namespace, or nil when absent.
func (cf *CompanyFacts) USGAAP() Namespace {
	if cf == nil {
		return nil
	}
	return cf.Facts["us-gaap"]
}

// ParseCompanyFacts decodes an EDGAR company facts payload from a reader.
func ParseCompanyFacts(r io.Reader) (*CompanyFacts, error) {
	var facts CompanyFacts
	if err := json.NewDecoder(r).Decode(&facts); err != nil {
		return nil, eris.Wrap(err, "edgar: parse company facts")
	}
	return &facts, nil
}

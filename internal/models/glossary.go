package models

// GlossaryResponse is the top-level response for the glossary endpoint.
// Ticker and FiscalYear are set only when live values were requested.
type GlossaryResponse struct {
	Ticker     string             `json:"ticker,omitempty"`
	FiscalYear int                `json:"fiscal_year,omitempty"`
	Currency   string             `json:"currency,omitempty"`
	Categories []GlossaryCategory `json:"categories"`
}

// GlossaryCategory groups related glossary terms.
type GlossaryCategory struct {
	Name  string         `json:"name"`
	Terms []GlossaryTerm `json:"terms"`
}

// GlossaryTerm defines a single term, optionally with the latest-year value of a bundle.
type GlossaryTerm struct {
	Term       string      `json:"term"`
	Label      string      `json:"label"`
	Definition string      `json:"definition"`
	Formula    string      `json:"formula,omitempty"`
	Value      interface{} `json:"value,omitempty"`
	Example    string      `json:"example,omitempty"`
}

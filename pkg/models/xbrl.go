package models

// XbrlFact is a single tagged value from an XBRL instance.
type XbrlFact struct {
	Concept      string  `json:"concept"`
	Taxonomy     string  `json:"taxonomy,omitempty"`
	Label        string  `json:"label,omitempty"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit,omitempty"`
	PeriodStart  string  `json:"periodStart,omitempty"`
	PeriodEnd    string  `json:"periodEnd,omitempty"`
	FiscalYear   int     `json:"fiscalYear,omitempty"`
	FiscalPeriod string  `json:"fiscalPeriod,omitempty"` // Q1..Q3, FY
	Form         string  `json:"form,omitempty"`
	Decimals     string  `json:"decimals,omitempty"`
	Accession    string  `json:"accn,omitempty"`
}

// XbrlFinancialData is the financial summary extracted from one filing.
type XbrlFinancialData struct {
	AccessionNumber string             `json:"accessionNumber"`
	CIK             string             `json:"cik"`
	CompanyName     string             `json:"companyName,omitempty"`
	FormType        string             `json:"formType,omitempty"`
	FiscalYear      int                `json:"fiscalYear,omitempty"`
	FiscalPeriod    string             `json:"fiscalPeriod,omitempty"`
	PeriodEnd       string             `json:"periodEnd,omitempty"`
	KeyMetrics      map[string]float64 `json:"keyMetrics,omitempty"`
	Facts           []XbrlFact         `json:"facts,omitempty"`
}

// CompanyFacts is every XBRL fact reported by a company, grouped by taxonomy.
type CompanyFacts struct {
	CIK        string                           `json:"cik"`
	EntityName string                           `json:"entityName"`
	Facts      map[string]map[string][]XbrlFact `json:"facts"` // taxonomy -> concept -> values
}

// ConceptHistory is the time series of one concept for one company.
type ConceptHistory struct {
	CIK      string     `json:"cik"`
	Taxonomy string     `json:"taxonomy"`
	Concept  string     `json:"concept"`
	Label    string     `json:"label,omitempty"`
	Values   []XbrlFact `json:"values"`
}

// XbrlExtractRequest asks the backend to parse an XBRL document at URL.
type XbrlExtractRequest struct {
	URL string `json:"url"`
}

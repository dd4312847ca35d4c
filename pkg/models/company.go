package models

// Company is the full company record keyed by CIK.
type Company struct {
	ID                   string   `json:"id"`
	CIK                  string   `json:"cik"` // 10-digit, zero-padded
	Name                 string   `json:"name"`
	Ticker               string   `json:"ticker,omitempty"`
	Tickers              []string `json:"tickers,omitempty"`
	Exchanges            []string `json:"exchanges,omitempty"`
	SIC                  string   `json:"sic,omitempty"`
	SICDescription       string   `json:"sicDescription,omitempty"`
	EntityType           string   `json:"entityType,omitempty"`
	Category             string   `json:"category,omitempty"`
	StateOfIncorporation string   `json:"stateOfIncorporation,omitempty"`
	FiscalYearEnd        string   `json:"fiscalYearEnd,omitempty"`
	EIN                  string   `json:"ein,omitempty"`
	Website              string   `json:"website,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	BusinessAddress      *Address `json:"businessAddress,omitempty"`
	MailingAddress       *Address `json:"mailingAddress,omitempty"`
	FilingCount          int64    `json:"filingCount,omitempty"`
	LastFilingDate       string   `json:"lastFilingDate,omitempty"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
}

// Address is a postal address as reported in EDGAR submissions.
type Address struct {
	Street1        string `json:"street1,omitempty"`
	Street2        string `json:"street2,omitempty"`
	City           string `json:"city,omitempty"`
	StateOrCountry string `json:"stateOrCountry,omitempty"`
	ZipCode        string `json:"zipCode,omitempty"`
}

// CompanyListItem is the projection returned by company listings.
type CompanyListItem struct {
	ID             string `json:"id"`
	CIK            string `json:"cik"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker,omitempty"`
	SICDescription string `json:"sicDescription,omitempty"`
	FilingCount    int64  `json:"filingCount,omitempty"`
	LastFilingDate string `json:"lastFilingDate,omitempty"`
}

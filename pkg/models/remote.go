package models

// RemoteSubmission is the company submissions record fetched live from
// EDGAR through the backend.
type RemoteSubmission struct {
	CIK            string   `json:"cik"`
	Name           string   `json:"name"`
	Tickers        []string `json:"tickers,omitempty"`
	Exchanges      []string `json:"exchanges,omitempty"`
	SIC            string   `json:"sic,omitempty"`
	SICDescription string   `json:"sicDescription,omitempty"`
	RecentFilings  []Filing `json:"recentFilings,omitempty"`
}

// RemoteTicker is one row of EDGAR's company_tickers.json.
type RemoteTicker struct {
	CIK    string `json:"cik"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// RemoteSearchHit is one EDGAR full-text search result.
type RemoteSearchHit struct {
	AccessionNumber string   `json:"accessionNumber"`
	CIKs            []string `json:"ciks"`
	EntityName      string   `json:"entityName"`
	FormType        string   `json:"formType"`
	FiledDate       string   `json:"filedDate"`
	PeriodOfReport  string   `json:"periodOfReport,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// RemoteSearchResult wraps full-text search hits with the total count.
type RemoteSearchResult struct {
	Total int64             `json:"total"`
	Hits  []RemoteSearchHit `json:"hits"`
}

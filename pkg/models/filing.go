package models

// Filing is a single EDGAR submission as listed by the backend.
type Filing struct {
	ID              string `json:"id"`
	AccessionNumber string `json:"accessionNumber"` // NNNNNNNNNN-YY-NNNNNN
	CIK             string `json:"cik"`
	CompanyName     string `json:"companyName"`
	FormType        string `json:"formType"`
	FilingDate      string `json:"filingDate"`
	ReportDate      string `json:"reportDate,omitempty"`
	PrimaryDocument string `json:"primaryDocument,omitempty"`
	Description     string `json:"primaryDocDescription,omitempty"`
	Items           string `json:"items,omitempty"`
	IsXBRL          bool   `json:"isXBRL,omitempty"`
	IsInlineXBRL    bool   `json:"isInlineXBRL,omitempty"`
	FileNumber      string `json:"fileNumber,omitempty"`
	Size            int64  `json:"size,omitempty"`
	URL             string `json:"url,omitempty"`
}

// FilingDetail extends Filing with its documents and XBRL availability.
type FilingDetail struct {
	Filing
	AcceptanceDateTime string     `json:"acceptanceDateTime,omitempty"`
	Act                string     `json:"act,omitempty"`
	FilmNumber         string     `json:"filmNumber,omitempty"`
	Documents          []Document `json:"documents,omitempty"`
	XBRLAvailable      bool       `json:"xbrlAvailable,omitempty"`
	Company            *Company   `json:"company,omitempty"`
}

// Document is one file inside a filing's index.
type Document struct {
	Sequence    int    `json:"sequence,omitempty"`
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
	Size        int64  `json:"size,omitempty"`
	URL         string `json:"url,omitempty"`
}

// FilingStats backs the dashboard overview.
type FilingStats struct {
	TotalFilings   int64            `json:"totalFilings"`
	TotalCompanies int64            `json:"totalCompanies"`
	FilingsToday   int64            `json:"filingsToday"`
	FilingsByForm  map[string]int64 `json:"filingsByForm,omitempty"`
	LastUpdated    string           `json:"lastUpdated,omitempty"`
}

// FilingSearchRequest is the body of POST /filings/search and the export criteria.
// Zero fields are omitted from the JSON body.
type FilingSearchRequest struct {
	CompanyName string   `json:"companyName,omitempty"`
	CIK         string   `json:"cik,omitempty"`
	Ticker      string   `json:"ticker,omitempty"`
	FormType    string   `json:"formType,omitempty"`
	FormTypes   []string `json:"formTypes,omitempty"`
	DateFrom    string   `json:"dateFrom,omitempty"`
	DateTo      string   `json:"dateTo,omitempty"`
	Keywords    string   `json:"keywords,omitempty"`
	Page        int      `json:"page,omitempty"`
	Size        int      `json:"size,omitempty"`
	SortBy      string   `json:"sortBy,omitempty"`
	SortDir     string   `json:"sortDir,omitempty"`
}

// RecentSearch is a search recorded by the backend's search history.
type RecentSearch struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	SearchType  string `json:"searchType,omitempty"`
	ResultCount int64  `json:"resultCount,omitempty"`
	SearchedAt  string `json:"searchedAt"`
}

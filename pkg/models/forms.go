package models

// --- Form 13F (institutional holdings) ---

// Form13F is a quarterly holdings report filed by an institutional manager.
type Form13F struct {
	ID              string    `json:"id"`
	AccessionNumber string    `json:"accessionNumber"`
	CIK             string    `json:"cik"`
	FilerName       string    `json:"filerName"`
	FormType        string    `json:"formType"` // 13F-HR, 13F-HR/A, 13F-NT
	FiledDate       string    `json:"filedDate"`
	ReportPeriod    string    `json:"reportPeriod"`
	TotalValue      int64     `json:"totalValue"` // USD
	HoldingsCount   int       `json:"holdingsCount"`
	IsAmendment     bool      `json:"isAmendment,omitempty"`
	Holdings        []Holding `json:"holdings,omitempty"`
}

// Holding is one row of a 13F information table.
type Holding struct {
	NameOfIssuer         string `json:"nameOfIssuer"`
	TitleOfClass         string `json:"titleOfClass"`
	CUSIP                string `json:"cusip"`
	Value                int64  `json:"value"`
	Shares               int64  `json:"sharesOrPrincipalAmount"`
	SharesType           string `json:"sharesOrPrincipalType"` // SH or PRN
	PutCall              string `json:"putCall,omitempty"`
	InvestmentDiscretion string `json:"investmentDiscretion"`
	VotingSole           int64  `json:"votingAuthoritySole,omitempty"`
	VotingShared         int64  `json:"votingAuthorityShared,omitempty"`
	VotingNone           int64  `json:"votingAuthorityNone,omitempty"`
}

// PortfolioSummary aggregates a manager's latest 13F.
type PortfolioSummary struct {
	CIK           string    `json:"cik"`
	FilerName     string    `json:"filerName"`
	ReportPeriod  string    `json:"reportPeriod"`
	TotalValue    int64     `json:"totalValue"`
	HoldingsCount int       `json:"holdingsCount"`
	TopHoldings   []Holding `json:"topHoldings,omitempty"`
	FilingCount   int       `json:"filingCount,omitempty"`
}

// HoldingChange is the difference of one position between two periods.
type HoldingChange struct {
	CUSIP        string `json:"cusip"`
	NameOfIssuer string `json:"nameOfIssuer"`
	SharesBefore int64  `json:"sharesBefore"`
	SharesAfter  int64  `json:"sharesAfter"`
	ValueBefore  int64  `json:"valueBefore"`
	ValueAfter   int64  `json:"valueAfter"`
	ChangeType   string `json:"changeType"` // NEW, INCREASED, DECREASED, SOLD, UNCHANGED
}

// PortfolioComparison is the result of /form13f/cik/{cik}/compare.
type PortfolioComparison struct {
	CIK         string          `json:"cik"`
	Period1     string          `json:"period1"`
	Period2     string          `json:"period2"`
	TotalValue1 int64           `json:"totalValue1"`
	TotalValue2 int64           `json:"totalValue2"`
	Changes     []HoldingChange `json:"changes"`
}

// TopHolding is a security ranked by aggregate 13F value across filers.
type TopHolding struct {
	CUSIP        string `json:"cusip"`
	NameOfIssuer string `json:"nameOfIssuer"`
	TotalValue   int64  `json:"totalValue"`
	TotalShares  int64  `json:"totalShares"`
	HolderCount  int    `json:"holderCount"`
}

// --- Schedule 13D / 13G (beneficial ownership) ---

// Form13DG is a beneficial ownership report (Schedule 13D or 13G).
type Form13DG struct {
	ID                   string            `json:"id"`
	AccessionNumber      string            `json:"accessionNumber"`
	CIK                  string            `json:"cik"` // subject company
	FormType             string            `json:"formType"`
	ScheduleType         string            `json:"scheduleType"` // 13D or 13G
	FiledDate            string            `json:"filedDate"`
	EventDate            string            `json:"eventDate,omitempty"`
	IssuerName           string            `json:"issuerName"`
	IssuerCUSIP          string            `json:"issuerCusip"`
	SecurityClass        string            `json:"securityClassTitle,omitempty"`
	FilerCIK             string            `json:"filerCik,omitempty"`
	FilerName            string            `json:"filerName,omitempty"`
	PercentOfClass       float64           `json:"percentOfClass"`
	SharesOwned          int64             `json:"sharesOwned"`
	IsAmendment          bool              `json:"isAmendment,omitempty"`
	AmendmentNumber      int               `json:"amendmentNumber,omitempty"`
	PurposeOfTransaction string            `json:"purposeOfTransaction,omitempty"`
	ReportingPersons     []BeneficialOwner `json:"reportingPersons,omitempty"`
}

// BeneficialOwner is a reporting person on a 13D/G cover page.
type BeneficialOwner struct {
	CIK               string  `json:"cik,omitempty"`
	Name              string  `json:"name"`
	Citizenship       string  `json:"citizenship,omitempty"`
	SoleVoting        int64   `json:"soleVotingPower,omitempty"`
	SharedVoting      int64   `json:"sharedVotingPower,omitempty"`
	SoleDispositive   int64   `json:"soleDispositivePower,omitempty"`
	SharedDispositive int64   `json:"sharedDispositivePower,omitempty"`
	AggregateAmount   int64   `json:"aggregateAmountOwned"`
	PercentOfClass    float64 `json:"percentOfClass"`
	TypeOfPerson      string  `json:"typeOfReportingPerson,omitempty"`
	LatestFiledDate   string  `json:"latestFiledDate,omitempty"`
}

// --- Form 8-K (current reports) ---

// Form8K is a current report announcing material events.
type Form8K struct {
	ID              string    `json:"id"`
	AccessionNumber string    `json:"accessionNumber"`
	CIK             string    `json:"cik"`
	CompanyName     string    `json:"companyName"`
	FormType        string    `json:"formType"`
	FiledDate       string    `json:"filedDate"`
	EventDate       string    `json:"eventDate,omitempty"`
	Items           []Item    `json:"items,omitempty"`
	Exhibits        []Exhibit `json:"exhibits,omitempty"`
}

// Item is a numbered 8-K disclosure item such as "2.02".
type Item struct {
	Number  string `json:"itemNumber"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Exhibit is an exhibit attached to an 8-K.
type Exhibit struct {
	Number      string `json:"exhibitNumber"`
	Description string `json:"description,omitempty"`
	Filename    string `json:"filename,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ItemCount is the number of 8-K filings reporting an item.
type ItemCount struct {
	Item  string `json:"item"`
	Count int64  `json:"count"`
}

// --- Forms 3 / 5 (insider ownership) ---

// ReportingOwner is the insider who files a Form 3, 4 or 5.
type ReportingOwner struct {
	CIK          string `json:"cik"`
	Name         string `json:"name"`
	IsDirector   bool   `json:"isDirector,omitempty"`
	IsOfficer    bool   `json:"isOfficer,omitempty"`
	IsTenPercent bool   `json:"isTenPercentOwner,omitempty"`
	OfficerTitle string `json:"officerTitle,omitempty"`
}

// InitialHolding is a holding reported on Form 3.
type InitialHolding struct {
	SecurityTitle     string  `json:"securityTitle"`
	Shares            float64 `json:"shares"`
	DirectOrIndirect  string  `json:"directOrIndirect"` // D or I
	NatureOfOwnership string  `json:"natureOfOwnership,omitempty"`
	IsDerivative      bool    `json:"isDerivative,omitempty"`
}

// Form3 is an initial statement of beneficial ownership.
type Form3 struct {
	ID                string           `json:"id"`
	AccessionNumber   string           `json:"accessionNumber"`
	CIK               string           `json:"cik"` // issuer
	IssuerName        string           `json:"issuerName"`
	TradingSymbol     string           `json:"tradingSymbol,omitempty"`
	FiledDate         string           `json:"filedDate"`
	EventDate         string           `json:"periodOfReport,omitempty"`
	ReportingOwners   []ReportingOwner `json:"reportingOwners,omitempty"`
	Holdings          []InitialHolding `json:"holdings,omitempty"`
	NoSecuritiesOwned bool             `json:"noSecuritiesOwned,omitempty"`
}

// InsiderTransaction is a row from a Form 4/5 transaction table.
type InsiderTransaction struct {
	SecurityTitle    string  `json:"securityTitle"`
	TransactionDate  string  `json:"transactionDate"`
	TransactionCode  string  `json:"transactionCode"`
	Shares           float64 `json:"shares"`
	PricePerShare    float64 `json:"pricePerShare,omitempty"`
	AcquiredDisposed string  `json:"acquiredDisposedCode"` // A or D
	SharesOwnedAfter float64 `json:"sharesOwnedFollowing"`
	DirectOrIndirect string  `json:"directOrIndirect,omitempty"`
	IsDerivative     bool    `json:"isDerivative,omitempty"`
}

// Form5 is an annual statement of changes in beneficial ownership.
type Form5 struct {
	ID              string               `json:"id"`
	AccessionNumber string               `json:"accessionNumber"`
	CIK             string               `json:"cik"`
	IssuerName      string               `json:"issuerName"`
	TradingSymbol   string               `json:"tradingSymbol,omitempty"`
	FiledDate       string               `json:"filedDate"`
	PeriodOfReport  string               `json:"periodOfReport,omitempty"`
	ReportingOwners []ReportingOwner     `json:"reportingOwners,omitempty"`
	Transactions    []InsiderTransaction `json:"transactions,omitempty"`
}

// --- Foreign private issuers ---

// Form6K is a report of a foreign private issuer.
type Form6K struct {
	ID              string    `json:"id"`
	AccessionNumber string    `json:"accessionNumber"`
	CIK             string    `json:"cik"`
	CompanyName     string    `json:"companyName"`
	TradingSymbol   string    `json:"tradingSymbol,omitempty"`
	FiledDate       string    `json:"filedDate"`
	ReportDate      string    `json:"reportDate,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	Exhibits        []Exhibit `json:"exhibits,omitempty"`
}

// Form20F is the annual report of a foreign private issuer.
type Form20F struct {
	ID                 string             `json:"id"`
	AccessionNumber    string             `json:"accessionNumber"`
	CIK                string             `json:"cik"`
	CompanyName        string             `json:"companyName"`
	TradingSymbol      string             `json:"tradingSymbol,omitempty"`
	FiledDate          string             `json:"filedDate"`
	FiscalYear         int                `json:"fiscalYear"`
	FiscalYearEnd      string             `json:"fiscalYearEnd,omitempty"`
	Country            string             `json:"countryOfIncorporation,omitempty"`
	AccountingStandard string             `json:"accountingStandard,omitempty"` // US GAAP, IFRS
	AuditorName        string             `json:"auditorName,omitempty"`
	KeyMetrics         map[string]float64 `json:"keyMetrics,omitempty"`
}

// FormSearchRequest is the POST body shared by the form search endpoints.
// Zero fields are omitted.
type FormSearchRequest struct {
	CIK        string  `json:"cik,omitempty"`
	Name       string  `json:"name,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	CUSIP      string  `json:"cusip,omitempty"`
	FormType   string  `json:"formType,omitempty"`
	Item       string  `json:"item,omitempty"`
	DateFrom   string  `json:"dateFrom,omitempty"`
	DateTo     string  `json:"dateTo,omitempty"`
	MinPercent float64 `json:"minPercent,omitempty"`
	MinValue   int64   `json:"minValue,omitempty"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	SortBy     string  `json:"sortBy,omitempty"`
	SortDir    string  `json:"sortDir,omitempty"`
}

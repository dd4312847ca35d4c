package state

import (
	"context"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/pkg/models"
)

// Keyed detail views.

// NewCompany tracks one company by CIK.
func NewCompany(c *edgar.Client) *Keyed[models.Company] {
	return NewKeyed(c.Companies.GetByCIK)
}

// NewFiling tracks one filing by accession number.
func NewFiling(c *edgar.Client) *Keyed[models.FilingDetail] {
	return NewKeyed(c.Filings.GetByAccession)
}

// NewFinancials tracks the XBRL summary of one filing by accession number.
func NewFinancials(c *edgar.Client) *Keyed[models.XbrlFinancialData] {
	return NewKeyed(c.XBRL.Financials)
}

// NewCompanyFacts tracks every XBRL fact of one company by CIK.
func NewCompanyFacts(c *edgar.Client) *Keyed[models.CompanyFacts] {
	return NewKeyed(c.XBRL.CompanyFacts)
}

// NewPortfolioSummary tracks a 13F manager's latest portfolio by CIK.
func NewPortfolioSummary(c *edgar.Client) *Keyed[models.PortfolioSummary] {
	return NewKeyed(c.Form13F.PortfolioSummary)
}

// NewOwners tracks the beneficial owners of a security by CUSIP.
func NewOwners(c *edgar.Client) *Keyed[[]models.BeneficialOwner] {
	return NewKeyed(c.Form13DG.Owners)
}

// NewRemoteSubmissions tracks a company's live EDGAR submissions by CIK.
func NewRemoteSubmissions(c *edgar.Client) *Keyed[models.RemoteSubmission] {
	return NewKeyed(c.Remote.Submissions)
}

// Unkeyed lists.

// NewRecentFilings tracks the latest filings.
func NewRecentFilings(c *edgar.Client, limit int) *Resource[[]models.Filing] {
	return NewResource(func(ctx context.Context) ([]models.Filing, error) {
		return c.Filings.Recent(ctx, limit)
	})
}

// NewFormTypes tracks the distinct stored form types.
func NewFormTypes(c *edgar.Client) *Resource[[]string] {
	return NewResource(c.Filings.FormTypes)
}

// NewItemCounts tracks 8-K item frequencies.
func NewItemCounts(c *edgar.Client) *Resource[[]models.ItemCount] {
	return NewResource(c.Form8K.ItemCounts)
}

// NewTopHoldings tracks the most widely held securities.
func NewTopHoldings(c *edgar.Client, limit int) *Resource[[]models.TopHolding] {
	return NewResource(func(ctx context.Context) ([]models.TopHolding, error) {
		return c.Form13F.TopHoldings(ctx, limit)
	})
}

// NewPortfolioComparison tracks how a 13F manager's holdings changed
// between two report periods.
func NewPortfolioComparison(c *edgar.Client, cik, period1, period2 string) *Resource[models.PortfolioComparison] {
	return NewResource(func(ctx context.Context) (models.PortfolioComparison, error) {
		return c.Form13F.Compare(ctx, cik, period1, period2)
	})
}

// NewJobHistory tracks one page of all download jobs.
func NewJobHistory(c *edgar.Client, page, size int) *Resource[models.Page[models.DownloadJob]] {
	return NewResource(func(ctx context.Context) (models.Page[models.DownloadJob], error) {
		return c.Downloads.Jobs(ctx, page, size)
	})
}

package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// XBRLAPI reads structured financial data.
type XBRLAPI struct {
	c *transport.Client
}

// Financials returns the financial summary extracted from one filing.
func (a *XBRLAPI) Financials(ctx context.Context, accession string) (models.XbrlFinancialData, error) {
	if err := require("accession number", accession); err != nil {
		return models.XbrlFinancialData{}, err
	}
	return transport.Get[models.XbrlFinancialData](ctx, a.c, "/xbrl/financials/"+transport.Segment(accession))
}

// CompanyFacts returns every fact a company has reported.
func (a *XBRLAPI) CompanyFacts(ctx context.Context, cik string) (models.CompanyFacts, error) {
	if err := require("cik", cik); err != nil {
		return models.CompanyFacts{}, err
	}
	return transport.Get[models.CompanyFacts](ctx, a.c, "/xbrl/companies/"+transport.Segment(cik)+"/facts")
}

// ConceptHistory returns the time series of one concept, e.g.
// ("us-gaap", "Revenues").
func (a *XBRLAPI) ConceptHistory(ctx context.Context, cik, taxonomy, concept string) (models.ConceptHistory, error) {
	for _, p := range [][2]string{{"cik", cik}, {"taxonomy", taxonomy}, {"concept", concept}} {
		if err := require(p[0], p[1]); err != nil {
			return models.ConceptHistory{}, err
		}
	}
	path := "/xbrl/companies/" + transport.Segment(cik) + "/concepts/" +
		transport.Segment(taxonomy) + "/" + transport.Segment(concept)
	return transport.Get[models.ConceptHistory](ctx, a.c, path)
}

// Extract asks the backend to parse the XBRL instance at url.
func (a *XBRLAPI) Extract(ctx context.Context, url string) (models.XbrlFinancialData, error) {
	if err := require("url", url); err != nil {
		return models.XbrlFinancialData{}, err
	}
	return transport.Post[models.XbrlFinancialData](ctx, a.c, "/xbrl/extract", models.XbrlExtractRequest{URL: url})
}

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/labels"
	"github.com/seenimoa/edgardash/internal/state"
	"github.com/seenimoa/edgardash/pkg/models"
	"github.com/seenimoa/edgardash/pkg/utils"
)

func init() {
	companiesCmd.Flags().Int("page", 0, "page number (0-based)")
	companiesCmd.Flags().Int("size", 0, "page size (default: saved preference)")
	companiesCmd.Flags().String("sort", "", "sort field, e.g. name")
	companiesCmd.Flags().String("dir", "", "sort direction (asc, desc)")

	companyCmd.Flags().Bool("filings", false, "also list the company's filings")
	companyCmd.Flags().Int("size", 0, "filings page size")

	filingsCmd.Flags().String("cik", "", "filter by company CIK")
	filingsCmd.Flags().String("form", "", "filter by form type, e.g. 10-K")
	filingsCmd.Flags().String("from", "", "filed on or after (YYYY-MM-DD)")
	filingsCmd.Flags().String("to", "", "filed on or before (YYYY-MM-DD)")
	filingsCmd.Flags().String("keywords", "", "full-text keywords (uses the search endpoint)")
	filingsCmd.Flags().Int("page", 0, "page number (0-based)")
	filingsCmd.Flags().Int("size", 0, "page size (default: saved preference)")

	recentCmd.Flags().Int("limit", edgar.DefaultRecentLimit, "number of filings")
	dashboardCmd.Flags().Int("limit", edgar.DefaultRecentLimit, "recent filings and searches to show")

	xbrlCmd.Flags().String("cik", "", "show a concept history for this company instead")
	xbrlCmd.Flags().String("concept", "", "concept for --cik, e.g. Revenues")
	xbrlCmd.Flags().String("taxonomy", "us-gaap", "taxonomy for --concept")

	rootCmd.AddCommand(companiesCmd, companyCmd, filingsCmd, filingCmd, recentCmd, dashboardCmd, xbrlCmd)
}

// --- Companies ---

var companiesCmd = &cobra.Command{
	Use:   "companies [term]",
	Short: "Search companies by name, ticker or CIK",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := edgar.CompanyQuery{Size: pageSize(cmd)}
		if len(args) == 1 {
			q.SearchTerm = strings.TrimSpace(args[0])
		}
		q.Page, _ = cmd.Flags().GetInt("page")
		q.SortBy, _ = cmd.Flags().GetString("sort")
		q.SortDir, _ = cmd.Flags().GetString("dir")

		ls := state.NewCompanySearch(api).Filter(cmd.Context(), q)
		if ls.Error == "" && q.SearchTerm != "" {
			remember(q.SearchTerm, "companies")
		}
		return printList(ls, []string{"CIK", "TICKER", "NAME", "INDUSTRY", "FILINGS"},
			func(c models.CompanyListItem) []any {
				return []any{utils.TrimCIK(c.CIK), orDash(c.Ticker), c.Name, orDash(c.SICDescription), c.FilingCount}
			})
	},
}

var companyCmd = &cobra.Command{
	Use:   "company <cik|ticker>",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var company models.Company
		if utils.LooksLikeCIK(args[0]) {
			cik, err := cikArg(args[0])
			if err != nil {
				return err
			}
			snap := state.NewCompany(api).SetKey(ctx, cik)
			if err := snapErr(snap.Error); err != nil {
				return err
			}
			company = snap.Data
		} else {
			var err error
			company, err = api.Companies.GetByTicker(ctx, utils.NormalizeTicker(args[0]))
			if err != nil {
				return err
			}
		}

		withFilings, _ := cmd.Flags().GetBool("filings")
		var filings state.ListState[models.Filing]
		if withFilings {
			filings = state.NewFilingSearch(api).ByCIK(ctx, company.CIK, 0, pageSize(cmd))
			if err := snapErr(filings.Error); err != nil {
				return err
			}
		}

		if asJSON {
			if withFilings {
				return printJSON(map[string]any{"company": company, "filings": filings})
			}
			return printJSON(company)
		}

		fmt.Printf("🏢 %s\n", company.Name)
		fmt.Printf("   CIK:        %s\n", company.CIK)
		if len(company.Tickers) > 0 {
			fmt.Printf("   Tickers:    %s\n", strings.Join(company.Tickers, ", "))
		} else if company.Ticker != "" {
			fmt.Printf("   Ticker:     %s\n", company.Ticker)
		}
		if len(company.Exchanges) > 0 {
			fmt.Printf("   Exchanges:  %s\n", strings.Join(company.Exchanges, ", "))
		}
		if company.SICDescription != "" {
			fmt.Printf("   Industry:   %s (SIC %s)\n", company.SICDescription, company.SIC)
		}
		if company.StateOfIncorporation != "" {
			fmt.Printf("   Inc. in:    %s\n", company.StateOfIncorporation)
		}
		if company.FiscalYearEnd != "" {
			fmt.Printf("   FY end:     %s\n", company.FiscalYearEnd)
		}
		if a := company.BusinessAddress; a != nil {
			fmt.Printf("   Address:    %s, %s %s %s\n", a.Street1, a.City, a.StateOrCountry, a.ZipCode)
		}
		fmt.Printf("   Filings:    %d (last %s)\n", company.FilingCount, orDash(company.LastFilingDate))

		if withFilings {
			fmt.Println()
			printFilings(filings.Results)
		}
		return nil
	},
}

// --- Filings ---

var filingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "List or search filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		search := state.NewFilingSearch(api)

		cik, _ := cmd.Flags().GetString("cik")
		form, _ := cmd.Flags().GetString("form")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		keywords, _ := cmd.Flags().GetString("keywords")
		page, _ := cmd.Flags().GetInt("page")
		size := pageSize(cmd)

		if cik != "" {
			if cik, err = cikArg(cik); err != nil {
				return err
			}
		}

		var ls state.ListState[models.Filing]
		if keywords != "" {
			ls = search.Criteria(ctx, models.FilingSearchRequest{
				CIK: cik, FormType: form, DateFrom: from, DateTo: to,
				Keywords: keywords, Page: page, Size: size,
			})
			if ls.Error == "" {
				remember(keywords, "filings")
			}
		} else {
			ls = search.Filter(ctx, edgar.FilingQuery{
				CIK: cik, FormType: form, DateFrom: from, DateTo: to, Page: page, Size: size,
			})
		}
		return printList(ls, []string{"DATE", "FORM", "CIK", "COMPANY", "ACCESSION"},
			func(f models.Filing) []any {
				return []any{f.FilingDate, f.FormType, utils.TrimCIK(f.CIK), f.CompanyName, f.AccessionNumber}
			})
	},
}

var filingCmd = &cobra.Command{
	Use:   "filing <accession>",
	Short: "Show one filing and its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, ok := utils.NormalizeAccession(args[0])
		if !ok {
			return fmt.Errorf("invalid accession number %q", args[0])
		}
		snap := state.NewFiling(api).SetKey(cmd.Context(), acc)
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}

		f := snap.Data
		fmt.Printf("📄 %s · %s\n", f.FormType, labels.FormDescription(f.FormType))
		fmt.Printf("   Company:    %s (CIK %s)\n", f.CompanyName, utils.TrimCIK(f.CIK))
		fmt.Printf("   Accession:  %s\n", f.AccessionNumber)
		fmt.Printf("   Filed:      %s\n", f.FilingDate)
		if f.ReportDate != "" {
			fmt.Printf("   Period:     %s\n", f.ReportDate)
		}
		if f.Items != "" {
			fmt.Println("   Items:")
			for _, item := range strings.Split(f.Items, ",") {
				item = strings.TrimSpace(item)
				fmt.Printf("     %-6s %s\n", item, labels.ItemDescription(item))
			}
		}
		fmt.Printf("   Archive:    %s\n", archiveURL(f.CIK, f.AccessionNumber))
		if f.XBRLAvailable {
			fmt.Printf("   XBRL:       available (edgardash xbrl %s)\n", f.AccessionNumber)
		}
		if len(f.Documents) > 0 {
			fmt.Println()
			w := newTable("SEQ", "TYPE", "FILE", "SIZE", "DESCRIPTION")
			for _, d := range f.Documents {
				row(w, d.Sequence, d.Type, d.Filename, utils.FormatBytes(d.Size), orDash(d.Description))
			}
			w.Flush()
		}
		return nil
	},
}

// archiveURL is the filing's folder in the EDGAR archive.
func archiveURL(cik, accession string) string {
	return "https://www.sec.gov/Archives/edgar/data/" + utils.TrimCIK(cik) + "/" + utils.AccessionNoDashes(accession) + "/"
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the latest filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		snap := state.NewRecentFilings(api, limit).Load(cmd.Context())
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}
		printFilings(snap.Data)
		return nil
	},
}

// --- Dashboard ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Overview: totals, recent filings and recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		snap := state.NewDashboard(api, limit).Load(cmd.Context())
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}

		d := snap.Data
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  EDGAR Dashboard")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Companies:     %s\n", utils.FormatShares(d.Stats.TotalCompanies))
		fmt.Printf("  Filings:       %s\n", utils.FormatShares(d.Stats.TotalFilings))
		fmt.Printf("  Filed today:   %s\n", utils.FormatShares(d.Stats.FilingsToday))
		if d.Stats.LastUpdated != "" {
			fmt.Printf("  Last updated:  %s\n", d.Stats.LastUpdated)
		}

		if len(d.Stats.FilingsByForm) > 0 {
			forms := make([]string, 0, len(d.Stats.FilingsByForm))
			for form := range d.Stats.FilingsByForm {
				forms = append(forms, form)
			}
			sort.Slice(forms, func(i, j int) bool {
				return d.Stats.FilingsByForm[forms[i]] > d.Stats.FilingsByForm[forms[j]]
			})
			fmt.Println("\n  By form:")
			for _, form := range forms {
				fmt.Printf("    %-10s %10s\n", form, utils.FormatShares(d.Stats.FilingsByForm[form]))
			}
		}

		fmt.Println("\n📄 Recent filings")
		printFilings(d.RecentFilings)

		fmt.Println("\n🔍 Recent searches")
		if len(d.RecentSearches) == 0 {
			fmt.Println("No searches yet.")
		}
		for _, s := range d.RecentSearches {
			fmt.Printf("  %-30s %-10s %d results  %s\n", s.Query, orDash(s.SearchType), s.ResultCount, s.SearchedAt)
		}
		return nil
	},
}

// --- XBRL ---

var xbrlCmd = &cobra.Command{
	Use:   "xbrl [accession]",
	Short: "Show XBRL financials for a filing, or a concept history with --cik",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cik, _ := cmd.Flags().GetString("cik")
		concept, _ := cmd.Flags().GetString("concept")

		if cik != "" {
			taxonomy, _ := cmd.Flags().GetString("taxonomy")
			padded, ok := utils.NormalizeCIK(cik)
			if !ok {
				return fmt.Errorf("invalid CIK %q", cik)
			}
			if concept == "" {
				snap := state.NewCompanyFacts(api).SetKey(ctx, padded)
				if err := snapErr(snap.Error); err != nil {
					return err
				}
				if asJSON {
					return printJSON(snap.Data)
				}
				fmt.Printf("📊 %s (CIK %s)\n", snap.Data.EntityName, utils.TrimCIK(snap.Data.CIK))
				for tax, concepts := range snap.Data.Facts {
					fmt.Printf("   %s: %d concepts\n", tax, len(concepts))
				}
				return nil
			}
			hist, err := api.XBRL.ConceptHistory(ctx, padded, taxonomy, concept)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(hist)
			}
			fmt.Printf("📈 %s · %s\n", labels.ConceptLabel(hist.Concept), utils.TrimCIK(hist.CIK))
			w := newTable("PERIOD END", "FY", "FP", "FORM", "VALUE")
			for _, v := range hist.Values {
				row(w, v.PeriodEnd, v.FiscalYear, v.FiscalPeriod, v.Form, utils.FormatCompact(v.Value))
			}
			w.Flush()
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("an accession number or --cik is required")
		}
		acc, ok := utils.NormalizeAccession(args[0])
		if !ok {
			return fmt.Errorf("invalid accession number %q", args[0])
		}
		snap := state.NewFinancials(api).SetKey(ctx, acc)
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		if asJSON {
			return printJSON(snap.Data)
		}

		x := snap.Data
		fmt.Printf("📊 %s %s · FY%d %s (period end %s)\n", x.CompanyName, x.FormType, x.FiscalYear, x.FiscalPeriod, orDash(x.PeriodEnd))
		names := make([]string, 0, len(x.KeyMetrics))
		for name := range x.KeyMetrics {
			names = append(names, name)
		}
		sort.Strings(names)
		w := newTable("METRIC", "VALUE")
		for _, name := range names {
			row(w, labels.ConceptLabel(name), utils.FormatCompact(x.KeyMetrics[name]))
		}
		w.Flush()
		return nil
	},
}

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/labels"
	"github.com/seenimoa/edgardash/internal/state"
	"github.com/seenimoa/edgardash/pkg/models"
	"github.com/seenimoa/edgardash/pkg/utils"
)

func init() {
	for _, c := range []*cobra.Command{form13FCmd, form13DGCmd, form8KCmd, form3Cmd, form5Cmd, form6KCmd, form20FCmd} {
		c.Flags().String("accession", "", "show one filing by accession number")
		c.Flags().Int("recent", 0, "show the latest N filings")
		c.Flags().String("cik", "", "filings by or about this CIK")
		c.Flags().String("from", "", "filed on or after (YYYY-MM-DD)")
		c.Flags().String("to", "", "filed on or before (YYYY-MM-DD)")
		c.Flags().Int("page", 0, "page number (0-based)")
		c.Flags().Int("size", 0, "page size (default: saved preference)")
		formCmd.AddCommand(c)
	}

	form13FCmd.Flags().String("cusip", "", "reports holding this security")
	form13FCmd.Flags().String("filer", "", "reports by manager name")
	form13FCmd.Flags().Bool("portfolio", false, "with --cik, the manager's latest portfolio")
	form13FCmd.Flags().Int("top", 0, "top N securities across all managers")
	form13FCmd.Flags().StringSlice("compare", nil, "with --cik, compare two report periods, e.g. 2024-03-31,2024-06-30")

	form13DGCmd.Flags().String("cusip", "", "reports on this security")
	form13DGCmd.Flags().Bool("owners", false, "with --cusip, the current beneficial owners")
	form13DGCmd.Flags().String("filer", "", "reports by this filer CIK")
	form13DGCmd.Flags().Float64("min-percent", 0, "reports at or above this ownership percentage")
	form13DGCmd.Flags().String("schedule", "", "13D or 13G")

	form8KCmd.Flags().String("item", "", "reports disclosing this item, e.g. 2.02")
	form8KCmd.Flags().Bool("item-counts", false, "filing counts per item")

	for _, c := range []*cobra.Command{form3Cmd, form5Cmd} {
		c.Flags().String("owner", "", "filings by reporting owner name")
		c.Flags().String("symbol", "", "filings by trading symbol")
	}
	form6KCmd.Flags().String("symbol", "", "filings by trading symbol")
	form20FCmd.Flags().Int("year", 0, "filings for this fiscal year")
	form20FCmd.Flags().String("country", "", "filings by country of incorporation")

	remoteSearchCmd.Flags().StringSlice("forms", nil, "form types, e.g. 10-K,8-K")
	remoteSearchCmd.Flags().String("from", "", "filed on or after (YYYY-MM-DD)")
	remoteSearchCmd.Flags().String("to", "", "filed on or before (YYYY-MM-DD)")
	remoteSubmissionsCmd.Flags().Bool("sync", false, "store the company in the backend afterwards")
	remoteCmd.AddCommand(remoteSearchCmd, remoteSubmissionsCmd)

	rootCmd.AddCommand(formCmd, remoteCmd)
}

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Browse parsed filings by form type",
}

// errPrinted marks a lookup that already wrote its own output.
var errPrinted = errors.New("output printed")

// printed maps a successful self-printing lookup to errPrinted.
func printed(err error) error {
	if err == nil {
		return errPrinted
	}
	return err
}

// formView describes how one form type is listed.
type formView[T any] struct {
	api     *edgar.FormAPI[T]
	search  *state.FormSearch[T]
	headers []string
	render  func(T) []any
}

// run handles the flags every form command shares. special reports whether
// a form-specific flag selected the listing.
func (v formView[T]) run(cmd *cobra.Command, special func(ctx context.Context, page, size int) (state.ListState[T], bool, error)) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	if acc, _ := flags.GetString("accession"); acc != "" {
		norm, ok := utils.NormalizeAccession(acc)
		if !ok {
			return fmt.Errorf("invalid accession number %q", acc)
		}
		item, err := v.api.GetByAccession(ctx, norm)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(item)
		}
		w := newTable(v.headers...)
		row(w, v.render(item)...)
		return w.Flush()
	}
	if n, _ := flags.GetInt("recent"); n > 0 {
		items, err := v.api.Recent(ctx, n)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(items)
		}
		w := newTable(v.headers...)
		for _, item := range items {
			row(w, v.render(item)...)
		}
		return w.Flush()
	}

	page, _ := flags.GetInt("page")
	size := pageSize(cmd)
	if special != nil {
		ls, handled, err := special(ctx, page, size)
		if errors.Is(err, errPrinted) {
			return nil
		}
		if err != nil {
			return err
		}
		if handled {
			return printList(ls, v.headers, v.render)
		}
	}

	if cik, _ := flags.GetString("cik"); cik != "" {
		padded, err := cikArg(cik)
		if err != nil {
			return err
		}
		return printList(v.search.ByCIK(ctx, padded, page, size), v.headers, v.render)
	}
	from, to, err := dateRange(cmd)
	if err != nil {
		return err
	}
	if from != "" || to != "" {
		return printList(v.search.ByDateRange(ctx, from, to, page, size), v.headers, v.render)
	}
	return fmt.Errorf("nothing to look up: pass --accession, --recent, --cik or --from/--to")
}

// --- 13F ---

var form13FCmd = &cobra.Command{
	Use:   "13f",
	Short: "Institutional holdings reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm13FSearch(api)
		view := formView[models.Form13F]{
			api:     api.Form13F.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "FORM", "FILER", "PERIOD", "VALUE", "HOLDINGS", "ACCESSION"},
			render: func(f models.Form13F) []any {
				return []any{f.FiledDate, f.FormType, f.FilerName, f.ReportPeriod,
					utils.FormatCompact(float64(f.TotalValue)), f.HoldingsCount, f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form13F], bool, error) {
			flags := cmd.Flags()
			if top, _ := flags.GetInt("top"); top > 0 {
				return state.ListState[models.Form13F]{}, true, printed(showTopHoldings(ctx, top))
			}
			if periods, _ := flags.GetStringSlice("compare"); len(periods) > 0 {
				if len(periods) != 2 {
					return state.ListState[models.Form13F]{}, true, fmt.Errorf("--compare needs two periods")
				}
				cik, _ := flags.GetString("cik")
				padded, err := cikArg(cik)
				if err != nil {
					return state.ListState[models.Form13F]{}, true, err
				}
				return state.ListState[models.Form13F]{}, true, printed(showComparison(ctx, padded, periods[0], periods[1]))
			}
			if portfolio, _ := flags.GetBool("portfolio"); portfolio {
				cik, _ := flags.GetString("cik")
				padded, err := cikArg(cik)
				if err != nil {
					return state.ListState[models.Form13F]{}, true, err
				}
				return state.ListState[models.Form13F]{}, true, printed(showPortfolio(ctx, padded))
			}
			if cusip, _ := flags.GetString("cusip"); cusip != "" {
				cusip, err := cusipArg(cusip)
				if err != nil {
					return state.ListState[models.Form13F]{}, true, err
				}
				return s.ByCUSIP(ctx, cusip, page, size), true, nil
			}
			if filer, _ := flags.GetString("filer"); filer != "" {
				remember(filer, "form13f")
				return s.ByFilerName(ctx, filer, page, size), true, nil
			}
			return state.ListState[models.Form13F]{}, false, nil
		})
	},
}

func showTopHoldings(ctx context.Context, n int) error {
	snap := state.NewTopHoldings(api, n).Load(ctx)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap.Data)
	}
	w := newTable("CUSIP", "ISSUER", "VALUE", "SHARES", "HOLDERS")
	for _, h := range snap.Data {
		row(w, h.CUSIP, h.NameOfIssuer, utils.FormatCompact(float64(h.TotalValue)), utils.FormatShares(h.TotalShares), h.HolderCount)
	}
	return w.Flush()
}

func showPortfolio(ctx context.Context, cik string) error {
	snap := state.NewPortfolioSummary(api).SetKey(ctx, cik)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap.Data)
	}
	p := snap.Data
	fmt.Printf("💼 %s · %s\n", p.FilerName, p.ReportPeriod)
	fmt.Printf("   Total value: %s across %d holdings\n\n", utils.FormatUSD(float64(p.TotalValue)), p.HoldingsCount)
	w := newTable("ISSUER", "CUSIP", "VALUE", "SHARES", "WEIGHT")
	for _, h := range p.TopHoldings {
		weight := 0.0
		if p.TotalValue > 0 {
			weight = float64(h.Value) / float64(p.TotalValue) * 100
		}
		row(w, h.NameOfIssuer, h.CUSIP, utils.FormatCompact(float64(h.Value)), utils.FormatShares(h.Shares), utils.FormatPercent(weight))
	}
	return w.Flush()
}

func showComparison(ctx context.Context, cik, period1, period2 string) error {
	snap := state.NewPortfolioComparison(api, cik, period1, period2).Load(ctx)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap.Data)
	}
	c := snap.Data
	fmt.Printf("💼 CIK %s · %s → %s\n", utils.TrimCIK(c.CIK), c.Period1, c.Period2)
	fmt.Printf("   Total value: %s → %s (%s)\n\n", utils.FormatCompact(float64(c.TotalValue1)),
		utils.FormatCompact(float64(c.TotalValue2)), valueChange(c.TotalValue1, c.TotalValue2))
	w := newTable("ISSUER", "CUSIP", "CHANGE", "SHARES", "VALUE", "VALUE CHG")
	for _, h := range c.Changes {
		row(w, h.NameOfIssuer, h.CUSIP, h.ChangeType,
			utils.FormatShares(h.SharesBefore)+" → "+utils.FormatShares(h.SharesAfter),
			utils.FormatCompact(float64(h.ValueAfter)), valueChange(h.ValueBefore, h.ValueAfter))
	}
	return w.Flush()
}

// valueChange is the percentage change from before to after, or "-" when
// there was nothing before.
func valueChange(before, after int64) string {
	if before == 0 {
		return "-"
	}
	return utils.FormatChangePct(float64(after-before) / float64(before) * 100)
}

// --- 13D/G ---

var form13DGCmd = &cobra.Command{
	Use:   "13dg",
	Short: "Beneficial ownership reports (Schedule 13D and 13G)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm13DGSearch(api)
		view := formView[models.Form13DG]{
			api:     api.Form13DG.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "SCHEDULE", "ISSUER", "FILER", "PERCENT", "SHARES", "ACCESSION"},
			render: func(f models.Form13DG) []any {
				return []any{f.FiledDate, f.ScheduleType, f.IssuerName, orDash(f.FilerName),
					utils.FormatPercent(f.PercentOfClass), utils.FormatShares(f.SharesOwned), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form13DG], bool, error) {
			flags := cmd.Flags()
			cusip, _ := flags.GetString("cusip")
			owners, _ := flags.GetBool("owners")
			if owners && cusip == "" {
				return state.ListState[models.Form13DG]{}, true, fmt.Errorf("--owners needs --cusip")
			}
			if cusip != "" {
				cusip, err := cusipArg(cusip)
				if err != nil {
					return state.ListState[models.Form13DG]{}, true, err
				}
				if owners {
					return state.ListState[models.Form13DG]{}, true, printed(showOwners(ctx, cusip))
				}
				return s.ByCUSIP(ctx, cusip, page, size), true, nil
			}
			if filer, _ := flags.GetString("filer"); filer != "" {
				padded, err := cikArg(filer)
				if err != nil {
					return state.ListState[models.Form13DG]{}, true, err
				}
				return s.ByFiler(ctx, padded, page, size), true, nil
			}
			if pct, _ := flags.GetFloat64("min-percent"); pct > 0 {
				return s.ByThreshold(ctx, pct, page, size), true, nil
			}
			if schedule, _ := flags.GetString("schedule"); schedule != "" {
				return s.BySchedule(ctx, strings.ToUpper(schedule), page, size), true, nil
			}
			return state.ListState[models.Form13DG]{}, false, nil
		})
	},
}

func showOwners(ctx context.Context, cusip string) error {
	snap := state.NewOwners(api).SetKey(ctx, cusip)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap.Data)
	}
	w := newTable("OWNER", "TYPE", "SHARES", "PERCENT", "LATEST")
	for _, o := range snap.Data {
		row(w, o.Name, orDash(o.TypeOfPerson), utils.FormatShares(o.AggregateAmount), utils.FormatPercent(o.PercentOfClass), orDash(o.LatestFiledDate))
	}
	return w.Flush()
}

// --- 8-K ---

func itemNumbers(items []models.Item) string {
	nums := make([]string, len(items))
	for i, it := range items {
		nums[i] = it.Number
	}
	return orDash(strings.Join(nums, ", "))
}

var form8KCmd = &cobra.Command{
	Use:   "8k",
	Short: "Current reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm8KSearch(api)
		view := formView[models.Form8K]{
			api:     api.Form8K.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "EVENT", "COMPANY", "ITEMS", "ACCESSION"},
			render: func(f models.Form8K) []any {
				return []any{f.FiledDate, orDash(f.EventDate), f.CompanyName, itemNumbers(f.Items), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form8K], bool, error) {
			if counts, _ := cmd.Flags().GetBool("item-counts"); counts {
				return state.ListState[models.Form8K]{}, true, printed(showItemCounts(ctx))
			}
			if item, _ := cmd.Flags().GetString("item"); item != "" {
				if !labels.KnownItem(item) {
					return state.ListState[models.Form8K]{}, true,
						fmt.Errorf("unknown 8-K item %q, expected one of %s", item, strings.Join(labels.Items(), ", "))
				}
				return s.ByItem(ctx, item, page, size), true, nil
			}
			return state.ListState[models.Form8K]{}, false, nil
		})
	},
}

func showItemCounts(ctx context.Context) error {
	snap := state.NewItemCounts(api).Load(ctx)
	if err := snapErr(snap.Error); err != nil {
		return err
	}
	if asJSON {
		return printJSON(snap.Data)
	}
	w := newTable("ITEM", "COUNT", "BADGE", "DESCRIPTION")
	for _, c := range snap.Data {
		row(w, c.Item, utils.FormatShares(c.Count), labels.ItemBadge(c.Item), labels.ItemDescription(c.Item))
	}
	return w.Flush()
}

// --- Insider forms ---

func ownerNames(owners []models.ReportingOwner) string {
	names := make([]string, len(owners))
	for i, o := range owners {
		names[i] = o.Name
	}
	return orDash(strings.Join(names, "; "))
}

var form3Cmd = &cobra.Command{
	Use:   "3",
	Short: "Initial statements of beneficial ownership",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm3Search(api)
		view := formView[models.Form3]{
			api:     api.Form3.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "ISSUER", "SYMBOL", "OWNERS", "HOLDINGS", "ACCESSION"},
			render: func(f models.Form3) []any {
				return []any{f.FiledDate, f.IssuerName, orDash(f.TradingSymbol), ownerNames(f.ReportingOwners), len(f.Holdings), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form3], bool, error) {
			if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
				return s.ByOwner(ctx, owner, page, size), true, nil
			}
			if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
				return s.BySymbol(ctx, utils.NormalizeTicker(symbol), page, size), true, nil
			}
			return state.ListState[models.Form3]{}, false, nil
		})
	},
}

var form5Cmd = &cobra.Command{
	Use:   "5",
	Short: "Annual statements of changes in beneficial ownership",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm5Search(api)
		view := formView[models.Form5]{
			api:     api.Form5.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "ISSUER", "SYMBOL", "OWNERS", "TRANSACTIONS", "ACCESSION"},
			render: func(f models.Form5) []any {
				return []any{f.FiledDate, f.IssuerName, orDash(f.TradingSymbol), ownerNames(f.ReportingOwners), len(f.Transactions), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form5], bool, error) {
			if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
				return s.ByOwner(ctx, owner, page, size), true, nil
			}
			if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
				return s.BySymbol(ctx, utils.NormalizeTicker(symbol), page, size), true, nil
			}
			return state.ListState[models.Form5]{}, false, nil
		})
	},
}

// --- Foreign private issuers ---

var form6KCmd = &cobra.Command{
	Use:   "6k",
	Short: "Reports of foreign private issuers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm6KSearch(api)
		view := formView[models.Form6K]{
			api:     api.Form6K.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "REPORT", "COMPANY", "SUBJECT", "ACCESSION"},
			render: func(f models.Form6K) []any {
				return []any{f.FiledDate, orDash(f.ReportDate), f.CompanyName, orDash(f.Subject), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form6K], bool, error) {
			if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
				return s.BySymbol(ctx, utils.NormalizeTicker(symbol), page, size), true, nil
			}
			return state.ListState[models.Form6K]{}, false, nil
		})
	},
}

var form20FCmd = &cobra.Command{
	Use:   "20f",
	Short: "Annual reports of foreign private issuers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.NewForm20FSearch(api)
		view := formView[models.Form20F]{
			api:     api.Form20F.FormAPI,
			search:  &s.FormSearch,
			headers: []string{"FILED", "FY", "COMPANY", "COUNTRY", "STANDARD", "ACCESSION"},
			render: func(f models.Form20F) []any {
				return []any{f.FiledDate, f.FiscalYear, f.CompanyName, orDash(f.Country), orDash(f.AccountingStandard), f.AccessionNumber}
			},
		}
		return view.run(cmd, func(ctx context.Context, page, size int) (state.ListState[models.Form20F], bool, error) {
			if year, _ := cmd.Flags().GetInt("year"); year > 0 {
				return s.ByFiscalYear(ctx, year, page, size), true, nil
			}
			if country, _ := cmd.Flags().GetString("country"); country != "" {
				return s.ByCountry(ctx, country, page, size), true, nil
			}
			return state.ListState[models.Form20F]{}, false, nil
		})
	},
}

// --- Live EDGAR ---

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Query EDGAR directly through the backend",
}

var remoteSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "EDGAR full-text search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := edgar.RemoteSearchQuery{Query: args[0]}
		q.Forms, _ = cmd.Flags().GetStringSlice("forms")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		q.DateFrom, q.DateTo = from, to

		res, err := api.Remote.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		remember(q.Query, "remote")
		if asJSON {
			return printJSON(res)
		}
		w := newTable("FILED", "FORM", "ENTITY", "ACCESSION")
		for _, h := range res.Hits {
			row(w, h.FiledDate, h.FormType, h.EntityName, h.AccessionNumber)
		}
		w.Flush()
		fmt.Printf("\n%d of %d hits\n", len(res.Hits), res.Total)
		return nil
	},
}

var remoteSubmissionsCmd = &cobra.Command{
	Use:   "submissions <cik>",
	Short: "A company's submissions straight from EDGAR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := cikArg(args[0])
		if err != nil {
			return err
		}
		snap := state.NewRemoteSubmissions(api).SetKey(cmd.Context(), cik)
		if err := snapErr(snap.Error); err != nil {
			return err
		}

		if sync, _ := cmd.Flags().GetBool("sync"); sync {
			if _, err := api.Remote.Sync(cmd.Context(), cik); err != nil {
				return fmt.Errorf("sync %s: %w", cik, err)
			}
			if !asJSON {
				fmt.Printf("🔄 Synced %s into the backend\n", snap.Data.Name)
			}
		}
		if asJSON {
			return printJSON(snap.Data)
		}

		s := snap.Data
		fmt.Printf("🌐 %s (CIK %s)\n", s.Name, utils.TrimCIK(s.CIK))
		if len(s.Tickers) > 0 {
			fmt.Printf("   Tickers:  %s\n", strings.Join(s.Tickers, ", "))
		}
		if s.SICDescription != "" {
			fmt.Printf("   Industry: %s\n", s.SICDescription)
		}
		fmt.Println()
		printFilings(s.RecentFilings)
		return nil
	},
}

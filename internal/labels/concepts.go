// Package labels holds the static display tables: XBRL concept labels, 8-K
// item descriptions, form type descriptions and job status colors. The maps
// are never written after package initialization.
package labels

import (
	"strings"
	"unicode"
)

var conceptLabels = map[string]string{
	// income statement
	"Revenues":                                            "Revenue",
	"RevenueFromContractWithCustomerExcludingAssessedTax": "Revenue",
	"SalesRevenueNet":                                     "Revenue",
	"CostOfRevenue":                                       "Cost of Revenue",
	"CostOfGoodsAndServicesSold":                          "Cost of Goods Sold",
	"GrossProfit":                                         "Gross Profit",
	"OperatingExpenses":                                   "Operating Expenses",
	"ResearchAndDevelopmentExpense":                       "R&D Expense",
	"SellingGeneralAndAdministrativeExpense":              "SG&A Expense",
	"OperatingIncomeLoss":                                 "Operating Income",
	"InterestExpense":                                     "Interest Expense",
	"IncomeTaxExpenseBenefit":                             "Income Tax",
	"NetIncomeLoss":                                       "Net Income",
	"EarningsPerShareBasic":                               "EPS (Basic)",
	"EarningsPerShareDiluted":                             "EPS (Diluted)",
	"WeightedAverageNumberOfSharesOutstandingBasic":       "Weighted Avg. Shares (Basic)",
	"WeightedAverageNumberOfDilutedSharesOutstanding":     "Weighted Avg. Shares (Diluted)",

	// balance sheet
	"Assets":                                "Total Assets",
	"AssetsCurrent":                         "Current Assets",
	"CashAndCashEquivalentsAtCarryingValue": "Cash & Equivalents",
	"AccountsReceivableNetCurrent":          "Accounts Receivable",
	"InventoryNet":                          "Inventory",
	"PropertyPlantAndEquipmentNet":          "PP&E (Net)",
	"Goodwill":                              "Goodwill",
	"Liabilities":                           "Total Liabilities",
	"LiabilitiesCurrent":                    "Current Liabilities",
	"AccountsPayableCurrent":                "Accounts Payable",
	"LongTermDebt":                          "Long-Term Debt",
	"LongTermDebtNoncurrent":                "Long-Term Debt",
	"StockholdersEquity":                    "Stockholders' Equity",
	"LiabilitiesAndStockholdersEquity":      "Total Liabilities & Equity",
	"RetainedEarningsAccumulatedDeficit":    "Retained Earnings",
	"CommonStockSharesOutstanding":          "Shares Outstanding",

	// cash flow
	"NetCashProvidedByUsedInOperatingActivities": "Operating Cash Flow",
	"NetCashProvidedByUsedInInvestingActivities": "Investing Cash Flow",
	"NetCashProvidedByUsedInFinancingActivities": "Financing Cash Flow",
	"PaymentsToAcquirePropertyPlantAndEquipment": "Capital Expenditures",
	"PaymentsOfDividends":                        "Dividends Paid",
	"PaymentsForRepurchaseOfCommonStock":         "Share Repurchases",
	"DepreciationDepletionAndAmortization":       "D&A",
	"ShareBasedCompensation":                     "Stock-Based Compensation",

	// dei cover page
	"EntityCommonStockSharesOutstanding": "Shares Outstanding",
	"EntityPublicFloat":                  "Public Float",
}

// ConceptLabel returns a display label for an XBRL concept. A taxonomy
// prefix such as "us-gaap:" is ignored; unknown concepts are split at
// their CamelCase boundaries.
func ConceptLabel(concept string) string {
	if i := strings.LastIndexByte(concept, ':'); i >= 0 {
		concept = concept[i+1:]
	}
	if label, ok := conceptLabels[concept]; ok {
		return label
	}
	return SplitCamel(concept)
}

// SplitCamel turns "AccountsPayableCurrent" into "Accounts Payable Current".
// Runs of capitals stay together: "EBITDAMargin" becomes "EBITDA Margin".
func SplitCamel(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

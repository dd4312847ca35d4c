package labels

import (
	"sort"
	"strings"
)

var itemDescriptions = map[string]string{
	"1.01": "Entry into a Material Definitive Agreement",
	"1.02": "Termination of a Material Definitive Agreement",
	"1.03": "Bankruptcy or Receivership",
	"1.04": "Mine Safety - Reporting of Shutdowns and Patterns of Violations",
	"1.05": "Material Cybersecurity Incidents",
	"2.01": "Completion of Acquisition or Disposition of Assets",
	"2.02": "Results of Operations and Financial Condition",
	"2.03": "Creation of a Direct Financial Obligation",
	"2.04": "Triggering Events That Accelerate or Increase a Direct Financial Obligation",
	"2.05": "Costs Associated with Exit or Disposal Activities",
	"2.06": "Material Impairments",
	"3.01": "Notice of Delisting or Failure to Satisfy a Continued Listing Rule",
	"3.02": "Unregistered Sales of Equity Securities",
	"3.03": "Material Modification to Rights of Security Holders",
	"4.01": "Changes in Registrant's Certifying Accountant",
	"4.02": "Non-Reliance on Previously Issued Financial Statements",
	"5.01": "Changes in Control of Registrant",
	"5.02": "Departure or Election of Directors or Officers",
	"5.03": "Amendments to Articles of Incorporation or Bylaws",
	"5.04": "Temporary Suspension of Trading Under Employee Benefit Plans",
	"5.05": "Amendments to the Code of Ethics",
	"5.06": "Change in Shell Company Status",
	"5.07": "Submission of Matters to a Vote of Security Holders",
	"5.08": "Shareholder Director Nominations",
	"6.01": "ABS Informational and Computational Material",
	"6.02": "Change of Servicer or Trustee",
	"6.03": "Change in Credit Enhancement or Other External Support",
	"6.04": "Failure to Make a Required Distribution",
	"6.05": "Securities Act Updating Disclosure",
	"7.01": "Regulation FD Disclosure",
	"8.01": "Other Events",
	"9.01": "Financial Statements and Exhibits",
}

// Badge colors keyed by item section (the digit before the dot).
var sectionColors = map[byte]string{
	'1': "blue",   // registrant's business and operations
	'2': "green",  // financial information
	'3': "orange", // securities and trading markets
	'4': "red",    // accountants and financial statements
	'5': "purple", // governance and management
	'6': "gray",   // asset-backed securities
	'7': "teal",   // Regulation FD
	'8': "gray",
	'9': "gray",
}

// normalizeItem accepts "2.02", "Item 2.02" and "2.2".
func normalizeItem(item string) string {
	item = strings.TrimSpace(item)
	item = strings.TrimPrefix(strings.TrimPrefix(item, "Item "), "item ")
	if dot := strings.IndexByte(item, '.'); dot >= 0 && len(item)-dot == 2 {
		item = item[:dot+1] + "0" + item[dot+1:]
	}
	return item
}

// ItemDescription returns the title of an 8-K item, or "Item N" if unknown.
func ItemDescription(item string) string {
	n := normalizeItem(item)
	if d, ok := itemDescriptions[n]; ok {
		return d
	}
	return "Item " + n
}

// KnownItem reports whether item is a defined 8-K item number.
func KnownItem(item string) bool {
	_, ok := itemDescriptions[normalizeItem(item)]
	return ok
}

// ItemBadge returns the badge color for an 8-K item. Cybersecurity
// incidents and non-reliance notices are always red.
func ItemBadge(item string) string {
	n := normalizeItem(item)
	if n == "1.05" || n == "4.02" {
		return "red"
	}
	if n == "" {
		return "gray"
	}
	if c, ok := sectionColors[n[0]]; ok {
		return c
	}
	return "gray"
}

// Items returns the known item numbers in ascending order.
func Items() []string {
	out := make([]string, 0, len(itemDescriptions))
	for k := range itemDescriptions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

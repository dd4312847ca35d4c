package labels

import (
	"strings"

	"github.com/seenimoa/edgardash/pkg/models"
)

var formDescriptions = map[string]string{
	"10-K":         "Annual report",
	"10-Q":         "Quarterly report",
	"8-K":          "Current report",
	"S-1":          "Registration statement",
	"S-3":          "Shelf registration statement",
	"S-4":          "Registration statement for business combinations",
	"DEF 14A":      "Definitive proxy statement",
	"3":            "Initial statement of beneficial ownership",
	"4":            "Statement of changes in beneficial ownership",
	"5":            "Annual statement of changes in beneficial ownership",
	"13F-HR":       "Institutional holdings report",
	"13F-NT":       "Institutional holdings notice",
	"SC 13D":       "Beneficial ownership report (active)",
	"SC 13G":       "Beneficial ownership report (passive)",
	"SCHEDULE 13D": "Beneficial ownership report (active)",
	"SCHEDULE 13G": "Beneficial ownership report (passive)",
	"6-K":          "Foreign issuer current report",
	"20-F":         "Foreign issuer annual report",
	"40-F":         "Canadian issuer annual report",
	"11-K":         "Employee benefit plan annual report",
	"144":          "Notice of proposed sale of securities",
	"424B2":        "Prospectus",
	"424B5":        "Prospectus supplement",
	"SD":           "Specialized disclosure report",
}

// FormDescription describes an SEC form type. Amendments ("10-K/A") are
// described as their base form plus "(amendment)".
func FormDescription(formType string) string {
	ft := strings.ToUpper(strings.TrimSpace(formType))
	base, amended := strings.CutSuffix(ft, "/A")
	d, ok := formDescriptions[base]
	if !ok {
		return formType
	}
	if amended {
		return d + " (amendment)"
	}
	return d
}

var statusColors = map[models.JobStatus]string{
	models.JobPending:    "yellow",
	models.JobInProgress: "blue",
	models.JobCompleted:  "green",
	models.JobFailed:     "red",
	models.JobCancelled:  "gray",
}

var statusIcons = map[models.JobStatus]string{
	models.JobPending:    "⏳",
	models.JobInProgress: "🔄",
	models.JobCompleted:  "✅",
	models.JobFailed:     "❌",
	models.JobCancelled:  "🚫",
}

// StatusColor returns the display color for a job status.
func StatusColor(s models.JobStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "gray"
}

// StatusIcon returns an emoji for a job status.
func StatusIcon(s models.JobStatus) string {
	if i, ok := statusIcons[s]; ok {
		return i
	}
	return "•"
}

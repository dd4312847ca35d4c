package models

// Settings is the backend-held application configuration. It is the only
// backend entity the client mutates (read-modify-write via PUT /settings).
type Settings struct {
	ID                     string   `json:"id,omitempty"`
	EdgarUserAgent         string   `json:"edgarUserAgent"`
	RequestsPerSecond      int      `json:"requestsPerSecond"`
	AutoDownloadEnabled    bool     `json:"autoDownloadEnabled"`
	DownloadSchedule       string   `json:"downloadSchedule,omitempty"` // cron expression
	DefaultFormTypes       []string `json:"defaultFormTypes,omitempty"`
	RetentionDays          int      `json:"retentionDays,omitempty"`
	MaxConcurrentDownloads int      `json:"maxConcurrentDownloads,omitempty"`
	UpdatedAt              string   `json:"updatedAt,omitempty"`
}

// ExportFormat names the export payload type.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "CSV"
	ExportJSON ExportFormat = "JSON"
)

// ExportRequest is the body of POST /export/{csv|json}.
type ExportRequest struct {
	FilingIDs      []string             `json:"filingIds,omitempty"`
	SearchCriteria *FilingSearchRequest `json:"searchCriteria,omitempty"`
	Format         ExportFormat         `json:"format"`
}

package models

// JobStatus is the server-side state of a download job.
type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobFailed     JobStatus = "FAILED"
	JobCancelled  JobStatus = "CANCELLED"
)

// IsTerminal reports whether the job can no longer change state.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// DownloadJob is a backend download task. The client only observes it.
type DownloadJob struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"` // TICKERS, SUBMISSIONS, FILINGS, BULK
	Status         JobStatus `json:"status"`
	CIK            string    `json:"cik,omitempty"`
	Description    string    `json:"description,omitempty"`
	Progress       float64   `json:"progress"` // 0-100
	TotalItems     int64     `json:"totalItems,omitempty"`
	ProcessedItems int64     `json:"processedItems,omitempty"`
	FailedItems    int64     `json:"failedItems,omitempty"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	CreatedAt      string    `json:"createdAt,omitempty"`
	StartedAt      string    `json:"startedAt,omitempty"`
	CompletedAt    string    `json:"completedAt,omitempty"`
}

// AnyActive reports whether any job in jobs is still pending or running.
func AnyActive(jobs []DownloadJob) bool {
	for _, j := range jobs {
		if !j.Status.IsTerminal() {
			return true
		}
	}
	return false
}

// DownloadRequest starts a submissions, filings or bulk download.
type DownloadRequest struct {
	CIK       string   `json:"cik,omitempty"`
	CIKs      []string `json:"ciks,omitempty"`
	FormTypes []string `json:"formTypes,omitempty"`
	DateFrom  string   `json:"dateFrom,omitempty"`
	DateTo    string   `json:"dateTo,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

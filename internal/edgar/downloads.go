package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// DownloadsAPI starts, observes and cancels backend download jobs.
type DownloadsAPI struct {
	c *transport.Client
}

// StartTickers starts a download of the EDGAR ticker list.
func (a *DownloadsAPI) StartTickers(ctx context.Context) (models.DownloadJob, error) {
	return transport.Post[models.DownloadJob](ctx, a.c, "/downloads/tickers", nil)
}

// StartSubmissions starts a download of one company's submissions.
func (a *DownloadsAPI) StartSubmissions(ctx context.Context, cik string) (models.DownloadJob, error) {
	if err := require("cik", cik); err != nil {
		return models.DownloadJob{}, err
	}
	return transport.Post[models.DownloadJob](ctx, a.c, "/downloads/submissions", models.DownloadRequest{CIK: cik})
}

// StartFilings starts a download of a company's filings, optionally
// restricted to formTypes.
func (a *DownloadsAPI) StartFilings(ctx context.Context, cik string, formTypes []string) (models.DownloadJob, error) {
	if err := require("cik", cik); err != nil {
		return models.DownloadJob{}, err
	}
	req := models.DownloadRequest{CIK: cik, FormTypes: formTypes}
	return transport.Post[models.DownloadJob](ctx, a.c, "/downloads/filings", req)
}

// StartBulk starts a multi-company download.
func (a *DownloadsAPI) StartBulk(ctx context.Context, req models.DownloadRequest) (models.DownloadJob, error) {
	return transport.Post[models.DownloadJob](ctx, a.c, "/downloads/bulk", req)
}

// Job returns the current state of one job.
func (a *DownloadsAPI) Job(ctx context.Context, id string) (models.DownloadJob, error) {
	if err := require("job id", id); err != nil {
		return models.DownloadJob{}, err
	}
	return transport.Get[models.DownloadJob](ctx, a.c, "/downloads/jobs/"+transport.Segment(id))
}

// ActiveJobs returns every pending or running job.
func (a *DownloadsAPI) ActiveJobs(ctx context.Context) ([]models.DownloadJob, error) {
	return transport.Get[[]models.DownloadJob](ctx, a.c, "/downloads/jobs/active")
}

// Jobs returns a page of all jobs, newest first.
func (a *DownloadsAPI) Jobs(ctx context.Context, page, size int) (models.Page[models.DownloadJob], error) {
	return transport.Get[models.Page[models.DownloadJob]](ctx, a.c, pageQuery(page, size, DefaultJobsPageSize).With("/downloads/jobs"))
}

// CancelJob asks the backend to cancel a job. The job's new status is only
// observable through a later Job or ActiveJobs call.
func (a *DownloadsAPI) CancelJob(ctx context.Context, id string) error {
	if err := require("job id", id); err != nil {
		return err
	}
	_, err := transport.Delete[struct{}](ctx, a.c, "/downloads/jobs/"+transport.Segment(id))
	return err
}

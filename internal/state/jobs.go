package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/pkg/models"
)

// Default polling intervals.
const (
	DefaultJobInterval        = 2 * time.Second
	DefaultActiveJobsInterval = 5 * time.Second
)

// poll owns at most one running poller.
type poll struct {
	mu     sync.Mutex
	poller *infra.Poller
}

func (p *poll) start(ctx context.Context, interval time.Duration, fn infra.PollFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.poller.Running() {
		return
	}
	p.poller = infra.StartPoller(ctx, interval, fn)
}

// stop halts the poller. It must not be called from inside the poll function.
func (p *poll) stop() {
	p.mu.Lock()
	old := p.poller
	p.poller = nil
	p.mu.Unlock()
	old.Stop()
}

func (p *poll) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poller.Running()
}

// done returns a channel closed when the current poller exits, or nil if
// none was started.
func (p *poll) done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.poller == nil {
		return nil
	}
	return p.poller.Done()
}

// ---- Single job ----

// JobWatcher follows one download job, polling while it is pending or in
// progress.
type JobWatcher struct {
	cell[Snapshot[models.DownloadJob]]
	poll

	api      *edgar.DownloadsAPI
	interval time.Duration
	log      *slog.Logger
}

// NewJobWatcher returns an idle watcher. A zero interval uses
// DefaultJobInterval.
func NewJobWatcher(api *edgar.DownloadsAPI, interval time.Duration, log *slog.Logger) *JobWatcher {
	if interval <= 0 {
		interval = DefaultJobInterval
	}
	if log == nil {
		log = infra.Discard()
	}
	return &JobWatcher{api: api, interval: interval, log: log}
}

// State returns the current snapshot.
func (w *JobWatcher) State() Snapshot[models.DownloadJob] { return w.get() }

// Subscribe registers fn for every state change. fn runs on the polling
// goroutine and must not call Watch or Stop.
func (w *JobWatcher) Subscribe(fn func(Snapshot[models.DownloadJob])) (unsubscribe func()) {
	return w.subscribe(fn)
}

// Watch fetches job id and keeps polling until it reaches a terminal state,
// Stop is called or ctx is done. An empty id stops watching and clears the
// state without a request.
func (w *JobWatcher) Watch(ctx context.Context, id string) Snapshot[models.DownloadJob] {
	w.stop()
	if id == "" {
		w.reset(Snapshot[models.DownloadJob]{})
		return w.get()
	}

	snap, _ := w.fetch(ctx, id)
	if !active(snap) {
		return snap
	}

	w.log.Debug("polling download job", "job_id", id, "interval", w.interval)
	w.start(ctx, w.interval, func(ctx context.Context) bool {
		snap, current := w.fetch(ctx, id)
		if !current {
			// A newer fetch owns the state; the next tick decides.
			return true
		}
		if !active(snap) {
			w.log.Debug("download job settled", "job_id", id, "status", snap.Data.Status)
			return false
		}
		return true
	})
	return snap
}

// Refresh re-fetches the watched job once.
func (w *JobWatcher) Refresh(ctx context.Context) Snapshot[models.DownloadJob] {
	id := w.get().Data.ID
	if id == "" {
		return w.get()
	}
	snap, _ := w.fetch(ctx, id)
	return snap
}

// Stop ends polling. The last snapshot is kept.
func (w *JobWatcher) Stop() { w.stop() }

// Polling reports whether a poll loop is active.
func (w *JobWatcher) Polling() bool { return w.running() }

// Done is closed when the current poll loop exits.
func (w *JobWatcher) Done() <-chan struct{} { return w.done() }

func (w *JobWatcher) fetch(ctx context.Context, id string) (Snapshot[models.DownloadJob], bool) {
	return load(ctx, &w.cell, func(ctx context.Context) (models.DownloadJob, error) {
		return w.api.Job(ctx, id)
	})
}

// active reports whether a job snapshot should keep being polled. A failed
// poll keeps the previous job, so polling continues until the job itself
// settles.
func active(s Snapshot[models.DownloadJob]) bool {
	return s.Loaded && !s.Data.Status.IsTerminal()
}

// ---- Active job list ----

// ActiveJobs tracks every non-terminal job, polling while any remains.
type ActiveJobs struct {
	cell[Snapshot[[]models.DownloadJob]]
	poll

	api      *edgar.DownloadsAPI
	interval time.Duration
	log      *slog.Logger

	ctxMu sync.Mutex
	ctx   context.Context
}

// NewActiveJobs returns an idle tracker. A zero interval uses
// DefaultActiveJobsInterval.
func NewActiveJobs(api *edgar.DownloadsAPI, interval time.Duration, log *slog.Logger) *ActiveJobs {
	if interval <= 0 {
		interval = DefaultActiveJobsInterval
	}
	if log == nil {
		log = infra.Discard()
	}
	return &ActiveJobs{api: api, interval: interval, log: log}
}

// State returns the current snapshot.
func (a *ActiveJobs) State() Snapshot[[]models.DownloadJob] { return a.get() }

// Subscribe registers fn for every state change. fn runs on the polling
// goroutine and must not call Start or Stop.
func (a *ActiveJobs) Subscribe(fn func(Snapshot[[]models.DownloadJob])) (unsubscribe func()) {
	return a.subscribe(fn)
}

// Start fetches the list and polls while any job is active. ctx bounds
// every poll loop started later by Refresh.
func (a *ActiveJobs) Start(ctx context.Context) Snapshot[[]models.DownloadJob] {
	a.ctxMu.Lock()
	a.ctx = ctx
	a.ctxMu.Unlock()
	return a.Refresh(ctx)
}

// Refresh re-fetches the list and resumes polling if a job became active.
func (a *ActiveJobs) Refresh(ctx context.Context) Snapshot[[]models.DownloadJob] {
	snap, _ := a.fetch(ctx)
	if snap.Loaded && models.AnyActive(snap.Data) {
		a.start(a.pollContext(ctx), a.interval, a.tick)
	}
	return snap
}

// Stop ends polling.
func (a *ActiveJobs) Stop() { a.stop() }

// Polling reports whether a poll loop is active.
func (a *ActiveJobs) Polling() bool { return a.running() }

// Done is closed when the current poll loop exits.
func (a *ActiveJobs) Done() <-chan struct{} { return a.done() }

func (a *ActiveJobs) tick(ctx context.Context) bool {
	snap, current := a.fetch(ctx)
	if !current {
		return true
	}
	if snap.Loaded && !models.AnyActive(snap.Data) {
		a.log.Debug("no active download jobs, polling stopped")
		return false
	}
	return true
}

func (a *ActiveJobs) fetch(ctx context.Context) (Snapshot[[]models.DownloadJob], bool) {
	return load(ctx, &a.cell, a.api.ActiveJobs)
}

func (a *ActiveJobs) pollContext(fallback context.Context) context.Context {
	a.ctxMu.Lock()
	defer a.ctxMu.Unlock()
	if a.ctx != nil {
		return a.ctx
	}
	return fallback
}

// ---- Job actions ----

// ActionState is the observable state of the download actions.
type ActionState struct {
	Busy    bool
	Error   string
	LastJob *models.DownloadJob
}

// Downloads starts and cancels jobs. Failures are recorded and returned, and
// every action refreshes the active job list.
type Downloads struct {
	cell[ActionState]
	api    *edgar.DownloadsAPI
	active *ActiveJobs
}

// NewDownloads returns the action container; active may be nil.
func NewDownloads(api *edgar.DownloadsAPI, active *ActiveJobs) *Downloads {
	return &Downloads{api: api, active: active}
}

// State returns the current snapshot.
func (d *Downloads) State() ActionState { return d.get() }

// Subscribe registers fn for every state change.
func (d *Downloads) Subscribe(fn func(ActionState)) (unsubscribe func()) {
	return d.subscribe(fn)
}

// StartTickers starts a ticker list download.
func (d *Downloads) StartTickers(ctx context.Context) (models.DownloadJob, error) {
	return d.startJob(ctx, d.api.StartTickers)
}

// StartSubmissions starts a submissions download for cik.
func (d *Downloads) StartSubmissions(ctx context.Context, cik string) (models.DownloadJob, error) {
	return d.startJob(ctx, func(ctx context.Context) (models.DownloadJob, error) {
		return d.api.StartSubmissions(ctx, cik)
	})
}

// StartFilings starts a filings download for cik.
func (d *Downloads) StartFilings(ctx context.Context, cik string, formTypes []string) (models.DownloadJob, error) {
	return d.startJob(ctx, func(ctx context.Context) (models.DownloadJob, error) {
		return d.api.StartFilings(ctx, cik, formTypes)
	})
}

// StartBulk starts a bulk download.
func (d *Downloads) StartBulk(ctx context.Context, req models.DownloadRequest) (models.DownloadJob, error) {
	return d.startJob(ctx, func(ctx context.Context) (models.DownloadJob, error) {
		return d.api.StartBulk(ctx, req)
	})
}

// Cancel asks the backend to cancel job id.
func (d *Downloads) Cancel(ctx context.Context, id string) error {
	_, err := d.run(ctx, func(ctx context.Context) (*models.DownloadJob, error) {
		return nil, d.api.CancelJob(ctx, id)
	})
	return err
}

func (d *Downloads) startJob(ctx context.Context, fn func(context.Context) (models.DownloadJob, error)) (models.DownloadJob, error) {
	job, err := d.run(ctx, func(ctx context.Context) (*models.DownloadJob, error) {
		job, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return &job, nil
	})
	if job == nil {
		return models.DownloadJob{}, err
	}
	return *job, err
}

func (d *Downloads) run(ctx context.Context, fn func(context.Context) (*models.DownloadJob, error)) (*models.DownloadJob, error) {
	token := d.begin(func(s *ActionState) {
		s.Busy = true
		s.Error = ""
	})

	job, err := fn(ctx)

	d.commit(token, func(s *ActionState) {
		s.Busy = false
		if err != nil {
			s.Error = err.Error()
			return
		}
		if job != nil {
			s.LastJob = job
		}
	})

	if err == nil && d.active != nil {
		d.active.Refresh(ctx)
	}
	return job, err
}

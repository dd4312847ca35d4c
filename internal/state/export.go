package state

import (
	"context"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// ExportState is the observable state of the exporter.
type ExportState struct {
	Exporting bool
	Error     string
	LastFile  string
}

// Exporter downloads filing exports into a directory.
type Exporter struct {
	cell[ExportState]
	api  *edgar.ExportAPI
	dir  string
	name string
}

// NewExporter writes exports into dir.
func NewExporter(api *edgar.ExportAPI, dir string) *Exporter {
	return &Exporter{api: api, dir: dir}
}

// WithName makes exports write to name instead of filings-export.<ext>.
func (e *Exporter) WithName(name string) *Exporter {
	e.name = name
	return e
}

// State returns the current snapshot.
func (e *Exporter) State() ExportState { return e.get() }

// Subscribe registers fn for every state change.
func (e *Exporter) Subscribe(fn func(ExportState)) (unsubscribe func()) {
	return e.subscribe(fn)
}

// CSV exports filings by id or by criteria and returns the written path.
func (e *Exporter) CSV(ctx context.Context, ids []string, criteria *models.FilingSearchRequest) (string, error) {
	return e.export(ctx, models.ExportCSV, func(ctx context.Context) (*transport.Blob, error) {
		return e.api.CSV(ctx, ids, criteria)
	})
}

// JSON is CSV with a JSON payload.
func (e *Exporter) JSON(ctx context.Context, ids []string, criteria *models.FilingSearchRequest) (string, error) {
	return e.export(ctx, models.ExportJSON, func(ctx context.Context) (*transport.Blob, error) {
		return e.api.JSON(ctx, ids, criteria)
	})
}

func (e *Exporter) export(ctx context.Context, format models.ExportFormat, fetch func(context.Context) (*transport.Blob, error)) (string, error) {
	token := e.begin(func(s *ExportState) {
		s.Exporting = true
		s.Error = ""
	})

	path, err := func() (string, error) {
		blob, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		name := e.name
		if name == "" {
			name = edgar.DefaultName(format)
		}
		return e.api.Save(e.dir, name, blob)
	}()

	e.commit(token, func(s *ExportState) {
		s.Exporting = false
		if err != nil {
			s.Error = err.Error()
			return
		}
		s.LastFile = path
	})
	return path, err
}

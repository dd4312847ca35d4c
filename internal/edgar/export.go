package edgar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// Default export file names.
const (
	DefaultCSVName  = "filings-export.csv"
	DefaultJSONName = "filings-export.json"
)

// ExportAPI downloads filings as CSV or JSON files.
type ExportAPI struct {
	c *transport.Client
}

// CSV exports the filings named by ids, or those matching criteria when ids
// is empty. Either may be nil.
func (a *ExportAPI) CSV(ctx context.Context, ids []string, criteria *models.FilingSearchRequest) (*transport.Blob, error) {
	return a.export(ctx, "/export/csv", models.ExportCSV, ids, criteria)
}

// JSON is CSV with a JSON payload.
func (a *ExportAPI) JSON(ctx context.Context, ids []string, criteria *models.FilingSearchRequest) (*transport.Blob, error) {
	return a.export(ctx, "/export/json", models.ExportJSON, ids, criteria)
}

func (a *ExportAPI) export(ctx context.Context, path string, format models.ExportFormat, ids []string, criteria *models.FilingSearchRequest) (*transport.Blob, error) {
	req := models.ExportRequest{FilingIDs: ids, SearchCriteria: criteria, Format: format}
	return a.c.DownloadFile(ctx, path, req)
}

// DefaultName returns the file name used for format when the caller gives none.
func DefaultName(format models.ExportFormat) string {
	if format == models.ExportJSON {
		return DefaultJSONName
	}
	return DefaultCSVName
}

// Save writes blob to dir/name and returns the full path. An empty name
// falls back to the server-suggested file name, then DefaultCSVName. The
// file is written atomically.
func (a *ExportAPI) Save(dir, name string, blob *transport.Blob) (string, error) {
	if blob == nil {
		return "", fmt.Errorf("save export: empty payload")
	}
	if name == "" {
		name = blob.Filename
	}
	if name == "" {
		name = DefaultCSVName
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	if _, err := tmp.Write(blob.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save export: %w", err)
	}
	return path, nil
}

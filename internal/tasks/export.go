package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistx/internal/formatter"
	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/services"
	"github.com/desertthunder/setlistx/internal/shared"
)

const (
	defaultFormat    = "csv"
	defaultOutputDir = "outputs"
)

// Subject selects which setlist listing an export walks.
type Subject int

const (
	SubjectUser   Subject = iota // Setlists a setlist.fm user attended
	SubjectArtist                // Setlists an artist performed, by MusicBrainz ID
)

func (s Subject) String() string {
	switch s {
	case SubjectUser:
		return "user"
	case SubjectArtist:
		return "artist"
	default:
		return fmt.Sprintf("subject(%d)", int(s))
	}
}

// ExportRequest describes one export run.
type ExportRequest struct {
	Subject   Subject
	ID        string // Username or artist MBID, also the output file stem
	Format    string // csv, json, markdown or txt (default: csv)
	OutputDir string // Default: outputs
}

// ExportResult contains the data and output of a finished export.
type ExportResult struct {
	Setlists  []models.Setlist
	Path      string // Written file
	Pages     int    // Pages fetched
	SongCount int    // Songs across every setlist
}

// ExportEngine fetches every setlist of a subject and writes them to a single file.
type ExportEngine struct {
	svc    services.Service
	logger *log.Logger
}

// NewExportEngine creates an [ExportEngine]. A nil logger discards output.
func NewExportEngine(svc services.Service, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ExportEngine{svc: svc, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *ExportEngine) validate(req *ExportRequest) error {
	if e.svc == nil {
		return fmt.Errorf("%w: setlist service not initialized", shared.ErrServiceUnavailable)
	}
	if req.Subject != SubjectUser && req.Subject != SubjectArtist {
		return fmt.Errorf("%w: unknown export subject %s", shared.ErrInvalidArgument, req.Subject)
	}
	if req.ID == "" {
		return fmt.Errorf("%w: %s ID", shared.ErrMissingArgument, req.Subject)
	}
	if strings.ContainsAny(req.ID, `/\`) || req.ID == "." || req.ID == ".." {
		return fmt.Errorf("%w: %s ID %q cannot be used as a file name", shared.ErrInvalidArgument, req.Subject, req.ID)
	}

	if req.Format == "" {
		req.Format = defaultFormat
	}
	if !shared.IsExportFormat(req.Format) {
		return fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, req.Format)
	}
	if req.OutputDir == "" {
		req.OutputDir = defaultOutputDir
	}
	return nil
}

// Run fetches every page of the requested listing, then writes the export file.
//
// Validation happens before any request is made. Any fetch or write failure aborts the run with no partial file.
func (e *ExportEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, req ExportRequest) (*ExportResult, error) {
	if err := e.validate(&req); err != nil {
		return nil, err
	}

	logger := e.logger.With("subject", req.Subject.String(), "id", req.ID)
	logger.Info("starting export", "service", e.svc.Name(), "format", req.Format)
	e.sendProgress(progress, fetchingUpdate(req))

	pages := 0
	onPage := func(page services.PageInfo) {
		pages = page.Page
		e.sendProgress(progress, fetchPageUpdate(page))
	}

	var (
		setlists []models.Setlist
		err      error
	)
	switch req.Subject {
	case SubjectArtist:
		setlists, err = e.svc.AllSetlistsForArtist(ctx, req.ID, onPage)
	default:
		setlists, err = e.svc.AllSetlistsForUser(ctx, req.ID, onPage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch setlists for %s %s: %w", req.Subject, req.ID, err)
	}
	logger.Info("fetched setlists", "count", len(setlists), "pages", pages)

	e.sendProgress(progress, writeExportUpdate(len(setlists), req.Format))
	path, err := formatter.WriteExport(setlists, req.ID, req.OutputDir, req.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	result := &ExportResult{
		Setlists:  setlists,
		Path:      path,
		Pages:     pages,
		SongCount: countSongs(setlists),
	}

	logger.Info("export complete", "path", path, "setlists", len(setlists), "songs", result.SongCount)
	e.sendProgress(progress, doneUpdate(result))
	return result, nil
}

func countSongs(setlists []models.Setlist) int {
	n := 0
	for _, s := range setlists {
		for _, set := range s.Sets {
			n += len(set.Songs)
		}
	}
	return n
}

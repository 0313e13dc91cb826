package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/services"
	"github.com/desertthunder/setlistx/internal/shared"
	th "github.com/desertthunder/setlistx/internal/testing"
)

// mockService serves canned pages of setlists and records which listing was asked for.
type mockService struct {
	pages      [][]models.Setlist
	err        error
	userCalls  []string
	artistCall []string
}

func (m *mockService) Name() string {
	return "mock"
}

func (m *mockService) AllSetlistsForArtist(ctx context.Context, artistID string, onPage services.PageFunc) ([]models.Setlist, error) {
	m.artistCall = append(m.artistCall, artistID)
	return m.serve(onPage)
}

func (m *mockService) AllSetlistsForUser(ctx context.Context, username string, onPage services.PageFunc) ([]models.Setlist, error) {
	m.userCalls = append(m.userCalls, username)
	return m.serve(onPage)
}

func (m *mockService) serve(onPage services.PageFunc) ([]models.Setlist, error) {
	if m.err != nil {
		return nil, m.err
	}

	total := 0
	for _, page := range m.pages {
		total += len(page)
	}

	var all []models.Setlist
	for i, page := range m.pages {
		all = append(all, page...)
		if onPage != nil {
			onPage(services.PageInfo{Page: i + 1, PageCount: len(m.pages), Items: len(page), Total: total})
		}
	}
	return all, nil
}

func makeSetlist(id string, venue string, songs ...string) models.Setlist {
	list := make([]models.Song, 0, len(songs))
	for _, name := range songs {
		list = append(list, models.NewSong(name, nil))
	}
	return models.NewSetlist(
		id,
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		models.NewArtist("a1", "Phoebe Bridgers"),
		models.NewVenue("v-"+id, venue, "Los Angeles", "United States"),
		[]models.Set{models.NewSet(list)},
	)
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	var updates []ProgressUpdate
	for {
		select {
		case u := <-ch:
			updates = append(updates, u)
		default:
			return updates
		}
	}
}

func TestExportEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Run", func(t *testing.T) {
		t.Run("Writes User Export", func(t *testing.T) {
			svc := &mockService{pages: [][]models.Setlist{
				{makeSetlist("s1", "Hollywood Bowl", "Motion Sickness", "Kyoto"), makeSetlist("s2", "", "Garden Song")},
				{makeSetlist("s3", "Greek Theatre", "I Know the End")},
			}}
			engine := NewExportEngine(svc, nil)
			dir := t.TempDir()

			progress := make(chan ProgressUpdate, 20)
			result, err := engine.Run(ctx, progress, ExportRequest{Subject: SubjectUser, ID: "jdoe", OutputDir: dir})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(svc.userCalls) != 1 || svc.userCalls[0] != "jdoe" {
				t.Errorf("expected one user listing for jdoe, got %v", svc.userCalls)
			}
			if len(result.Setlists) != 3 {
				t.Errorf("expected 3 setlists, got %d", len(result.Setlists))
			}
			if result.Pages != 2 {
				t.Errorf("expected 2 pages, got %d", result.Pages)
			}
			if result.SongCount != 4 {
				t.Errorf("expected 4 songs, got %d", result.SongCount)
			}
			if result.Path != filepath.Join(dir, "jdoe_setlists.csv") {
				t.Errorf("unexpected path %s", result.Path)
			}

			content := th.MustReadFile(t, result.Path)
			lines := strings.Split(strings.TrimRight(content, "\r\n"), "\r\n")
			if len(lines) != 4 {
				t.Fatalf("expected header + 3 rows, got %d: %q", len(lines), content)
			}
			if !strings.Contains(lines[2], "Unknown venue") {
				t.Errorf("expected unknown venue on row 2, got %q", lines[2])
			}

			updates := drain(progress)
			var phases []string
			for _, u := range updates {
				phases = append(phases, u.Phase.String())
			}
			want := "fetch_page,fetch_page,fetch_page,write_export,done"
			if got := strings.Join(phases, ","); got != want {
				t.Errorf("expected phases %s, got %s", want, got)
			}

			last := updates[len(updates)-1]
			if data, ok := last.Data.(*ExportResult); !ok || data != result {
				t.Errorf("expected done update to carry the result, got %#v", last.Data)
			}
			if updates[2].Step != 2 || updates[2].Total != 2 {
				t.Errorf("unexpected page update %+v", updates[2])
			}
		})

		t.Run("Writes Artist Export", func(t *testing.T) {
			svc := &mockService{pages: [][]models.Setlist{{makeSetlist("s1", "Hollywood Bowl", "Kyoto")}}}
			engine := NewExportEngine(svc, nil)
			dir := t.TempDir()

			result, err := engine.Run(ctx, nil, ExportRequest{
				Subject:   SubjectArtist,
				ID:        "a1",
				Format:    "json",
				OutputDir: dir,
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(svc.artistCall) != 1 || len(svc.userCalls) != 0 {
				t.Errorf("expected only an artist listing, got artist=%v user=%v", svc.artistCall, svc.userCalls)
			}
			if filepath.Base(result.Path) != "a1_setlists.json" {
				t.Errorf("unexpected file %s", result.Path)
			}
			th.AssertFileExists(t, result.Path)
		})

		t.Run("Does Not Block On Full Channel", func(t *testing.T) {
			pages := make([][]models.Setlist, 10)
			for i := range pages {
				pages[i] = []models.Setlist{makeSetlist(fmt.Sprintf("s%d", i), "Venue", "Song")}
			}
			engine := NewExportEngine(&mockService{pages: pages}, nil)

			dir := t.TempDir()
			progress := make(chan ProgressUpdate, 1)
			done := make(chan error, 1)
			go func() {
				_, err := engine.Run(ctx, progress, ExportRequest{Subject: SubjectUser, ID: "jdoe", OutputDir: dir})
				done <- err
			}()

			select {
			case err := <-done:
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("export blocked on a full progress channel")
			}
		})

		t.Run("Fetch Failure Writes Nothing", func(t *testing.T) {
			svc := &mockService{err: fmt.Errorf("%w: boom", shared.ErrAPIRequest)}
			engine := NewExportEngine(svc, nil)
			dir := filepath.Join(t.TempDir(), "out")

			_, err := engine.Run(ctx, nil, ExportRequest{Subject: SubjectUser, ID: "jdoe", OutputDir: dir})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "user jdoe") {
				t.Errorf("expected subject in error, got %v", err)
			}
			if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
				t.Error("expected no output directory after a failed fetch")
			}
		})
	})

	t.Run("Validation", func(t *testing.T) {
		svc := &mockService{}

		tc := []struct {
			name   string
			engine *ExportEngine
			req    ExportRequest
			want   error
		}{
			{"nil service", NewExportEngine(nil, nil), ExportRequest{ID: "jdoe"}, shared.ErrServiceUnavailable},
			{"empty ID", NewExportEngine(svc, nil), ExportRequest{Subject: SubjectUser}, shared.ErrMissingArgument},
			{"unknown subject", NewExportEngine(svc, nil), ExportRequest{Subject: Subject(9), ID: "jdoe"}, shared.ErrInvalidArgument},
			{"path in ID", NewExportEngine(svc, nil), ExportRequest{ID: "../jdoe"}, shared.ErrInvalidArgument},
			{"unsupported format", NewExportEngine(svc, nil), ExportRequest{ID: "jdoe", Format: "xml"}, shared.ErrUnsupportedFormat},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.engine.Run(ctx, nil, tt.req)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}

		if len(svc.userCalls)+len(svc.artistCall) != 0 {
			t.Error("expected no fetch for an invalid request")
		}
	})
}

func TestPhase(t *testing.T) {
	tc := []struct {
		phase Phase
		want  string
	}{
		{FetchPage, "fetch_page"},
		{WriteExport, "write_export"},
		{Done, "done"},
		{Phase(99), ""},
	}

	for _, tt := range tc {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

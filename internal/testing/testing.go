// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Song builds a setlist.fm song fragment.
func Song(name string) map[string]any {
	return map[string]any{"name": name}
}

// TapeSong builds a song fragment flagged as played from tape.
func TapeSong(name string) map[string]any {
	return map[string]any{"name": name, "tape": "true"}
}

// CoverSong builds a song fragment covering another artist.
func CoverSong(name, mbid, artist string) map[string]any {
	return map[string]any{
		"name":  name,
		"cover": map[string]any{"mbid": mbid, "name": artist},
	}
}

// Set builds a set fragment from song fragments.
func Set(songs ...map[string]any) map[string]any {
	if songs == nil {
		songs = []map[string]any{}
	}
	return map[string]any{"song": songs}
}

// Setlist builds a setlist.fm setlist fragment. An empty venueName omits the key.
func Setlist(id, eventDate, venueName string, sets ...map[string]any) map[string]any {
	venue := map[string]any{
		"id": "venue-" + id,
		"city": map[string]any{
			"name":    "London",
			"country": map[string]any{"code": "GB", "name": "United Kingdom"},
		},
	}
	if venueName != "" {
		venue["name"] = venueName
	}
	if sets == nil {
		sets = []map[string]any{}
	}

	return map[string]any{
		"id":        id,
		"eventDate": eventDate,
		"artist":    map[string]any{"mbid": "a74b1b7f-71a5-4011-9441-d0b5e4122711", "name": "Radiohead"},
		"venue":     venue,
		"sets":      map[string]any{"set": sets},
	}
}

// Page builds a paginated setlist response.
func Page(total, perPage, page int, setlists ...map[string]any) map[string]any {
	if setlists == nil {
		setlists = []map[string]any{}
	}
	return map[string]any{
		"type":         "setlists",
		"itemsPerPage": perPage,
		"page":         page,
		"total":        total,
		"setlist":      setlists,
	}
}

// Paginate splits total generated setlists into pages of perPage, keyed by 1-based page number.
func Paginate(total, perPage int) map[int]map[string]any {
	pages := make(map[int]map[string]any)
	for i := 0; i < total; i++ {
		page := i/perPage + 1
		if pages[page] == nil {
			pages[page] = Page(total, perPage, page)
		}
		setlist := Setlist(fmt.Sprintf("s%03d", i), "01-02-2020", fmt.Sprintf("Venue %d", i), Set(Song("Creep")))
		pages[page]["setlist"] = append(pages[page]["setlist"].([]map[string]any), setlist)
	}
	if total == 0 {
		pages[1] = Page(0, perPage, 1)
	}
	return pages
}

// RecordedRequest captures the parts of a request the setlist.fm fake cares about.
type RecordedRequest struct {
	Path   string
	Page   int
	APIKey string
	Accept string
}

// SetlistFMServer is an [httptest.Server] serving fixed pages of setlists and recording each request.
//
// Pages not present in the map get a 404 in the setlist.fm error format.
type SetlistFMServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []RecordedRequest
	pages    map[int]map[string]any
}

// NewSetlistFMServer starts a fake setlist.fm API closed at the end of the test.
func NewSetlistFMServer(t *testing.T, pages map[int]map[string]any) *SetlistFMServer {
	t.Helper()

	s := &SetlistFMServer{pages: pages}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *SetlistFMServer) handle(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("p"))
	if err != nil {
		page = 0
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Path:   r.URL.Path,
		Page:   page,
		APIKey: r.Header.Get("x-api-key"),
		Accept: r.Header.Get("Accept"),
	})
	body, ok := s.pages[page]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"code": 404, "status": "Not Found", "message": "not found"})
		return
	}
	json.NewEncoder(w).Encode(body)
}

// Requests returns a copy of the requests received so far.
func (s *SetlistFMServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

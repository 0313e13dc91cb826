// setlist.fm API implementation of [Service]
//
// Requests are authenticated with a static API key and spaced out by a [Gate].
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/shared"
	json "github.com/goccy/go-json"
)

const (
	setlistFMBaseURL     = "https://api.setlist.fm/rest/1.0"
	maxRequestsPerSecond = 16
	defaultTimeout       = 30 * time.Second
	defaultUserAgent     = "setlistx"

	artistSetlistsPath = "/artist/%s/setlists"
	userAttendedPath   = "/user/%s/attended"
)

// SetlistFMOpts configures a [SetlistFMService]. Zero values select defaults.
type SetlistFMOpts struct {
	BaseURL    string       // Defaults to https://api.setlist.fm/rest/1.0
	HTTPClient *http.Client // Defaults to a client with a 30s timeout
	Gate       Gate         // Defaults to 16 requests per second
	UserAgent  string
	Logger     *log.Logger // Defaults to discarding output
}

// SetlistFMService implements the Service interface for the setlist.fm REST API.
type SetlistFMService struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	gate       Gate
	logger     *log.Logger
}

// NewSetlistFMService creates a new setlist.fm service with the given API key.
func NewSetlistFMService(apiKey string, opts SetlistFMOpts) (*SetlistFMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: setlist.fm API key is empty", shared.ErrMissingCredentials)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = setlistFMBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Gate == nil {
		opts.Gate = NewRateGate(maxRequestsPerSecond)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &SetlistFMService{
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		gate:       opts.Gate,
		logger:     opts.Logger,
	}, nil
}

func (s *SetlistFMService) Name() string {
	return "setlist.fm"
}

// AllSetlistsForArtist retrieves every setlist of the artist with the given MusicBrainz ID.
func (s *SetlistFMService) AllSetlistsForArtist(ctx context.Context, artistID string, onPage PageFunc) ([]models.Setlist, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artist ID", shared.ErrMissingArgument)
	}
	return s.allSetlists(ctx, fmt.Sprintf(artistSetlistsPath, url.PathEscape(artistID)), onPage)
}

// AllSetlistsForUser retrieves every setlist the user attended.
func (s *SetlistFMService) AllSetlistsForUser(ctx context.Context, username string, onPage PageFunc) ([]models.Setlist, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	return s.allSetlists(ctx, fmt.Sprintf(userAttendedPath, url.PathEscape(username)), onPage)
}

// allSetlists walks every page of a setlist listing in order.
//
// The page count is fixed by the first response. A setlist ID already seen on an earlier page is dropped.
func (s *SetlistFMService) allSetlists(ctx context.Context, endpoint string, onPage PageFunc) ([]models.Setlist, error) {
	first, err := s.SetlistPage(ctx, endpoint, 1)
	if err != nil {
		return nil, err
	}

	perPage, total := *first.ItemsPerPage, *first.Total
	if total < 0 {
		return nil, fmt.Errorf("%w: total is %d", shared.ErrUnexpectedResponse, total)
	}

	pageCount := 1
	if total > 0 {
		if perPage <= 0 {
			return nil, fmt.Errorf("%w: itemsPerPage is %d with %d total", shared.ErrUnexpectedResponse, perPage, total)
		}
		pageCount = (total + perPage - 1) / perPage
	}

	// total is only a hint; size by what the first page actually held.
	seen := make(map[string]struct{}, len(*first.Setlist))
	result := make([]models.Setlist, 0, len(*first.Setlist))

	collect := func(page int, raw *SetlistFMPage) error {
		setlists, err := mapPage(raw)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}

		for _, setlist := range setlists {
			if _, ok := seen[setlist.Key()]; ok {
				s.logger.Debug("dropping repeated setlist", "id", setlist.ID, "page", page)
				continue
			}
			seen[setlist.Key()] = struct{}{}
			result = append(result, setlist)
		}

		s.logger.Debug("fetched page", "endpoint", endpoint, "page", page, "pages", pageCount, "items", len(setlists))
		if onPage != nil {
			onPage(PageInfo{Page: page, PageCount: pageCount, Items: len(setlists), Total: total})
		}
		return nil
	}

	if err := collect(1, first); err != nil {
		return nil, err
	}

	for page := 2; page <= pageCount; page++ {
		raw, err := s.SetlistPage(ctx, endpoint, page)
		if err != nil {
			return nil, err
		}
		if err := collect(page, raw); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SetlistPage fetches a single raw page of a setlist listing, waiting on the gate first.
func (s *SetlistFMService) SetlistPage(ctx context.Context, endpoint string, page int) (*SetlistFMPage, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrRateLimiterCanceled, err)
	}

	var raw SetlistFMPage
	if err := s.doRequest(ctx, endpoint, page, &raw); err != nil {
		return nil, err
	}

	if raw.ItemsPerPage == nil {
		return nil, fmt.Errorf("page %d: %w", page, missing("itemsPerPage"))
	}
	if raw.Total == nil {
		return nil, fmt.Errorf("page %d: %w", page, missing("total"))
	}
	if raw.Setlist == nil {
		return nil, fmt.Errorf("page %d: %w", page, missing("setlist"))
	}
	return &raw, nil
}

func mapPage(raw *SetlistFMPage) ([]models.Setlist, error) {
	setlists := make([]models.Setlist, 0, len(*raw.Setlist))
	for i, fragment := range *raw.Setlist {
		setlist, err := MapSetlist(fragment)
		if err != nil {
			return nil, fmt.Errorf("setlist %d: %w", i, err)
		}
		setlists = append(setlists, setlist)
	}
	return setlists, nil
}

// doRequest performs an authenticated GET of {baseURL}{endpoint}?p={page} and decodes the JSON body into result.
func (s *SetlistFMService) doRequest(ctx context.Context, endpoint string, page int, result any) error {
	apiURL := fmt.Sprintf("%s%s?p=%d", s.baseURL, endpoint, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrUnexpectedResponse, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	detail := http.StatusText(code)
	var errResp setlistFMError
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		detail = errResp.Message
	}

	if code == http.StatusNotFound {
		return fmt.Errorf("%w: %w: setlist.fm API error (status %d): %s", shared.ErrAPIRequest, shared.ErrNotFound, code, detail)
	}
	return fmt.Errorf("%w: setlist.fm API error (status %d): %s", shared.ErrAPIRequest, code, detail)
}

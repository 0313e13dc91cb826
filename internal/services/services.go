package services

import (
	"context"

	"github.com/desertthunder/setlistx/internal/models"
)

// Service defines the interface for setlist providers that can list every setlist of an artist or a user's attended concerts.
type Service interface {
	// AllSetlistsForArtist retrieves every setlist performed by the artist with the given MusicBrainz ID.
	AllSetlistsForArtist(ctx context.Context, artistID string, onPage PageFunc) ([]models.Setlist, error)

	// AllSetlistsForUser retrieves every setlist the given user marked as attended.
	AllSetlistsForUser(ctx context.Context, username string, onPage PageFunc) ([]models.Setlist, error)

	// Name returns the name of the service (e.g., "setlist.fm")
	Name() string
}

// PageInfo describes one fetched page of a paginated listing.
type PageInfo struct {
	Page      int // 1-based page number
	PageCount int // Total pages, computed from the first response
	Items     int // Setlists mapped from this page
	Total     int // Total setlists reported by the API
}

// PageFunc is called after each page is fetched and mapped. It may be nil.
type PageFunc func(PageInfo)

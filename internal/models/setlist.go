package models

import (
	"fmt"
	"time"
)

// Set is one contiguous segment of a concert, such as the main set or an encore.
type Set struct {
	Name   string
	Encore int
	Songs  []Song
}

// NewSet builds a [Set] over a copy of songs.
func NewSet(songs []Song) Set {
	return Set{Songs: append([]Song(nil), songs...)}
}

// Setlist is the sequence of songs an artist performed at a single dated event.
type Setlist struct {
	ID     string
	Date   time.Time
	Artist Artist
	Venue  Venue
	Sets   []Set
	Tour   string
	URL    string
}

// NewSetlist builds a [Setlist] over a copy of sets.
func NewSetlist(id string, date time.Time, artist Artist, venue Venue, sets []Set) Setlist {
	return Setlist{
		ID:     id,
		Date:   date,
		Artist: artist,
		Venue:  venue,
		Sets:   append([]Set(nil), sets...),
	}
}

// Songs flattens all sets into one ordered slice.
func (s Setlist) Songs() []Song {
	var n int
	for _, set := range s.Sets {
		n += len(set.Songs)
	}

	songs := make([]Song, 0, n)
	for _, set := range s.Sets {
		songs = append(songs, set.Songs...)
	}
	return songs
}

// Equal reports whether two setlists share the same ID.
func (s Setlist) Equal(other Setlist) bool {
	return s.ID == other.ID
}

// Key returns the map key for the setlist.
func (s Setlist) Key() string {
	return s.ID
}

func (s Setlist) String() string {
	return fmt.Sprintf("%s @ %s on %s", s.Artist, s.Venue, s.Date.Format(time.DateOnly))
}

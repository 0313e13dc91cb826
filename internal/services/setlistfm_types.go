// setlist.fm API response types and their mapping to [models]
//
// Types follow https://api.setlist.fm/docs/1.0/index.html. Keys the mapping requires are pointers so that
// a missing key can be told apart from an empty value.
package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/shared"
)

// eventDateLayout is the DD-MM-YYYY layout setlist.fm uses for eventDate. Unpadded day and month parse too.
const eventDateLayout = "2-1-2006"

// SetlistFMArtist represents an artist, also used for the original performer of a cover.
type SetlistFMArtist struct {
	MBID     *string `json:"mbid"`
	Name     *string `json:"name"`
	SortName string  `json:"sortName,omitempty"`
	URL      string  `json:"url,omitempty"`
}

func (a *SetlistFMArtist) empty() bool {
	return a == nil || (a.MBID == nil && a.Name == nil)
}

// SetlistFMCountry represents the country of a city.
type SetlistFMCountry struct {
	Code string  `json:"code,omitempty"`
	Name *string `json:"name"`
}

// SetlistFMCity represents the city of a venue.
type SetlistFMCity struct {
	ID        string            `json:"id,omitempty"`
	Name      *string           `json:"name"`
	State     string            `json:"state,omitempty"`
	StateCode string            `json:"stateCode,omitempty"`
	Country   *SetlistFMCountry `json:"country"`
}

// SetlistFMVenue represents a venue.
type SetlistFMVenue struct {
	ID   *string        `json:"id"`
	Name *string        `json:"name"`
	City *SetlistFMCity `json:"city"`
	URL  string         `json:"url,omitempty"`
}

// SetlistFMSong represents a song within a set.
type SetlistFMSong struct {
	Name  *string          `json:"name"`
	Info  string           `json:"info,omitempty"`
	Tape  TapeFlag         `json:"tape,omitempty"`
	Cover *SetlistFMArtist `json:"cover,omitempty"`
}

// SetlistFMSet represents one set of a setlist.
type SetlistFMSet struct {
	Name   string           `json:"name,omitempty"`
	Encore int              `json:"encore,omitempty"`
	Song   *[]SetlistFMSong `json:"song"`
}

type setlistFMSets struct {
	Set *[]SetlistFMSet `json:"set"`
}

type setlistFMTour struct {
	Name string `json:"name"`
}

// SetlistFMSetlist represents a single setlist.
type SetlistFMSetlist struct {
	ID        *string          `json:"id"`
	EventDate *string          `json:"eventDate"`
	Artist    *SetlistFMArtist `json:"artist"`
	Venue     *SetlistFMVenue  `json:"venue"`
	Sets      *setlistFMSets   `json:"sets"`
	Tour      *setlistFMTour   `json:"tour,omitempty"`
	URL       string           `json:"url,omitempty"`
}

// SetlistFMPage represents a paginated response of setlists.
type SetlistFMPage struct {
	Type         string              `json:"type,omitempty"`
	ItemsPerPage *int                `json:"itemsPerPage"`
	Page         int                 `json:"page"`
	Total        *int                `json:"total"`
	Setlist      *[]SetlistFMSetlist `json:"setlist"`
}

// setlistFMError is the body setlist.fm sends with non-2xx responses.
type setlistFMError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TapeFlag marks a song played from a recording rather than live.
//
// Only the string "true" or the boolean true set it.
type TapeFlag bool

func (t *TapeFlag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case `"true"`, "true":
		*t = true
	default:
		*t = false
	}
	return nil
}

// required returns the trimmed value of a key that must be present.
func required(v *string, path string) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingField, path)
	}
	return strings.TrimSpace(*v), nil
}

func missing(path string) error {
	return fmt.Errorf("%w: %s", shared.ErrMissingField, path)
}

// MapArtist maps an artist fragment to [models.Artist]. Requires mbid and name.
func MapArtist(a SetlistFMArtist) (models.Artist, error) {
	return mapArtist(a, "artist")
}

func mapArtist(a SetlistFMArtist, path string) (models.Artist, error) {
	id, err := required(a.MBID, path+".mbid")
	if err != nil {
		return models.Artist{}, err
	}
	name, err := required(a.Name, path+".name")
	if err != nil {
		return models.Artist{}, err
	}
	return models.NewArtist(id, name), nil
}

// MapVenue maps a venue fragment to [models.Venue]. The venue name is optional.
func MapVenue(v SetlistFMVenue) (models.Venue, error) {
	return mapVenue(v, "venue")
}

func mapVenue(v SetlistFMVenue, path string) (models.Venue, error) {
	id, err := required(v.ID, path+".id")
	if err != nil {
		return models.Venue{}, err
	}
	if v.City == nil {
		return models.Venue{}, missing(path + ".city")
	}
	city, err := required(v.City.Name, path+".city.name")
	if err != nil {
		return models.Venue{}, err
	}
	if v.City.Country == nil {
		return models.Venue{}, missing(path + ".city.country")
	}
	country, err := required(v.City.Country.Name, path+".city.country.name")
	if err != nil {
		return models.Venue{}, err
	}

	var name string
	if v.Name != nil {
		name = strings.TrimSpace(*v.Name)
	}
	return models.NewVenue(id, name, city, country), nil
}

// MapSong maps a song fragment to [models.Song].
//
// ok is false when the song is filtered out: the name is empty or it was played from tape.
func MapSong(s SetlistFMSong) (song models.Song, ok bool, err error) {
	return mapSong(s, "song")
}

func mapSong(s SetlistFMSong, path string) (models.Song, bool, error) {
	name, err := required(s.Name, path+".name")
	if err != nil {
		return models.Song{}, false, err
	}
	if name == "" || bool(s.Tape) {
		return models.Song{}, false, nil
	}

	var covered *models.Artist
	if !s.Cover.empty() {
		artist, err := mapArtist(*s.Cover, path+".cover")
		if err != nil {
			return models.Song{}, false, err
		}
		covered = &artist
	}

	song := models.NewSong(name, covered)
	song.Info = s.Info
	return song, true, nil
}

// MapSet maps a set fragment to [models.Set], dropping filtered songs.
func MapSet(s SetlistFMSet) (models.Set, error) {
	return mapSet(s, "set")
}

func mapSet(s SetlistFMSet, path string) (models.Set, error) {
	if s.Song == nil {
		return models.Set{}, missing(path + ".song")
	}

	songs := make([]models.Song, 0, len(*s.Song))
	for i, raw := range *s.Song {
		song, ok, err := mapSong(raw, fmt.Sprintf("%s.song[%d]", path, i))
		if err != nil {
			return models.Set{}, err
		}
		if ok {
			songs = append(songs, song)
		}
	}

	set := models.NewSet(songs)
	set.Name = s.Name
	set.Encore = s.Encore
	return set, nil
}

// MapSetlist maps a setlist fragment to [models.Setlist].
//
// eventDate must be DD-MM-YYYY; anything else fails with [shared.ErrInvalidDate].
func MapSetlist(s SetlistFMSetlist) (models.Setlist, error) {
	id, err := required(s.ID, "setlist.id")
	if err != nil {
		return models.Setlist{}, err
	}
	rawDate, err := required(s.EventDate, "setlist.eventDate")
	if err != nil {
		return models.Setlist{}, err
	}
	date, err := time.Parse(eventDateLayout, rawDate)
	if err != nil {
		return models.Setlist{}, fmt.Errorf("%w: setlist %s: %q is not DD-MM-YYYY", shared.ErrInvalidDate, id, rawDate)
	}

	if s.Artist == nil {
		return models.Setlist{}, missing("setlist.artist")
	}
	artist, err := mapArtist(*s.Artist, "setlist.artist")
	if err != nil {
		return models.Setlist{}, err
	}

	if s.Venue == nil {
		return models.Setlist{}, missing("setlist.venue")
	}
	venue, err := mapVenue(*s.Venue, "setlist.venue")
	if err != nil {
		return models.Setlist{}, err
	}

	if s.Sets == nil {
		return models.Setlist{}, missing("setlist.sets")
	}
	if s.Sets.Set == nil {
		return models.Setlist{}, missing("setlist.sets.set")
	}
	sets := make([]models.Set, 0, len(*s.Sets.Set))
	for i, raw := range *s.Sets.Set {
		set, err := mapSet(raw, fmt.Sprintf("setlist.sets.set[%d]", i))
		if err != nil {
			return models.Setlist{}, err
		}
		sets = append(sets, set)
	}

	setlist := models.NewSetlist(id, date, artist, venue, sets)
	if s.Tour != nil {
		setlist.Tour = s.Tour.Name
	}
	setlist.URL = s.URL
	return setlist, nil
}

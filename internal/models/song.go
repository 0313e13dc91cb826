package models

// Song is a single live performance within a [Set].
//
// CoveredArtist is set when the song was originally performed by someone else.
type Song struct {
	Name          string
	CoveredArtist *Artist
	Info          string
}

// NewSong builds a [Song]. The covered artist is copied so the song never shares it.
func NewSong(name string, covered *Artist) Song {
	s := Song{Name: name}
	if covered != nil {
		c := *covered
		s.CoveredArtist = &c
	}
	return s
}

// IsCover reports whether the song is a cover.
func (s Song) IsCover() bool {
	return s.CoveredArtist != nil
}

// Equal compares name and covered artist identity.
func (s Song) Equal(other Song) bool {
	if s.Name != other.Name {
		return false
	}
	switch {
	case s.CoveredArtist == nil && other.CoveredArtist == nil:
		return true
	case s.CoveredArtist == nil || other.CoveredArtist == nil:
		return false
	default:
		return s.CoveredArtist.Equal(*other.CoveredArtist)
	}
}

// Key returns the map key for the song, derived from name and covered artist ID.
func (s Song) Key() string {
	if s.CoveredArtist == nil {
		return s.Name + "|"
	}
	return s.Name + "|" + s.CoveredArtist.Key()
}

func (s Song) String() string {
	return s.Name
}

package models

// Artist is a performer identified by its MusicBrainz ID.
type Artist struct {
	ID   string
	Name string
}

// NewArtist builds an [Artist].
func NewArtist(id, name string) Artist {
	return Artist{ID: id, Name: name}
}

// Equal reports whether two artists share the same ID.
func (a Artist) Equal(other Artist) bool {
	return a.ID == other.ID
}

// Key returns the map key for the artist.
func (a Artist) Key() string {
	return a.ID
}

func (a Artist) String() string {
	return a.Name
}

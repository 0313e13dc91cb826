package models

import "strings"

// Venue is where a concert took place.
//
// An empty Name means setlist.fm did not report one.
type Venue struct {
	ID      string
	Name    string
	City    string
	Country string
}

// NewVenue builds a [Venue]. Pass an empty name when it is unknown.
func NewVenue(id, name, city, country string) Venue {
	return Venue{ID: id, Name: name, City: city, Country: country}
}

// HasName reports whether the venue name is known.
func (v Venue) HasName() bool {
	return v.Name != ""
}

// Equal reports whether two venues share the same ID.
func (v Venue) Equal(other Venue) bool {
	return v.ID == other.ID
}

// Key returns the map key for the venue.
func (v Venue) Key() string {
	return v.ID
}

func (v Venue) String() string {
	parts := make([]string, 0, 3)
	if v.HasName() {
		parts = append(parts, v.Name)
	}
	return strings.Join(append(parts, v.City, v.Country), ", ")
}

// Package models defines the domain entities produced from setlist.fm responses.
//
// All entities are immutable values built once by the mapping layer in services:
//   - [Artist] : a performer, identified by its MusicBrainz ID
//   - [Venue] : where a concert took place; the name may be absent
//   - [Song] : a live-performed song, optionally a cover of another [Artist]
//   - [Set] : one contiguous segment of a concert (main set, encore)
//   - [Setlist] : a dated event tying an [Artist], a [Venue] and its [Set]s together
//
// Identity follows the declared identity fields rather than structural equality.
// Use Equal to compare and Key when an entity needs to index a map.
package models

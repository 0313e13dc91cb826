package models

import (
	"testing"
	"time"
)

func TestIdentity(t *testing.T) {
	t.Run("Artist", func(t *testing.T) {
		a := NewArtist("mbid-1", "Radiohead")
		b := NewArtist("mbid-1", "Radiohead (renamed)")
		c := NewArtist("mbid-2", "Radiohead")

		if !a.Equal(b) {
			t.Error("artists with the same ID should be equal")
		}
		if a.Equal(c) {
			t.Error("artists with different IDs should not be equal")
		}
		if a.Key() != b.Key() {
			t.Errorf("expected equal keys, got %q and %q", a.Key(), b.Key())
		}
	})

	t.Run("Venue", func(t *testing.T) {
		a := NewVenue("v1", "Wembley Stadium", "London", "United Kingdom")
		b := NewVenue("v1", "", "London", "United Kingdom")

		if !a.Equal(b) {
			t.Error("venues with the same ID should be equal")
		}
		if b.HasName() {
			t.Error("expected venue without a name")
		}
		if got := b.String(); got != "London, United Kingdom" {
			t.Errorf("expected name to be omitted, got %q", got)
		}
		if got := a.String(); got != "Wembley Stadium, London, United Kingdom" {
			t.Errorf("unexpected venue string %q", got)
		}
	})

	t.Run("Song", func(t *testing.T) {
		beatles := NewArtist("b1", "The Beatles")
		beatlesAgain := NewArtist("b1", "Beatles")
		stones := NewArtist("s1", "The Rolling Stones")

		tc := []struct {
			name string
			a, b Song
			want bool
		}{
			{"same name no cover", NewSong("Creep", nil), NewSong("Creep", nil), true},
			{"different name", NewSong("Creep", nil), NewSong("Airbag", nil), false},
			{"cover vs original", NewSong("Help!", &beatles), NewSong("Help!", nil), false},
			{"same covered artist id", NewSong("Help!", &beatles), NewSong("Help!", &beatlesAgain), true},
			{"different covered artist", NewSong("Help!", &beatles), NewSong("Help!", &stones), false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.a.Equal(tt.b); got != tt.want {
					t.Errorf("Equal() = %v, want %v", got, tt.want)
				}
				if got := tt.a.Key() == tt.b.Key(); got != tt.want {
					t.Errorf("Key() equality = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("Song copies covered artist", func(t *testing.T) {
		covered := NewArtist("b1", "The Beatles")
		song := NewSong("Help!", &covered)
		covered.Name = "changed"

		if song.CoveredArtist.Name != "The Beatles" {
			t.Errorf("expected song to keep its own copy, got %q", song.CoveredArtist.Name)
		}
		if !song.IsCover() {
			t.Error("expected song to be a cover")
		}
	})
}

func TestSetlist(t *testing.T) {
	date := time.Date(2023, time.June, 23, 0, 0, 0, 0, time.UTC)
	artist := NewArtist("a1", "Muse")
	venue := NewVenue("v1", "", "Paris", "France")

	main := NewSet([]Song{NewSong("Will of the People", nil), NewSong("Hysteria", nil)})
	encore := NewSet([]Song{NewSong("Hysteria", nil), NewSong("Knights of Cydonia", nil)})

	setlist := NewSetlist("s1", date, artist, venue, []Set{main, encore})

	t.Run("Songs flattens in order without dedup", func(t *testing.T) {
		songs := setlist.Songs()
		want := []string{"Will of the People", "Hysteria", "Hysteria", "Knights of Cydonia"}

		if len(songs) != len(want) {
			t.Fatalf("expected %d songs, got %d", len(want), len(songs))
		}
		for i, name := range want {
			if songs[i].Name != name {
				t.Errorf("song %d = %q, want %q", i, songs[i].Name, name)
			}
		}
	})

	t.Run("Songs returns a fresh slice", func(t *testing.T) {
		songs := setlist.Songs()
		songs[0] = NewSong("mutated", nil)

		if setlist.Sets[0].Songs[0].Name != "Will of the People" {
			t.Error("mutating Songs() result changed the setlist")
		}
	})

	t.Run("empty setlist", func(t *testing.T) {
		empty := NewSetlist("s2", date, artist, venue, nil)
		if got := empty.Songs(); len(got) != 0 {
			t.Errorf("expected no songs, got %d", len(got))
		}
	})

	t.Run("String", func(t *testing.T) {
		want := "Muse @ Paris, France on 2023-06-23"
		if got := setlist.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("Equal", func(t *testing.T) {
		other := NewSetlist("s1", date.AddDate(0, 0, 1), artist, venue, nil)
		if !setlist.Equal(other) {
			t.Error("setlists with the same ID should be equal")
		}
	})
}

// package formatter provides functions to export setlist data to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/shared"
)

// UnknownVenue replaces the venue column when setlist.fm has no name for it.
const UnknownVenue = "Unknown venue"

// songSeparator joins song names within the Songs column.
const songSeparator = ";"

// Headers is the header row of a CSV export.
var Headers = []string{"Date", "Artist", "Venue", "City", "Country", "Songs"}

// extensions maps an export format to its file extension.
var extensions = map[string]string{
	"csv":      "csv",
	"json":     "json",
	"markdown": "md",
	"txt":      "txt",
}

// SetlistRow is one flattened setlist as written to CSV.
type SetlistRow struct {
	Date    string
	Artist  string
	Venue   string
	City    string
	Country string
	Songs   string
}

// Record returns the row's fields in [Headers] order.
func (r SetlistRow) Record() []string {
	return []string{r.Date, r.Artist, r.Venue, r.City, r.Country, r.Songs}
}

// NewSetlistRow flattens a setlist into a row.
func NewSetlistRow(s models.Setlist) SetlistRow {
	venue := s.Venue.Name
	if !s.Venue.HasName() {
		venue = UnknownVenue
	}

	return SetlistRow{
		Date:    s.Date.Format(time.DateOnly),
		Artist:  s.Artist.Name,
		Venue:   venue,
		City:    s.Venue.City,
		Country: s.Venue.Country,
		Songs:   strings.Join(songNames(s), songSeparator),
	}
}

// Rows flattens setlists into rows, preserving order.
func Rows(setlists []models.Setlist) []SetlistRow {
	rows := make([]SetlistRow, 0, len(setlists))
	for _, s := range setlists {
		rows = append(rows, NewSetlistRow(s))
	}
	return rows
}

func songNames(s models.Setlist) []string {
	songs := s.Songs()
	names := make([]string, 0, len(songs))
	for _, song := range songs {
		names = append(names, song.Name)
	}
	return names
}

// ExportToCSV converts setlists to CSV with columns: Date, Artist, Venue, City, Country, Songs.
//
// Lines end in CRLF.
func ExportToCSV(setlists []models.Setlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.UseCRLF = true

	if err := writer.Write(Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range Rows(setlists) {
		if err := writer.Write(row.Record()); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

type artistDocument struct {
	MBID string `json:"mbid"`
	Name string `json:"name"`
}

type venueDocument struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type songDocument struct {
	Name  string          `json:"name"`
	Info  string          `json:"info,omitempty"`
	Cover *artistDocument `json:"cover,omitempty"`
}

type setDocument struct {
	Name   string         `json:"name,omitempty"`
	Encore int            `json:"encore,omitempty"`
	Songs  []songDocument `json:"songs"`
}

type setlistDocument struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"`
	Artist artistDocument `json:"artist"`
	Venue  venueDocument  `json:"venue"`
	Tour   string         `json:"tour,omitempty"`
	URL    string         `json:"url,omitempty"`
	Sets   []setDocument  `json:"sets"`
}

func newSetlistDocument(s models.Setlist) setlistDocument {
	doc := setlistDocument{
		ID:     s.ID,
		Date:   s.Date.Format(time.DateOnly),
		Artist: artistDocument{MBID: s.Artist.ID, Name: s.Artist.Name},
		Venue:  venueDocument{ID: s.Venue.ID, Name: s.Venue.Name, City: s.Venue.City, Country: s.Venue.Country},
		Tour:   s.Tour,
		URL:    s.URL,
		Sets:   make([]setDocument, 0, len(s.Sets)),
	}

	for _, set := range s.Sets {
		songs := make([]songDocument, 0, len(set.Songs))
		for _, song := range set.Songs {
			sd := songDocument{Name: song.Name, Info: song.Info}
			if song.IsCover() {
				sd.Cover = &artistDocument{MBID: song.CoveredArtist.ID, Name: song.CoveredArtist.Name}
			}
			songs = append(songs, sd)
		}
		doc.Sets = append(doc.Sets, setDocument{Name: set.Name, Encore: set.Encore, Songs: songs})
	}
	return doc
}

// ExportToJSON converts setlists to an indented JSON array, keeping sets, covers and tour details.
func ExportToJSON(setlists []models.Setlist) ([]byte, error) {
	docs := make([]setlistDocument, 0, len(setlists))
	for _, s := range setlists {
		docs = append(docs, newSetlistDocument(s))
	}
	return shared.MarshalJSON(docs, true)
}

// songLine renders a song with its cover credit and info, if any.
func songLine(song models.Song) string {
	line := song.Name
	if song.IsCover() {
		line += fmt.Sprintf(" (%s cover)", song.CoveredArtist.Name)
	}
	if song.Info != "" {
		line += fmt.Sprintf(" [%s]", song.Info)
	}
	return line
}

func markdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func setTitle(set models.Set, i int) string {
	switch {
	case set.Name != "":
		return set.Name
	case set.Encore > 0:
		return fmt.Sprintf("Encore %d", set.Encore)
	default:
		return fmt.Sprintf("Set %d", i+1)
	}
}

// ExportToMarkdown converts setlists to Markdown: a summary table followed by a song list per setlist.
func ExportToMarkdown(setlists []models.Setlist, title string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Setlists**: %d\n\n", len(setlists)))

	buf.WriteString("| " + strings.Join(Headers, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(Headers)) + "\n")
	for _, s := range setlists {
		row := NewSetlistRow(s)
		cells := []string{row.Date, row.Artist, row.Venue, row.City, row.Country, fmt.Sprint(len(s.Songs()))}
		for i := range cells {
			cells[i] = markdownCell(cells[i])
		}
		buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	for _, s := range setlists {
		buf.WriteString(fmt.Sprintf("\n## %s\n\n", s.String()))
		if s.Tour != "" {
			buf.WriteString(fmt.Sprintf("**Tour**: %s\n\n", s.Tour))
		}

		for i, set := range s.Sets {
			if len(s.Sets) > 1 {
				buf.WriteString(fmt.Sprintf("### %s\n\n", setTitle(set, i)))
			}
			for j, song := range set.Songs {
				buf.WriteString(fmt.Sprintf("%d. %s\n", j+1, songLine(song)))
			}
			if len(set.Songs) > 0 {
				buf.WriteString("\n")
			}
		}

		if s.URL != "" {
			buf.WriteString(fmt.Sprintf("[setlist.fm](%s)\n", s.URL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts setlists to plain text format
func ExportToText(setlists []models.Setlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Setlists: %d\n", len(setlists)))

	for _, s := range setlists {
		buf.WriteString(fmt.Sprintf("\n%s\n", s.String()))
		for i, song := range s.Songs() {
			buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, songLine(song)))
		}
	}

	return buf.Bytes(), nil
}

// ExportFilename returns {stem}_setlists.{ext} for the given format.
func ExportFilename(stem, format string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
	return fmt.Sprintf("%s_setlists.%s", stem, ext), nil
}

// Export serializes setlists in the given format.
func Export(setlists []models.Setlist, stem, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(setlists)
	case "json":
		return ExportToJSON(setlists)
	case "markdown":
		return ExportToMarkdown(setlists, fmt.Sprintf("Setlists: %s", stem))
	case "txt":
		return ExportToText(setlists)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// WriteExport writes setlists to {outputDir}/{stem}_setlists.{ext} and returns the path.
//
// The output directory is created if needed and an existing file is overwritten.
func WriteExport(setlists []models.Setlist, stem, outputDir, format string) (string, error) {
	if stem == "" {
		return "", fmt.Errorf("%w: export file stem", shared.ErrMissingArgument)
	}

	name, err := ExportFilename(stem, format)
	if err != nil {
		return "", err
	}

	data, err := Export(setlists, stem, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

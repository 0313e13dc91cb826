package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/setlistx/internal/formatter"
	"github.com/desertthunder/setlistx/internal/models"
)

var (
	_ list.Item = setlistItem{}
)

// setlistItem wraps [models.Setlist] to implement [list.Item].
type setlistItem struct {
	setlist models.Setlist
}

func (i setlistItem) FilterValue() string { return i.setlist.Artist.Name + " " + i.setlist.Venue.String() }
func (i setlistItem) Title() string {
	return fmt.Sprintf("%s  %s", i.setlist.Date.Format(time.DateOnly), i.setlist.Artist.Name)
}
func (i setlistItem) Description() string {
	row := formatter.NewSetlistRow(i.setlist)
	return fmt.Sprintf("%s • %s, %s • %d songs", row.Venue, row.City, row.Country, len(i.setlist.Songs()))
}

func setlistItems(setlists []models.Setlist) []list.Item {
	items := make([]list.Item, len(setlists))
	for i, s := range setlists {
		items[i] = setlistItem{setlist: s}
	}
	return items
}

// Package ui implements a terminal progress view for setlist exports using bubbletea's Elm architecture.
//
// The [Model] runs an export through [tasks.ExportEngine] in the background and moves through two views:
//  1. [ExportView] : spinner and page progress bar while setlists are fetched
//  2. [ResultView] : summary of the written file and a browsable list of the exported setlists
//
// Progress updates flow through a channel owned by the export goroutine, which closes it when the run ends.
package ui

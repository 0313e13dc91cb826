package tasks

import (
	"fmt"

	"github.com/desertthunder/setlistx/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchPage Phase = iota
	WriteExport
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchPage:
		return "fetch_page"
	case WriteExport:
		return "write_export"
	case Done:
		return "done"
	default:
		return ""
	}
}

func fetchingUpdate(req ExportRequest) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Message: fmt.Sprintf("Fetching setlists for %s %s...", req.Subject, req.ID),
	}
}

func fetchPageUpdate(page services.PageInfo) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page.Page,
		Total:   page.PageCount,
		Message: fmt.Sprintf("[%d/%d] Fetched %d setlists", page.Page, page.PageCount, page.Items),
		Data:    page,
	}
}

func writeExportUpdate(count int, format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d setlists as %s...", count, format),
	}
}

func doneUpdate(result *ExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ Exported %d setlists to %s", len(result.Setlists), result.Path),
		Data:    result,
	}
}

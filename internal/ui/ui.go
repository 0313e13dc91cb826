package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/setlistx/internal/models"
	"github.com/desertthunder/setlistx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ExportView ViewState = iota
	ResultView
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxBarWidth   = 60
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	engine       *tasks.ExportEngine
	req          tasks.ExportRequest
	width        int
	height       int
	spinner      spinner.Model
	bar          progress.Model
	setlists     list.Model
	progressChan chan tasks.ProgressUpdate
	doneChan     chan exportOutcome
	progress     tasks.ProgressUpdate
	result       *tasks.ExportResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a TUI model that runs req through engine once started.
func NewModel(ctx context.Context, engine *tasks.ExportEngine, req tasks.ExportRequest) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		view:    ExportView,
		engine:  engine,
		req:     req,
		width:   defaultWidth,
		height:  defaultHeight,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.title.UnsetMarginBottom())),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Result returns the finished export, or nil if it failed or was interrupted.
func (m *Model) Result() *tasks.ExportResult {
	return m.result
}

// Err returns the export error, if any.
func (m *Model) Err() error {
	return m.err
}

// Init starts the spinner and the export.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startExport())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		if m.view == ResultView {
			m.setlists.SetSize(m.listSize())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			if m.view == ExportView {
				m.cancel()
				m.err = fmt.Errorf("%w: export interrupted", context.Canceled)
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if m.view == ResultView {
			var cmd tea.Cmd
			m.setlists, cmd = m.setlists.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.view != ExportView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()

		case MsgExportComplete:
			outcome := msg.data.(exportOutcome)
			m.result = outcome.result
			m.err = outcome.err
			m.view = ResultView
			m.cancel()
			if m.result != nil {
				m.setlists = m.newSetlistList(m.result.Setlists)
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ExportView:
		return m.renderExport()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// startExport runs the engine in a goroutine that owns and closes the progress channel.
func (m *Model) startExport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.doneChan = make(chan exportOutcome, 1)

	progress, done := m.progressChan, m.doneChan
	engine, ctx, req := m.engine, m.ctx, m.req
	go func() {
		result, err := engine.Run(ctx, progress, req)
		done <- exportOutcome{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			outcome := <-done
			return exportCompleteMsg(outcome.result, outcome.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) percent() float64 {
	switch m.progress.Phase {
	case tasks.WriteExport, tasks.Done:
		return 1
	default:
		if m.progress.Total <= 0 {
			return 0
		}
		return float64(m.progress.Step) / float64(m.progress.Total)
	}
}

func (m *Model) listSize() (int, int) {
	return m.width - 4, max(m.height-14, 5)
}

func (m *Model) newSetlistList(setlists []models.Setlist) list.Model {
	w, h := m.listSize()
	l := list.New(setlistItems(setlists), list.NewDefaultDelegate(), w, h)
	l.Title = "Exported Setlists"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func (m *Model) renderExport() string {
	title := styles.title.Render(fmt.Sprintf("Exporting setlists for %s %s", m.req.Subject, m.req.ID))

	message := m.progress.Message
	if message == "" {
		message = "Starting..."
	}
	status := fmt.Sprintf("%s %s", m.spinner.View(), message)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, status, m.bar.ViewAs(m.percent()), m.help.View(m.keys))
}

func summaryRow(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.label.Render(label), fmt.Sprint(value))
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Export failed: %v", m.err)) + "\n\n" + styles.help.Render("Press q to quit")
	}

	if m.result == nil {
		return styles.err.Render("No result available") + "\n\n" + styles.help.Render("Press q to quit")
	}

	summary := styles.box.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ok.Render("✓ Export Complete"),
		"",
		summaryRow("File", m.result.Path),
		summaryRow("Setlists", len(m.result.Setlists)),
		summaryRow("Songs", m.result.SongCount),
		summaryRow("Pages", m.result.Pages),
	))

	if len(m.result.Setlists) == 0 {
		return fmt.Sprintf("%s\n\n%s\n\n%s", summary, styles.warn.Render("No setlists found"), m.help.View(m.keys))
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", summary, m.setlists.View(), m.help.View(m.keys))
}

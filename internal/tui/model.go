// Package tui is the terminal adapter: it translates key presses into
// core events, performs the file I/O the core requests, and renders the
// application state.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/core/config"
	"github.com/colonyops/quill/internal/core/styles"
	"github.com/colonyops/quill/internal/data/docfile"
	"github.com/colonyops/quill/internal/tui/components"
)

// Options configures the TUI model.
type Options struct {
	App    *annotate.App
	Config *config.Config
	Logger zerolog.Logger
}

// Model is the bubbletea model wrapping the core application state.
type Model struct {
	app *annotate.App
	cfg *config.Config
	log zerolog.Logger

	help           *components.HelpDialog
	severityPicker *components.Picker
	categoryPicker *components.Picker

	width  int
	height int
	scroll int // first visible editor row

	// Report preview is adapter-only state; the core never sees it.
	showPreview bool
	preview     viewport.Model
}

// New creates a TUI model around the given app state.
func New(opts Options) *Model {
	app := opts.App
	if app == nil {
		app = annotate.NewApp()
	}
	if opts.Config != nil {
		app.DefaultSeverity = opts.Config.DefaultSeverity()
		app.PendingSeverity = app.DefaultSeverity
	}

	severityOptions := make([]components.PickerOption, 0, len(annotate.Severities()))
	for i, s := range annotate.Severities() {
		severityOptions = append(severityOptions, components.PickerOption{
			Label:    s.Display(),
			Shortcut: fmt.Sprintf("%d", i+1),
			Style:    styles.SeverityStyle(s),
		})
	}

	categoryOptions := []components.PickerOption{
		{Label: "None", Shortcut: "0", Style: styles.MutedStyle},
	}
	for i, c := range annotate.Categories() {
		categoryOptions = append(categoryOptions, components.PickerOption{
			Label:    c.Display(),
			Shortcut: fmt.Sprintf("%d", i+1),
			Style:    styles.TextStyle,
		})
	}

	return &Model{
		app:            app,
		cfg:            opts.Config,
		log:            opts.Logger,
		help:           components.NewHelpDialog("Quill Help", helpSections()),
		severityPicker: components.NewPicker("Severity", severityOptions),
		categoryPicker: components.NewPicker("Category", categoryOptions),
	}
}

// Run starts the TUI program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = max(m.width-4, 20)
		m.preview.Height = max(m.height-4, 5)
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPreview {
		switch msg.String() {
		case "esc", "q", "p":
			m.showPreview = false
			return m, nil
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	// The status slot shows the outcome of the previous action; any new
	// input supersedes it.
	m.app.ClearStatus()

	switch {
	case m.app.Mode == annotate.ModeNormal && msg.String() == "p":
		m.openPreview()

	case m.app.Mode == annotate.ModeInput && msg.Type == tea.KeyRunes:
		// A paste arrives as one KeyMsg carrying several runes.
		for _, r := range msg.Runes {
			m.app.HandleEvent(annotate.Event{Kind: annotate.EventInputRune, Rune: r})
		}

	default:
		if ev := translateKey(m.app.Mode, msg); ev.Kind != annotate.EventNone {
			m.app.HandleEvent(ev)
		}
	}

	m.consumeRequests()
	m.ensureCursorVisible()

	if !m.app.Running {
		return m, tea.Quit
	}
	return m, nil
}

// consumeRequests performs the I/O the core signalled during the last
// event and reports the outcome back through the status slot.
func (m *Model) consumeRequests() {
	if path, ok := m.app.TakeLoadRequest(); ok {
		m.loadDocument(path)
	}

	if m.app.TakeExportRequest() {
		m.exportDocument()
	}
}

func (m *Model) loadDocument(path string) {
	doc, err := docfile.Load(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("tui: load document")
		m.app.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}

	m.app.LoadDocument(doc)
	m.scroll = 0
	m.log.Debug().Str("path", path).Msg("tui: document loaded")
	m.app.SetStatus(fmt.Sprintf("Loaded %s", m.app.Title()))
}

func (m *Model) exportDocument() {
	doc := m.app.Document
	if doc == nil || m.cfg == nil {
		return
	}

	exportPath := filepath.Join(m.cfg.DataDir, "document.json")
	if err := docfile.Export(doc, exportPath); err != nil {
		m.log.Error().Err(err).Str("path", exportPath).Msg("tui: export document")
		m.app.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}

	reportPath := filepath.Join(m.cfg.DataDir, m.cfg.Report.Filename)
	if err := docfile.WriteReport(doc, reportPath); err != nil {
		m.log.Error().Err(err).Str("path", reportPath).Msg("tui: write report")
		m.app.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}

	m.log.Info().Str("path", exportPath).Msg("tui: document exported")
	m.app.SetStatus(fmt.Sprintf("Exported to %s", exportPath))
}

// openPreview renders the current report with glamour into a scrollable
// viewport. Falls back to the raw markdown when rendering fails.
func (m *Model) openPreview() {
	if m.app.Document == nil {
		m.app.SetStatus("No document to preview")
		return
	}

	report := annotate.GenerateReport(m.app.Document)
	width := max(m.width-4, 20)

	out := report
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, rerr := renderer.Render(report); rerr == nil {
			out = rendered
		} else {
			m.log.Debug().Err(rerr).Msg("tui: render report preview")
		}
	}

	m.preview = viewport.New(width, max(m.height-4, 5))
	m.preview.SetContent(out)
	m.showPreview = true
}

// ensureCursorVisible scrolls the editor so the cursor row stays on
// screen.
func (m *Model) ensureCursorVisible() {
	h := m.editorHeight()
	if h <= 0 {
		return
	}
	row, _ := m.app.Cursor.Pos()
	if row < m.scroll {
		m.scroll = row
	}
	if row >= m.scroll+h {
		m.scroll = row - h + 1
	}
}

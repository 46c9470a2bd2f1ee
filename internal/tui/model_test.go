package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/core/config"
	"github.com/colonyops/quill/pkg/tuitest"
)

func newTestModel(t *testing.T, content string) *Model {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	app := annotate.NewApp()
	if content != "" {
		app.LoadDocument(annotate.NewDocument("sample", content))
	}

	m := New(Options{
		App:    app,
		Config: &cfg,
		Logger: zerolog.Nop(),
	})
	m.Update(tuitest.WindowSize(100, 30))
	return m
}

func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(tuitest.Key(k))
	}
}

func TestUpdate_QuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel(t, "Hello")

	_, cmd := m.Update(tuitest.Key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_AnnotationWorkflow(t *testing.T) {
	m := newTestModel(t, "Hello World")

	// Select "Hello", pick severity and category, type the comment.
	send(m, "v", "l", "l", "l", "l", "l", "a")
	assert.Equal(t, annotate.ModeSeverityPicker, m.app.Mode)

	send(m, "enter") // default severity
	assert.Equal(t, annotate.ModeCategoryPicker, m.app.Mode)

	send(m, "2") // Clarity
	assert.Equal(t, annotate.ModeInput, m.app.Mode)

	send(m, "t", "o", "o", " ", "o", "d", "d", "enter")

	require.Len(t, m.app.Document.Annotations, 1)
	ann := m.app.Document.Annotations[0]
	assert.Equal(t, "Hello", ann.SelectedText)
	assert.Equal(t, annotate.CategoryClarity, ann.Category)
	assert.Equal(t, "too odd", ann.Comment)
	assert.Equal(t, annotate.ModeNormal, m.app.Mode)
	assert.Equal(t, "Annotation added", m.app.StatusMessage)
}

func TestUpdate_PasteIntoInput(t *testing.T) {
	m := newTestModel(t, "Hello World")
	send(m, "v", "l", "a", "enter", "0")
	require.Equal(t, annotate.ModeInput, m.app.Mode)

	// One KeyMsg carrying several runes, as a terminal paste does.
	m.Update(tuitest.Runes("pasted"))
	assert.Equal(t, "pasted", m.app.InputBuffer)
}

func TestUpdate_OpenFileLoadsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o644))

	m := newTestModel(t, "")
	send(m, "o")
	require.Equal(t, annotate.ModeInput, m.app.Mode)

	m.Update(tuitest.Runes(path))
	send(m, "enter")

	require.NotNil(t, m.app.Document)
	assert.Equal(t, "from disk", m.app.Document.Content)
	assert.Contains(t, m.app.StatusMessage, "Loaded")
}

func TestUpdate_OpenFileErrorSetsStatus(t *testing.T) {
	m := newTestModel(t, "")
	send(m, "o")
	m.Update(tuitest.Runes("/no/such/file.md"))
	send(m, "enter")

	assert.Nil(t, m.app.Document)
	assert.Contains(t, m.app.StatusMessage, "Error")
}

func TestUpdate_ExportWritesSnapshotAndReport(t *testing.T) {
	m := newTestModel(t, "Hello World")
	send(m, "e")

	assert.Contains(t, m.app.StatusMessage, "Exported")
	assert.FileExists(t, filepath.Join(m.cfg.DataDir, "document.json"))
	assert.FileExists(t, filepath.Join(m.cfg.DataDir, m.cfg.Report.Filename))
}

func TestUpdate_StatusClearsOnNextKey(t *testing.T) {
	m := newTestModel(t, "Hello World")
	send(m, "e")
	require.NotEmpty(t, m.app.StatusMessage)

	send(m, "j")
	assert.Empty(t, m.app.StatusMessage)
}

func TestUpdate_ScrollFollowsCursor(t *testing.T) {
	var content string
	for range 50 {
		content += "line\n"
	}
	m := newTestModel(t, content)

	send(m, "G")
	assert.Positive(t, m.scroll)
	row, _ := m.app.Cursor.Pos()
	assert.Less(t, row-m.scroll, m.editorHeight())

	send(m, "g")
	assert.Zero(t, m.scroll)
}

func TestUpdate_PreviewOpensAndCloses(t *testing.T) {
	m := newTestModel(t, "Hello World")

	send(m, "p")
	assert.True(t, m.showPreview)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Report Preview")

	// Keys scroll the preview instead of reaching the app.
	send(m, "j")
	row, _ := m.app.Cursor.Pos()
	assert.Zero(t, row)

	send(m, "esc")
	assert.False(t, m.showPreview)
}

func TestUpdate_PreviewNeedsDocument(t *testing.T) {
	m := newTestModel(t, "")
	send(m, "p")
	assert.False(t, m.showPreview)
	assert.Equal(t, "No document to preview", m.app.StatusMessage)
}

func TestView_Smoke(t *testing.T) {
	m := newTestModel(t, "Hello World\nSecond line")

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "sample")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "Hello World")
	assert.Contains(t, view, "Second line")

	send(m, "v")
	assert.Contains(t, tuitest.StripANSI(m.View()), "VISUAL")

	send(m, "esc", "?")
	assert.Contains(t, tuitest.StripANSI(m.View()), "Quill Help")
}

func TestView_PickersShowOptions(t *testing.T) {
	m := newTestModel(t, "Hello World")
	send(m, "v", "l", "a")

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Must Fix")
	assert.Contains(t, view, "Consider")

	send(m, "enter")
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "None")
	assert.Contains(t, view, "Clarity")
}

func TestView_EmptyStatePrompt(t *testing.T) {
	m := newTestModel(t, "")
	assert.Contains(t, tuitest.StripANSI(m.View()), "No document loaded")
}

package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedApp(content string) *App {
	app := NewApp()
	app.LoadDocument(NewDocument("Test", content))
	return app
}

func typeComment(app *App, s string) {
	for _, r := range s {
		app.HandleEvent(Event{Kind: EventInputRune, Rune: r})
	}
}

// createAnnotation walks the full workflow: select chars rightward from
// the current position, then severity, category, comment.
func createAnnotation(app *App, chars int, severityIdx, categoryIdx int, comment string) {
	app.HandleEvent(Event{Kind: EventBeginSelection})
	for range chars {
		app.HandleEvent(Event{Kind: EventMoveRight})
	}
	app.HandleEvent(Event{Kind: EventBeginAnnotation})
	app.HandleEvent(Event{Kind: EventPickerChoose, Index: severityIdx})
	app.HandleEvent(Event{Kind: EventPickerChoose, Index: categoryIdx})
	typeComment(app, comment)
	app.HandleEvent(Event{Kind: EventSubmit})
}

func TestInitialState(t *testing.T) {
	app := NewApp()

	assert.Equal(t, ModeNormal, app.Mode)
	assert.Equal(t, FocusEditor, app.Focus)
	assert.True(t, app.Running)
	assert.Nil(t, app.Document)
	assert.Equal(t, SeverityShouldFix, app.PendingSeverity)
}

func TestQuit(t *testing.T) {
	app := NewApp()
	app.HandleEvent(Event{Kind: EventQuit})
	assert.False(t, app.Running)
}

func TestHelpMode(t *testing.T) {
	app := newLoadedApp("hello")

	app.HandleEvent(Event{Kind: EventToggleHelp})
	assert.Equal(t, ModeHelp, app.Mode)

	// Entering help alters nothing else; any event returns to Normal.
	row, col := app.Cursor.Pos()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	app.HandleEvent(Event{Kind: EventMoveDown})
	assert.Equal(t, ModeNormal, app.Mode)
	row, col = app.Cursor.Pos()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestVisualMode_SelectionTracksCursor(t *testing.T) {
	app := newLoadedApp("Hello\nWorld")

	app.HandleEvent(Event{Kind: EventBeginSelection})
	assert.Equal(t, ModeVisual, app.Mode)
	require.NotNil(t, app.SelectionStart)
	require.NotNil(t, app.SelectionEnd)
	assert.Equal(t, *app.SelectionStart, *app.SelectionEnd)

	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventMoveRight})
	assert.Equal(t, Position{Row: 0, Col: 0}, *app.SelectionStart, "start never moves")
	assert.Equal(t, Position{Row: 0, Col: 2}, *app.SelectionEnd)

	r, ok := app.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, NewTextRange(0, 2), r)
}

func TestVisualMode_Cancel(t *testing.T) {
	app := newLoadedApp("Hello")

	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventCancel})

	assert.Equal(t, ModeNormal, app.Mode)
	assert.Nil(t, app.SelectionStart)
	assert.Nil(t, app.SelectionEnd)
	assert.Nil(t, app.PendingRange)
}

func TestVisualMode_ReversedSelectionNormalizes(t *testing.T) {
	app := newLoadedApp("Hello World")

	// Move to col 5, select back to col 2.
	for range 5 {
		app.HandleEvent(Event{Kind: EventMoveRight})
	}
	app.HandleEvent(Event{Kind: EventBeginSelection})
	for range 3 {
		app.HandleEvent(Event{Kind: EventMoveLeft})
	}
	app.HandleEvent(Event{Kind: EventBeginAnnotation})

	require.NotNil(t, app.PendingRange)
	assert.Equal(t, 2, app.PendingRange.StartOffset)
	assert.Equal(t, 5, app.PendingRange.EndOffset)
}

func TestEmptySelection_NeverBecomesAnnotation(t *testing.T) {
	app := newLoadedApp("Hello")

	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})

	assert.Equal(t, ModeNormal, app.Mode, "empty selection drops back to Normal")
	assert.Nil(t, app.PendingRange)
	assert.Empty(t, app.Document.Annotations)
}

func TestAnnotationWorkflow_Complete(t *testing.T) {
	app := newLoadedApp("Hello World")

	app.HandleEvent(Event{Kind: EventBeginSelection})
	for range 5 {
		app.HandleEvent(Event{Kind: EventMoveRight})
	}
	app.HandleEvent(Event{Kind: EventBeginAnnotation})
	assert.Equal(t, ModeSeverityPicker, app.Mode)
	require.NotNil(t, app.PendingRange)

	app.HandleEvent(Event{Kind: EventSubmit}) // default ShouldFix
	assert.Equal(t, ModeCategoryPicker, app.Mode)
	assert.Equal(t, SeverityShouldFix, app.PendingSeverity)

	app.HandleEvent(Event{Kind: EventPickerChoose, Index: 2}) // Clarity
	assert.Equal(t, ModeInput, app.Mode)
	assert.Equal(t, InputComment, app.InputTarget)
	assert.Equal(t, CategoryClarity, app.PendingCategory)

	typeComment(app, "too informal")
	app.HandleEvent(Event{Kind: EventSubmit})

	assert.Equal(t, ModeNormal, app.Mode)
	require.Len(t, app.Document.Annotations, 1)

	ann := app.Document.Annotations[0]
	assert.Equal(t, "Hello", ann.SelectedText)
	assert.Equal(t, SeverityShouldFix, ann.Severity)
	assert.Equal(t, CategoryClarity, ann.Category)
	assert.Equal(t, "too informal", ann.Comment)
	assert.False(t, ann.IsResolved)
	assert.Nil(t, app.PendingRange)
	assert.Empty(t, app.InputBuffer)
	assert.Equal(t, "Annotation added", app.StatusMessage)
}

func TestAnnotationWorkflow_SlicesRunesNotBytes(t *testing.T) {
	app := newLoadedApp("héllo wörld")

	// Select "wörld": offsets 6..11 in runes.
	for range 6 {
		app.HandleEvent(Event{Kind: EventMoveRight})
	}
	createAnnotation(app, 5, 0, 0, "check spelling")

	require.Len(t, app.Document.Annotations, 1)
	assert.Equal(t, "wörld", app.Document.Annotations[0].SelectedText)
}

func TestSeverityPicker_CyclicNavigation(t *testing.T) {
	app := newLoadedApp("Hello World")
	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})

	start := app.SeveritySelected
	app.HandleEvent(Event{Kind: EventPickerNext})
	app.HandleEvent(Event{Kind: EventPickerNext})
	app.HandleEvent(Event{Kind: EventPickerNext})
	assert.Equal(t, start, app.SeveritySelected, "wraps modulo option count")

	app.HandleEvent(Event{Kind: EventPickerPrev})
	assert.Equal(t, (start+2)%3, app.SeveritySelected)
}

func TestSeverityPicker_NumericShortcut(t *testing.T) {
	app := newLoadedApp("Hello World")
	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})

	app.HandleEvent(Event{Kind: EventPickerChoose, Index: 0})
	assert.Equal(t, SeverityMustFix, app.PendingSeverity)
	assert.Equal(t, ModeCategoryPicker, app.Mode, "shortcut advances like a cyclic selection")
}

func TestSeverityPicker_CancelDiscardsPending(t *testing.T) {
	app := newLoadedApp("Hello World")
	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})
	require.NotNil(t, app.PendingRange)

	app.HandleEvent(Event{Kind: EventCancel})
	assert.Equal(t, ModeNormal, app.Mode)
	assert.Nil(t, app.PendingRange)
}

func TestCategoryPicker_NoneOptionAndCancel(t *testing.T) {
	app := newLoadedApp("Hello World")
	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})
	app.HandleEvent(Event{Kind: EventSubmit})

	// Cycle through all 7 options (None + 6 categories) back to None.
	for range 7 {
		app.HandleEvent(Event{Kind: EventPickerNext})
	}
	assert.Equal(t, 0, app.CategorySelected)

	app.HandleEvent(Event{Kind: EventSubmit})
	assert.Equal(t, ModeInput, app.Mode)
	assert.Equal(t, Category(""), app.PendingCategory)

	// Cancel from the comment prompt discards the pending range.
	app.HandleEvent(Event{Kind: EventCancel})
	assert.Equal(t, ModeNormal, app.Mode)
	assert.Nil(t, app.PendingRange)
	assert.Empty(t, app.InputBuffer)
}

func TestInput_EmptyCommentRejected(t *testing.T) {
	app := newLoadedApp("Hello World")
	app.HandleEvent(Event{Kind: EventBeginSelection})
	app.HandleEvent(Event{Kind: EventMoveRight})
	app.HandleEvent(Event{Kind: EventBeginAnnotation})
	app.HandleEvent(Event{Kind: EventSubmit})
	app.HandleEvent(Event{Kind: EventSubmit}) // category: None

	app.HandleEvent(Event{Kind: EventSubmit}) // empty comment

	assert.Equal(t, ModeInput, app.Mode, "prompt stays open")
	assert.Empty(t, app.Document.Annotations)
}

func TestInput_BackspaceIsRuneAware(t *testing.T) {
	app := newLoadedApp("Hello")
	app.HandleEvent(Event{Kind: EventOpenFilePrompt})

	typeComment(app, "naïve")
	app.HandleEvent(Event{Kind: EventInputBackspace})
	app.HandleEvent(Event{Kind: EventInputBackspace})
	assert.Equal(t, "naï", app.InputBuffer)
}

func TestFilePathPrompt(t *testing.T) {
	app := newLoadedApp("Hello")

	app.HandleEvent(Event{Kind: EventOpenFilePrompt})
	assert.Equal(t, ModeInput, app.Mode)
	assert.Equal(t, InputFilePath, app.InputTarget)

	typeComment(app, "notes.md")
	app.HandleEvent(Event{Kind: EventSubmit})

	assert.Equal(t, ModeNormal, app.Mode)
	path, ok := app.TakeLoadRequest()
	require.True(t, ok)
	assert.Equal(t, "notes.md", path)

	_, ok = app.TakeLoadRequest()
	assert.False(t, ok, "request is consumed")
}

func TestExportRequest(t *testing.T) {
	app := newLoadedApp("Hello")

	app.HandleEvent(Event{Kind: EventExport})
	assert.True(t, app.TakeExportRequest())
	assert.False(t, app.TakeExportRequest())

	// No document, no export.
	empty := NewApp()
	empty.HandleEvent(Event{Kind: EventExport})
	assert.False(t, empty.TakeExportRequest())
}

func TestCompleteAnnotation_FailsWithoutPendingState(t *testing.T) {
	app := NewApp()
	app.InputBuffer = "comment"
	assert.False(t, app.CompleteAnnotation(), "no document, no pending range")

	app = newLoadedApp("Hello")
	app.InputBuffer = "comment"
	assert.False(t, app.CompleteAnnotation(), "no pending range")
	assert.Empty(t, app.Document.Annotations)
}

func TestSidebarNavigation(t *testing.T) {
	app := newLoadedApp("aaa bbb ccc ddd")
	createAnnotation(app, 3, 0, 0, "first")
	app.Cursor.SetOffset(4)
	createAnnotation(app, 3, 1, 0, "second")
	require.Len(t, app.Document.Annotations, 2)

	app.SidebarSelected = 0
	app.HandleEvent(Event{Kind: EventNextAnnotation})
	assert.Equal(t, 1, app.SidebarSelected)
	assert.Equal(t, 4, app.Cursor.Offset(), "cursor snaps to annotation start")

	app.HandleEvent(Event{Kind: EventNextAnnotation})
	assert.Equal(t, 0, app.SidebarSelected, "wraps around")

	app.HandleEvent(Event{Kind: EventPrevAnnotation})
	assert.Equal(t, 1, app.SidebarSelected, "wraps backwards")
}

func TestSidebarFocus_VerticalKeysNavigateAnnotations(t *testing.T) {
	app := newLoadedApp("aaa bbb")
	createAnnotation(app, 3, 0, 0, "first")
	app.Cursor.SetOffset(4)
	createAnnotation(app, 3, 0, 0, "second")

	app.SidebarSelected = 0
	app.HandleEvent(Event{Kind: EventToggleFocus})
	assert.Equal(t, FocusSidebar, app.Focus)

	app.HandleEvent(Event{Kind: EventMoveDown})
	assert.Equal(t, 1, app.SidebarSelected)

	app.HandleEvent(Event{Kind: EventMoveUp})
	assert.Equal(t, 0, app.SidebarSelected)
}

func TestDeleteSelected_ClampsIndex(t *testing.T) {
	app := newLoadedApp("aaa bbb ccc")
	createAnnotation(app, 3, 0, 0, "first")
	app.Cursor.SetOffset(4)
	createAnnotation(app, 3, 0, 0, "second")
	require.Len(t, app.Document.Annotations, 2)

	// Deleting the last entry moves selection to the new last index.
	app.SidebarSelected = 1
	app.HandleEvent(Event{Kind: EventDeleteAnnotation})
	assert.Equal(t, 0, app.SidebarSelected)
	assert.Len(t, app.Document.Annotations, 1)

	// Deleting the only entry resets to 0.
	app.HandleEvent(Event{Kind: EventDeleteAnnotation})
	assert.Equal(t, 0, app.SidebarSelected)
	assert.Empty(t, app.Document.Annotations)

	// Nothing left to delete.
	assert.False(t, app.DeleteSelectedAnnotation())
}

func TestToggleSelectedResolved(t *testing.T) {
	app := newLoadedApp("aaa")
	createAnnotation(app, 3, 0, 0, "note")

	app.HandleEvent(Event{Kind: EventToggleResolved})
	assert.True(t, app.Document.Annotations[0].IsResolved)

	app.HandleEvent(Event{Kind: EventToggleResolved})
	assert.False(t, app.Document.Annotations[0].IsResolved)

	assert.False(t, NewApp().ToggleSelectedResolved())
}

func TestLoadDocument_ResetsTransientState(t *testing.T) {
	app := newLoadedApp("first document")
	createAnnotation(app, 5, 0, 0, "note")
	app.SidebarSelected = 0
	app.Cursor.SetOffset(6)

	app.LoadDocument(NewDocument("Other", "second"))

	row, col := app.Cursor.Pos()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, app.SidebarSelected)
	assert.Nil(t, app.SelectionStart)
	assert.Nil(t, app.PendingRange)
	assert.Empty(t, app.Document.Annotations)
}

func TestTitle(t *testing.T) {
	app := NewApp()
	assert.Equal(t, "No document", app.Title())

	app.LoadDocument(NewDocument("My Title", "x"))
	assert.Equal(t, "My Title", app.Title())

	app.LoadDocument(NewFileDocument("My Title", "x", "/tmp/essay.md", "essay.md"))
	assert.Equal(t, "essay.md", app.Title())
}

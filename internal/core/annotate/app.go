package annotate

import (
	"github.com/colonyops/quill/internal/core/cursor"
)

// Mode is the active state of the interaction state machine. It gates
// which input events are meaningful.
type Mode int

// Interaction modes.
const (
	ModeNormal Mode = iota
	ModeVisual
	ModeInput
	ModeSeverityPicker
	ModeCategoryPicker
	ModeHelp
)

// String returns the status-bar label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeVisual:
		return "VISUAL"
	case ModeInput:
		return "INPUT"
	case ModeSeverityPicker:
		return "SEVERITY"
	case ModeCategoryPicker:
		return "CATEGORY"
	case ModeHelp:
		return "HELP"
	}
	return "UNKNOWN"
}

// Focus selects which pane navigation keys act on.
type Focus int

// Focus areas.
const (
	FocusEditor Focus = iota
	FocusSidebar
)

// InputTarget says what the input buffer is being typed for.
type InputTarget int

// Input targets.
const (
	InputComment InputTarget = iota
	InputFilePath
)

// Position is a (row, col) cursor position captured for selection.
type Position struct {
	Row int
	Col int
}

// App is the platform-agnostic interaction state: one owned value mutated
// in place by a single logical thread. Adapters feed it events through
// HandleEvent and render from its fields; they hold no state of their own
// beyond presentation.
type App struct {
	Document *Document
	Cursor   *cursor.Engine
	Mode     Mode
	Focus    Focus
	Running  bool

	// Selection state, live only during Visual mode.
	SelectionStart *Position
	SelectionEnd   *Position

	// SidebarSelected indexes into SortedView.
	SidebarSelected int

	// Input state.
	InputBuffer string
	InputTarget InputTarget

	// Picker state.
	SeveritySelected int
	CategorySelected int

	// Pending annotation workflow state, held between the start and
	// completion of annotation creation.
	PendingRange    *TextRange
	PendingCategory Category
	PendingSeverity Severity

	// StatusMessage is set on every mutating action; the adapter is
	// expected to clear it on the next input event.
	StatusMessage string

	// DefaultSeverity seeds PendingSeverity for each new workflow.
	DefaultSeverity Severity

	// Requests for the I/O collaborator, consumed via TakeLoadRequest
	// and TakeExportRequest.
	loadRequest   string
	exportRequest bool
}

// NewApp returns an app in Normal mode with no document loaded.
func NewApp() *App {
	return &App{
		Cursor:           cursor.New(),
		Mode:             ModeNormal,
		Focus:            FocusEditor,
		Running:          true,
		SeveritySelected: severityIndex(SeverityShouldFix),
		PendingSeverity:  SeverityShouldFix,
		DefaultSeverity:  SeverityShouldFix,
	}
}

// LoadDocument replaces the current document and resets all transient view
// state derived from it.
func (a *App) LoadDocument(doc *Document) {
	a.Cursor.SetContent(doc.Content)
	a.Document = doc
	a.SidebarSelected = 0
	a.SelectionStart = nil
	a.SelectionEnd = nil
	a.PendingRange = nil
}

// Title returns the display title: the origin filename when known,
// otherwise the document title, otherwise a placeholder.
func (a *App) Title() string {
	if a.Document == nil {
		return "No document"
	}
	if a.Document.Filename != "" {
		return a.Document.Filename
	}
	if a.Document.Title != "" {
		return a.Document.Title
	}
	return "Untitled"
}

// SetStatus sets the status message slot.
func (a *App) SetStatus(msg string) {
	a.StatusMessage = msg
}

// ClearStatus empties the status message slot. Called by the adapter at
// the start of each input event.
func (a *App) ClearStatus() {
	a.StatusMessage = ""
}

// ToggleFocus switches navigation between the editor and the sidebar.
func (a *App) ToggleFocus() {
	if a.Focus == FocusEditor {
		a.Focus = FocusSidebar
	} else {
		a.Focus = FocusEditor
	}
}

// EnterVisualMode snapshots the cursor as both selection endpoints and
// switches to Visual mode.
func (a *App) EnterVisualMode() {
	row, col := a.Cursor.Pos()
	pos := Position{Row: row, Col: col}
	a.Mode = ModeVisual
	a.SelectionStart = &pos
	end := pos
	a.SelectionEnd = &end
}

// UpdateSelection moves the selection end to the current cursor position.
// Only the end moves; the start stays where selection began.
func (a *App) UpdateSelection() {
	if a.Mode != ModeVisual {
		return
	}
	row, col := a.Cursor.Pos()
	a.SelectionEnd = &Position{Row: row, Col: col}
}

// ExitVisualMode leaves Visual mode and converts the captured endpoints to
// a normalized offset range. A selection that collapsed to zero width is
// discarded and nil is returned.
func (a *App) ExitVisualMode() *TextRange {
	if a.Mode != ModeVisual {
		return nil
	}

	start, end := a.SelectionStart, a.SelectionEnd
	a.Mode = ModeNormal
	a.SelectionStart = nil
	a.SelectionEnd = nil

	if start == nil || end == nil {
		return nil
	}

	idx := a.Cursor.Index()
	startOffset := idx.OffsetOf(start.Row, start.Col)
	endOffset := idx.OffsetOf(end.Row, end.Col)
	if startOffset == endOffset {
		return nil
	}

	r := NewTextRange(startOffset, endOffset)
	return &r
}

// SelectionRange returns the normalized offset range of the in-progress
// selection for highlighting, without leaving Visual mode.
func (a *App) SelectionRange() (TextRange, bool) {
	if a.Mode != ModeVisual || a.SelectionStart == nil || a.SelectionEnd == nil {
		return TextRange{}, false
	}
	idx := a.Cursor.Index()
	return NewTextRange(
		idx.OffsetOf(a.SelectionStart.Row, a.SelectionStart.Col),
		idx.OffsetOf(a.SelectionEnd.Row, a.SelectionEnd.Col),
	), true
}

// StartAnnotation begins the creation workflow from the current selection.
// With a non-empty range it moves to the severity picker carrying the
// range as pending state; an empty selection just drops back to Normal.
func (a *App) StartAnnotation() {
	r := a.ExitVisualMode()
	if r == nil {
		return
	}
	a.PendingRange = r
	a.PendingSeverity = a.DefaultSeverity
	a.SeveritySelected = severityIndex(a.DefaultSeverity)
	a.CategorySelected = 0
	a.Mode = ModeSeverityPicker
}

// CompleteAnnotation finishes the workflow: it builds an annotation from
// the pending range, the text it covers, the pending category and
// severity, and the input buffer as comment, then adds it to the document.
// Fails without mutation when there is no pending range, no document, or
// an empty comment.
func (a *App) CompleteAnnotation() bool {
	if a.PendingRange == nil || a.Document == nil || a.InputBuffer == "" {
		return false
	}

	r := *a.PendingRange
	selected := a.Cursor.Index().Slice(r.StartOffset, r.EndOffset)

	ann := NewAnnotation(r, selected, a.InputBuffer)
	ann.Category = a.PendingCategory
	ann.Severity = a.PendingSeverity
	a.Document.AddAnnotation(ann)

	a.resetWorkflow()
	a.Mode = ModeNormal
	a.SetStatus("Annotation added")
	return true
}

// SelectedAnnotation returns the annotation at the sidebar index in sorted
// order, or nil when out of range.
func (a *App) SelectedAnnotation() *Annotation {
	if a.Document == nil {
		return nil
	}
	view := a.Document.SortedView()
	if a.SidebarSelected < 0 || a.SidebarSelected >= len(view) {
		return nil
	}
	return view[a.SidebarSelected]
}

// NextAnnotation advances the sidebar selection cyclically and snaps the
// cursor to the selected annotation's start.
func (a *App) NextAnnotation() {
	a.stepAnnotation(1)
}

// PrevAnnotation steps the sidebar selection backwards cyclically and
// snaps the cursor to the selected annotation's start.
func (a *App) PrevAnnotation() {
	a.stepAnnotation(-1)
}

func (a *App) stepAnnotation(delta int) {
	if a.Document == nil {
		return
	}
	count := len(a.Document.Annotations)
	if count == 0 {
		return
	}
	a.SidebarSelected = ((a.SidebarSelected+delta)%count + count) % count
	if ann := a.SelectedAnnotation(); ann != nil {
		a.Cursor.SetOffset(ann.StartOffset)
	}
}

// DeleteSelectedAnnotation removes the sidebar-selected annotation and
// clamps the selection index to the new last valid entry (0 when the list
// empties).
func (a *App) DeleteSelectedAnnotation() bool {
	ann := a.SelectedAnnotation()
	if ann == nil || a.Document == nil {
		return false
	}
	if !a.Document.RemoveAnnotation(ann.ID) {
		return false
	}

	count := len(a.Document.Annotations)
	switch {
	case count == 0:
		a.SidebarSelected = 0
	case a.SidebarSelected >= count:
		a.SidebarSelected = count - 1
	}
	a.SetStatus("Annotation deleted")
	return true
}

// ToggleSelectedResolved flips the resolved flag on the sidebar-selected
// annotation.
func (a *App) ToggleSelectedResolved() bool {
	ann := a.SelectedAnnotation()
	if ann == nil || a.Document == nil {
		return false
	}
	if !a.Document.ToggleResolved(ann.ID) {
		return false
	}
	a.SetStatus("Toggled resolved status")
	return true
}

// TakeLoadRequest returns and clears the file path typed into the open
// prompt, if any. The I/O collaborator consumes this after each event.
func (a *App) TakeLoadRequest() (string, bool) {
	if a.loadRequest == "" {
		return "", false
	}
	path := a.loadRequest
	a.loadRequest = ""
	return path, true
}

// TakeExportRequest returns and clears the export flag.
func (a *App) TakeExportRequest() bool {
	req := a.exportRequest
	a.exportRequest = false
	return req
}

func (a *App) resetWorkflow() {
	a.PendingRange = nil
	a.PendingCategory = ""
	a.PendingSeverity = a.DefaultSeverity
	a.SeveritySelected = severityIndex(a.DefaultSeverity)
	a.CategorySelected = 0
	a.InputBuffer = ""
}

func severityIndex(s Severity) int {
	for i, sev := range Severities() {
		if sev == s {
			return i
		}
	}
	return 0
}

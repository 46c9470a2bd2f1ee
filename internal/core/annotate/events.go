package annotate

// EventKind identifies an abstract input event. Adapters translate
// platform key presses into these; the core never sees key codes.
type EventKind int

// Event kinds.
const (
	EventNone EventKind = iota

	EventQuit
	EventToggleHelp
	EventToggleFocus

	// Cursor motion.
	EventMoveUp
	EventMoveDown
	EventMoveLeft
	EventMoveRight
	EventMoveTop
	EventMoveBottom
	EventWordForward
	EventWordBack

	// Selection and annotation workflow.
	EventBeginSelection
	EventBeginAnnotation
	EventCancel
	EventSubmit

	// Picker navigation.
	EventPickerNext
	EventPickerPrev
	EventPickerChoose // Index carries the option index

	// Text input.
	EventInputRune // Rune carries the typed character
	EventInputBackspace

	// Annotation list operations.
	EventNextAnnotation
	EventPrevAnnotation
	EventDeleteAnnotation
	EventToggleResolved

	// I/O requests handled by the external collaborator.
	EventOpenFilePrompt
	EventExport
)

// Event is one discrete input event.
type Event struct {
	Kind  EventKind
	Rune  rune
	Index int
}

// HandleEvent processes one event to completion: the state transition plus
// any document mutation happen before it returns. Dispatch is by current
// mode; events that are meaningless in the current mode are ignored.
func (a *App) HandleEvent(ev Event) {
	switch a.Mode {
	case ModeNormal:
		a.handleNormal(ev)
	case ModeVisual:
		a.handleVisual(ev)
	case ModeInput:
		a.handleInput(ev)
	case ModeSeverityPicker:
		a.handleSeverityPicker(ev)
	case ModeCategoryPicker:
		a.handleCategoryPicker(ev)
	case ModeHelp:
		// Any event leaves help.
		a.Mode = ModeNormal
	}
}

func (a *App) handleNormal(ev Event) {
	switch ev.Kind {
	case EventQuit:
		a.Running = false
	case EventToggleHelp:
		a.Mode = ModeHelp
	case EventToggleFocus:
		a.ToggleFocus()

	case EventMoveDown:
		if a.Focus == FocusEditor {
			a.Cursor.Down()
		} else {
			a.NextAnnotation()
		}
	case EventMoveUp:
		if a.Focus == FocusEditor {
			a.Cursor.Up()
		} else {
			a.PrevAnnotation()
		}
	case EventMoveLeft:
		a.Cursor.Left()
	case EventMoveRight:
		a.Cursor.Right()
	case EventMoveTop:
		a.Cursor.ToTop()
	case EventMoveBottom:
		a.Cursor.ToBottom()
	case EventWordForward:
		a.Cursor.WordForward()
	case EventWordBack:
		a.Cursor.WordBack()

	case EventBeginSelection:
		a.EnterVisualMode()

	case EventNextAnnotation:
		a.NextAnnotation()
	case EventPrevAnnotation:
		a.PrevAnnotation()
	case EventDeleteAnnotation:
		a.DeleteSelectedAnnotation()
	case EventToggleResolved:
		a.ToggleSelectedResolved()

	case EventOpenFilePrompt:
		a.InputBuffer = ""
		a.InputTarget = InputFilePath
		a.Mode = ModeInput
	case EventExport:
		if a.Document != nil {
			a.exportRequest = true
		}
	}
}

func (a *App) handleVisual(ev Event) {
	switch ev.Kind {
	case EventCancel:
		a.Mode = ModeNormal
		a.SelectionStart = nil
		a.SelectionEnd = nil

	case EventMoveUp:
		a.Cursor.Up()
		a.UpdateSelection()
	case EventMoveDown:
		a.Cursor.Down()
		a.UpdateSelection()
	case EventMoveLeft:
		a.Cursor.Left()
		a.UpdateSelection()
	case EventMoveRight:
		a.Cursor.Right()
		a.UpdateSelection()
	case EventMoveTop:
		a.Cursor.ToTop()
		a.UpdateSelection()
	case EventMoveBottom:
		a.Cursor.ToBottom()
		a.UpdateSelection()
	case EventWordForward:
		a.Cursor.WordForward()
		a.UpdateSelection()
	case EventWordBack:
		a.Cursor.WordBack()
		a.UpdateSelection()

	case EventBeginAnnotation:
		a.StartAnnotation()
	}
}

func (a *App) handleInput(ev Event) {
	switch ev.Kind {
	case EventCancel:
		a.Mode = ModeNormal
		a.InputBuffer = ""
		a.PendingRange = nil

	case EventInputRune:
		a.InputBuffer += string(ev.Rune)

	case EventInputBackspace:
		if a.InputBuffer != "" {
			runes := []rune(a.InputBuffer)
			a.InputBuffer = string(runes[:len(runes)-1])
		}

	case EventSubmit:
		switch a.InputTarget {
		case InputComment:
			if a.CompleteAnnotation() {
				return
			}
			if a.InputBuffer == "" {
				// Keep the prompt open; an empty comment never
				// produces an annotation.
				a.SetStatus("Comment cannot be empty")
				return
			}
			// No pending range or no document: nothing to complete.
			a.resetWorkflow()
			a.Mode = ModeNormal
		case InputFilePath:
			if a.InputBuffer != "" {
				a.loadRequest = a.InputBuffer
			}
			a.InputBuffer = ""
			a.Mode = ModeNormal
		}
	}
}

func (a *App) handleSeverityPicker(ev Event) {
	options := Severities()

	switch ev.Kind {
	case EventCancel:
		a.resetWorkflow()
		a.Mode = ModeNormal

	case EventPickerNext:
		a.SeveritySelected = (a.SeveritySelected + 1) % len(options)
	case EventPickerPrev:
		a.SeveritySelected = (a.SeveritySelected + len(options) - 1) % len(options)

	case EventSubmit:
		a.chooseSeverity(options[a.SeveritySelected])
	case EventPickerChoose:
		if ev.Index >= 0 && ev.Index < len(options) {
			a.SeveritySelected = ev.Index
			a.chooseSeverity(options[ev.Index])
		}
	}
}

func (a *App) chooseSeverity(s Severity) {
	a.PendingSeverity = s
	a.Mode = ModeCategoryPicker
}

func (a *App) handleCategoryPicker(ev Event) {
	// Option 0 is "None"; categories follow.
	options := Categories()
	total := len(options) + 1

	switch ev.Kind {
	case EventCancel:
		a.resetWorkflow()
		a.Mode = ModeNormal

	case EventPickerNext:
		a.CategorySelected = (a.CategorySelected + 1) % total
	case EventPickerPrev:
		a.CategorySelected = (a.CategorySelected + total - 1) % total

	case EventSubmit:
		a.chooseCategory(a.CategorySelected)
	case EventPickerChoose:
		if ev.Index >= 0 && ev.Index < total {
			a.CategorySelected = ev.Index
			a.chooseCategory(ev.Index)
		}
	}
}

func (a *App) chooseCategory(index int) {
	if index == 0 {
		a.PendingCategory = ""
	} else {
		a.PendingCategory = Categories()[index-1]
	}
	a.InputBuffer = ""
	a.InputTarget = InputComment
	a.Mode = ModeInput
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/tui/components"
)

// Picker numeric shortcuts. Severity options are 1-indexed on screen;
// the category picker reserves 0 for "None".
var (
	severityShortcuts = map[string]int{"1": 0, "2": 1, "3": 2}
	categoryShortcuts = map[string]int{
		"0": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6,
	}
)

// translateKey maps a terminal key press to the abstract event the core
// understands for the current mode. Text input runes are handled by the
// model directly since a paste may carry several at once.
func translateKey(mode annotate.Mode, msg tea.KeyMsg) annotate.Event {
	switch mode {
	case annotate.ModeNormal:
		return normalKey(msg)
	case annotate.ModeVisual:
		return visualKey(msg)
	case annotate.ModeInput:
		return inputKey(msg)
	case annotate.ModeSeverityPicker:
		return pickerKey(msg, severityShortcuts)
	case annotate.ModeCategoryPicker:
		return pickerKey(msg, categoryShortcuts)
	case annotate.ModeHelp:
		// Any key closes help.
		return annotate.Event{Kind: annotate.EventCancel}
	}
	return annotate.Event{}
}

func normalKey(msg tea.KeyMsg) annotate.Event {
	switch msg.String() {
	case "q", "ctrl+c":
		return annotate.Event{Kind: annotate.EventQuit}
	case "?":
		return annotate.Event{Kind: annotate.EventToggleHelp}
	case "tab":
		return annotate.Event{Kind: annotate.EventToggleFocus}
	case "v":
		return annotate.Event{Kind: annotate.EventBeginSelection}
	case "]":
		return annotate.Event{Kind: annotate.EventNextAnnotation}
	case "[":
		return annotate.Event{Kind: annotate.EventPrevAnnotation}
	case "d":
		return annotate.Event{Kind: annotate.EventDeleteAnnotation}
	case "r":
		return annotate.Event{Kind: annotate.EventToggleResolved}
	case "o":
		return annotate.Event{Kind: annotate.EventOpenFilePrompt}
	case "e":
		return annotate.Event{Kind: annotate.EventExport}
	}
	return motionKey(msg)
}

func visualKey(msg tea.KeyMsg) annotate.Event {
	switch msg.String() {
	case "esc", "v", "ctrl+c":
		return annotate.Event{Kind: annotate.EventCancel}
	case "a", "enter":
		return annotate.Event{Kind: annotate.EventBeginAnnotation}
	}
	return motionKey(msg)
}

func inputKey(msg tea.KeyMsg) annotate.Event {
	switch msg.String() {
	case "esc", "ctrl+c":
		return annotate.Event{Kind: annotate.EventCancel}
	case "enter":
		return annotate.Event{Kind: annotate.EventSubmit}
	case "backspace":
		return annotate.Event{Kind: annotate.EventInputBackspace}
	case " ":
		return annotate.Event{Kind: annotate.EventInputRune, Rune: ' '}
	}
	return annotate.Event{}
}

func pickerKey(msg tea.KeyMsg, shortcuts map[string]int) annotate.Event {
	key := msg.String()
	switch key {
	case "esc", "ctrl+c":
		return annotate.Event{Kind: annotate.EventCancel}
	case "enter":
		return annotate.Event{Kind: annotate.EventSubmit}
	case "j", "down", "tab":
		return annotate.Event{Kind: annotate.EventPickerNext}
	case "k", "up", "shift+tab":
		return annotate.Event{Kind: annotate.EventPickerPrev}
	}
	if idx, ok := shortcuts[key]; ok {
		return annotate.Event{Kind: annotate.EventPickerChoose, Index: idx}
	}
	return annotate.Event{}
}

func motionKey(msg tea.KeyMsg) annotate.Event {
	switch msg.String() {
	case "j", "down":
		return annotate.Event{Kind: annotate.EventMoveDown}
	case "k", "up":
		return annotate.Event{Kind: annotate.EventMoveUp}
	case "h", "left":
		return annotate.Event{Kind: annotate.EventMoveLeft}
	case "l", "right":
		return annotate.Event{Kind: annotate.EventMoveRight}
	case "g", "home":
		return annotate.Event{Kind: annotate.EventMoveTop}
	case "G", "end":
		return annotate.Event{Kind: annotate.EventMoveBottom}
	case "w":
		return annotate.Event{Kind: annotate.EventWordForward}
	case "b":
		return annotate.Event{Kind: annotate.EventWordBack}
	}
	return annotate.Event{}
}

// helpSections describes every binding shown in the help dialog.
func helpSections() []components.HelpSection {
	return []components.HelpSection{
		{
			Title: "Navigation",
			Entries: []components.HelpEntry{
				{Key: "h/j/k/l", Desc: "move cursor"},
				{Key: "w / b", Desc: "word forward / back"},
				{Key: "g / G", Desc: "top / bottom of document"},
				{Key: "tab", Desc: "switch editor / sidebar focus"},
			},
		},
		{
			Title: "Annotations",
			Entries: []components.HelpEntry{
				{Key: "v", Desc: "start visual selection"},
				{Key: "a / enter", Desc: "annotate selection"},
				{Key: "] / [", Desc: "next / previous annotation"},
				{Key: "d", Desc: "delete selected annotation"},
				{Key: "r", Desc: "toggle resolved"},
			},
		},
		{
			Title: "Document",
			Entries: []components.HelpEntry{
				{Key: "o", Desc: "open file"},
				{Key: "e", Desc: "export document"},
				{Key: "p", Desc: "preview report"},
				{Key: "q", Desc: "quit"},
			},
		},
	}
}

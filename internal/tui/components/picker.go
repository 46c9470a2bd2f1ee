package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/quill/internal/core/styles"
)

// PickerOption is a single selectable entry in a picker modal.
type PickerOption struct {
	Label    string
	Shortcut string
	Style    lipgloss.Style
}

// Picker renders a small modal list with a cursor. Selection state lives
// with the caller; the picker only draws it.
type Picker struct {
	title   string
	options []PickerOption
}

// NewPicker creates a picker modal with the given title and options.
func NewPicker(title string, options []PickerOption) *Picker {
	return &Picker{title: title, options: options}
}

// View renders the picker with the cursor on the selected index.
func (p *Picker) View(selected int) string {
	title := styles.TitleStyle.Render(p.title)

	lines := make([]string, 0, len(p.options))
	for i, opt := range p.options {
		cursor := "  "
		label := opt.Style.Render(opt.Label)
		if i == selected {
			cursor = styles.PickerCursorStyle.Render("> ")
		}
		shortcut := styles.MutedStyle.Render(fmt.Sprintf("[%s]", opt.Shortcut))
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, shortcut, label))
	}

	help := styles.MutedStyle.Render("j/k move  enter select  esc cancel")
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		"",
		help,
	)

	return styles.ModalStyle.Render(content)
}

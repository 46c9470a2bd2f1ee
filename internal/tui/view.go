package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/core/styles"
)

const sidebarWidth = 34

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showPreview {
		return m.viewPreview()
	}

	switch m.app.Mode {
	case annotate.ModeHelp:
		return m.centered(m.help.View())
	case annotate.ModeSeverityPicker:
		return m.centered(m.severityPicker.View(m.app.SeveritySelected))
	case annotate.ModeCategoryPicker:
		return m.centered(m.categoryPicker.View(m.app.CategorySelected))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTitle(),
		m.viewPanes(),
		m.viewBottom(),
	)
}

func (m *Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) editorHeight() int {
	// Title, status and the pane border rows.
	return max(m.height-4, 0)
}

func (m *Model) viewTitle() string {
	title := styles.TitleStyle.Render("quill")
	doc := styles.TextStyle.Render(m.app.Title())
	sep := styles.MutedStyle.Render(" · ")
	return title + sep + doc
}

func (m *Model) viewPanes() string {
	height := m.editorHeight()

	withSidebar := m.width >= 72
	editorWidth := m.width - 2
	if withSidebar {
		editorWidth = m.width - sidebarWidth - 2
	}
	editorWidth = max(editorWidth, 10)

	editorPane := m.paneStyle(annotate.FocusEditor).
		Width(editorWidth).
		Height(height).
		Render(m.viewEditor(editorWidth, height))

	if !withSidebar {
		return editorPane
	}

	sidebarPane := m.paneStyle(annotate.FocusSidebar).
		Width(sidebarWidth - 2).
		Height(height).
		Render(m.viewSidebar(sidebarWidth-2, height))

	return lipgloss.JoinHorizontal(lipgloss.Top, editorPane, sidebarPane)
}

func (m *Model) paneStyle(pane annotate.Focus) lipgloss.Style {
	if m.app.Focus == pane {
		return styles.FocusedPaneStyle
	}
	return styles.PaneStyle
}

func (m *Model) viewEditor(width, height int) string {
	doc := m.app.Document
	if doc == nil {
		return styles.MutedStyle.Render("No document loaded.\n\nPress o to open a file, ? for help.")
	}

	idx := m.app.Cursor.Index()
	numWidth := max(len(fmt.Sprintf("%d", idx.LineCount())), 3)
	textWidth := max(width-numWidth-1, 1)

	var lines []string
	if idx.LineCount() == 0 {
		lines = append(lines, strings.Repeat(" ", numWidth)+" "+styles.CursorStyle.Render(" "))
	}

	for row := m.scroll; row < idx.LineCount() && len(lines) < height; row++ {
		num := styles.LineNumberStyle.Render(fmt.Sprintf("%*d", numWidth, row+1))
		lines = append(lines, num+" "+m.renderLine(row, textWidth))
	}

	return strings.Join(lines, "\n")
}

// Highlight classes in increasing precedence.
type runeClass int

const (
	clsText runeClass = iota
	clsAnnotated
	clsSelection
	clsCursor
)

func classStyle(c runeClass) lipgloss.Style {
	switch c {
	case clsCursor:
		return styles.CursorStyle
	case clsSelection:
		return styles.SelectionStyle
	case clsAnnotated:
		return styles.AnnotatedStyle
	}
	return styles.TextStyle
}

// renderLine renders one editor row with cursor, selection and annotation
// highlighting, grouping runs of equal style.
func (m *Model) renderLine(row, width int) string {
	idx := m.app.Cursor.Index()
	line := idx.Line(row)
	if len(line) > width {
		line = line[:width]
	}

	crow, ccol := m.app.Cursor.Pos()
	lineStart := idx.OffsetOf(row, 0)

	sel, hasSel := m.app.SelectionRange()
	if !hasSel && m.app.PendingRange != nil {
		sel, hasSel = *m.app.PendingRange, true
	}

	classAt := func(col int) runeClass {
		if row == crow && col == ccol {
			return clsCursor
		}
		offset := lineStart + col
		if hasSel && sel.Contains(offset) {
			return clsSelection
		}
		if m.annotatedAt(offset) {
			return clsAnnotated
		}
		return clsText
	}

	var b strings.Builder
	runStart := 0
	for col := 1; col <= len(line); col++ {
		if col == len(line) || classAt(col) != classAt(runStart) {
			b.WriteString(classStyle(classAt(runStart)).Render(string(line[runStart:col])))
			runStart = col
		}
	}

	// The cursor may rest one past the last rune.
	if row == crow && ccol == len(line) {
		b.WriteString(styles.CursorStyle.Render(" "))
	}

	return b.String()
}

func (m *Model) annotatedAt(offset int) bool {
	doc := m.app.Document
	if doc == nil {
		return false
	}
	for i := range doc.Annotations {
		a := &doc.Annotations[i]
		if !a.IsResolved && a.Contains(offset) {
			return true
		}
	}
	return false
}

func (m *Model) viewSidebar(width, height int) string {
	doc := m.app.Document

	count := 0
	if doc != nil {
		count = len(doc.Annotations)
	}
	header := styles.TitleStyle.Render("Annotations") +
		styles.MutedStyle.Render(fmt.Sprintf(" (%d)", count))

	lines := []string{header, ""}
	if count == 0 {
		lines = append(lines, styles.MutedStyle.Render("v to select, a to annotate"))
		return strings.Join(lines, "\n")
	}

	for i, ann := range doc.SortedView() {
		if len(lines) >= height {
			break
		}

		badge := styles.SeverityStyle(ann.Severity).Render(ann.Severity.Short())
		excerptWidth := max(width-lipgloss.Width(badge)-4, 4)
		excerpt := truncate(ann.SelectedText, excerptWidth)

		itemStyle := styles.SidebarItemStyle
		if ann.IsResolved {
			itemStyle = styles.ResolvedStyle
		}

		prefix := "  "
		if i == m.app.SidebarSelected {
			prefix = styles.SidebarSelectedStyle.Render("> ")
			if !ann.IsResolved {
				itemStyle = styles.SidebarSelectedStyle
			}
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, badge, itemStyle.Render(excerpt)))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) viewBottom() string {
	if m.app.Mode == annotate.ModeInput {
		return m.viewInputBar()
	}
	return m.viewStatusBar()
}

func (m *Model) viewInputBar() string {
	label := "Comment: "
	if m.app.InputTarget == annotate.InputFilePath {
		label = "Open file: "
	}
	return styles.InputPromptStyle.Render(label) +
		styles.TextStyle.Render(m.app.InputBuffer) +
		styles.CursorStyle.Render(" ")
}

func (m *Model) viewStatusBar() string {
	mode := styles.ModeBadgeStyle.Render(m.app.Mode.String())

	middle := styles.MutedStyle.Render("? help")
	if m.app.StatusMessage != "" {
		middle = styles.StatusMsgStyle.Render(m.app.StatusMessage)
	}

	right := ""
	if m.app.Document != nil {
		row, col := m.app.Cursor.Pos()
		right = styles.MutedStyle.Render(fmt.Sprintf("%d words  Ln %d, Col %d",
			m.app.Document.WordCount(), row+1, col+1))
	}

	left := mode + " " + middle
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) viewPreview() string {
	title := styles.TitleStyle.Render("Report Preview")
	help := styles.MutedStyle.Render("j/k scroll  esc close")
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.preview.View(),
		help,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

// truncate limits s to width runes, appending an ellipsis when clipped.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

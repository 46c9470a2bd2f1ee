// Package styles provides shared lipgloss styles for the quill TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/quill/internal/core/annotate"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Shared styles, rebuilt whenever the theme changes.
var (
	TitleStyle      lipgloss.Style
	TextStyle       lipgloss.Style
	MutedStyle      lipgloss.Style
	StatusBarStyle  lipgloss.Style
	ModeBadgeStyle  lipgloss.Style
	StatusMsgStyle  lipgloss.Style
	LineNumberStyle lipgloss.Style

	CursorStyle    lipgloss.Style
	SelectionStyle lipgloss.Style
	AnnotatedStyle lipgloss.Style

	PaneStyle        lipgloss.Style
	FocusedPaneStyle lipgloss.Style

	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	ResolvedStyle        lipgloss.Style

	ModalStyle        lipgloss.Style
	PickerCursorStyle lipgloss.Style
	HelpSectionStyle  lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	InputPromptStyle  lipgloss.Style

	severityStyles map[annotate.Severity]lipgloss.Style
)

func rebuild() {
	p := CurrentPalette

	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface)
	ModeBadgeStyle = lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Bold(true).Padding(0, 1)
	StatusMsgStyle = lipgloss.NewStyle().Foreground(p.Warning)
	LineNumberStyle = lipgloss.NewStyle().Foreground(p.Muted)

	CursorStyle = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().Background(p.Surface)
	AnnotatedStyle = lipgloss.NewStyle().Underline(true).Foreground(p.Secondary)

	PaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted)
	FocusedPaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary)

	SidebarItemStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	SidebarSelectedStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	ResolvedStyle = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)

	ModalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 2)
	PickerCursorStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	HelpSectionStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	InputPromptStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)

	severityStyles = map[annotate.Severity]lipgloss.Style{
		annotate.SeverityMustFix:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		annotate.SeverityShouldFix: lipgloss.NewStyle().Foreground(p.Warning),
		annotate.SeverityConsider:  lipgloss.NewStyle().Foreground(p.Success),
	}
}

// SeverityStyle returns the style for a severity badge.
func SeverityStyle(s annotate.Severity) lipgloss.Style {
	if st, ok := severityStyles[s]; ok {
		return st
	}
	return TextStyle
}

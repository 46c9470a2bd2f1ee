// Package annotate holds the annotation domain model and the modal
// interaction state machine built on top of it.
package annotate

import "github.com/google/uuid"

// Severity is how urgently an annotation needs addressing. Required on
// every annotation; ordered MustFix > ShouldFix > Consider for display
// grouping.
type Severity string

// Severity levels, in display order.
const (
	SeverityMustFix   Severity = "must-fix"
	SeverityShouldFix Severity = "should-fix"
	SeverityConsider  Severity = "consider"
)

// Severities returns all severity levels in display order.
func Severities() []Severity {
	return []Severity{SeverityMustFix, SeverityShouldFix, SeverityConsider}
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMustFix, SeverityShouldFix, SeverityConsider:
		return true
	}
	return false
}

// Display returns the human-readable form, e.g. "Must Fix".
func (s Severity) Display() string {
	switch s {
	case SeverityMustFix:
		return "Must Fix"
	case SeverityShouldFix:
		return "Should Fix"
	case SeverityConsider:
		return "Consider"
	}
	return string(s)
}

// Short returns the compact badge form used in the sidebar.
func (s Severity) Short() string {
	switch s {
	case SeverityMustFix:
		return "MUST"
	case SeverityShouldFix:
		return "SHOULD"
	case SeverityConsider:
		return "CONSIDER"
	}
	return string(s)
}

// Category classifies an annotation. Optional; the zero value means
// uncategorized. Serialized upper-cased on the wire.
type Category string

// Annotation categories.
const (
	CategoryVoice     Category = "VOICE"
	CategoryClarity   Category = "CLARITY"
	CategoryStructure Category = "STRUCTURE"
	CategoryExpand    Category = "EXPAND"
	CategoryCondense  Category = "CONDENSE"
	CategoryRephrase  Category = "REPHRASE"
)

// Categories returns all categories in picker order.
func Categories() []Category {
	return []Category{
		CategoryVoice,
		CategoryClarity,
		CategoryStructure,
		CategoryExpand,
		CategoryCondense,
		CategoryRephrase,
	}
}

// Valid reports whether c is a known category. The zero value is not
// valid; absence is modeled by the empty string.
func (c Category) Valid() bool {
	switch c {
	case CategoryVoice, CategoryClarity, CategoryStructure,
		CategoryExpand, CategoryCondense, CategoryRephrase:
		return true
	}
	return false
}

// Display returns the human-readable form, e.g. "Clarity".
func (c Category) Display() string {
	switch c {
	case CategoryVoice:
		return "Voice"
	case CategoryClarity:
		return "Clarity"
	case CategoryStructure:
		return "Structure"
	case CategoryExpand:
		return "Expand"
	case CategoryCondense:
		return "Condense"
	case CategoryRephrase:
		return "Rephrase"
	}
	return string(c)
}

// TextRange is a half-open [StartOffset, EndOffset) interval of rune
// offsets into document content.
type TextRange struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
}

// NewTextRange constructs a range from two endpoints in either order, so
// StartOffset <= EndOffset always holds.
func NewTextRange(a, b int) TextRange {
	if a > b {
		a, b = b, a
	}
	return TextRange{StartOffset: a, EndOffset: b}
}

// IsEmpty reports whether the range covers no characters. Empty ranges
// must never become annotations.
func (r TextRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains reports whether the offset falls inside the half-open range.
func (r TextRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Annotation is structured feedback attached to a text range. The
// SelectedText field is a snapshot taken at creation time and is not
// re-derived if content changes later.
type Annotation struct {
	ID uuid.UUID `json:"id"`
	TextRange
	SelectedText string   `json:"text"`
	Category     Category `json:"category,omitempty"`
	Severity     Severity `json:"severity"`
	Comment      string   `json:"comment"`
	IsResolved   bool     `json:"isResolved"`
}

// NewAnnotation creates an unresolved annotation with a fresh id and the
// default severity.
func NewAnnotation(r TextRange, selectedText, comment string) Annotation {
	return Annotation{
		ID:           uuid.New(),
		TextRange:    r,
		SelectedText: selectedText,
		Severity:     SeverityShouldFix,
		Comment:      comment,
	}
}

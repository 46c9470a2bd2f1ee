// Package cursor implements the modal-editor cursor over an indexed
// document. Every motion is clamped so the cursor can never leave existing
// content.
package cursor

import (
	"unicode"

	"github.com/colonyops/quill/internal/core/textindex"
)

// Engine owns the current (row, col) position and the index of the loaded
// content. Word motions use the modal-editor word class: whitespace vs.
// non-whitespace, no punctuation sub-classing.
type Engine struct {
	row, col int
	index    *textindex.Index
}

// New returns an engine positioned at the origin of empty content.
func New() *Engine {
	return &Engine{index: textindex.New("")}
}

// SetContent reindexes the engine for new content and resets the cursor to
// the origin. Must be called whenever a new document is loaded.
func (e *Engine) SetContent(content string) {
	e.index = textindex.New(content)
	e.row = 0
	e.col = 0
}

// Index exposes the underlying offset index.
func (e *Engine) Index() *textindex.Index {
	return e.index
}

// Pos returns the current (row, col) position.
func (e *Engine) Pos() (row, col int) {
	return e.row, e.col
}

// Offset returns the current position as a flat rune offset.
func (e *Engine) Offset() int {
	return e.index.OffsetOf(e.row, e.col)
}

// SetOffset moves the cursor to the position of a flat rune offset,
// clamping the column into the resolved line.
func (e *Engine) SetOffset(offset int) {
	row, col := e.index.CursorOf(offset)
	if row >= e.index.LineCount() && e.index.LineCount() > 0 {
		row = e.index.LineCount() - 1
	}
	if max := e.index.LineLen(row); col > max {
		col = max
	}
	e.row = row
	e.col = col
}

// Up moves one row up, clamping the column to the new line's length.
func (e *Engine) Up() {
	if e.row > 0 {
		e.row--
		e.clampCol()
	}
}

// Down moves one row down, clamping the column to the new line's length.
func (e *Engine) Down() {
	if e.row+1 < e.index.LineCount() {
		e.row++
		e.clampCol()
	}
}

// Left moves one column left, wrapping to the end of the previous line at
// a line start.
func (e *Engine) Left() {
	switch {
	case e.col > 0:
		e.col--
	case e.row > 0:
		e.row--
		e.col = e.index.LineLen(e.row)
	}
}

// Right moves one column right, wrapping to the start of the next line at
// a line end.
func (e *Engine) Right() {
	switch {
	case e.col < e.index.LineLen(e.row):
		e.col++
	case e.row+1 < e.index.LineCount():
		e.row++
		e.col = 0
	}
}

// ToTop jumps to the first line.
func (e *Engine) ToTop() {
	e.row = 0
	e.col = 0
}

// ToBottom jumps to the start of the last line.
func (e *Engine) ToBottom() {
	if n := e.index.LineCount(); n > 0 {
		e.row = n - 1
		e.col = 0
	}
}

// WordForward skips the current run of non-whitespace, then the following
// whitespace. Reaching the end of the line moves to the start of the next
// line when one exists; on the last line the cursor stops at end of line.
func (e *Engine) WordForward() {
	line := e.index.Line(e.row)
	if line == nil {
		return
	}

	col := e.col
	for col < len(line) && !unicode.IsSpace(line[col]) {
		col++
	}
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}

	if col >= len(line) && e.row+1 < e.index.LineCount() {
		e.row++
		e.col = 0
		return
	}
	e.col = col
}

// WordBack moves to the start of the previous word. At column 0 it moves
// to the end of the previous line when one exists.
func (e *Engine) WordBack() {
	if e.col == 0 {
		if e.row > 0 {
			e.row--
			e.col = e.index.LineLen(e.row)
		}
		return
	}

	line := e.index.Line(e.row)
	if line == nil {
		return
	}

	col := e.col
	for col > 0 && unicode.IsSpace(line[col-1]) {
		col--
	}
	for col > 0 && !unicode.IsSpace(line[col-1]) {
		col--
	}
	e.col = col
}

func (e *Engine) clampCol() {
	if max := e.index.LineLen(e.row); e.col > max {
		e.col = max
	}
}

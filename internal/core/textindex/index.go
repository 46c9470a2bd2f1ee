// Package textindex maps document content to a line-start table so that
// 2-D (row, col) positions translate losslessly to and from flat character
// offsets. All offsets and columns are counted in runes, never bytes, and
// all slicing of document content goes through Slice.
package textindex

import "strings"

// Index is built once per loaded document.
type Index struct {
	runes      []rune
	lineStarts []int    // rune offset at which each line begins; first entry is always 0
	lines      [][]rune // line content, newline excluded
}

// New builds an index for the given content.
func New(content string) *Index {
	idx := &Index{
		runes:      []rune(content),
		lineStarts: []int{0},
	}

	for i, r := range idx.runes {
		if r == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}

	if content != "" {
		raw := strings.Split(content, "\n")
		// A trailing newline does not open a new line, matching the
		// line-start entries recorded above.
		if strings.HasSuffix(content, "\n") {
			raw = raw[:len(raw)-1]
		}
		idx.lines = make([][]rune, len(raw))
		for i, l := range raw {
			idx.lines[i] = []rune(l)
		}
	}

	return idx
}

// RuneLen returns the total rune count of the content.
func (idx *Index) RuneLen() int {
	return len(idx.runes)
}

// LineCount returns the number of lines in the content.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// Line returns the runes of the given line, or nil if row is out of range.
func (idx *Index) Line(row int) []rune {
	if row < 0 || row >= len(idx.lines) {
		return nil
	}
	return idx.lines[row]
}

// LineLen returns the rune count of the given line, or 0 if out of range.
func (idx *Index) LineLen(row int) int {
	return len(idx.Line(row))
}

// OffsetOf converts a (row, col) position to a flat rune offset. Rows past
// the last line clamp to the end of the content rather than erroring; this
// keeps stale cursor state harmless.
func (idx *Index) OffsetOf(row, col int) int {
	if row < 0 {
		return 0
	}
	if row >= len(idx.lineStarts) {
		return len(idx.runes)
	}
	return idx.lineStarts[row] + col
}

// CursorOf converts a flat rune offset back to a (row, col) position by
// finding the greatest line start at or before the offset. Returns (0, 0)
// for empty content.
func (idx *Index) CursorOf(offset int) (row, col int) {
	for i := len(idx.lineStarts) - 1; i >= 0; i-- {
		if offset >= idx.lineStarts[i] {
			return i, offset - idx.lineStarts[i]
		}
	}
	return 0, 0
}

// Slice returns the content between two rune offsets, clamped to the
// content bounds. This is the only slicing path for document content;
// byte-indexing the underlying string would corrupt multi-byte text.
func (idx *Index) Slice(start, end int) string {
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(idx.runes))
	end = clamp(end, 0, len(idx.runes))
	return string(idx.runes[start:end])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package annotate

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a piece of text under review together with the annotations
// attached to it. The Annotations slice is the authoritative store and
// keeps insertion order; display order is derived via SortedView.
type Document struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Filename    string       `json:"filename,omitempty"`
	Filepath    string       `json:"filepath,omitempty"`
	Annotations []Annotation `json:"annotations"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewDocument creates a document with a fresh id and no annotations.
func NewDocument(title, content string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:          uuid.New(),
		Title:       title,
		Content:     content,
		Annotations: []Annotation{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewFileDocument creates a document carrying origin file metadata.
func NewFileDocument(title, content, filepath, filename string) *Document {
	doc := NewDocument(title, content)
	doc.Filepath = filepath
	doc.Filename = filename
	return doc
}

// WordCount returns the whitespace-separated word count of the content.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Content))
}

// AddAnnotation appends an annotation. Overlapping or identical
// annotations are allowed; there is no dedup.
func (d *Document) AddAnnotation(a Annotation) {
	d.Annotations = append(d.Annotations, a)
	d.touch()
}

// RemoveAnnotation removes the annotation with the given id and reports
// whether anything was removed. Removing an unknown id is a no-op.
func (d *Document) RemoveAnnotation(id uuid.UUID) bool {
	for i := range d.Annotations {
		if d.Annotations[i].ID == id {
			d.Annotations = append(d.Annotations[:i], d.Annotations[i+1:]...)
			d.touch()
			return true
		}
	}
	return false
}

// ToggleResolved flips the resolved flag of the annotation with the given
// id and reports whether it matched.
func (d *Document) ToggleResolved(id uuid.UUID) bool {
	for i := range d.Annotations {
		if d.Annotations[i].ID == id {
			d.Annotations[i].IsResolved = !d.Annotations[i].IsResolved
			d.touch()
			return true
		}
	}
	return false
}

// SortedView returns the annotations ordered by ascending start offset,
// with insertion order as a stable tie-break. This is the canonical
// display order; it is recomputed on demand so that the stored order stays
// insertion-based and id operations are unaffected by resorting.
func (d *Document) SortedView() []*Annotation {
	view := make([]*Annotation, len(d.Annotations))
	for i := range d.Annotations {
		view[i] = &d.Annotations[i]
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].StartOffset < view[j].StartOffset
	})
	return view
}

// Unresolved returns the annotations whose resolved flag is unset, in
// sorted-view order.
func (d *Document) Unresolved() []*Annotation {
	var out []*Annotation
	for _, a := range d.SortedView() {
		if !a.IsResolved {
			out = append(out, a)
		}
	}
	return out
}

func (d *Document) touch() {
	now := time.Now().UTC()
	if now.Before(d.CreatedAt) {
		now = d.CreatedAt
	}
	d.UpdatedAt = now
}

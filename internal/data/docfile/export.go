package docfile

import (
	"encoding/json"
	"fmt"

	"github.com/colonyops/quill/internal/core/annotate"
)

// ExportDocument is the JSON snapshot shape consumed by external tooling.
// It extends the stored document with a word count and the rendered
// report as a ready-to-use prompt.
type ExportDocument struct {
	ID          string             `json:"id"`
	Filepath    string             `json:"filepath,omitempty"`
	Filename    string             `json:"filename,omitempty"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	WordCount   int                `json:"wordCount"`
	Annotations []ExportAnnotation `json:"annotations"`
	Prompt      string             `json:"prompt"`
}

// ExportAnnotation is the wire form of one annotation.
type ExportAnnotation struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category,omitempty"`
	Severity    string `json:"severity"`
	Comment     string `json:"comment"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	IsResolved  bool   `json:"isResolved"`
}

// NewExportDocument builds the export snapshot from a document.
func NewExportDocument(doc *annotate.Document) ExportDocument {
	anns := make([]ExportAnnotation, 0, len(doc.Annotations))
	for i := range doc.Annotations {
		a := &doc.Annotations[i]
		anns = append(anns, ExportAnnotation{
			ID:          a.ID.String(),
			Text:        a.SelectedText,
			Category:    string(a.Category),
			Severity:    string(a.Severity),
			Comment:     a.Comment,
			StartOffset: a.StartOffset,
			EndOffset:   a.EndOffset,
			IsResolved:  a.IsResolved,
		})
	}

	return ExportDocument{
		ID:          doc.ID.String(),
		Filepath:    doc.Filepath,
		Filename:    doc.Filename,
		Title:       doc.Title,
		Content:     doc.Content,
		WordCount:   doc.WordCount(),
		Annotations: anns,
		Prompt:      annotate.GenerateReport(doc),
	}
}

// Export writes the JSON snapshot of doc to path.
func Export(doc *annotate.Document, path string) error {
	data, err := json.MarshalIndent(NewExportDocument(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// Save writes the document itself (not the export shape) to path as JSON,
// for reopening a session later with `quill file.json`.
func Save(doc *annotate.Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// WriteReport renders the report for doc and writes it to path.
func WriteReport(doc *annotate.Document, path string) error {
	return writeAtomic(path, []byte(annotate.GenerateReport(doc)))
}

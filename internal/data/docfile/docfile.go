// Package docfile loads and persists annotated documents as files: plain
// text on the way in, the camelCase JSON snapshot and the rendered report
// on the way out.
package docfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/quill/internal/core/annotate"
)

// Load reads a document from path. Files ending in .json are parsed as a
// previously exported document snapshot; anything else is treated as plain
// text with the file stem as title.
func Load(path string) (*annotate.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path)
	}
	return LoadText(path)
}

// LoadText reads a plain-text file into a fresh document carrying origin
// file metadata.
func LoadText(path string) (*annotate.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	filename := filepath.Base(path)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	return annotate.NewFileDocument(title, string(content), abs, filename), nil
}

// LoadJSON reads a document snapshot. Missing optional fields are
// defaulted, never treated as errors: absent isResolved reads as false,
// absent annotation severity falls back to should-fix, and zero
// timestamps are set to the load time.
func LoadJSON(path string) (*annotate.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc annotate.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.Annotations == nil {
		doc.Annotations = []annotate.Annotation{}
	}
	for i := range doc.Annotations {
		if doc.Annotations[i].ID == uuid.Nil {
			doc.Annotations[i].ID = uuid.New()
		}
		if !doc.Annotations[i].Severity.Valid() {
			doc.Annotations[i].Severity = annotate.SeverityShouldFix
		}
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() || doc.UpdatedAt.Before(doc.CreatedAt) {
		doc.UpdatedAt = doc.CreatedAt
	}

	return &doc, nil
}

// writeAtomic writes data to path via a temp file and rename so a crash
// mid-write never leaves a truncated snapshot behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".quill-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

package annotate

import (
	"fmt"
	"strings"
)

// GenerateReport renders a document and its unresolved annotations as a
// Markdown report, grouped by severity in the fixed order Must Fix,
// Should Fix, Consider. Resolved annotations are omitted entirely; when
// nothing is unresolved a fixed notice replaces the groups. Generation is
// pure and byte-for-byte reproducible for the same document state: within
// each group entries appear in sorted-view order.
func GenerateReport(doc *Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Document: %s\n\n", doc.Title)
	b.WriteString("Please review and edit this document based on the following annotations.\n\n")

	b.WriteString("### Full Text\n\n")
	b.WriteString(doc.Content)
	b.WriteString("\n\n---\n\n")

	unresolved := doc.Unresolved()
	if len(unresolved) == 0 {
		b.WriteString("No annotations to address.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "### Annotations (%d items)\n\n", len(unresolved))

	for _, severity := range Severities() {
		var items []*Annotation
		for _, a := range unresolved {
			if a.Severity == severity {
				items = append(items, a)
			}
		}
		if len(items) == 0 {
			continue
		}

		fmt.Fprintf(&b, "#### %s (%d)\n\n", severity.Display(), len(items))

		for _, a := range items {
			fmt.Fprintf(&b, "**\"%s\"**\n", a.SelectedText)
			if a.Category != "" {
				fmt.Fprintf(&b, "- Category: %s\n", a.Category.Display())
			}
			fmt.Fprintf(&b, "- Feedback: %s\n\n", a.Comment)
		}
	}

	b.WriteString("---\n\n")
	b.WriteString("Please provide the revised document with all annotations addressed. ")
	b.WriteString("For each change, briefly note what was modified and why.")

	return b.String()
}

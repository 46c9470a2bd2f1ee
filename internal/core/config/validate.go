package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/quill/internal/core/annotate"
	"github.com/colonyops/quill/internal/core/styles"
)

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the config for invalid values and returns all problems
// found, joined into one error.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := styles.GetPalette(c.Theme); !ok {
		errs = append(errs, ValidationError{
			Field:   "theme",
			Message: fmt.Sprintf("unknown theme %q (available: %s)", c.Theme, strings.Join(styles.ThemeNames(), ", ")),
		}.Error())
	}

	if !annotate.Severity(c.Annotate.DefaultSeverity).Valid() {
		errs = append(errs, ValidationError{
			Field:   "annotate.default_severity",
			Message: fmt.Sprintf("invalid severity %q (expected must-fix, should-fix or consider)", c.Annotate.DefaultSeverity),
		}.Error())
	}

	for _, p := range c.Documents.Patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, ValidationError{
				Field:   "documents.patterns",
				Message: fmt.Sprintf("invalid glob pattern %q", p),
			}.Error())
		}
	}

	if c.Report.Filename == "" {
		errs = append(errs, ValidationError{
			Field:   "report.filename",
			Message: "must not be empty",
		}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

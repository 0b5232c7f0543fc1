package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid. Problems are reported
// as criterio.FieldErrors keyed by their yaml path.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if !slices.Contains(markdownStyles, c.MarkdownStyle) {
		errs = errs.Append("markdown_style", fmt.Errorf("unknown style %q (valid: %s)", c.MarkdownStyle, strings.Join(markdownStyles, ", ")))
	}

	styles := []struct {
		field string
		value string
	}{
		{"styles.default", c.Styles.Default},
		{"styles.delete", c.Styles.Delete},
		{"styles.login", c.Styles.Login},
		{"styles.error", c.Styles.Error},
		{"styles.success", c.Styles.Success},
	}
	for _, s := range styles {
		if !IsValidStyle(s.value) {
			errs = errs.Append(s.field, fmt.Errorf("unknown window class %q", s.value))
		}
	}

	if c.Template != "" {
		info, err := os.Stat(c.Template)
		switch {
		case err != nil:
			errs = errs.Append("template", fmt.Errorf("cannot access %s: %w", c.Template, err))
		case info.IsDir():
			errs = errs.Append("template", fmt.Errorf("%s is a directory, not a file", c.Template))
		}
	}

	return errs.ToError()
}

// Package output renders lookup reports in plain text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/indaco/cargover/internal/config"
	"github.com/indaco/cargover/internal/correlate"
	"github.com/indaco/cargover/internal/manifest"
	"github.com/indaco/cargover/internal/printer"
)

// PlainHeader introduces plain-text results.
const PlainHeader = "Cargo Versions:"

// Formatter handles display of lookup reports.
type Formatter struct {
	mode config.OutputMode
}

// NewFormatter creates a new Formatter for the given output mode.
func NewFormatter(mode config.OutputMode) *Formatter {
	return &Formatter{mode: mode}
}

// FormatReport formats the report for display.
func (f *Formatter) FormatReport(report *correlate.Report) (string, error) {
	switch f.mode {
	case config.OutputJSON:
		return f.formatJSON(report)
	default:
		return f.formatPlain(report), nil
	}
}

// PrintReport writes the formatted report to w.
func (f *Formatter) PrintReport(w io.Writer, report *correlate.Report) error {
	out, err := f.FormatReport(report)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// formatPlain renders one identifier@file=version@commit line per result.
// Nothing is printed when there are no results.
func (f *Formatter) formatPlain(report *correlate.Report) string {
	if len(report.Results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(printer.Info(PlainHeader))
	sb.WriteString("\n")
	for _, r := range report.Results {
		sb.WriteString(FormatLine(r))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatLine renders a single result as identifier@file=version@commit.
func FormatLine(r correlate.VersionResult) string {
	return fmt.Sprintf("%s@%s=%s@%s", r.ID, r.File, r.Version, r.Commit)
}

// formatJSON renders the results as one object keyed by identifier.
func (f *Formatter) formatJSON(report *correlate.Report) (string, error) {
	data, err := json.Marshal(ResultMap(report))
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	return string(data) + "\n", nil
}

// ResultMap indexes the report results by identifier.
func ResultMap(report *correlate.Report) map[string]correlate.VersionResult {
	m := make(map[string]correlate.VersionResult, len(report.Results))
	for _, r := range report.Results {
		m[r.ID] = r
	}
	return m
}

// FormatList renders the discovered identifiers, one per line with their file.
func (f *Formatter) FormatList(set *manifest.Set) (string, error) {
	if f.mode == config.OutputJSON {
		files := make(map[string]string, len(set.Records))
		for id, r := range set.Records {
			files[id] = r.Path
		}
		data, err := json.Marshal(files)
		if err != nil {
			return "", fmt.Errorf("failed to encode package list: %w", err)
		}
		return string(data) + "\n", nil
	}

	var sb strings.Builder
	for _, id := range set.IDs() {
		r, _ := set.Get(id)
		fmt.Fprintf(&sb, "%s %s\n", id, printer.Faint(r.Path))
	}
	return sb.String(), nil
}

// Package render turns entity collections into text payloads. Each entity
// kind enumerates the (format, entity) pairs it supports explicitly;
// unsupported pairs fail with *UnsupportedError instead of silently falling
// back. Rendering is deterministic: the same input always produces the same
// bytes. Table, tree, and detail output is for terminal display and may carry
// decoration; JSON, CSV, and Markdown carry structured fields only.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Format is a requested output kind.
type Format string

// Supported output kinds.
const (
	Table    Format = "table"
	Tree     Format = "tree"
	Detail   Format = "detail"
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// Parse validates a format name from the CLI.
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Table, Tree, Detail, JSON, CSV, Markdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (table, tree, detail, json, csv, markdown)", s)
	}
}

// UnsupportedError reports a (format, entity) pair no renderer exists for.
type UnsupportedError struct {
	Format Format
	Entity string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("format %q is not supported for %s", e.Format, e.Entity)
}

// tabPadding is the minimum padding between table columns.
const tabPadding = 2

// newTable returns a tabwriter configured the way all table renderers use it.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
}

// tableHeader writes the header row and its dashed separator.
func tableHeader(tw io.Writer, columns ...string) {
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	dashes := make([]string, len(columns))
	for i, col := range columns {
		dashes[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
}

// writeJSON encodes v with two-space indentation.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// mdEscape sanitizes a value for use inside a Markdown table cell.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// mdTable writes a Markdown table with the given header and rows.
func mdTable(w io.Writer, header []string, rows [][]string) error {
	cells := make([]string, len(header))
	seps := make([]string, len(header))
	for i, h := range header {
		cells[i] = h
		seps[i] = strings.Repeat("-", len(h))
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "|%s|\n", strings.Join(mapSlice(seps, func(s string) string {
		return "-" + s + "-"
	}), "|")); err != nil {
		return err
	}
	for _, row := range rows {
		escaped := mapSlice(row, mdEscape)
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func mapSlice(in []string, f func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = f(s)
	}
	return out
}

// boolYesNo renders a flag the way the CSV and Markdown formats expect.
func boolYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

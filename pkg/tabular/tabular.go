// Package tabular converts raw delimited text into a header row plus
// rectangular data rows, tolerant of ragged input. Splitting is a naive
// comma split with trimming; there is no quoting or escaping support.
package tabular

import (
	"os"
	"path/filepath"
	"strings"
)

// Data is a rectangular table: every row has exactly len(Headers) fields.
type Data struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table holds no headers, the signal callers use
// to detect a failed or empty parse.
func (d Data) Empty() bool {
	return len(d.Headers) == 0
}

// Width returns the canonical column count.
func (d Data) Width() int {
	return len(d.Headers)
}

// Parse splits raw text into headers and width-normalized rows. Malformed
// rows are coerced, never rejected: excess trailing fields are truncated and
// missing fields are appended as empty strings.
func Parse(raw string) Data {
	lines := splitLines(raw)

	fields := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitFields(line)
		if len(f) == 1 && f[0] == "" {
			continue
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return Data{}
	}

	headers := fields[0]
	w := len(headers)

	rows := make([][]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		rows = append(rows, normalize(f, w))
	}

	return Data{Headers: headers, Rows: rows}
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}

// splitFields comma-splits a line, trims each field, and strips trailing
// empty fields one at a time (repairs trailing-comma artifacts) while more
// than one field remains.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func normalize(f []string, w int) []string {
	if len(f) > w {
		f = f[:w]
	}
	for len(f) < w {
		f = append(f, "")
	}
	return f
}

// Serialize renders the table back to delimited text, headers first, each
// line newline-terminated. This is the same naive comma join the parser
// expects; a field containing a comma will not survive a round trip.
func Serialize(d Data) string {
	var b strings.Builder
	b.WriteString(strings.Join(d.Headers, ","))
	b.WriteString("\n")
	for _, row := range d.Rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// Load reads and parses the file at path. An unreadable source yields the
// zero Data rather than an error; callers check Empty().
func Load(path string) Data {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}
	}
	return Parse(string(raw))
}

// Save writes the serialized table to path with atomic replace semantics:
// either the write completes or the previous file version remains intact.
func Save(path string, d Data) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lexiflow-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(Serialize(d)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}

// AppendRow appends an all-empty row matching the current header width.
func (d *Data) AppendRow() {
	d.Rows = append(d.Rows, make([]string, d.Width()))
}

// DeleteRow removes the row at index i. Out-of-range indices are ignored.
func (d *Data) DeleteRow(i int) {
	if i < 0 || i >= len(d.Rows) {
		return
	}
	d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
}

// DeleteColumn removes column c from the headers and every row. Out-of-range
// indices are ignored.
func (d *Data) DeleteColumn(c int) {
	if c < 0 || c >= len(d.Headers) {
		return
	}
	d.Headers = append(d.Headers[:c], d.Headers[c+1:]...)
	for i, row := range d.Rows {
		if c < len(row) {
			d.Rows[i] = append(row[:c], row[c+1:]...)
		}
	}
}

// SetCell assigns v to row r, column c. Out-of-range indices are ignored.
func (d *Data) SetCell(r, c int, v string) {
	if r < 0 || r >= len(d.Rows) {
		return
	}
	if c < 0 || c >= len(d.Rows[r]) {
		return
	}
	d.Rows[r][c] = v
}

// SetHeader assigns v to header column c. Out-of-range indices are ignored.
func (d *Data) SetHeader(c int, v string) {
	if c < 0 || c >= len(d.Headers) {
		return
	}
	d.Headers[c] = v
}

// Clone returns a deep copy, used when snapshotting session state.
func (d Data) Clone() Data {
	out := Data{Headers: append([]string(nil), d.Headers...)}
	out.Rows = make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

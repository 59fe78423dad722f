package format

import (
	"strings"
)

// tableState is the table detector state. A nil rows slice is Idle; a
// non-nil one is Accumulating.
type tableState struct {
	rows [][]string
}

func (s tableState) accumulating() bool {
	return s.rows != nil
}

// step feeds one line to the detector and returns the next state together
// with the lines to emit. A table group is flushed on a blank line, on a
// line that is not a candidate row, and at end of input (see flush).
func step(s tableState, line string) (tableState, []string) {
	if fields, ok := candidateRow(line); ok {
		return tableState{rows: append(s.rows, fields)}, nil
	}

	var emitted []string
	if s.accumulating() {
		emitted = renderTable(s.rows)
	}
	return tableState{}, append(emitted, line)
}

func flush(s tableState) []string {
	if !s.accumulating() {
		return nil
	}
	return renderTable(s.rows)
}

// candidateRow reports whether line is tab-delimited with two or more fields.
func candidateRow(line string) ([]string, bool) {
	if isBlank(line) || !strings.Contains(line, "\t") {
		return nil, false
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return nil, false
	}
	return fields, true
}

// FormatTables replaces every group of consecutive tab-delimited lines with
// a Markdown table followed by one blank line.
func FormatTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	var state tableState
	for _, line := range lines {
		var emitted []string
		state, emitted = step(state, line)
		out = append(out, emitted...)
	}
	out = append(out, flush(state)...)

	return strings.Join(out, "\n")
}

// renderTable writes rows as a Markdown table. The first row is the header.
// Rows are padded to the widest row and every cell is trimmed.
func renderTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	lines := make([]string, 0, len(rows)+2)
	for i, row := range rows {
		lines = append(lines, renderRow(row, cols))
		if i == 0 {
			lines = append(lines, separatorRow(cols))
		}
	}
	return append(lines, "")
}

func renderRow(row []string, cols int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for j := 0; j < cols; j++ {
		cell := ""
		if j < len(row) {
			cell = strings.TrimSpace(row[j])
		}
		sb.WriteString(" " + cell + " |")
	}
	return sb.String()
}

func separatorRow(cols int) string {
	return "|" + strings.Repeat(" --- |", cols)
}

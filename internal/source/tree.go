package source

import (
	"strings"
)

// HeadingType is the numbering kind declared by a paragraph's properties.
type HeadingType int

const (
	HeadingNone HeadingType = iota
	HeadingOutline
	HeadingNumber
	HeadingBullet
)

// Paragraph is one paragraph of a document. Text uses '\t' for tab stops
// and '\n' for forced line breaks; Render maps them to TextMarks.
type Paragraph struct {
	Text    string
	Heading HeadingType
	// Level is the zero-based numbering level.
	Level  int
	Tables []*Table
}

// Table is a grid of cells in row order.
type Table struct {
	Rows [][]Cell
}

// Cell holds the paragraphs inside one table cell.
type Cell struct {
	Paragraphs []Paragraph
}

// AddRow appends an empty row and returns its index.
func (t *Table) AddRow() int {
	t.Rows = append(t.Rows, nil)
	return len(t.Rows) - 1
}

// AddCell appends a cell to the last row, creating one if needed.
func (t *Table) AddCell(c Cell) {
	if len(t.Rows) == 0 {
		t.AddRow()
	}
	last := len(t.Rows) - 1
	t.Rows[last] = append(t.Rows[last], c)
}

// Render flattens paragraphs into text. Each paragraph ends with the
// paragraph separator. Tables follow the text of the paragraph that anchors
// them, separated by a line break.
func Render(paras []Paragraph, opts Options) string {
	var sb strings.Builder
	heads := NewParaHeadCounter(opts.Bullet)

	for _, p := range paras {
		var body strings.Builder
		if opts.InsertParaHead {
			body.WriteString(heads.Next(p.Heading, p.Level))
		}
		body.WriteString(applyMarks(p.Text, opts.Marks))

		for _, t := range p.Tables {
			text := renderTable(t, opts.Marks)
			if text == "" {
				continue
			}
			if body.Len() > 0 {
				body.WriteString(opts.Marks.LineBreak)
			}
			body.WriteString(text)
		}

		sb.WriteString(body.String())
		sb.WriteString(opts.Marks.ParaSeparator)
	}

	return sb.String()
}

func applyMarks(text string, marks TextMarks) string {
	if marks.Tab == "\t" && marks.LineBreak == "\n" {
		return text
	}
	r := strings.NewReplacer("\t", marks.Tab, "\n", marks.LineBreak)
	return r.Replace(text)
}

func renderTable(t *Table, marks TextMarks) string {
	rows := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellText(c)
		}
		rows = append(rows, strings.Join(cells, marks.TableCellSeparator))
	}
	return strings.Join(rows, marks.TableRowSeparator)
}

// cellText joins the cell's paragraphs and nested tables on one line so a
// cell never contains row or cell separators.
func cellText(c Cell) string {
	var parts []string
	for _, p := range c.Paragraphs {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
		for _, nested := range p.Tables {
			for _, row := range nested.Rows {
				for _, nc := range row {
					parts = append(parts, cellText(nc))
				}
			}
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

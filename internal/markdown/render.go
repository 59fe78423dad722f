package markdown

import (
	"fmt"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/ir"
)

// Render writes blocks as canonical Markdown, one blank line between blocks.
// Ordered lists are numbered from 1.
func Render(blocks []ir.Block) string {
	var sb strings.Builder

	for _, block := range blocks {
		switch block.Type {
		case ir.BlockTypeHeading:
			if block.Heading != nil {
				writeMarkdownHeading(&sb, block.Heading)
			}
		case ir.BlockTypeParagraph:
			if block.Paragraph != nil {
				writeMarkdownParagraph(&sb, block.Paragraph)
			}
		case ir.BlockTypeUnorderedList, ir.BlockTypeOrderedList:
			if block.List != nil {
				writeMarkdownList(&sb, block.List)
			}
		case ir.BlockTypeTable:
			if block.Table != nil {
				writeMarkdownTable(&sb, block.Table)
			}
		}
	}

	out := strings.TrimRight(sb.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// PlainText returns the visible text of a block with all markup removed.
// List items and table rows are separated by newlines, table cells by tabs.
func PlainText(block ir.Block) string {
	switch block.Type {
	case ir.BlockTypeHeading:
		if block.Heading != nil {
			return VisibleText(block.Heading.Text)
		}
	case ir.BlockTypeParagraph:
		if block.Paragraph != nil {
			return VisibleText(block.Paragraph.Text)
		}
	case ir.BlockTypeUnorderedList, ir.BlockTypeOrderedList:
		if block.List != nil {
			items := make([]string, len(block.List.Items))
			for i, item := range block.List.Items {
				items[i] = VisibleText(item)
			}
			return strings.Join(items, "\n")
		}
	case ir.BlockTypeTable:
		if block.Table != nil {
			rows := make([]string, len(block.Table.Rows))
			for i, row := range block.Table.Rows {
				cells := make([]string, len(row))
				for j, cell := range row {
					cells[j] = VisibleText(cell)
				}
				rows[i] = strings.Join(cells, "\t")
			}
			return strings.Join(rows, "\n")
		}
	}
	return ""
}

func writeMarkdownHeading(sb *strings.Builder, h *ir.Heading) {
	level := h.Level
	if level < 1 || level > 6 {
		level = 1
	}
	fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", level), strings.TrimSpace(h.Text))
}

func writeMarkdownParagraph(sb *strings.Builder, p *ir.Paragraph) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return
	}
	sb.WriteString(text + "\n\n")
}

func writeMarkdownList(sb *strings.Builder, l *ir.List) {
	if len(l.Items) == 0 {
		return
	}
	for i, item := range l.Items {
		prefix := "- "
		if l.Ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		sb.WriteString(prefix + item + "\n")
	}
	sb.WriteString("\n")
}

func writeMarkdownTable(sb *strings.Builder, t *ir.Table) {
	if len(t.Rows) == 0 {
		return
	}

	cols := t.ColumnCount()
	for i, row := range t.Rows {
		sb.WriteString("|")
		for _, cell := range row {
			fmt.Fprintf(sb, " %s |", cell)
		}
		sb.WriteString("\n")

		// Separator after header row
		if i == 0 {
			sb.WriteString("|")
			for j := 0; j < cols; j++ {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

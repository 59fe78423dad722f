// Package document populates a target document from parsed Markdown blocks.
//
// The target is reached only through the Builder interface: Populate issues
// write-only calls in document order and never reads the document back.
package document

import (
	"strconv"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/ir"
	"github.com/roboco-io/hwpxmd/internal/markdown"
)

// CellSeparator joins the cells of a table row in its paragraph.
const CellSeparator = " | "

// Builder creates paragraphs in a target document.
type Builder interface {
	AddParagraph(style StyleRef) ParagraphBuilder
}

// ParagraphBuilder appends text runs to one paragraph.
type ParagraphBuilder interface {
	AddRun(text string, charPrID int)
}

// Populate appends one or more paragraphs per block to b and returns the
// number of paragraphs created.
func Populate(blocks []ir.Block, b Builder, sheet StyleSheet) int {
	count := 0
	for _, block := range blocks {
		count += populateBlock(block, b, sheet)
	}
	return count
}

func populateBlock(block ir.Block, b Builder, sheet StyleSheet) int {
	switch block.Type {
	case ir.BlockTypeHeading:
		if block.Heading == nil {
			return 0
		}
		style := sheet.Heading(block.Heading.Level)
		p := b.AddParagraph(style)
		p.AddRun(markdown.VisibleText(block.Heading.Text), style.CharPrID)
		return 1

	case ir.BlockTypeParagraph:
		if block.Paragraph == nil {
			return 0
		}
		p := b.AddParagraph(sheet.Body)
		addSegments(p, markdown.Tokenize(block.Paragraph.Text), sheet)
		return 1

	case ir.BlockTypeUnorderedList, ir.BlockTypeOrderedList:
		if block.List == nil {
			return 0
		}
		for i, item := range block.List.Items {
			p := b.AddParagraph(sheet.ListItem)
			p.AddRun(listPrefix(block.List.Ordered, i, sheet.Bullet), sheet.ListItem.CharPrID)
			addSegments(p, markdown.Tokenize(item), sheet)
		}
		return len(block.List.Items)

	case ir.BlockTypeTable:
		if block.Table == nil {
			return 0
		}
		for _, row := range block.Table.Rows {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = markdown.VisibleText(cell)
			}
			p := b.AddParagraph(sheet.TableRow)
			p.AddRun(strings.Join(cells, CellSeparator), sheet.TableRow.CharPrID)
		}
		return len(block.Table.Rows)
	}
	return 0
}

// addSegments emits one run per inline segment in source order.
func addSegments(p ParagraphBuilder, segments []ir.Segment, sheet StyleSheet) {
	for _, seg := range segments {
		p.AddRun(seg.Text, sheet.CharPr(seg.Style))
	}
}

func listPrefix(ordered bool, index int, bullet string) string {
	if ordered {
		return strconv.Itoa(index+1) + ". "
	}
	if bullet == "" {
		bullet = DefaultBullet
	}
	return bullet + " "
}

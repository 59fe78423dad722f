// Package markdown converts Markdown text into ir blocks and inline
// segments, and renders blocks back to canonical Markdown.
package markdown

import (
	"regexp"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/ir"
)

var (
	headingPattern     = regexp.MustCompile(`^(#{1,6}) `)
	unorderedPattern   = regexp.MustCompile(`^[-*+]\s`)
	orderedPattern     = regexp.MustCompile(`^\d+\.\s`)
	orderedPrefix      = regexp.MustCompile(`^\d+\.\s+`)
	tableSeparatorLine = regexp.MustCompile(`^[|:\-\s]+$`)
)

// blockParser tries to read one block starting at lines[i]. It returns the
// block, the index of the first unconsumed line and whether it matched.
type blockParser func(lines []string, i int) (ir.Block, int, bool)

// blockParsers are tried in order; the first match wins. Paragraph is the
// fallback and is not listed.
var blockParsers = []blockParser{
	parseHeading,
	parseUnorderedList,
	parseOrderedList,
	parseTable,
}

// Parse splits Markdown text into blocks in a single forward pass.
// It never fails; unrecognized input becomes paragraphs.
func Parse(text string) []ir.Block {
	lines := splitLines(text)
	blocks := make([]ir.Block, 0)

	i := 0
	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}

		block, next, ok := parseBlock(lines, i)
		if !ok {
			block, next = parseParagraph(lines, i)
		}
		blocks = append(blocks, block)
		i = next
	}

	return blocks
}

// ParseDocument parses text into a new document.
func ParseDocument(text string) *ir.Document {
	doc := ir.NewDocument()
	for _, b := range Parse(text) {
		doc.Add(b)
	}
	if len(doc.Content) > 0 && doc.Content[0].Type == ir.BlockTypeHeading {
		doc.Metadata.Title = VisibleText(doc.Content[0].Heading.Text)
	}
	return doc
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func parseBlock(lines []string, i int) (ir.Block, int, bool) {
	for _, p := range blockParsers {
		if block, next, ok := p(lines, i); ok {
			return block, next, true
		}
	}
	return ir.Block{}, i, false
}

func startsBlock(line string) bool {
	return headingPattern.MatchString(line) ||
		unorderedPattern.MatchString(line) ||
		orderedPattern.MatchString(line) ||
		isTableLine(line)
}

func parseHeading(lines []string, i int) (ir.Block, int, bool) {
	m := headingPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return ir.Block{}, i, false
	}
	text := strings.TrimSpace(lines[i][len(m[0]):])
	return ir.NewHeading(len(m[1]), text), i + 1, true
}

func parseUnorderedList(lines []string, i int) (ir.Block, int, bool) {
	if !unorderedPattern.MatchString(lines[i]) {
		return ir.Block{}, i, false
	}
	var items []string
	for i < len(lines) && unorderedPattern.MatchString(lines[i]) {
		items = append(items, strings.TrimSpace(lines[i][2:]))
		i++
	}
	return ir.NewUnorderedList(items...), i, true
}

func parseOrderedList(lines []string, i int) (ir.Block, int, bool) {
	if !orderedPattern.MatchString(lines[i]) {
		return ir.Block{}, i, false
	}
	var items []string
	for i < len(lines) && orderedPattern.MatchString(lines[i]) {
		items = append(items, strings.TrimSpace(orderedPrefix.ReplaceAllString(lines[i], "")))
		i++
	}
	return ir.NewOrderedList(items...), i, true
}

func isTableLine(line string) bool {
	return line != "" && strings.Contains(line, "|")
}

// isSeparatorRow reports whether line is a header separator such as
// "|---|:---:|". At least one dash is required.
func isSeparatorRow(line string) bool {
	return tableSeparatorLine.MatchString(line) && strings.Contains(line, "-")
}

func parseTable(lines []string, i int) (ir.Block, int, bool) {
	if !isTableLine(lines[i]) {
		return ir.Block{}, i, false
	}

	start := i
	var rows [][]string
	for i < len(lines) && isTableLine(lines[i]) {
		line := lines[i]
		i++
		if isSeparatorRow(line) {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		rows = append(rows, trimCells(parts[1:len(parts)-1]))
	}

	if len(rows) == 0 {
		return ir.NewParagraph(strings.Join(lines[start:i], " ")), i, true
	}
	return ir.NewTable(rows), i, true
}

func trimCells(parts []string) []string {
	cells := make([]string, len(parts))
	for j, p := range parts {
		cells[j] = strings.TrimSpace(p)
	}
	return cells
}

func parseParagraph(lines []string, i int) (ir.Block, int) {
	collected := []string{lines[i]}
	i++
	for i < len(lines) && lines[i] != "" && !startsBlock(lines[i]) {
		collected = append(collected, lines[i])
		i++
	}
	return ir.NewParagraph(strings.Join(collected, " ")), i
}

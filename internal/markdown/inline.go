package markdown

import (
	"strings"

	"github.com/roboco-io/hwpxmd/internal/ir"
)

// Tokenize splits one line into styled segments. The scan is greedy and
// left to right: bold, italic, code and link are tried in that order at each
// position, and anything else becomes plain text up to the next '*', '`' or
// '['. Unterminated markers stay in the text as-is. Link targets are dropped.
func Tokenize(line string) []ir.Segment {
	var t tokenizer
	i := 0
	for i < len(line) {
		if next, ok := t.bold(line, i); ok {
			i = next
			continue
		}
		if next, ok := t.italic(line, i); ok {
			i = next
			continue
		}
		if next, ok := t.code(line, i); ok {
			i = next
			continue
		}
		if next, ok := t.link(line, i); ok {
			i = next
			continue
		}
		i = t.plain(line, i)
	}
	return t.segments
}

// VisibleText returns line with inline markup removed.
func VisibleText(line string) string {
	var sb strings.Builder
	for _, seg := range Tokenize(line) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

type tokenizer struct {
	segments []ir.Segment
}

// emit appends a segment, dropping empty text and merging adjacent normal runs.
func (t *tokenizer) emit(text string, style ir.Style) {
	if text == "" {
		return
	}
	if n := len(t.segments); n > 0 && style == ir.StyleNormal && t.segments[n-1].Style == ir.StyleNormal {
		t.segments[n-1].Text += text
		return
	}
	t.segments = append(t.segments, ir.Segment{Text: text, Style: style})
}

func (t *tokenizer) bold(line string, i int) (int, bool) {
	if !strings.HasPrefix(line[i:], "**") {
		return i, false
	}
	end := strings.Index(line[i+2:], "**")
	if end < 0 {
		return i, false
	}
	t.emit(line[i+2:i+2+end], ir.StyleBold)
	return i + 2 + end + 2, true
}

func (t *tokenizer) italic(line string, i int) (int, bool) {
	if line[i] != '*' {
		return i, false
	}
	if i > 0 && line[i-1] == '*' {
		return i, false
	}
	if i+1 < len(line) && line[i+1] == '*' {
		return i, false
	}
	end := strings.IndexByte(line[i+1:], '*')
	if end < 0 {
		return i, false
	}
	t.emit(line[i+1:i+1+end], ir.StyleItalic)
	return i + 1 + end + 1, true
}

func (t *tokenizer) code(line string, i int) (int, bool) {
	if line[i] != '`' {
		return i, false
	}
	end := strings.IndexByte(line[i+1:], '`')
	if end < 0 {
		return i, false
	}
	t.emit(line[i+1:i+1+end], ir.StyleCode)
	return i + 1 + end + 1, true
}

func (t *tokenizer) link(line string, i int) (int, bool) {
	if line[i] != '[' {
		return i, false
	}
	closeBracket := strings.IndexByte(line[i+1:], ']')
	if closeBracket < 0 {
		return i, false
	}
	closeBracket += i + 1
	if closeBracket+1 >= len(line) || line[closeBracket+1] != '(' {
		return i, false
	}
	closeParen := strings.IndexByte(line[closeBracket+2:], ')')
	if closeParen < 0 {
		return i, false
	}
	t.emit(line[i+1:closeBracket], ir.StyleLinkText)
	return closeBracket + 2 + closeParen + 1, true
}

// plain consumes the character at i and everything up to the next marker.
func (t *tokenizer) plain(line string, i int) int {
	end := i + 1
	for end < len(line) && !isMarker(line[end]) {
		end++
	}
	t.emit(line[i:end], ir.StyleNormal)
	return end
}

func isMarker(c byte) bool {
	return c == '*' || c == '`' || c == '['
}

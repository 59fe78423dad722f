// Package format turns flat text extracted from a document into Markdown.
//
// Format is a pure function of its input and options, and it is
// idempotent: formatting its own output again returns the same text.
package format

import (
	"regexp"
	"strings"
)

// Options controls formatting.
type Options struct {
	// FormatTables renders runs of tab-separated lines as Markdown tables.
	FormatTables bool `yaml:"format_tables" json:"format_tables"`
	// PreserveLinebreaks keeps single line breaks inside paragraphs.
	// When false, each paragraph is joined into one line.
	PreserveLinebreaks bool `yaml:"preserve_linebreaks" json:"preserve_linebreaks"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		FormatTables:       true,
		PreserveLinebreaks: false,
	}
}

var (
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
	trailingSpacePattern = regexp.MustCompile(`(?m)[ \t]+$`)
	spaceRunPattern      = regexp.MustCompile(` {2,}`)
)

// Format converts extracted text to Markdown.
func Format(text string, opts Options) string {
	out := CollapseBlankLines(text)
	out = StripTrailingWhitespace(out)
	if opts.FormatTables {
		out = FormatTables(out)
	}
	if !opts.PreserveLinebreaks {
		out = MergeSoftBreaks(out)
	}
	out = CollapseSpaces(out)
	return Finalize(out)
}

// CollapseBlankLines normalizes line endings to "\n" and reduces runs of
// three or more newlines to exactly two.
func CollapseBlankLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return blankRunPattern.ReplaceAllString(text, "\n\n")
}

// StripTrailingWhitespace removes spaces and tabs at the end of every line.
func StripTrailingWhitespace(text string) string {
	return trailingSpacePattern.ReplaceAllString(text, "")
}

// MergeSoftBreaks joins each run of consecutive non-blank lines into one
// line separated by single spaces. Table rows (lines starting with '|')
// are never merged into or out of, and blank lines are kept.
func MergeSoftBreaks(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) || isTableRow(line) {
			out = append(out, line)
			continue
		}

		var sb strings.Builder
		sb.WriteString(line)
		for i+1 < len(lines) && !isBlank(lines[i+1]) && !isTableRow(lines[i+1]) {
			sb.WriteString(" ")
			sb.WriteString(strings.TrimSpace(lines[i+1]))
			i++
		}
		out = append(out, sb.String())
	}

	return strings.Join(out, "\n")
}

// CollapseSpaces reduces runs of two or more spaces to one.
func CollapseSpaces(text string) string {
	return spaceRunPattern.ReplaceAllString(text, " ")
}

// Finalize trims trailing whitespace from the document and terminates it
// with exactly one newline. Empty input stays empty.
func Finalize(text string) string {
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = strings.TrimRight(text, " \t\r\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// Package source reads document files into flat text.
//
// Each document format has a Reader that opens a file and builds a tree of
// paragraphs and tables; Render flattens that tree into text using the
// configured TextMarks. Readers are looked up through a Registry.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when no reader handles a file.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Extractor reads the text of one opened document.
type Extractor interface {
	// Extract reads the whole document and returns its paragraphs.
	Extract() ([]Paragraph, error)

	// Close releases any resources held by the extractor.
	Close() error
}

// Format represents a document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatHWPX
	FormatHWP // HWP 5.x binary format
	FormatText
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatHWPX:
		return "hwpx"
	case FormatHWP:
		return "hwp"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".hwpx":
		return FormatHWPX
	case ".hwp", ".hwp5":
		return FormatHWP
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
// Plain text has no signature and is reported as FormatUnknown.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// ZIP magic number (HWPX)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatHWPX, nil
	}

	// OLE/CFBF magic number (HWP 5.x)
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		return FormatHWP, nil
	}

	// Bare FileHeader stream
	if string(buf[:3]) == "HWP" {
		return FormatHWP, nil
	}

	return FormatUnknown, nil
}

// TextMarks are the separators written between text units.
type TextMarks struct {
	LineBreak          string `yaml:"line_break" json:"line_break"`
	ParaSeparator      string `yaml:"para_separator" json:"para_separator"`
	Tab                string `yaml:"tab" json:"tab"`
	TableRowSeparator  string `yaml:"table_row_separator" json:"table_row_separator"`
	TableCellSeparator string `yaml:"table_cell_separator" json:"table_cell_separator"`
}

// DefaultTextMarks returns separators that the table detector in package
// format recognizes.
func DefaultTextMarks() TextMarks {
	return TextMarks{
		LineBreak:          "\n",
		ParaSeparator:      "\n\n",
		Tab:                "\t",
		TableRowSeparator:  "\n",
		TableCellSeparator: "\t",
	}
}

// Options contains extraction options.
type Options struct {
	// InsertParaHead prefixes numbered and bulleted paragraphs with their
	// computed number or bullet glyph.
	InsertParaHead bool
	// Bullet is the glyph used for bullet para heads.
	Bullet string
	Marks  TextMarks
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		InsertParaHead: false,
		Bullet:         "•",
		Marks:          DefaultTextMarks(),
	}
}

// Package plaintext reads text files that already hold extracted document
// text, so they can go through the same formatting pipeline.
package plaintext

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/roboco-io/hwpxmd/internal/source"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Reader opens .txt files.
type Reader struct{}

// Format implements source.Reader.
func (Reader) Format() source.Format {
	return source.FormatText
}

// Open implements source.Reader.
func (Reader) Open(path string, opts source.Options) (source.Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return &Extractor{text: Decode(data)}, nil
}

// Extractor holds decoded file content.
type Extractor struct {
	text string
}

// Extract splits the text into paragraphs at blank lines. Line breaks and
// tabs inside a paragraph are kept.
func (e *Extractor) Extract() ([]source.Paragraph, error) {
	text := strings.ReplaceAll(e.text, "\r\n", "\n")
	var paras []source.Paragraph
	for _, chunk := range paragraphBreak.Split(text, -1) {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		paras = append(paras, source.Paragraph{Text: chunk})
	}
	return paras, nil
}

// Close implements source.Extractor.
func (e *Extractor) Close() error {
	return nil
}

// Decode converts BOM-marked UTF-8 and UTF-16 content to a UTF-8 string.
// Content without a BOM is returned as-is when it is valid UTF-8 and is
// read as EUC-KR (CP949) otherwise.
func Decode(content []byte) string {
	switch {
	case len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF:
		return string(content[3:])
	case len(content) >= 2 && content[0] == 0xFF && content[1] == 0xFE:
		return decodeUTF16(content, unicode.LittleEndian)
	case len(content) >= 2 && content[0] == 0xFE && content[1] == 0xFF:
		return decodeUTF16(content, unicode.BigEndian)
	case utf8.Valid(content):
		return string(content)
	default:
		out, err := korean.EUCKR.NewDecoder().Bytes(content)
		if err != nil {
			return string(content)
		}
		return string(out)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}

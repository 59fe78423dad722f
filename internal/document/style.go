package document

import "github.com/roboco-io/hwpxmd/internal/ir"

// DefaultBullet prefixes unordered list items.
const DefaultBullet = "•"

// StyleRef selects the style, paragraph properties and character properties
// of a paragraph. The ids refer to entries of the target document's header.
type StyleRef struct {
	StyleID  int `json:"style_id"`
	ParaPrID int `json:"para_pr_id"`
	CharPrID int `json:"char_pr_id"`
}

// StyleSheet maps block kinds and inline styles to target style ids.
type StyleSheet struct {
	Body     StyleRef
	Headings [6]StyleRef
	ListItem StyleRef
	TableRow StyleRef

	// Inline maps an inline segment style to a character property id.
	// Styles missing from the map use Body.CharPrID.
	Inline map[ir.Style]int

	Bullet string
}

// Character property ids of DefaultStyleSheet.
const (
	CharPrNormal = iota
	CharPrBold
	CharPrItalic
	CharPrCode
	CharPrLink
	CharPrHeading1
)

// Paragraph property ids of DefaultStyleSheet.
const (
	ParaPrBody = iota
	ParaPrHeading
	ParaPrListItem
	ParaPrTableRow
)

// Style ids of DefaultStyleSheet.
const (
	StyleBody = iota
	StyleHeading1
	StyleListItem = StyleHeading1 + 6
	StyleTableRow = StyleListItem + 1
)

// DefaultStyleSheet returns the style sheet matching the header written by
// the hwpx document writer.
func DefaultStyleSheet() StyleSheet {
	s := StyleSheet{
		Body:     StyleRef{StyleID: StyleBody, ParaPrID: ParaPrBody, CharPrID: CharPrNormal},
		ListItem: StyleRef{StyleID: StyleListItem, ParaPrID: ParaPrListItem, CharPrID: CharPrNormal},
		TableRow: StyleRef{StyleID: StyleTableRow, ParaPrID: ParaPrTableRow, CharPrID: CharPrNormal},
		Inline: map[ir.Style]int{
			ir.StyleNormal:   CharPrNormal,
			ir.StyleBold:     CharPrBold,
			ir.StyleItalic:   CharPrItalic,
			ir.StyleCode:     CharPrCode,
			ir.StyleLinkText: CharPrLink,
		},
		Bullet: DefaultBullet,
	}
	for i := range s.Headings {
		s.Headings[i] = StyleRef{
			StyleID:  StyleHeading1 + i,
			ParaPrID: ParaPrHeading,
			CharPrID: CharPrHeading1 + i,
		}
	}
	return s
}

// Heading returns the style of a heading level. Levels outside 1..6 are
// clamped.
func (s StyleSheet) Heading(level int) StyleRef {
	if level < 1 {
		level = 1
	}
	if level > len(s.Headings) {
		level = len(s.Headings)
	}
	return s.Headings[level-1]
}

// CharPr returns the character property id of an inline style.
func (s StyleSheet) CharPr(style ir.Style) int {
	if id, ok := s.Inline[style]; ok {
		return id
	}
	return s.Body.CharPrID
}

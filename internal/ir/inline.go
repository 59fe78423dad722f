package ir

// Style is the visual style of an inline segment.
type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
	StyleCode
	StyleLinkText
)

var styleNames = [...]string{"normal", "bold", "italic", "code", "link"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Segment is a run of text with a single style. Link targets are not kept.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Styles returns every style in declaration order.
func Styles() []Style {
	return []Style{StyleNormal, StyleBold, StyleItalic, StyleCode, StyleLinkText}
}

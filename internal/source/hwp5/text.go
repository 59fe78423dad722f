package hwp5

import (
	"encoding/binary"
	"unicode/utf16"
)

// controlWidth returns the size in UTF-16 code units of the control
// starting with code unit c. Plain characters are 1 unit; inline and
// extended controls carry 7 extra units of data.
func controlWidth(c uint16) int {
	switch {
	case c >= 0x20:
		return 1
	case c == 0 || c == CharLineBreak || c == CharParaBreak || c >= CharHyphen:
		return 1
	default:
		return 8
	}
}

// ExtractText decodes PARA_TEXT record data. Tabs become '\t' and forced
// line breaks '\n'; other controls are dropped.
func ExtractText(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); {
		c := binary.LittleEndian.Uint16(data[i : i+2])
		width := controlWidth(c)
		i += width * 2

		switch {
		case c >= 0x20:
			units = append(units, c)
		case c == CharTab:
			units = append(units, '\t')
		case c == CharLineBreak:
			units = append(units, '\n')
		case c == CharHyphen:
			units = append(units, '-')
		case c == CharNBSP, c == CharFixedWidthNBSP:
			units = append(units, ' ')
		}
	}

	return string(utf16.Decode(units))
}

package hwpx

import (
	"encoding/xml"
	"sort"

	"github.com/roboco-io/hwpxmd/internal/document"
	"github.com/roboco-io/hwpxmd/internal/ir"
)

// Font ids in every fontface.
const (
	fontBody = iota
	fontCode
)

var fontLangs = []string{"HANGUL", "LATIN", "HANJA", "JAPANESE", "OTHER", "SYMBOL", "USER"}

// headingHeights are character heights in 1/100 pt for heading levels 1..6.
var headingHeights = [6]int{2000, 1800, 1600, 1400, 1200, 1100}

const bodyHeight = 1000

type headXML struct {
	XMLName  xml.Name    `xml:"hh:head"`
	XmlnsHH  string      `xml:"xmlns:hh,attr"`
	XmlnsHC  string      `xml:"xmlns:hc,attr"`
	Version  string      `xml:"version,attr"`
	SecCnt   int         `xml:"secCnt,attr"`
	BeginNum beginNumXML `xml:"hh:beginNum"`
	RefList  refListXML  `xml:"hh:refList"`
}

type beginNumXML struct {
	Page     int `xml:"page,attr"`
	Footnote int `xml:"footnote,attr"`
	Endnote  int `xml:"endnote,attr"`
	Pic      int `xml:"pic,attr"`
	Tbl      int `xml:"tbl,attr"`
	Equation int `xml:"equation,attr"`
}

type refListXML struct {
	Fontfaces      fontfacesXML      `xml:"hh:fontfaces"`
	CharProperties charPropertiesXML `xml:"hh:charProperties"`
	ParaProperties paraPropertiesXML `xml:"hh:paraProperties"`
	Styles         stylesXML         `xml:"hh:styles"`
}

type fontfacesXML struct {
	ItemCnt   int           `xml:"itemCnt,attr"`
	Fontfaces []fontfaceXML `xml:"hh:fontface"`
}

type fontfaceXML struct {
	Lang    string    `xml:"lang,attr"`
	FontCnt int       `xml:"fontCnt,attr"`
	Fonts   []fontXML `xml:"hh:font"`
}

type fontXML struct {
	ID         int    `xml:"id,attr"`
	Face       string `xml:"face,attr"`
	Type       string `xml:"type,attr"`
	IsEmbedded int    `xml:"isEmbedded,attr"`
}

type charPropertiesXML struct {
	ItemCnt int         `xml:"itemCnt,attr"`
	CharPrs []charPrXML `xml:"hh:charPr"`
}

type charPrXML struct {
	ID            int           `xml:"id,attr"`
	Height        int           `xml:"height,attr"`
	TextColor     string        `xml:"textColor,attr"`
	ShadeColor    string        `xml:"shadeColor,attr"`
	UseFontSpace  int           `xml:"useFontSpace,attr"`
	UseKerning    int           `xml:"useKerning,attr"`
	SymMark       string        `xml:"symMark,attr"`
	BorderFillRef int           `xml:"borderFillIDRef,attr"`
	FontRef       fontRefXML    `xml:"hh:fontRef"`
	Bold          *struct{}     `xml:"hh:bold"`
	Italic        *struct{}     `xml:"hh:italic"`
	Underline     *underlineXML `xml:"hh:underline"`
}

type fontRefXML struct {
	Hangul   int `xml:"hangul,attr"`
	Latin    int `xml:"latin,attr"`
	Hanja    int `xml:"hanja,attr"`
	Japanese int `xml:"japanese,attr"`
	Other    int `xml:"other,attr"`
	Symbol   int `xml:"symbol,attr"`
	User     int `xml:"user,attr"`
}

type underlineXML struct {
	Type  string `xml:"type,attr"`
	Shape string `xml:"shape,attr"`
	Color string `xml:"color,attr"`
}

type paraPropertiesXML struct {
	ItemCnt int         `xml:"itemCnt,attr"`
	ParaPrs []paraPrXML `xml:"hh:paraPr"`
}

type paraPrXML struct {
	ID          int            `xml:"id,attr"`
	TabPrIDRef  int            `xml:"tabPrIDRef,attr"`
	Align       alignXML       `xml:"hh:align"`
	Heading     headingXML     `xml:"hh:heading"`
	Margin      marginXML      `xml:"hh:margin"`
	LineSpacing lineSpacingXML `xml:"hh:lineSpacing"`
}

type alignXML struct {
	Horizontal string `xml:"horizontal,attr"`
	Vertical   string `xml:"vertical,attr"`
}

type headingXML struct {
	Type  string `xml:"type,attr"`
	IDRef int    `xml:"idRef,attr"`
	Level int    `xml:"level,attr"`
}

type marginXML struct {
	Left   unitValueXML `xml:"hc:left"`
	Prev   unitValueXML `xml:"hc:prev"`
	Next   unitValueXML `xml:"hc:next"`
	Indent unitValueXML `xml:"hc:intent"`
}

type unitValueXML struct {
	Value int    `xml:"value,attr"`
	Unit  string `xml:"unit,attr"`
}

type lineSpacingXML struct {
	Type  string `xml:"type,attr"`
	Value int    `xml:"value,attr"`
	Unit  string `xml:"unit,attr"`
}

type stylesXML struct {
	ItemCnt int        `xml:"itemCnt,attr"`
	Styles  []styleXML `xml:"hh:style"`
}

type styleXML struct {
	ID             int    `xml:"id,attr"`
	Type           string `xml:"type,attr"`
	Name           string `xml:"name,attr"`
	EngName        string `xml:"engName,attr"`
	ParaPrIDRef    int    `xml:"paraPrIDRef,attr"`
	CharPrIDRef    int    `xml:"charPrIDRef,attr"`
	NextStyleIDRef int    `xml:"nextStyleIDRef,attr"`
	LangID         int    `xml:"langID,attr"`
	LockForm       int    `xml:"lockForm,attr"`
}

// newHeaderXML declares every style, paragraph property and character
// property id that sheet refers to. Ids the sheet does not describe get
// body formatting.
func newHeaderXML(sheet document.StyleSheet) headXML {
	h := headXML{
		XmlnsHH:  nsHead,
		XmlnsHC:  nsCore,
		Version:  "1.4",
		SecCnt:   1,
		BeginNum: beginNumXML{Page: 1, Footnote: 1, Endnote: 1, Pic: 1, Tbl: 1, Equation: 1},
	}

	for _, lang := range fontLangs {
		h.RefList.Fontfaces.Fontfaces = append(h.RefList.Fontfaces.Fontfaces, fontfaceXML{
			Lang:    lang,
			FontCnt: 2,
			Fonts: []fontXML{
				{ID: fontBody, Face: "함초롬바탕", Type: "TTF"},
				{ID: fontCode, Face: "D2Coding", Type: "TTF"},
			},
		})
	}
	h.RefList.Fontfaces.ItemCnt = len(fontLangs)

	h.RefList.CharProperties.CharPrs = charPrs(sheet)
	h.RefList.CharProperties.ItemCnt = len(h.RefList.CharProperties.CharPrs)
	h.RefList.ParaProperties.ParaPrs = paraPrs(sheet)
	h.RefList.ParaProperties.ItemCnt = len(h.RefList.ParaProperties.ParaPrs)
	h.RefList.Styles.Styles = styles(sheet)
	h.RefList.Styles.ItemCnt = len(h.RefList.Styles.Styles)

	return h
}

func newCharPr(id int) charPrXML {
	return charPrXML{
		ID:            id,
		Height:        bodyHeight,
		TextColor:     "#000000",
		ShadeColor:    "none",
		SymMark:       "NONE",
		BorderFillRef: 1,
	}
}

func withFont(c charPrXML, font int) charPrXML {
	c.FontRef = fontRefXML{font, font, font, font, font, font, font}
	return c
}

func charPrs(sheet document.StyleSheet) []charPrXML {
	ids := []int{sheet.Body.CharPrID, sheet.ListItem.CharPrID, sheet.TableRow.CharPrID}
	for _, h := range sheet.Headings {
		ids = append(ids, h.CharPrID)
	}
	for _, id := range sheet.Inline {
		ids = append(ids, id)
	}

	prs := make([]charPrXML, maxID(ids)+1)
	for i := range prs {
		prs[i] = newCharPr(i)
	}

	for style, id := range sheet.Inline {
		if id < 0 {
			continue
		}
		c := &prs[id]
		switch style {
		case ir.StyleBold:
			c.Bold = &struct{}{}
		case ir.StyleItalic:
			c.Italic = &struct{}{}
		case ir.StyleCode:
			*c = withFont(*c, fontCode)
		case ir.StyleLinkText:
			c.TextColor = "#0000FF"
			c.Underline = &underlineXML{Type: "BOTTOM", Shape: "SOLID", Color: "#0000FF"}
		}
	}
	for level, h := range sheet.Headings {
		if h.CharPrID < 0 {
			continue
		}
		c := &prs[h.CharPrID]
		c.Height = headingHeights[level]
		c.Bold = &struct{}{}
	}
	return prs
}

func newParaPr(id int) paraPrXML {
	return paraPrXML{
		ID:          id,
		Align:       alignXML{Horizontal: "JUSTIFY", Vertical: "BASELINE"},
		Heading:     headingXML{Type: "NONE"},
		Margin:      marginXML{Left: hwpUnit(0), Prev: hwpUnit(0), Next: hwpUnit(0), Indent: hwpUnit(0)},
		LineSpacing: lineSpacingXML{Type: "PERCENT", Value: 160, Unit: "HWPUNIT"},
	}
}

func hwpUnit(v int) unitValueXML {
	return unitValueXML{Value: v, Unit: "HWPUNIT"}
}

func paraPrs(sheet document.StyleSheet) []paraPrXML {
	ids := []int{sheet.Body.ParaPrID, sheet.ListItem.ParaPrID, sheet.TableRow.ParaPrID}
	for _, h := range sheet.Headings {
		ids = append(ids, h.ParaPrID)
	}

	prs := make([]paraPrXML, maxID(ids)+1)
	for i := range prs {
		prs[i] = newParaPr(i)
	}

	for _, h := range sheet.Headings {
		if h.ParaPrID < 0 || h.ParaPrID == sheet.Body.ParaPrID {
			continue
		}
		p := &prs[h.ParaPrID]
		p.Align.Horizontal = "LEFT"
		p.Margin.Prev = hwpUnit(1200)
		p.Margin.Next = hwpUnit(600)
	}
	if sheet.ListItem.ParaPrID > 0 && sheet.ListItem.ParaPrID != sheet.Body.ParaPrID {
		prs[sheet.ListItem.ParaPrID].Margin.Left = hwpUnit(2000)
	}
	if sheet.TableRow.ParaPrID > 0 && sheet.TableRow.ParaPrID != sheet.Body.ParaPrID {
		prs[sheet.TableRow.ParaPrID].Align.Horizontal = "LEFT"
	}
	return prs
}

type namedStyle struct {
	ref     document.StyleRef
	name    string
	engName string
}

func styles(sheet document.StyleSheet) []styleXML {
	named := []namedStyle{
		{sheet.Body, "바탕글", "Normal"},
		{sheet.ListItem, "목록", "List"},
		{sheet.TableRow, "표 행", "Table Row"},
	}
	for i, h := range sheet.Headings {
		named = append(named, namedStyle{h, "개요 " + itoa(i+1), "Outline " + itoa(i+1)})
	}

	byID := make(map[int]styleXML)
	for _, n := range named {
		if _, ok := byID[n.ref.StyleID]; ok {
			continue
		}
		byID[n.ref.StyleID] = styleXML{
			ID:          n.ref.StyleID,
			Type:        "PARA",
			Name:        n.name,
			EngName:     n.engName,
			ParaPrIDRef: n.ref.ParaPrID,
			CharPrIDRef: n.ref.CharPrID,
			LangID:      1042,
		}
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]styleXML, 0, len(ids))
	for _, id := range ids {
		s := byID[id]
		s.NextStyleIDRef = id
		out = append(out, s)
	}
	return out
}

func maxID(ids []int) int {
	m := 0
	for _, id := range ids {
		if id > m {
			m = id
		}
	}
	return m
}

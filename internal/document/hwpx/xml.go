package hwpx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// XML namespaces of the OWPML package parts.
const (
	nsHead      = "http://www.hancom.co.kr/hwpml/2011/head"
	nsCore      = "http://www.hancom.co.kr/hwpml/2011/core"
	nsSection   = "http://www.hancom.co.kr/hwpml/2011/section"
	nsParagraph = "http://www.hancom.co.kr/hwpml/2011/paragraph"
	nsVersion   = "http://www.hancom.co.kr/hwpml/2011/version"
	nsOPF       = "http://www.idpf.org/2007/opf/"
	nsContainer = "urn:oasis:names:tc:opendocument:xmlns:container"
	nsManifest  = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"
)

type versionXML struct {
	XMLName     xml.Name `xml:"hv:HCFVersion"`
	XmlnsHV     string   `xml:"xmlns:hv,attr"`
	Target      string   `xml:"tagetApplication,attr"`
	Major       int      `xml:"major,attr"`
	Minor       int      `xml:"minor,attr"`
	Micro       int      `xml:"micro,attr"`
	BuildNumber int      `xml:"buildNumber,attr"`
	XMLVersion  string   `xml:"xmlVersion,attr"`
	Application string   `xml:"application,attr"`
}

func newVersionXML() versionXML {
	return versionXML{
		XmlnsHV:     nsVersion,
		Target:      "WORDPROCESSOR",
		Major:       5,
		Minor:       1,
		BuildNumber: 1,
		XMLVersion:  "1.4",
		Application: "hwpxmd",
	}
}

type containerXML struct {
	XMLName   xml.Name   `xml:"ocf:container"`
	XmlnsOCF  string     `xml:"xmlns:ocf,attr"`
	RootFiles []rootFile `xml:"ocf:rootfiles>ocf:rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

func newContainerXML() containerXML {
	return containerXML{
		XmlnsOCF: nsContainer,
		RootFiles: []rootFile{
			{FullPath: entryContent, MediaType: "application/hwpml-package+xml"},
		},
	}
}

type manifestXML struct {
	XMLName  xml.Name `xml:"odf:manifest"`
	XmlnsODF string   `xml:"xmlns:odf,attr"`
}

func newManifestXML() manifestXML {
	return manifestXML{XmlnsODF: nsManifest}
}

type contentHPF struct {
	XMLName  xml.Name      `xml:"opf:package"`
	XmlnsOPF string        `xml:"xmlns:opf,attr"`
	Title    string        `xml:"opf:metadata>opf:title"`
	Language string        `xml:"opf:metadata>opf:language"`
	Items    []contentItem `xml:"opf:manifest>opf:item"`
	Spine    []itemRef     `xml:"opf:spine>opf:itemref"`
}

type contentItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type itemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

func newContentHPF(title string) contentHPF {
	return contentHPF{
		XmlnsOPF: nsOPF,
		Title:    title,
		Language: "ko",
		Items: []contentItem{
			{ID: "header", Href: entryHeader, MediaType: "application/xml"},
			{ID: "section0", Href: entrySection0, MediaType: "application/xml"},
		},
		Spine: []itemRef{
			{IDRef: "header", Linear: "yes"},
			{IDRef: "section0", Linear: "yes"},
		},
	}
}

type sectionXML struct {
	XMLName    xml.Name       `xml:"hs:sec"`
	XmlnsHS    string         `xml:"xmlns:hs,attr"`
	XmlnsHP    string         `xml:"xmlns:hp,attr"`
	Paragraphs []paragraphXML `xml:"hp:p"`
}

type paragraphXML struct {
	ID          int      `xml:"id,attr"`
	ParaPrIDRef int      `xml:"paraPrIDRef,attr"`
	StyleIDRef  int      `xml:"styleIDRef,attr"`
	PageBreak   int      `xml:"pageBreak,attr"`
	ColumnBreak int      `xml:"columnBreak,attr"`
	Merged      int      `xml:"merged,attr"`
	Runs        []runXML `xml:"hp:run"`
}

type runXML struct {
	CharPrIDRef int       `xml:"charPrIDRef,attr"`
	Text        *textElem `xml:"hp:t,omitempty"`
}

func newSectionXML(paras []*Paragraph) sectionXML {
	sec := sectionXML{XmlnsHS: nsSection, XmlnsHP: nsParagraph}
	for i, p := range paras {
		px := paragraphXML{
			ID:          i,
			ParaPrIDRef: p.Style.ParaPrID,
			StyleIDRef:  p.Style.StyleID,
		}
		for _, r := range p.Runs {
			t := textElem(r.Text)
			px.Runs = append(px.Runs, runXML{CharPrIDRef: r.CharPrID, Text: &t})
		}
		if len(px.Runs) == 0 {
			px.Runs = []runXML{{CharPrIDRef: p.Style.CharPrID}}
		}
		sec.Paragraphs = append(sec.Paragraphs, px)
	}
	return sec
}

// textElem is the content of an hp:t element. Tabs and line breaks are
// written as hp:tab and hp:lineBreak child elements.
type textElem string

func (t textElem) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i, line := range strings.Split(string(t), "\n") {
		if i > 0 {
			if err := encodeEmpty(e, "hp:lineBreak"); err != nil {
				return err
			}
		}
		for j, part := range strings.Split(line, "\t") {
			if j > 0 {
				if err := encodeEmpty(e, "hp:tab"); err != nil {
					return err
				}
			}
			if part == "" {
				continue
			}
			if err := e.EncodeToken(xml.CharData(part)); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(start.End())
}

func encodeEmpty(e *xml.Encoder, name string) error {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	if err := e.EncodeToken(el); err != nil {
		return err
	}
	return e.EncodeToken(el.End())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

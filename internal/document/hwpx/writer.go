// Package hwpx writes minimal HWPX (Open HWPML) packages. Document
// implements document.Builder, so parsed Markdown can be populated into it
// and saved as a .hwpx file.
package hwpx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/roboco-io/hwpxmd/internal/document"
)

// MimeType is the content of the mimetype entry.
const MimeType = "application/hwp+zip"

// Package entry names.
const (
	entryMimeType  = "mimetype"
	entryVersion   = "version.xml"
	entryContainer = "META-INF/container.xml"
	entryManifest  = "META-INF/manifest.xml"
	entryContent   = "Contents/content.hpf"
	entryHeader    = "Contents/header.xml"
	entrySection0  = "Contents/section0.xml"
)

// Document is an in-memory HWPX document with a single section.
type Document struct {
	Title string

	sheet      document.StyleSheet
	paragraphs []*Paragraph
}

// Paragraph is one hp:p element.
type Paragraph struct {
	Style document.StyleRef
	Runs  []Run
}

// Run is one hp:run element.
type Run struct {
	CharPrID int
	Text     string
}

// New creates an empty document whose header declares the styles of sheet.
func New(sheet document.StyleSheet) *Document {
	return &Document{sheet: sheet}
}

// AddParagraph implements document.Builder.
func (d *Document) AddParagraph(style document.StyleRef) document.ParagraphBuilder {
	p := &Paragraph{Style: style}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// AddRun implements document.ParagraphBuilder.
func (p *Paragraph) AddRun(text string, charPrID int) {
	p.Runs = append(p.Runs, Run{CharPrID: charPrID, Text: text})
}

// Paragraphs returns the paragraphs added so far.
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := d.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Write writes the document as a zip package to w. The mimetype entry is
// stored uncompressed as the first entry.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: entryMimeType, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", entryMimeType, err)
	}
	if _, err := io.WriteString(mw, MimeType); err != nil {
		return fmt.Errorf("failed to write %s: %w", entryMimeType, err)
	}

	parts := []struct {
		name string
		v    any
	}{
		{entryVersion, newVersionXML()},
		{entryContainer, newContainerXML()},
		{entryManifest, newManifestXML()},
		{entryContent, newContentHPF(d.Title)},
		{entryHeader, newHeaderXML(d.sheet)},
		{entrySection0, newSectionXML(d.paragraphs)},
	}
	for _, part := range parts {
		if err := writeXML(zw, part.name, part.v); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

func writeXML(zw *zip.Writer, name string, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := fw.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Package hwpx extracts text from HWPX (Open HWPML) documents.
package hwpx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// Reader opens HWPX documents.
type Reader struct{}

// Format implements source.Reader.
func (Reader) Format() source.Format {
	return source.FormatHWPX
}

// Open implements source.Reader.
func (Reader) Open(path string, opts source.Options) (source.Extractor, error) {
	return New(path, opts)
}

// Extractor reads paragraphs from an opened HWPX archive.
type Extractor struct {
	reader  *zip.ReadCloser
	options source.Options

	manifest *Manifest
	sections []string
	heads    map[string]paraHead
}

// New opens the HWPX file at path.
func New(path string, opts source.Options) (*Extractor, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HWPX file: %w", err)
	}

	e := &Extractor{
		reader:  r,
		options: opts,
		heads:   make(map[string]paraHead),
	}

	if err := e.parseManifest(); err != nil {
		r.Close()
		return nil, err
	}
	if err := e.parseHeader(); err != nil {
		r.Close()
		return nil, err
	}

	return e, nil
}

// Title returns the document title recorded in the manifest.
func (e *Extractor) Title() string {
	if e.manifest == nil {
		return ""
	}
	return strings.TrimSpace(e.manifest.Title)
}

// Extract implements source.Extractor.
func (e *Extractor) Extract() ([]source.Paragraph, error) {
	var paras []source.Paragraph
	for _, sectionPath := range e.sections {
		sectionParas, err := e.parseSection(sectionPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse section %s: %w", sectionPath, err)
		}
		paras = append(paras, sectionParas...)
	}
	return paras, nil
}

// Close releases resources.
func (e *Extractor) Close() error {
	if e.reader != nil {
		return e.reader.Close()
	}
	return nil
}

func (e *Extractor) findFile(name string) *zip.File {
	for _, f := range e.reader.File {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

func (e *Extractor) readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseManifest reads content.hpf, falling back to scanning the archive for
// section files.
func (e *Extractor) parseManifest() error {
	var manifestFile *zip.File
	for _, name := range []string{"Contents/content.hpf", "content.hpf"} {
		if manifestFile = e.findFile(name); manifestFile != nil {
			break
		}
	}

	if manifestFile == nil {
		e.findSectionsWithoutManifest()
		return nil
	}

	data, err := e.readFile(manifestFile)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	e.manifest = manifest
	e.sections = manifest.SectionPaths()
	if len(e.sections) == 0 {
		e.findSectionsWithoutManifest()
	}
	return nil
}

func (e *Extractor) findSectionsWithoutManifest() {
	for _, f := range e.reader.File {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, "section") && strings.HasSuffix(name, ".xml") {
			e.sections = append(e.sections, f.Name)
		}
	}
	sortSections(e.sections)
}

// parseHeader loads para head declarations. A missing header is not an
// error; paragraphs then have no heads.
func (e *Extractor) parseHeader() error {
	headerPath := "Contents/header.xml"
	if e.manifest != nil {
		if p := e.manifest.HeaderPath(); p != "" {
			headerPath = p
		}
	}

	f := e.findFile(headerPath)
	if f == nil {
		return nil
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open header: %w", err)
	}
	defer rc.Close()

	heads, err := parseParaHeads(rc)
	if err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}
	e.heads = heads
	return nil
}

func (e *Extractor) parseSection(sectionPath string) ([]source.Paragraph, error) {
	f := e.findFile(sectionPath)
	if f == nil {
		return nil, fmt.Errorf("section file not found: %s", sectionPath)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open section: %w", err)
	}
	defer rc.Close()

	return parseSectionXML(xml.NewDecoder(rc), e.heads)
}

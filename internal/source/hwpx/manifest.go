package hwpx

import (
	"encoding/xml"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Manifest represents the OPF package manifest (content.hpf).
type Manifest struct {
	XMLName xml.Name       `xml:"package"`
	Title   string         `xml:"metadata>title"`
	Items   []ManifestItem `xml:"manifest>item"`
	Spine   []SpineItem    `xml:"spine>itemref"`
}

// ManifestItem represents a single item in the manifest.
type ManifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// SpineItem represents a spine reference for reading order.
type SpineItem struct {
	IDRef string `xml:"idref,attr"`
}

// ParseManifest parses OPF-format manifest XML data.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// SectionPaths returns section file paths in reading order. Spine order is
// used when present, otherwise section items in numeric order.
func (m *Manifest) SectionPaths() []string {
	itemMap := make(map[string]ManifestItem)
	for _, item := range m.Items {
		itemMap[item.ID] = item
	}

	var paths []string
	for _, ref := range m.Spine {
		if item, ok := itemMap[ref.IDRef]; ok && isSection(item) {
			paths = append(paths, normalizeHref(item.Href))
		}
	}
	if len(paths) > 0 {
		return paths
	}

	for _, item := range m.Items {
		if isSection(item) {
			paths = append(paths, normalizeHref(item.Href))
		}
	}
	sortSections(paths)
	return paths
}

// HeaderPath returns the header.xml path, or "" when the manifest has none.
func (m *Manifest) HeaderPath() string {
	for _, item := range m.Items {
		if strings.EqualFold(item.ID, "header") || strings.HasSuffix(strings.ToLower(item.Href), "header.xml") {
			return normalizeHref(item.Href)
		}
	}
	return ""
}

func isSection(item ManifestItem) bool {
	return strings.Contains(strings.ToLower(item.ID), "section") ||
		strings.HasPrefix(strings.ToLower(path.Base(item.Href)), "section")
}

// normalizeHref makes a manifest href relative to the archive root.
func normalizeHref(href string) string {
	href = strings.TrimPrefix(href, "/")
	if !strings.Contains(href, "/") {
		href = "Contents/" + href
	}
	return href
}

// sortSections orders paths by their trailing section number so that
// section10 follows section9.
func sortSections(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return sectionNumber(paths[i]) < sectionNumber(paths[j])
	})
}

func sectionNumber(p string) int {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	end := len(base)
	start := end
	for start > 0 && unicode.IsDigit(rune(base[start-1])) {
		start--
	}
	n, err := strconv.Atoi(base[start:end])
	if err != nil {
		return -1
	}
	return n
}

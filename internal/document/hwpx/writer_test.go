package hwpx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/hwpxmd/internal/document"
	"github.com/roboco-io/hwpxmd/internal/markdown"
	"github.com/roboco-io/hwpxmd/internal/source"
	sourcehwpx "github.com/roboco-io/hwpxmd/internal/source/hwpx"
)

const testMarkdown = `# 보고서

첫 문단 **굵게** 그리고 *기울임*.

- 사과
- 배

1. 하나
2. 둘

| 이름 | 나이 |
|---|---|
| 철수 | 30 |
`

func populated(t *testing.T, text string) *Document {
	t.Helper()
	doc := New(document.DefaultStyleSheet())
	doc.Title = "보고서"
	document.Populate(markdown.Parse(text), doc, document.DefaultStyleSheet())
	return doc
}

func readEntries(t *testing.T, data []byte) (*zip.Reader, map[string]string) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = string(b)
	}
	return zr, entries
}

func TestWrite_PackageLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, populated(t, testMarkdown).Write(&buf))

	zr, entries := readEntries(t, buf.Bytes())

	require.NotEmpty(t, zr.File)
	assert.Equal(t, "mimetype", zr.File[0].Name)
	assert.Equal(t, zip.Store, zr.File[0].Method)
	assert.Equal(t, MimeType, entries["mimetype"])

	for _, name := range []string{
		"version.xml",
		"META-INF/container.xml",
		"META-INF/manifest.xml",
		"Contents/content.hpf",
		"Contents/header.xml",
		"Contents/section0.xml",
	} {
		content, ok := entries[name]
		if assert.True(t, ok, "missing %s", name) {
			assert.True(t, strings.HasPrefix(content, "<?xml"), "%s has no XML declaration", name)
			assert.NoError(t, xml.Unmarshal([]byte(content), new(any)), "%s is not well-formed", name)
		}
	}

	assert.Contains(t, entries["Contents/section0.xml"], `<hp:run charPrIDRef="1"><hp:t>굵게</hp:t></hp:run>`)
	assert.Contains(t, entries["Contents/header.xml"], `name="개요 1"`)
	assert.Contains(t, entries["Contents/content.hpf"], `<opf:title>보고서</opf:title>`)
}

func TestSave_RoundTripThroughReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.hwpx")
	require.NoError(t, populated(t, testMarkdown).Save(path))

	e, err := sourcehwpx.New(path, source.DefaultOptions())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "보고서", e.Title())

	paras, err := e.Extract()
	require.NoError(t, err)

	var got []string
	for _, p := range paras {
		got = append(got, p.Text)
	}
	assert.Equal(t, []string{
		"보고서",
		"첫 문단 굵게 그리고 기울임.",
		"• 사과",
		"• 배",
		"1. 하나",
		"2. 둘",
		"이름 | 나이",
		"철수 | 30",
	}, got)
}

func TestWrite_TabsAndLineBreaks(t *testing.T) {
	doc := New(document.DefaultStyleSheet())
	doc.AddParagraph(document.DefaultStyleSheet().Body).AddRun("a\tb\nc & <d>", 0)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	_, entries := readEntries(t, buf.Bytes())

	assert.Contains(t, entries["Contents/section0.xml"],
		`<hp:t>a<hp:tab></hp:tab>b<hp:lineBreak></hp:lineBreak>c &amp; &lt;d&gt;</hp:t>`)
}

func TestWrite_EmptyParagraph(t *testing.T) {
	doc := New(document.DefaultStyleSheet())
	doc.AddParagraph(document.DefaultStyleSheet().Body)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	_, entries := readEntries(t, buf.Bytes())

	assert.Contains(t, entries["Contents/section0.xml"], `<hp:run charPrIDRef="0"></hp:run>`)
	assert.Len(t, doc.Paragraphs(), 1)
}

func TestHeader_DeclaresSheetIDs(t *testing.T) {
	sheet := document.DefaultStyleSheet()
	h := newHeaderXML(sheet)

	assert.Equal(t, document.CharPrHeading1+6, h.RefList.CharProperties.ItemCnt)
	assert.Equal(t, document.ParaPrTableRow+1, h.RefList.ParaProperties.ItemCnt)
	assert.Equal(t, document.StyleTableRow+1, h.RefList.Styles.ItemCnt)

	prs := h.RefList.CharProperties.CharPrs
	assert.NotNil(t, prs[document.CharPrBold].Bold)
	assert.NotNil(t, prs[document.CharPrItalic].Italic)
	assert.NotNil(t, prs[document.CharPrLink].Underline)
	assert.Equal(t, fontCode, prs[document.CharPrCode].FontRef.Latin)
	assert.Equal(t, 2000, prs[document.CharPrHeading1].Height)
	assert.Nil(t, prs[document.CharPrNormal].Bold)

	for i, s := range h.RefList.Styles.Styles {
		assert.Equal(t, i, s.ID)
	}
}

func TestSave_InvalidPath(t *testing.T) {
	doc := New(document.DefaultStyleSheet())
	err := doc.Save(filepath.Join(t.TempDir(), "missing", "out.hwpx"))
	assert.Error(t, err)
}

package hwp5

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// record encodes one record: [TagID:10비트][Level:10비트][Size:12비트].
func record(tag, level uint16, data []byte) []byte {
	var buf bytes.Buffer
	size := uint32(len(data))
	if size >= 0xFFF {
		binary.Write(&buf, binary.LittleEndian, uint32(tag)|uint32(level)<<10|0xFFF<<20)
		binary.Write(&buf, binary.LittleEndian, size)
	} else {
		binary.Write(&buf, binary.LittleEndian, uint32(tag)|uint32(level)<<10|size<<20)
	}
	buf.Write(data)
	return buf.Bytes()
}

// paraText encodes text as PARA_TEXT data ending with a paragraph break.
func paraText(text string) []byte {
	var buf bytes.Buffer
	for _, u := range utf16.Encode([]rune(text)) {
		binary.Write(&buf, binary.LittleEndian, u)
	}
	binary.Write(&buf, binary.LittleEndian, uint16(CharParaBreak))
	return buf.Bytes()
}

func paraHeader(shapeID uint16) []byte {
	data := make([]byte, 22)
	binary.LittleEndian.PutUint16(data[8:10], shapeID)
	return data
}

func ctrlHeader(id string) []byte {
	return []byte{id[3], id[2], id[1], id[0], 0, 0, 0, 0}
}

func cellHeader(col, row uint16) []byte {
	data := make([]byte, 34)
	binary.LittleEndian.PutUint16(data[0:2], 1)
	binary.LittleEndian.PutUint16(data[8:10], col)
	binary.LittleEndian.PutUint16(data[10:12], row)
	return data
}

func tableRecord(rows, cols uint16) []byte {
	data := make([]byte, 18)
	binary.LittleEndian.PutUint16(data[4:6], rows)
	binary.LittleEndian.PutUint16(data[6:8], cols)
	return data
}

func join(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestParseFileHeader(t *testing.T) {
	data := make([]byte, FileHeaderSize)
	copy(data[0:32], []byte(Signature))

	// 버전: 5.0.3.0
	data[32] = 0
	data[33] = 3
	data[34] = 0
	data[35] = 5

	binary.LittleEndian.PutUint32(data[36:40], FlagCompressed|FlagDRM)

	header, err := ParseFileHeader(data)
	if err != nil {
		t.Fatalf("ParseFileHeader failed: %v", err)
	}

	if header.Version.String() != "5.0.3.0" {
		t.Errorf("expected version 5.0.3.0, got %s", header.Version.String())
	}
	if !header.IsCompressed() {
		t.Error("expected IsCompressed() to be true")
	}
	if header.IsEncrypted() {
		t.Error("expected IsEncrypted() to be false")
	}
	if header.IsDistributable() {
		t.Error("expected IsDistributable() to be false")
	}
	if !header.HasDRM() {
		t.Error("expected HasDRM() to be true")
	}
}

func TestParseFileHeader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too small", make([]byte, 100)},
		{"bad signature", append([]byte("Invalid Signature"), make([]byte, FileHeaderSize)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFileHeader(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRecordReader(t *testing.T) {
	large := bytes.Repeat([]byte{0xAB}, 5000)
	data := join(
		record(TagParaHeader, 0, []byte{1, 2, 3}),
		record(TagParaText, 1, large),
		record(TagCtrlHeader, 2, nil),
	)

	records, err := NewRecordReader(data).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].TagID != TagParaHeader || records[0].Level != 0 || len(records[0].Data) != 3 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].TagID != TagParaText || records[1].Level != 1 || len(records[1].Data) != 5000 {
		t.Errorf("unexpected extended size record: tag=%#x level=%d size=%d",
			records[1].TagID, records[1].Level, len(records[1].Data))
	}
	if records[2].Level != 2 || len(records[2].Data) != 0 {
		t.Errorf("unexpected empty record: %+v", records[2])
	}
}

func TestRecordReader_Truncated(t *testing.T) {
	data := record(TagParaText, 0, []byte("abcdef"))

	tests := []struct {
		name string
		data []byte
	}{
		{"header", data[:2]},
		{"body", data[:len(data)-2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRecordReader(tt.data).ReadAll(); err == nil {
				t.Error("expected error for truncated record")
			}
		})
	}
}

func TestDecompressStream(t *testing.T) {
	original := []byte("한글 문서 본문 스트림")

	var raw bytes.Buffer
	fw, _ := flate.NewWriter(&raw, flate.DefaultCompression)
	fw.Write(original)
	fw.Close()

	var wrapped bytes.Buffer
	zw := zlib.NewWriter(&wrapped)
	zw.Write(original)
	zw.Close()

	for name, data := range map[string][]byte{"deflate": raw.Bytes(), "zlib": wrapped.Bytes()} {
		t.Run(name, func(t *testing.T) {
			got, err := DecompressStream(data)
			if err != nil {
				t.Fatalf("DecompressStream failed: %v", err)
			}
			if !bytes.Equal(got, original) {
				t.Errorf("expected %q, got %q", original, got)
			}
		})
	}
}

func TestDecompressStream_Invalid(t *testing.T) {
	if _, err := DecompressStream([]byte{0xFF, 0xFF, 0xFF, 0xFF}); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestExtractText(t *testing.T) {
	var buf bytes.Buffer
	put := func(units ...uint16) {
		for _, u := range units {
			binary.Write(&buf, binary.LittleEndian, u)
		}
	}

	put('A', 'B')
	put(CharTab, 0, 0, 0, 0, 0, 0, CharTab) // 탭 컨트롤
	put('C')
	put(CharLineBreak)
	put(0x0B, 0x7462, 0x6C20, 0, 0, 0, 0, 0x0B) // 표 컨트롤
	put('가')
	put(CharNBSP, 'D', CharHyphen, 'E')
	put(CharParaBreak)

	got := ExtractText(buf.Bytes())
	want := "AB\tC\n가 D-E"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParaShapeHeading(t *testing.T) {
	tests := []struct {
		name      string
		attrs     uint32
		wantKind  source.HeadingType
		wantLevel int
	}{
		{"none", 0, source.HeadingNone, 0},
		{"outline level 0", headOutline << 23, source.HeadingOutline, 0},
		{"number level 2", headNumber<<23 | 2<<25, source.HeadingNumber, 2},
		{"bullet level 1", headBullet<<23 | 1<<25, source.HeadingBullet, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, level := ParaShape{Attributes1: tt.attrs}.Heading()
			if kind != tt.wantKind || level != tt.wantLevel {
				t.Errorf("expected (%v, %d), got (%v, %d)", tt.wantKind, tt.wantLevel, kind, level)
			}
		})
	}
}

func TestParseDocInfo(t *testing.T) {
	props := make([]byte, 26)
	binary.LittleEndian.PutUint16(props[0:2], 2)

	shape := make([]byte, 54)
	binary.LittleEndian.PutUint32(shape[0:4], headNumber<<23)

	data := join(
		record(TagDocumentProperties, 0, props),
		record(TagParaShape, 0, make([]byte, 54)),
		record(TagParaShape, 0, shape),
	)

	info, err := ParseDocInfo(data)
	if err != nil {
		t.Fatalf("ParseDocInfo failed: %v", err)
	}
	if info.SectionCount != 2 {
		t.Errorf("expected 2 sections, got %d", info.SectionCount)
	}
	if len(info.ParaShapes) != 2 {
		t.Fatalf("expected 2 para shapes, got %d", len(info.ParaShapes))
	}

	ps, ok := info.ParaShape(1)
	if !ok {
		t.Fatal("expected para shape 1")
	}
	if kind, _ := ps.Heading(); kind != source.HeadingNumber {
		t.Errorf("expected number heading, got %v", kind)
	}
	if _, ok := info.ParaShape(5); ok {
		t.Error("expected no para shape 5")
	}

	var nilInfo *DocInfo
	if _, ok := nilInfo.ParaShape(0); ok {
		t.Error("expected nil DocInfo to have no para shapes")
	}
}

func TestParseSection(t *testing.T) {
	info := &DocInfo{ParaShapes: []ParaShape{
		{},
		{Attributes1: headNumber << 23},
	}}

	data := join(
		// 1. 번호 문단
		record(TagParaHeader, 0, paraHeader(1)),
		record(TagParaText, 1, paraText("개요")),

		// 2. 표를 포함한 문단
		record(TagParaHeader, 0, paraHeader(0)),
		record(TagParaText, 1, paraText("표 제목")),
		record(TagCtrlHeader, 1, ctrlHeader(CtrlTable)),
		record(TagTable, 2, tableRecord(2, 2)),
		record(TagListHeader, 2, cellHeader(0, 0)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("이름")),
		record(TagListHeader, 2, cellHeader(1, 0)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("나이")),
		record(TagListHeader, 2, cellHeader(0, 1)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("철수")),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("영희")),
		record(TagListHeader, 2, cellHeader(1, 1)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("30")),

		// 3. 글상자를 포함한 문단
		record(TagParaHeader, 0, paraHeader(0)),
		record(TagParaText, 1, paraText("본문")),
		record(TagCtrlHeader, 1, ctrlHeader(CtrlGSO)),
		record(TagListHeader, 2, make([]byte, 8)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("글상자")),

		// 4. 머리말 컨트롤은 건너뜀
		record(TagParaHeader, 0, paraHeader(0)),
		record(TagCtrlHeader, 1, ctrlHeader("head")),
		record(TagListHeader, 2, make([]byte, 8)),
		record(TagParaHeader, 2, paraHeader(0)),
		record(TagParaText, 3, paraText("머리말")),
		record(TagParaText, 1, paraText("끝")),
	)

	paras, err := ParseSection(data, info)
	if err != nil {
		t.Fatalf("ParseSection failed: %v", err)
	}
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(paras))
	}

	if paras[0].Text != "개요" || paras[0].Heading != source.HeadingNumber {
		t.Errorf("unexpected first paragraph: %+v", paras[0])
	}

	if paras[1].Text != "표 제목" {
		t.Errorf("expected '표 제목', got %q", paras[1].Text)
	}
	if len(paras[1].Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(paras[1].Tables))
	}
	table := paras[1].Tables[0]
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 2 || len(table.Rows[1][0].Paragraphs) != 2 {
		t.Errorf("unexpected second row: %+v", table.Rows[1])
	}

	if paras[2].Text != "본문 글상자" {
		t.Errorf("expected '본문 글상자', got %q", paras[2].Text)
	}
	if paras[3].Text != "끝" {
		t.Errorf("expected '끝', got %q", paras[3].Text)
	}

	got := source.Render(paras, source.DefaultOptions())
	want := "1. 개요\n\n표 제목\n이름\t나이\n철수 영희\t30\n\n본문 글상자\n\n끝\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParseSection_CellRowFallback(t *testing.T) {
	data := join(
		record(TagParaHeader, 0, paraHeader(0)),
		record(TagCtrlHeader, 1, ctrlHeader(CtrlTable)),
		record(TagTable, 2, tableRecord(2, 2)),
		record(TagListHeader, 2, make([]byte, 8)),
		record(TagListHeader, 2, make([]byte, 8)),
		record(TagListHeader, 2, make([]byte, 8)),
	)

	paras, err := ParseSection(data, nil)
	if err != nil {
		t.Fatalf("ParseSection failed: %v", err)
	}
	table := paras[0].Tables[0]
	if len(table.Rows) != 2 || len(table.Rows[0]) != 2 || len(table.Rows[1]) != 1 {
		t.Errorf("expected rows of 2 and 1 cells, got %+v", table.Rows)
	}
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	notOLE := filepath.Join(dir, "plain.hwp")
	if err := os.WriteFile(notOLE, []byte("not a compound file"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.hwp")},
		{"not OLE", notOLE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.path, source.DefaultOptions()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReaderFormat(t *testing.T) {
	if (Reader{}).Format() != source.FormatHWP {
		t.Errorf("expected FormatHWP, got %v", (Reader{}).Format())
	}
}

func TestSectionIndex(t *testing.T) {
	tests := map[string]int{
		"BodyText/Section0":  0,
		"BodyText/Section12": 12,
		"BodyText/SectionX":  -1,
	}
	for name, want := range tests {
		if got := sectionIndex(name); got != want {
			t.Errorf("sectionIndex(%q): expected %d, got %d", name, want, got)
		}
	}
}

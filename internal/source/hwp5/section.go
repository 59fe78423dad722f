package hwp5

import (
	"encoding/binary"
	"fmt"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// sectionWalker turns a flat record list into paragraphs. Records form a
// tree through their Level: a paragraph's text and controls sit one level
// below its PARA_HEADER, and a table's cells and cell paragraphs one level
// below its CTRL_HEADER.
type sectionWalker struct {
	records []*Record
	docInfo *DocInfo
}

// ParseSection parses decompressed section stream data.
func ParseSection(data []byte, docInfo *DocInfo) ([]source.Paragraph, error) {
	records, err := NewRecordReader(data).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read section records: %w", err)
	}

	w := &sectionWalker{records: records, docInfo: docInfo}

	var paras []source.Paragraph
	for i := 0; i < len(records); {
		rec := records[i]
		if rec.TagID == TagParaHeader && rec.Level == 0 {
			var p source.Paragraph
			p, i = w.paragraph(i)
			paras = append(paras, p)
			continue
		}
		i++
	}
	return paras, nil
}

// ctrlID reads the 4-character control ID, stored as a little-endian uint32.
func ctrlID(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	return string([]byte{data[3], data[2], data[1], data[0]})
}

// paragraph reads the PARA_HEADER at i and its children.
func (w *sectionWalker) paragraph(i int) (source.Paragraph, int) {
	header := w.records[i]
	var p source.Paragraph

	// PARA_HEADER: [0:4] 글자 수, [4:8] 컨트롤 마스크, [8:10] 문단 모양 ID
	if len(header.Data) >= 10 {
		id := int(binary.LittleEndian.Uint16(header.Data[8:10]))
		if ps, ok := w.docInfo.ParaShape(id); ok {
			p.Heading, p.Level = ps.Heading()
		}
	}

	i++
	for i < len(w.records) && w.records[i].Level > header.Level {
		rec := w.records[i]
		switch {
		case rec.TagID == TagParaText && rec.Level == header.Level+1:
			p.Text += ExtractText(rec.Data)
			i++

		case rec.TagID == TagCtrlHeader && ctrlID(rec.Data) == CtrlTable:
			var t *source.Table
			t, i = w.table(i)
			if len(t.Rows) > 0 {
				p.Tables = append(p.Tables, t)
			}

		case rec.TagID == TagCtrlHeader && ctrlID(rec.Data) == CtrlGSO:
			var text string
			text, i = w.drawingText(i)
			if text != "" {
				if p.Text != "" {
					p.Text += " "
				}
				p.Text += text
			}

		case rec.TagID == TagCtrlHeader:
			i = w.skip(i)

		default:
			i++
		}
	}

	return p, i
}

// table reads the table control at i. Cells are grouped into rows by the
// row address in each cell's LIST_HEADER.
func (w *sectionWalker) table(i int) (*source.Table, int) {
	ctrl := w.records[i]
	t := &source.Table{}
	cols := 0
	cellIndex := 0
	lastRow := -1

	i++
	for i < len(w.records) && w.records[i].Level > ctrl.Level {
		rec := w.records[i]
		switch {
		case rec.TagID == TagTable && len(rec.Data) >= 8:
			cols = int(binary.LittleEndian.Uint16(rec.Data[6:8]))
			i++

		case rec.TagID == TagListHeader && rec.Level == ctrl.Level+1:
			row := cellRow(rec.Data, cellIndex, cols)
			cellIndex++
			if row != lastRow || len(t.Rows) == 0 {
				t.AddRow()
				lastRow = row
			}

			var cell source.Cell
			i++
			for i < len(w.records) && w.records[i].Level > ctrl.Level &&
				!(w.records[i].TagID == TagListHeader && w.records[i].Level == ctrl.Level+1) {
				if w.records[i].TagID == TagParaHeader {
					var p source.Paragraph
					p, i = w.paragraph(i)
					cell.Paragraphs = append(cell.Paragraphs, p)
					continue
				}
				i++
			}
			t.AddCell(cell)

		default:
			i++
		}
	}

	return t, i
}

// cellRow returns the row address of a table cell. LIST_HEADER for a cell:
// [0:2] 문단 수, [2:4] 예약, [4:8] 속성, [8:10] 열 주소, [10:12] 행 주소.
// Without the address the row is derived from the column count.
func cellRow(data []byte, index, cols int) int {
	if len(data) >= 12 {
		return int(binary.LittleEndian.Uint16(data[10:12]))
	}
	if cols > 0 {
		return index / cols
	}
	return 0
}

// drawingText collects the paragraphs of a drawing object such as a text box.
func (w *sectionWalker) drawingText(i int) (string, int) {
	ctrl := w.records[i]
	var text string

	i++
	for i < len(w.records) && w.records[i].Level > ctrl.Level {
		if w.records[i].TagID == TagParaHeader {
			var p source.Paragraph
			p, i = w.paragraph(i)
			if p.Text != "" {
				if text != "" {
					text += " "
				}
				text += p.Text
			}
			continue
		}
		i++
	}
	return text, i
}

// skip returns the index after the record at i and its descendants.
func (w *sectionWalker) skip(i int) int {
	level := w.records[i].Level
	i++
	for i < len(w.records) && w.records[i].Level > level {
		i++
	}
	return i
}

package hwpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// frame is one open container while walking a section: a paragraph or a
// table. Paragraphs inside table cells and tables inside paragraphs nest.
type frame struct {
	para *paraFrame
	tbl  *tableFrame
}

type paraFrame struct {
	para source.Paragraph
	text strings.Builder
}

type tableFrame struct {
	table *source.Table
	cell  *source.Cell
}

type sectionWalker struct {
	heads  map[string]paraHead
	stack  []frame
	out    []source.Paragraph
	inText int
	skip   int
}

// skippedElements hold page decorations and notes, which are not part of
// the body text.
var skippedElements = map[string]bool{
	"header":   true,
	"footer":   true,
	"footNote": true,
	"endNote":  true,
}

// parseSectionXML walks a section document and returns its top-level
// paragraphs. Tables are attached to the paragraph that anchors them.
func parseSectionXML(decoder *xml.Decoder, heads map[string]paraHead) ([]source.Paragraph, error) {
	w := &sectionWalker{heads: heads}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if w.skip > 0 || skippedElements[t.Name.Local] {
				w.skip++
				continue
			}
			w.start(t)
		case xml.EndElement:
			if w.skip > 0 {
				w.skip--
				continue
			}
			w.end(t)
		case xml.CharData:
			if w.skip == 0 && w.inText > 0 {
				if p := w.currentPara(); p != nil {
					p.text.Write(t)
				}
			}
		}
	}

	return w.out, nil
}

func (w *sectionWalker) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		pf := &paraFrame{}
		if h, ok := w.heads[attr(t, "paraPrIDRef")]; ok {
			pf.para.Heading = h.kind
			pf.para.Level = h.level
		}
		w.stack = append(w.stack, frame{para: pf})

	case "t":
		w.inText++

	case "tab":
		w.writeControl('\t')

	case "lineBreak":
		w.writeControl('\n')

	case "br":
		if typ := attr(t, "type"); typ == "" || typ == "line" {
			w.writeControl('\n')
		}

	case "tbl":
		w.stack = append(w.stack, frame{tbl: &tableFrame{table: &source.Table{}}})

	case "tr":
		if tf := w.currentTable(); tf != nil {
			tf.table.AddRow()
		}

	case "tc":
		if tf := w.currentTable(); tf != nil {
			tf.cell = &source.Cell{}
		}
	}
}

func (w *sectionWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "p":
		pf := w.popPara()
		if pf == nil {
			return
		}
		pf.para.Text = pf.text.String()
		w.attachParagraph(pf.para)

	case "t":
		if w.inText > 0 {
			w.inText--
		}

	case "tc":
		if tf := w.currentTable(); tf != nil && tf.cell != nil {
			tf.table.AddCell(*tf.cell)
			tf.cell = nil
		}

	case "tbl":
		tf := w.popTable()
		if tf == nil || len(tf.table.Rows) == 0 {
			return
		}
		w.attachTable(tf.table)
	}
}

func (w *sectionWalker) writeControl(c byte) {
	if p := w.currentPara(); p != nil {
		p.text.WriteByte(c)
	}
}

func (w *sectionWalker) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *sectionWalker) currentPara() *paraFrame {
	if f := w.top(); f != nil {
		return f.para
	}
	return nil
}

func (w *sectionWalker) currentTable() *tableFrame {
	if f := w.top(); f != nil {
		return f.tbl
	}
	return nil
}

func (w *sectionWalker) popPara() *paraFrame {
	f := w.top()
	if f == nil || f.para == nil {
		return nil
	}
	w.stack = w.stack[:len(w.stack)-1]
	return f.para
}

func (w *sectionWalker) popTable() *tableFrame {
	f := w.top()
	if f == nil || f.tbl == nil {
		return nil
	}
	w.stack = w.stack[:len(w.stack)-1]
	return f.tbl
}

// attachParagraph adds a closed paragraph to the enclosing cell, or to the
// output when it is top-level.
func (w *sectionWalker) attachParagraph(p source.Paragraph) {
	if tf := w.currentTable(); tf != nil {
		if tf.cell != nil {
			tf.cell.Paragraphs = append(tf.cell.Paragraphs, p)
		}
		return
	}
	// Paragraphs of text boxes and other drawing objects fold into the
	// paragraph that holds the object.
	if outer := w.currentPara(); outer != nil {
		if p.Text != "" {
			if outer.text.Len() > 0 {
				outer.text.WriteByte(' ')
			}
			outer.text.WriteString(p.Text)
		}
		outer.para.Tables = append(outer.para.Tables, p.Tables...)
		return
	}
	w.out = append(w.out, p)
}

// attachTable adds a closed table to its anchoring paragraph. A table with
// no enclosing paragraph becomes a paragraph of its own.
func (w *sectionWalker) attachTable(t *source.Table) {
	if pf := w.currentPara(); pf != nil {
		pf.para.Tables = append(pf.para.Tables, t)
		return
	}
	w.attachParagraph(source.Paragraph{Tables: []*source.Table{t}})
}

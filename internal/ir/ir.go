// Package ir defines the block-level representation shared by the Markdown
// parser and the document populator.
package ir

// Document is an ordered sequence of blocks parsed from one Markdown input.
type Document struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Content  []Block  `json:"content"`
}

// Metadata contains document metadata.
type Metadata struct {
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
}

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeHeading       BlockType = "heading"
	BlockTypeParagraph     BlockType = "paragraph"
	BlockTypeUnorderedList BlockType = "unordered_list"
	BlockTypeOrderedList   BlockType = "ordered_list"
	BlockTypeTable         BlockType = "table"
)

// Block represents a content block in the document. Exactly one payload
// field is set, selected by Type.
type Block struct {
	Type      BlockType  `json:"type"`
	Heading   *Heading   `json:"heading,omitempty"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	List      *List      `json:"list,omitempty"`
	Table     *Table     `json:"table,omitempty"`
}

// Heading is an ATX heading with level 1..6.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Paragraph holds continuation lines joined by a single space.
type Paragraph struct {
	Text string `json:"text"`
}

// List holds the items of an ordered or unordered list. Ordered lists are
// renumbered from 1 on output; source numbering is not kept.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// Table holds raw cell rows. Rows may have differing lengths.
type Table struct {
	Rows [][]string `json:"rows"`
}

// NewDocument creates a new document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: "1.0",
		Content: make([]Block, 0),
	}
}

// NewHeading returns a heading block. Levels outside 1..6 are clamped.
func NewHeading(level int, text string) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Type: BlockTypeHeading, Heading: &Heading{Level: level, Text: text}}
}

// NewParagraph returns a paragraph block.
func NewParagraph(text string) Block {
	return Block{Type: BlockTypeParagraph, Paragraph: &Paragraph{Text: text}}
}

// NewUnorderedList returns a bullet list block.
func NewUnorderedList(items ...string) Block {
	return Block{Type: BlockTypeUnorderedList, List: &List{Ordered: false, Items: items}}
}

// NewOrderedList returns a numbered list block.
func NewOrderedList(items ...string) Block {
	return Block{Type: BlockTypeOrderedList, List: &List{Ordered: true, Items: items}}
}

// NewTable returns a table block.
func NewTable(rows [][]string) Block {
	return Block{Type: BlockTypeTable, Table: &Table{Rows: rows}}
}

// Add appends a block to the document.
func (d *Document) Add(b Block) {
	d.Content = append(d.Content, b)
}

// IsEmpty returns true if the document has no blocks.
func (d *Document) IsEmpty() bool {
	return len(d.Content) == 0
}

// ColumnCount returns the widest row length.
func (t *Table) ColumnCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Normalized returns a copy of the rows right-padded to ColumnCount.
func (t *Table) Normalized() [][]string {
	cols := t.ColumnCount()
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		padded := make([]string, cols)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

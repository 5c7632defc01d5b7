package markdown

// DocumentBuilder assembles a document element by element.
type DocumentBuilder struct {
	doc Document
}

func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

func (b *DocumentBuilder) WithSection(title string, level int) *DocumentBuilder {
	b.doc.Elements = append(b.doc.Elements, &Section{Title: title, Level: level})
	return b
}

func (b *DocumentBuilder) WithParagraph(text string) *DocumentBuilder {
	b.doc.Elements = append(b.doc.Elements, &Paragraph{Text: text})
	return b
}

func (b *DocumentBuilder) WithTable(t *Table) *DocumentBuilder {
	b.doc.Elements = append(b.doc.Elements, t)
	return b
}

func (b *DocumentBuilder) Build() *Document {
	doc := b.doc
	return &doc
}

// TableBuilder assembles a table row by row. Rows are padded or cut to the
// header width.
type TableBuilder struct {
	table Table
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

func (b *TableBuilder) WithHeader(cols ...string) *TableBuilder {
	b.table.Header = append([]string(nil), cols...)
	return b
}

func (b *TableBuilder) WithRow(cells ...string) *TableBuilder {
	row := make([]string, len(b.table.Header))
	copy(row, cells)
	b.table.Rows = append(b.table.Rows, row)
	return b
}

func (b *TableBuilder) Build() *Table {
	t := b.table
	return &t
}

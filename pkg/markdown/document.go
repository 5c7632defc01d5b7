// Package markdown reads and writes the subset of markdown used by TARA
// projects: headings, pipe tables and free text.
package markdown

import "strings"

// Element is a block of a document.
type Element interface {
	element()
}

// Section is a heading. Level 0 is "#".
type Section struct {
	Title string
	Level int
}

// Paragraph is any text block that is neither heading nor table.
type Paragraph struct {
	Text string
}

// Table is a pipe table. Cells are trimmed.
type Table struct {
	Header []string
	Rows   [][]string
}

func (*Section) element()   {}
func (*Paragraph) element() {}
func (*Table) element()     {}

// Document is an ordered list of elements.
type Document struct {
	Elements []Element
}

// Tables returns all tables in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, e := range d.Elements {
		if t, ok := e.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// FindTable returns the first table with the given header, or nil.
func (d *Document) FindTable(header ...string) *Table {
	for _, t := range d.Tables() {
		if t.HasHeader(header...) {
			return t
		}
	}
	return nil
}

// FirstSection returns the first heading, or nil.
func (d *Document) FirstSection() *Section {
	for _, e := range d.Elements {
		if s, ok := e.(*Section); ok {
			return s
		}
	}
	return nil
}

// RowCount returns the number of body rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Row returns the cells of body row i.
func (t *Table) Row(i int) []string {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i]
}

// Cell returns the content of a body cell, or "" when the row is shorter.
func (t *Table) Cell(row, col int) string {
	r := t.Row(row)
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// HasHeader reports whether the header matches cols exactly, ignoring
// surrounding whitespace.
func (t *Table) HasHeader(cols ...string) bool {
	if len(t.Header) != len(cols) {
		return false
	}
	for i, c := range cols {
		if t.Header[i] != strings.TrimSpace(c) {
			return false
		}
	}
	return true
}

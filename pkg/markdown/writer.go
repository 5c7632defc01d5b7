package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const minColumnWidth = 3

// Write renders doc with column-aligned tables and one blank line between
// elements.
func Write(doc *Document) string {
	var sb strings.Builder
	for i, e := range doc.Elements {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch el := e.(type) {
		case *Section:
			sb.WriteString(strings.Repeat("#", el.Level+1))
			sb.WriteString(" ")
			sb.WriteString(el.Title)
			sb.WriteString("\n")
		case *Paragraph:
			sb.WriteString(el.Text)
			sb.WriteString("\n")
		case *Table:
			writeTable(&sb, el)
		}
	}
	return sb.String()
}

func writeTable(sb *strings.Builder, t *Table) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = max(minColumnWidth, lipgloss.Width(escape(h)))
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(escape(row[i])))
			}
		}
	}

	writeRow(sb, t.Header, widths)
	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}
	writeRow(sb, separator, widths)
	for _, row := range t.Rows {
		writeRow(sb, row, widths)
	}
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = escape(cells[i])
		}
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func escape(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}

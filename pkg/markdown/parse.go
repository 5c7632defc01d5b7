package markdown

import (
	"regexp"
	"strings"
)

var (
	headingPattern   = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*$`)
	separatorPattern = regexp.MustCompile(`^:?-+:?$`)
)

// Parse splits content into sections, tables and paragraphs.
func Parse(content string) *Document {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	doc := &Document{}
	var paragraph []string

	flush := func() {
		if len(paragraph) > 0 {
			doc.Elements = append(doc.Elements, &Paragraph{Text: strings.Join(paragraph, "\n")})
			paragraph = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			flush()
		case headingPattern.MatchString(line):
			flush()
			m := headingPattern.FindStringSubmatch(line)
			doc.Elements = append(doc.Elements, &Section{Title: m[2], Level: len(m[1]) - 1})
		case isTableLine(line) && i+1 < len(lines) && isSeparator(strings.TrimSpace(lines[i+1])):
			flush()
			table := &Table{Header: splitRow(line)}
			i += 2
			for ; i < len(lines) && isTableLine(strings.TrimSpace(lines[i])); i++ {
				table.Rows = append(table.Rows, splitRow(strings.TrimSpace(lines[i])))
			}
			i--
			doc.Elements = append(doc.Elements, table)
		default:
			paragraph = append(paragraph, line)
		}
	}
	flush()
	return doc
}

func isTableLine(line string) bool {
	return strings.HasPrefix(line, "|")
}

func isSeparator(line string) bool {
	if !isTableLine(line) {
		return false
	}
	cells := splitRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorPattern.MatchString(c) {
			return false
		}
	}
	return true
}

// splitRow splits "| a | b |" into trimmed cells. "\|" is a literal pipe.
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

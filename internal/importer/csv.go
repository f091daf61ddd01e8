// internal/importer/csv.go
package importer

import (
	"strings"
)

// Row is a raw parsed CSV row. Every field is the untyped string as it
// appeared in the file; validation and conversion happen later.
type Row struct {
	Title               string
	Author              string
	ISBN                string
	Category            string
	Genre               string
	Publisher           string
	PublishYear         string
	Description         string
	TotalCopies         string
	Location            string
	DeweyClassification string
	Keywords            string
}

// ParseCSV splits raw text into rows. The first line is the header; columns
// are matched case-insensitively in any order through a fixed synonym table.
// Rows missing title, author or ISBN are dropped here and never reach
// validation.
func ParseCSV(text string) []Row {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	rawHeaders := strings.Split(lines[0], ",")
	headers := make([]string, 0, len(rawHeaders))
	for _, h := range rawHeaders {
		headers = append(headers, strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), `"`, ""))
	}

	var rows []Row
	for _, line := range lines[1:] {
		values := parseLine(line)
		if len(values) == 0 {
			continue
		}

		var row Row
		for i, header := range headers {
			if i >= len(values) {
				break
			}
			value := strings.TrimSpace(values[i])
			if value == "" {
				continue
			}
			switch header {
			case "title":
				row.Title = value
			case "author":
				row.Author = value
			case "isbn":
				row.ISBN = value
			case "category":
				row.Category = value
			case "genre":
				row.Genre = value
			case "publisher":
				row.Publisher = value
			case "publishyear", "publish_year", "year":
				row.PublishYear = value
			case "description":
				row.Description = value
			case "totalcopies", "total_copies", "copies":
				row.TotalCopies = value
			case "location":
				row.Location = value
			case "dewey", "deweyclassification", "dewey_classification":
				row.DeweyClassification = value
			case "keywords", "tags":
				row.Keywords = value
			}
		}

		if row.Title != "" && row.Author != "" && row.ISBN != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

// parseLine splits one CSV line on commas outside quotes. A doubled quote
// inside a quoted field is a literal quote. Unbalanced quotes are tolerated:
// the rest of the line becomes part of the open field.
func parseLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, current.String())

	return values
}

// normalizeISBN strips hyphens and spaces.
func normalizeISBN(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}

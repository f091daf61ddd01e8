// internal/importer/convert.go
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"libracore/internal/catalog"
)

// ConvertRow builds a normalized book from a validated row, filling defaults
// and emitting a warning for each defaulted field a librarian should review.
// A fresh import never represents books already on loan, so available copies
// always equal total copies.
func ConvertRow(row Row, index int) (catalog.Book, []string) {
	var warnings []string

	book := catalog.Book{
		Title:               strings.TrimSpace(row.Title),
		Author:              strings.TrimSpace(row.Author),
		ISBN:                normalizeISBN(row.ISBN),
		Category:            strings.TrimSpace(row.Category),
		Genre:               strings.TrimSpace(row.Genre),
		Publisher:           strings.TrimSpace(row.Publisher),
		Description:         strings.TrimSpace(row.Description),
		Location:            strings.TrimSpace(row.Location),
		DeweyClassification: strings.TrimSpace(row.DeweyClassification),
		Keywords:            splitKeywords(row.Keywords),
		Status:              "available",
		AddedDate:           time.Now(),
	}

	if book.Category == "" {
		book.Category = "Uncategorized"
		warnings = append(warnings, fmt.Sprintf("Row %d: No category specified, using %q", index+1, "Uncategorized"))
	}
	if book.Location == "" {
		book.Location = "TBD"
		warnings = append(warnings, fmt.Sprintf("Row %d: No location specified, using %q", index+1, "TBD"))
	}

	book.PublishYear = time.Now().Year()
	if row.PublishYear != "" {
		if year, err := strconv.Atoi(strings.TrimSpace(row.PublishYear)); err == nil {
			book.PublishYear = year
		}
	}

	book.TotalCopies = 1
	if row.TotalCopies != "" {
		if copies, err := strconv.Atoi(strings.TrimSpace(row.TotalCopies)); err == nil {
			book.TotalCopies = copies
		}
	}
	book.AvailableCopies = book.TotalCopies

	return book, warnings
}

// splitKeywords splits on commas, trims, lower-cases and drops empties.
// Duplicates are preserved.
func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

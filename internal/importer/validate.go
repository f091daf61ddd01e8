// internal/importer/validate.go
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateRow checks one parsed row and returns one human-readable error per
// failing rule, each tagged with the 1-based row number. Required-field checks
// repeat the parse pre-filter so callers that build rows directly get the
// same messages.
func ValidateRow(row Row, index int) []string {
	var errs []string

	if strings.TrimSpace(row.Title) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Title is required", index+1))
	}
	if strings.TrimSpace(row.Author) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Author is required", index+1))
	}
	if strings.TrimSpace(row.ISBN) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: ISBN is required", index+1))
	} else {
		clean := normalizeISBN(row.ISBN)
		if len(clean) != 10 && len(clean) != 13 {
			errs = append(errs, fmt.Sprintf("Row %d: ISBN must be 10 or 13 digits", index+1))
		}
	}

	if row.PublishYear != "" {
		year, err := strconv.Atoi(strings.TrimSpace(row.PublishYear))
		if err != nil || year < 1000 || year > time.Now().Year()+1 {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid publish year", index+1))
		}
	}

	if row.TotalCopies != "" {
		copies, err := strconv.Atoi(strings.TrimSpace(row.TotalCopies))
		if err != nil || copies < 1 {
			errs = append(errs, fmt.Sprintf("Row %d: Total copies must be a positive number", index+1))
		}
	}

	return errs
}

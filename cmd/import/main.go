// cmd/import/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"libracore/internal/catalog"
	"libracore/internal/importer"
	"libracore/internal/store"
	"libracore/pkg/ledger"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <books.csv>\n", os.Args[0])
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	journal := ledger.New()
	books := store.NewBookStore()
	catalogSvc := catalog.NewService(journal, books)
	importerSvc := importer.NewService(catalogSvc)

	fmt.Printf("Importing books from %s...\n", os.Args[1])
	report, err := importerSvc.Import(context.Background(), string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	for _, warning := range report.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	for _, rowErr := range report.Errors {
		fmt.Printf("Error: %s\n", rowErr)
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", len(report.Added))
	fmt.Printf("Errors: %d\n", len(report.Errors))

	if len(report.Added) > 0 {
		fmt.Println("\nImported books:")
		fmt.Printf("%-50s %-30s %-15s\n", "Title", "Author", "ISBN")
		fmt.Println(strings.Repeat("-", 97))
		for _, book := range report.Added {
			fmt.Printf("%-50s %-30s %-15s\n", truncateString(book.Title, 50), truncateString(book.Author, 30), book.ISBN)
		}
	}

	if !report.Success {
		os.Exit(1)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

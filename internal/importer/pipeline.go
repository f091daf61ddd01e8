// internal/importer/pipeline.go
package importer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libracore/internal/catalog"
)

// Result aggregates one import run. Partial success is normal: the pipeline
// keeps going past bad rows and the caller decides whether to import the
// accepted subset.
type Result struct {
	Success  bool           `json:"success"`
	Books    []catalog.Book `json:"books"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
}

// Process validates and converts parsed rows. There is no fail-fast; every
// row is processed and success simply means zero errors.
func Process(rows []Row) Result {
	result := Result{
		Books:    []catalog.Book{},
		Errors:   []string{},
		Warnings: []string{},
	}

	for i, row := range rows {
		errs := ValidateRow(row, i)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}

		book, warnings := ConvertRow(row, i)
		result.Books = append(result.Books, book)
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Success = len(result.Errors) == 0
	return result
}

// Report is the outcome of a catalog-backed import.
type Report struct {
	Result
	Added []*catalog.Book `json:"added,omitempty"`
}

// Service runs the full pipeline against the catalog.
type Service interface {
	Import(ctx context.Context, csvText string) (*Report, error)
}

type service struct {
	catalog catalog.Service
	tracer  trace.Tracer
}

// NewService creates a new importer service instance.
func NewService(cat catalog.Service) Service {
	return &service{
		catalog: cat,
		tracer:  otel.Tracer("libracore/importer"),
	}
}

// Import parses, validates and converts the CSV text, then adds the accepted
// books to the catalog.
func (s *service) Import(ctx context.Context, csvText string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "importer.import")
	defer span.End()

	rows := ParseCSV(csvText)
	result := Process(rows)

	span.SetAttributes(
		attribute.Int("rows.parsed", len(rows)),
		attribute.Int("books.accepted", len(result.Books)),
		attribute.Int("errors.count", len(result.Errors)),
		attribute.Int("warnings.count", len(result.Warnings)),
	)

	report := &Report{Result: result}
	if len(result.Books) > 0 {
		added, err := s.catalog.AddBooks(ctx, result.Books)
		if err != nil {
			span.SetAttributes(attribute.Bool("catalog.failed", true))
			return nil, fmt.Errorf("failed to add imported books: %w", err)
		}
		report.Added = added
	}

	return report, nil
}

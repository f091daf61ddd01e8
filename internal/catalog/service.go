// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog service.
type Service interface {
	AddBook(ctx context.Context, book Book) (*Book, error)
	AddBooks(ctx context.Context, books []Book) ([]*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context) ([]*Book, error)
	AdjustCopies(ctx context.Context, id uuid.UUID, newTotal, newAvailable int) error
	Search(ctx context.Context, query string) ([]*Book, error)
}

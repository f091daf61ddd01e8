// internal/catalog/implementation.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"libracore/pkg/ledger"
)

// Store is the read model the service projects books into.
type Store interface {
	Insert(ctx context.Context, book *Book) error
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, book *Book) error
	List(ctx context.Context) ([]*Book, error)
}

// service implements the Service interface.
type service struct {
	journal *ledger.Ledger
	store   Store
}

// NewService creates a new catalog service instance.
func NewService(journal *ledger.Ledger, store Store) Service {
	return &service{
		journal: journal,
		store:   store,
	}
}

// AddBook creates a new book in the catalog. A fresh book always starts with
// every copy available.
func (s *service) AddBook(ctx context.Context, book Book) (*Book, error) {
	if book.Title == "" || book.Author == "" || book.ISBN == "" {
		return nil, fmt.Errorf("title, author and ISBN are required")
	}
	if book.TotalCopies < 1 {
		book.TotalCopies = 1
	}

	book.ID = uuid.New()
	book.AvailableCopies = book.TotalCopies
	if book.Status == "" {
		book.Status = "available"
	}
	if book.AddedDate.IsZero() {
		book.AddedDate = time.Now()
	}
	book.Version = 1

	eventData := BookAddedEvent{
		ID:          book.ID,
		ISBN:        book.ISBN,
		Title:       book.Title,
		Author:      book.Author,
		TotalCopies: book.TotalCopies,
	}

	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{
		EventType: "BookAdded",
		EventData: jsonData,
	}

	if err := s.journal.AppendEvents(ctx, book.ID, "book", 0, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	if err := s.store.Insert(ctx, &book); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return &book, nil
}

// AddBooks adds a batch of books, used by the CSV importer. The batch is not
// transactional: each book lands independently and the first failure stops
// the run with the books added so far.
func (s *service) AddBooks(ctx context.Context, books []Book) ([]*Book, error) {
	added := make([]*Book, 0, len(books))
	for i, book := range books {
		out, err := s.AddBook(ctx, book)
		if err != nil {
			return added, fmt.Errorf("failed to add book %d of %d: %w", i+1, len(books), err)
		}
		added = append(added, out)
	}
	return added, nil
}

// GetBook retrieves a book from the catalog by its ID.
func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	book, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// ListBooks returns every book in the catalog.
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// AdjustCopies updates the total and available copy counts for a book.
func (s *service) AdjustCopies(ctx context.Context, id uuid.UUID, newTotal, newAvailable int) error {
	book, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get book: %w", err)
	}
	if newAvailable < 0 || newAvailable > newTotal {
		return fmt.Errorf("invalid copy counts: %d available of %d total", newAvailable, newTotal)
	}

	eventData := BookCopiesAdjustedEvent{
		ID:           id,
		NewTotal:     newTotal,
		NewAvailable: newAvailable,
	}

	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{
		EventType: "BookCopiesAdjusted",
		EventData: jsonData,
	}

	if err := s.journal.AppendEvents(ctx, id, "book", book.Version, []ledger.Event{event}); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	book.TotalCopies = newTotal
	book.AvailableCopies = newAvailable
	book.Version++
	return s.store.Update(ctx, book)
}

// Search finds books whose title, author or keywords contain the query,
// case-insensitively.
func (s *service) Search(ctx context.Context, query string) ([]*Book, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, nil
	}

	books, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	var matches []*Book
	for _, book := range books {
		if strings.Contains(strings.ToLower(book.Title), term) ||
			strings.Contains(strings.ToLower(book.Author), term) ||
			matchesKeyword(book.Keywords, term) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}

func matchesKeyword(keywords []string, term string) bool {
	for _, k := range keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}

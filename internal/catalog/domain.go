// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalogued title.
type Book struct {
	ID                  uuid.UUID `json:"id"`
	ISBN                string    `json:"isbn"`
	Title               string    `json:"title"`
	Author              string    `json:"author"`
	Category            string    `json:"category"`
	Genre               string    `json:"genre,omitempty"`
	Publisher           string    `json:"publisher,omitempty"`
	PublishYear         int       `json:"publish_year,omitempty"`
	Description         string    `json:"description,omitempty"`
	TotalCopies         int       `json:"total_copies"`
	AvailableCopies     int       `json:"available_copies"`
	Location            string    `json:"location"`
	DeweyClassification string    `json:"dewey_classification,omitempty"`
	Keywords            []string  `json:"keywords,omitempty"`
	Status              string    `json:"status"`
	AddedDate           time.Time `json:"added_date"`
	Version             int       `json:"version"`
}

// BookAddedEvent is published when a new book enters the catalog.
type BookAddedEvent struct {
	ID          uuid.UUID `json:"id"`
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	TotalCopies int       `json:"total_copies"`
}

// BookCopiesAdjustedEvent is published when availability changes.
type BookCopiesAdjustedEvent struct {
	ID           uuid.UUID `json:"id"`
	NewTotal     int       `json:"new_total"`
	NewAvailable int       `json:"new_available"`
}

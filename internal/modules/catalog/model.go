package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry: one sellable title with its current price and stock.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListFilter narrows a catalog listing. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Search   string // matches title or author, case-insensitive
	MinPrice *float64
	MaxPrice *float64
}

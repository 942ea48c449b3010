package catalog

import "fmt"

// ErrBookNotFound reports a catalog lookup for a book that does not exist.
type ErrBookNotFound struct {
	BookID string
}

func (e ErrBookNotFound) Error() string {
	return fmt.Sprintf("book %s not found", e.BookID)
}

// ErrInsufficientStock reports a stock adjustment that would drive the
// book's stock below zero.
type ErrInsufficientStock struct {
	BookID string
}

func (e ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for book %s", e.BookID)
}

package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateBook(ctx context.Context, req BookRequest) (*Book, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error)
	Categories(ctx context.Context) ([]string, error)
	UpdateBook(ctx context.Context, id string, req BookRequest) (*Book, error)
	DeleteBook(ctx context.Context, id string) error

	// AdjustStock applies a signed stock delta (admin restock or correction).
	AdjustStock(ctx context.Context, id string, delta int) (*Book, error)
}

// BookRequest holds the data for creating or updating a book. On update,
// zero-valued fields keep the stored value.
type BookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateBook(ctx context.Context, req BookRequest) (*Book, error) {
	if req.Title == "" || req.Author == "" {
		return nil, errors.New("title and author are required")
	}
	b := &Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
	if b.Image == "" {
		b.Image = "default-book.jpg"
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.Stock != nil {
		b.Stock = *req.Stock
	}
	if b.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	if b.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, filter ListFilter) ([]*Book, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) UpdateBook(ctx context.Context, id string, req BookRequest) (*Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		b.Title = req.Title
	}
	if req.Author != "" {
		b.Author = req.Author
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		b.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errors.New("stock must not be negative")
		}
		b.Stock = *req.Stock
	}
	if req.Category != "" {
		b.Category = req.Category
	}
	if req.Description != "" {
		b.Description = req.Description
	}
	if req.Image != "" {
		b.Image = req.Image
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id string, delta int) (*Book, error) {
	return s.repo.AdjustStock(ctx, id, delta)
}

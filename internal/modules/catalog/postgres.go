package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const bookColumns = `id,title,author,price,stock,category,description,image,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, b *Book) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO books (id,title,author,price,stock,category,description,image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.Title, b.Author, b.Price, b.Stock, b.Category, b.Description, b.Image)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Book, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookNotFound{BookID: id}
	}
	b, err := scanBook(r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound{BookID: id}
	}
	return b, err
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Category != "" {
		query += ` AND category=` + arg(filter.Category)
	}
	if filter.MinPrice != nil {
		query += ` AND price>=` + arg(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND price<=` + arg(*filter.MaxPrice)
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		query += ` AND (title ILIKE ` + p + ` OR author ILIKE ` + p + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Stock,
			&b.Category, &b.Description, &b.Image, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM books ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, b *Book) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title=$1, author=$2, price=$3, stock=$4, category=$5, description=$6, image=$7, updated_at=$8
		WHERE id=$9`,
		b.Title, b.Author, b.Price, b.Stock, b.Category, b.Description, b.Image,
		time.Now(), b.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound{BookID: b.ID.String()}
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrBookNotFound{BookID: id}
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound{BookID: id}
	}
	return nil
}

// AdjustStock performs the check and the write in one statement so that two
// concurrent adjustments on the same book can never drive stock negative.
func (r *postgresRepo) AdjustStock(ctx context.Context, id string, delta int) (*Book, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookNotFound{BookID: id}
	}
	b, err := scanBook(r.db.QueryRowContext(ctx, `
		UPDATE books SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING `+bookColumns, uid, delta))
	if err == sql.ErrNoRows {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE id=$1)`, uid).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrBookNotFound{BookID: id}
		}
		return nil, ErrInsufficientStock{BookID: id}
	}
	return b, err
}

func scanBook(row *sql.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Stock,
		&b.Category, &b.Description, &b.Image, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

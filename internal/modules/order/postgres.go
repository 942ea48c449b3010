package order

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder reserves stock, snapshots prices and inserts the order inside a
// single transaction. The conditional UPDATE both checks and decrements stock
// in one statement, so concurrent checkouts for the same book serialize on
// the row lock and can never oversell; a failure on any item rolls back the
// reservations already made for earlier items.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var amount float64
	for _, item := range o.Items {
		var price float64
		err := tx.QueryRowContext(ctx, `
			UPDATE books SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
			RETURNING price`,
			item.BookID, item.Quantity).Scan(&price)
		if err == sql.ErrNoRows {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM books WHERE id=$1)`, item.BookID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return catalog.ErrBookNotFound{BookID: item.BookID.String()}
			}
			return catalog.ErrInsufficientStock{BookID: item.BookID.String()}
		}
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		item.UnitPrice = price
		amount += price * float64(item.Quantity)
	}
	o.Amount = amount

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, amount, address, phone, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.Amount, o.Address, o.Phone, o.Status).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, book_id, quantity, unit_price, position)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, o.ID, item.BookID, item.Quantity, item.UnitPrice, i)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound{OrderID: id}
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id,user_id,amount,address,phone,status,created_at,updated_at
		FROM orders WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound{OrderID: id}
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id,user_id,amount,address,phone,status,created_at,updated_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) ListAllOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id,user_id,amount,address,phone,status,created_at,updated_at
		FROM orders ORDER BY created_at DESC`)
}

// UpdateStatus writes the new status and, on the first transition into
// cancelled, restores each line item's stock. The order row is locked for
// the duration so two concurrent cancellations cannot both observe a
// non-cancelled previous status and restock twice.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound{OrderID: id}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var prev Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, uid).Scan(&prev)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound{OrderID: id}
	}
	if err != nil {
		return nil, err
	}

	if status == StatusCancelled && prev != StatusCancelled {
		if err := r.restockItems(ctx, tx, uid); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=now() WHERE id=$2`, status, uid)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetOrderByID(ctx, id)
}

// restockItems returns each line item's quantity to the catalog. A book that
// has been deleted since the order was placed is skipped: the stock has
// nowhere to go and the cancellation itself must still succeed.
func (r *postgresRepo) restockItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT book_id, quantity FROM order_items WHERE order_id=$1 ORDER BY position ASC`, orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type restock struct {
		bookID   uuid.UUID
		quantity int
	}
	var items []restock
	for rows.Next() {
		var it restock
		if err := rows.Scan(&it.bookID, &it.quantity); err != nil {
			return err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, it := range items {
		res, err := tx.ExecContext(ctx,
			`UPDATE books SET stock = stock + $2, updated_at = now() WHERE id = $1`,
			it.bookID, it.quantity)
		if err != nil {
			return fmt.Errorf("restock book %s: %w", it.bookID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			log.Printf("restock skipped for order %s: book %s no longer in catalog", orderID, it.bookID)
		}
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	err := row.Scan(&o.ID, &o.UserID, &o.Amount, &o.Address, &o.Phone,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Amount, &o.Address, &o.Phone,
			&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// listItems joins catalog display fields onto each line item. The join is
// tolerant: a deleted book leaves the snapshot fields empty and the read
// still succeeds.
func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.book_id, i.quantity, i.unit_price,
		       COALESCE(b.title,''), COALESCE(b.author,''), COALESCE(b.image,'')
		FROM order_items i
		LEFT JOIN books b ON b.id = i.book_id
		WHERE i.order_id=$1 ORDER BY i.position ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LineItem
	for rows.Next() {
		item := &LineItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.BookID,
			&item.Quantity, &item.UnitPrice,
			&item.Title, &item.Author, &item.Image); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

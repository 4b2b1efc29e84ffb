package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// CreateBooking inserts the order, its line items and the payment intent in a
// single transaction. Any failure rolls back everything: an order row is never
// visible without its payment intent. A duplicate order number surfaces as
// domain.ErrConflict so the caller can regenerate and retry.
func (r *orderRepository) CreateBooking(ctx context.Context, order *domain.Order, items []domain.OrderLineItem, payment *domain.PaymentIntent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	order.CreatedOn = now.Format(time.RFC3339)
	order.UpdatedOn = order.CreatedOn

	const orderStmt = `INSERT INTO orders (order_number, renter_id, place_id, start_date, duration, headcount, total_cost, status, created_on, updated_on)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = tx.QueryRowContext(ctx, orderStmt,
		order.OrderNumber, order.RenterID, order.PlaceID, order.StartDate,
		order.Duration, order.Headcount, order.TotalCost, order.Status, now, now,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s already exists", domain.ErrConflict, order.OrderNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	const itemStmt = `INSERT INTO order_line_items (order_id, item_id, name, quantity, unit_price)
	                  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx, itemStmt,
			items[i].OrderID, items[i].ItemID, items[i].Name, items[i].Quantity, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}

	payment.OrderID = order.ID
	payment.UpdatedOn = order.CreatedOn
	const paymentStmt = `INSERT INTO payment_intents (order_id, code, method, amount, status, updated_on)
	                     VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, paymentStmt,
		payment.OrderID, payment.Code, payment.Method, payment.Amount, payment.Status, now,
	).Scan(&payment.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order %d already has a payment intent", domain.ErrConflict, order.ID)
		}
		return fmt.Errorf("insert payment intent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `SELECT id, order_number, renter_id, place_id, start_date, duration, headcount, total_cost, status, created_on, updated_on
	               FROM orders WHERE id = $1`
	o := &domain.Order{}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.RenterID, &o.PlaceID, &o.StartDate,
		&o.Duration, &o.Headcount, &o.TotalCost, &o.Status, &createdOn, &updatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.CreatedOn = createdOn.Format(time.RFC3339)
	o.UpdatedOn = updatedOn.Format(time.RFC3339)
	return o, nil
}

func (r *orderRepository) GetLineItems(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error) {
	const query = `SELECT id, order_id, item_id, name, quantity, unit_price
	               FROM order_line_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get line items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderLineItem
	for rows.Next() {
		var li domain.OrderLineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ItemID, &li.Name, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// UpdateStatus performs the guarded transition. The WHERE status = expected
// predicate makes two concurrent transitions resolve deterministically:
// exactly one updates the row, the loser observes zero rows and gets
// domain.ErrConflict (or ErrNotFound when the order does not exist at all).
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, expected, next domain.OrderStatus) error {
	const stmt = `UPDATE orders SET status = $3, updated_on = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, stmt, orderID, expected, next, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		var current domain.OrderStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
		}
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return fmt.Errorf("%w: order %d is %s, expected %s", domain.ErrConflict, orderID, current, expected)
	}
	return nil
}

func (r *orderRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *orderRepository) ListByPlaceOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "place_owner_id", ownerID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, column string, userID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT o.id, o.order_number, o.renter_id, o.place_id, o.start_date, o.duration, o.headcount, o.total_cost, o.status, o.created_on, o.updated_on
	          FROM orders o JOIN places p ON p.id = o.place_id WHERE `
	if column == "renter_id" {
		query += "o.renter_id = $1"
	} else {
		query += "p.owner_id = $1"
	}

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query += fmt.Sprintf(" ORDER BY o.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.RenterID, &o.PlaceID, &o.StartDate,
			&o.Duration, &o.Headcount, &o.TotalCost, &o.Status, &createdOn, &updatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		o.CreatedOn = createdOn.Format(time.RFC3339)
		o.UpdatedOn = updatedOn.Format(time.RFC3339)
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

// ListAwaitingPaymentSince feeds the payment-reminder job: orders still in the
// initial status created before the cutoff.
func (r *orderRepository) ListAwaitingPaymentSince(ctx context.Context, cutoff string) ([]domain.Order, error) {
	const query = `SELECT id, order_number, renter_id, place_id, start_date, duration, headcount, total_cost, status, created_on, updated_on
	               FROM orders WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusAwaitingPayment, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list awaiting payment: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.RenterID, &o.PlaceID, &o.StartDate,
			&o.Duration, &o.Headcount, &o.TotalCost, &o.Status, &createdOn, &updatedOn); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.CreatedOn = createdOn.Format(time.RFC3339)
		o.UpdatedOn = updatedOn.Format(time.RFC3339)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

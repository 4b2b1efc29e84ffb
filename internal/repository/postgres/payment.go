package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.PaymentIntent, error) {
	const query = `SELECT id, order_id, code, method, amount, status, updated_on
	               FROM payment_intents WHERE order_id = $1`
	p := &domain.PaymentIntent{}
	var updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&p.ID, &p.OrderID, &p.Code, &p.Method, &p.Amount, &p.Status, &updatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: payment intent for order %d", domain.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment intent: %w", err)
	}
	p.UpdatedOn = updatedOn.Format(time.RFC3339)
	return p, nil
}

// UpdateStatus stamps updated_on with every status change, guarded the same
// way as order transitions.
func (r *paymentRepository) UpdateStatus(ctx context.Context, orderID int64, expected, next domain.PaymentStatus) error {
	const stmt = `UPDATE payment_intents SET status = $3, updated_on = $4 WHERE order_id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, stmt, orderID, expected, next, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if affected == 0 {
		var current domain.PaymentStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM payment_intents WHERE order_id = $1`, orderID).Scan(&current)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: payment intent for order %d", domain.ErrNotFound, orderID)
		}
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		return fmt.Errorf("%w: payment for order %d is %s, expected %s", domain.ErrConflict, orderID, current, expected)
	}
	return nil
}

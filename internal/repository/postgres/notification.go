package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"database/sql"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attrs, err := json.Marshal(note.Attributes)
	if err != nil {
		return fmt.Errorf("marshal notification attributes: %w", err)
	}
	const query = `INSERT INTO notifications (user_id, title, message, attributes, is_read, created_on)
	               VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.Message, attrs, time.Now().UTC()).Scan(&note.ID)
}

func (r *notificationRepository) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	const query = `SELECT id, user_id, title, message, attributes, is_read, created_on
	               FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &attrs, &n.IsRead, &createdOn); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, fmt.Errorf("unmarshal notification attributes: %w", err)
			}
		}
		n.CreatedOn = createdOn.Format(time.RFC3339)
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	}
	return nil
}

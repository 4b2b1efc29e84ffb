package postgres

import (
	"database/sql"

	"mancing-booking-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.OrderRepository
	repository.PaymentRepository
	repository.PlaceRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		OrderRepository:        NewOrderRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		PlaceRepository:        NewPlaceRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

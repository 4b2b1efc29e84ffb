package service_test

import (
	"context"

	"mancing-booking-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateBooking(ctx context.Context, order *domain.Order, items []domain.OrderLineItem, payment *domain.PaymentIntent) error {
	args := m.Called(ctx, order, items, payment)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetLineItems(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderLineItem), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, expected, next domain.OrderStatus) error {
	args := m.Called(ctx, orderID, expected, next)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByPlaceOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListAwaitingPaymentSince(ctx context.Context, cutoff string) ([]domain.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}
func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, orderID int64, expected, next domain.PaymentStatus) error {
	args := m.Called(ctx, orderID, expected, next)
	return args.Error(0)
}

// MockPlaceRepo
type MockPlaceRepo struct {
	mock.Mock
}

func (m *MockPlaceRepo) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreatedNotification(ctx context.Context, renterEmail, renterName, placeName, orderNumber string, total int64) error {
	args := m.Called(ctx, renterEmail, renterName, placeName, orderNumber, total)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentSuccessNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error {
	args := m.Called(ctx, renterEmail, renterName, orderNumber, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendNewPaidBookingNotification(ctx context.Context, mitraEmail, placeName, orderNumber string, amount int64) error {
	args := m.Called(ctx, mitraEmail, placeName, orderNumber, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminderNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error {
	args := m.Called(ctx, renterEmail, renterName, orderNumber, amount)
	return args.Error(0)
}

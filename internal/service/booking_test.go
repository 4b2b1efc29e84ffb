package service_test

import (
	"context"
	"testing"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	orders   *MockOrderRepo
	payments *MockPaymentRepo
	places   *MockPlaceRepo
	users    *MockUserRepo
	notes    *MockNotificationRepo
	emails   *MockEmailService
	svc      service.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		orders:   new(MockOrderRepo),
		payments: new(MockPaymentRepo),
		places:   new(MockPlaceRepo),
		users:    new(MockUserRepo),
		notes:    new(MockNotificationRepo),
		emails:   new(MockEmailService),
	}
	f.svc = service.NewBookingService(f.orders, f.payments, f.places, f.users, f.notes, f.emails)
	return f
}

func sampleRenter() *domain.User {
	return &domain.User{ID: 7, Name: "Budi", Email: "budi@example.com", Role: domain.UserRoleRenter}
}

func samplePlace() *domain.Place {
	return &domain.Place{
		ID:        12,
		OwnerID:   99,
		Name:      "Kolam Pancing Sentosa",
		BasePrice: 50000,
		PriceUnit: domain.PriceUnitPerHour,
		Catalog: []domain.RentalItem{
			{ID: 41, PlaceID: 12, Name: "Fishing Rod", UnitPrice: 10000},
			{ID: 42, PlaceID: 12, Name: "Bait Box", UnitPrice: 5000},
		},
	}
}

func sampleInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		RenterID:  7,
		PlaceID:   12,
		StartDate: "2026-09-01",
		Duration:  3,
		Headcount: 2,
		Items:     []domain.ItemSelection{{ItemID: 41, Quantity: 2}},
		Method:    domain.PaymentMethodQRIS,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)
	f.orders.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 1001
		}).
		Return(nil)
	f.emails.On("SendBookingCreatedNotification", mock.Anything, "budi@example.com", "Budi", "Kolam Pancing Sentosa", mock.Anything, int64(320000)).Return(nil)
	f.notes.On("Create", mock.Anything, mock.Anything).Return(nil)

	detail, err := f.svc.CreateBooking(context.Background(), sampleInput())

	require.NoError(t, err)
	// 50000 * 2 people * 3 hours + 2 rods * 10000
	assert.Equal(t, int64(320000), detail.Order.TotalCost)
	assert.Equal(t, domain.OrderStatusAwaitingPayment, detail.Order.Status)
	assert.Equal(t, int64(1001), detail.Order.ID)
	assert.NotEmpty(t, detail.Order.OrderNumber)
	require.Len(t, detail.LineItems, 1)
	assert.Equal(t, int64(10000), detail.LineItems[0].UnitPrice)
	assert.Equal(t, int32(2), detail.LineItems[0].Quantity)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, domain.PaymentStatusPending, detail.Payment.Status)
	assert.Equal(t, detail.Order.TotalCost, detail.Payment.Amount)
	f.orders.AssertExpectations(t)
}

func TestCreateBooking_RenterNotFound(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

	_, err := f.svc.CreateBooking(context.Background(), sampleInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.orders.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_PlaceNotFound(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(nil, domain.ErrNotFound)

	_, err := f.svc.CreateBooking(context.Background(), sampleInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBooking_RejectsBadStartDate(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	in := sampleInput()
	in.StartDate = "01/09/2026"
	_, err := f.svc.CreateBooking(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.orders.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_RejectsUnknownPaymentMethod(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	in := sampleInput()
	in.Method = domain.PaymentMethod("CASH")
	_, err := f.svc.CreateBooking(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateBooking_RetriesOnDuplicateOrderNumber(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	var numbers []string
	f.orders.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*domain.Order).OrderNumber)
		}).
		Return(domain.ErrConflict).Once()
	f.orders.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*domain.Order).OrderNumber)
		}).
		Return(nil).Once()
	f.emails.On("SendBookingCreatedNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notes.On("Create", mock.Anything, mock.Anything).Return(nil)

	detail, err := f.svc.CreateBooking(context.Background(), sampleInput())

	require.NoError(t, err)
	require.Len(t, numbers, 2)
	assert.NotEqual(t, numbers[0], numbers[1], "retry must regenerate the order number")
	assert.Equal(t, numbers[1], detail.Order.OrderNumber)
}

func TestCreateBooking_GivesUpAfterBoundedRetries(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)
	f.orders.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := f.svc.CreateBooking(context.Background(), sampleInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.orders.AssertNumberOfCalls(t, "CreateBooking", 4)
}

func TestCreateBooking_SurvivesNotificationFailures(t *testing.T) {
	f := newBookingFixture()
	f.users.On("GetByID", mock.Anything, int64(7)).Return(sampleRenter(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)
	f.orders.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.emails.On("SendBookingCreatedNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)
	f.notes.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	detail, err := f.svc.CreateBooking(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAwaitingPayment, detail.Order.Status)
}

func awaitingOrder() *domain.Order {
	return &domain.Order{
		ID:          1001,
		OrderNumber: "ORD-20260901070000-R7P12",
		RenterID:    7,
		PlaceID:     12,
		TotalCost:   320000,
		Status:      domain.OrderStatusAwaitingPayment,
	}
}

func TestCancelBooking_Success(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(1001), domain.OrderStatusAwaitingPayment, domain.OrderStatusCancelled).Return(nil)

	order, err := f.svc.CancelBooking(context.Background(), 7, 1001)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	f.orders.AssertExpectations(t)
}

func TestCancelBooking_SecondCancelIsInvalidState(t *testing.T) {
	f := newBookingFixture()
	cancelled := awaitingOrder()
	cancelled.Status = domain.OrderStatusCancelled
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(cancelled, nil)

	_, err := f.svc.CancelBooking(context.Background(), 7, 1001)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_PaidOrderCannotBeCancelled(t *testing.T) {
	f := newBookingFixture()
	paid := awaitingOrder()
	paid.Status = domain.OrderStatusPaid
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(paid, nil)

	_, err := f.svc.CancelBooking(context.Background(), 7, 1001)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelBooking_OnlyOwningRenter(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)

	_, err := f.svc.CancelBooking(context.Background(), 8, 1001)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelBooking_RaceLostToPaymentIsConflict(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(1001), domain.OrderStatusAwaitingPayment, domain.OrderStatusCancelled).
		Return(domain.ErrConflict)

	_, err := f.svc.CancelBooking(context.Background(), 7, 1001)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompleteBooking_Success(t *testing.T) {
	f := newBookingFixture()
	paid := awaitingOrder()
	paid.Status = domain.OrderStatusPaid
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(paid, nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(1001), domain.OrderStatusPaid, domain.OrderStatusCompleted).Return(nil)

	order, err := f.svc.CompleteBooking(context.Background(), 99, 1001)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
}

func TestCompleteBooking_OnlyPlaceOwner(t *testing.T) {
	f := newBookingFixture()
	paid := awaitingOrder()
	paid.Status = domain.OrderStatusPaid
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(paid, nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	_, err := f.svc.CompleteBooking(context.Background(), 7, 1001)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteBooking_UnpaidOrderIsInvalidTransition(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	_, err := f.svc.CompleteBooking(context.Background(), 99, 1001)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetBooking_VisibleToRenterAndOwner(t *testing.T) {
	items := []domain.OrderLineItem{{ID: 1, OrderID: 1001, ItemID: 41, Name: "Fishing Rod", Quantity: 2, UnitPrice: 10000}}
	intent := &domain.PaymentIntent{OrderID: 1001, Status: domain.PaymentStatusPending, Amount: 320000}

	for _, requester := range []int64{7, 99} {
		f := newBookingFixture()
		f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)
		f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)
		f.orders.On("GetLineItems", mock.Anything, int64(1001)).Return(items, nil)
		f.payments.On("GetByOrderID", mock.Anything, int64(1001)).Return(intent, nil)

		detail, err := f.svc.GetBooking(context.Background(), requester, 1001)

		require.NoError(t, err, "requester %d", requester)
		assert.Len(t, detail.LineItems, 1)
	}
}

func TestGetBooking_HiddenFromStrangers(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("GetByID", mock.Anything, int64(1001)).Return(awaitingOrder(), nil)
	f.places.On("GetByID", mock.Anything, int64(12)).Return(samplePlace(), nil)

	_, err := f.svc.GetBooking(context.Background(), 55, 1001)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListBookings_RejectsUnknownStatusFilter(t *testing.T) {
	f := newBookingFixture()

	_, _, err := f.svc.ListBookings(context.Background(), 7, "SHIPPED", 1, 10)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.orders.AssertNotCalled(t, "ListByRenter", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListPlaceBookings_PassesFilterThrough(t *testing.T) {
	f := newBookingFixture()
	f.orders.On("ListByPlaceOwner", mock.Anything, int64(99), "PAID", int32(1), int32(20)).
		Return([]domain.Order{*awaitingOrder()}, int32(1), nil)

	orders, total, err := f.svc.ListPlaceBookings(context.Background(), 99, "PAID", 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, orders, 1)
}

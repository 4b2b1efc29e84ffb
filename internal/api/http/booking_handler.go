package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	PlaceID   int64                  `json:"placeId"`
	StartDate string                 `json:"start"`
	Duration  int32                  `json:"duration"`
	Headcount int32                  `json:"headcount"`
	Items     []domain.ItemSelection `json:"items"`
	Method    string                 `json:"paymentMethod"`
}

type createBookingResponse struct {
	OrderID     int64                  `json:"orderId"`
	OrderNumber string                 `json:"orderNumber"`
	Total       int64                  `json:"total"`
	Status      domain.OrderStatus     `json:"status"`
	LineItems   []domain.OrderLineItem `json:"lineItems"`
	Payment     *domain.PaymentIntent  `json:"payment"`
}

// CreateBooking handles POST /api/v1/bookings. The renter comes from the
// token, never from the body.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	detail, err := h.bookingSvc.CreateBooking(r.Context(), service.CreateBookingInput{
		RenterID:  claims.UserID,
		PlaceID:   req.PlaceID,
		StartDate: req.StartDate,
		Duration:  req.Duration,
		Headcount: req.Headcount,
		Items:     req.Items,
		Method:    domain.PaymentMethod(req.Method),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createBookingResponse{
		OrderID:     detail.Order.ID,
		OrderNumber: detail.Order.OrderNumber,
		Total:       detail.Order.TotalCost,
		Status:      detail.Order.Status,
		LineItems:   detail.LineItems,
		Payment:     detail.Payment,
	})
}

// GetBooking handles GET /api/v1/bookings/{id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.bookingSvc.GetBooking(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/bookings/{id}/status, the mitra dashboard
// action. Completion is the only transition exposed here; payment progression
// goes through the payment callback.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	if status != domain.OrderStatusCompleted {
		writeError(w, fmt.Errorf("%w: only %s can be requested here", domain.ErrValidation, domain.OrderStatusCompleted))
		return
	}

	order, err := h.bookingSvc.CompleteBooking(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CancelBooking handles DELETE /api/v1/bookings/{id}, the renter-initiated
// cancellation. The row survives as a soft-cancelled order.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.bookingSvc.CancelBooking(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListBookings handles GET /api/v1/bookings for the renter's own orders, and
// GET /api/v1/bookings?side=mitra for the partner dashboard.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	status := r.URL.Query().Get("status")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 20)

	var (
		orders []domain.Order
		count  int32
		err    error
	)
	if r.URL.Query().Get("side") == "mitra" {
		orders, count, err = h.bookingSvc.ListPlaceBookings(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		orders, count, err = h.bookingSvc.ListBookings(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  count,
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, raw)
	}
	return id, nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type paymentCallbackRequest struct {
	OrderID int64  `json:"orderId"`
	Outcome string `json:"outcome"`
}

// Callback handles POST /api/v1/payments/callback from the payment gateway
// stub. Replays are safe: recording the same outcome twice is a no-op.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req paymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}
	if req.OrderID <= 0 {
		writeError(w, fmt.Errorf("%w: orderId is required", domain.ErrValidation))
		return
	}

	intent, err := h.paymentSvc.RecordPaymentOutcome(r.Context(), req.OrderID, domain.PaymentOutcome(req.Outcome))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

// GetPayment handles GET /api/v1/bookings/{id}/payment for the renter.
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	intent, err := h.paymentSvc.GetPaymentByOrder(r.Context(), claims.UserID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

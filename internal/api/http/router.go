package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"mancing-booking-backend/internal/security"
	"mancing-booking-backend/internal/service"
)

// NewRouter wires the booking endpoints. The payment callback stays outside
// the auth middleware: it is called by the gateway, not by a logged-in user.
func NewRouter(
	tokens security.TokenManager,
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	noteSvc service.NotificationService,
) *mux.Router {
	bookings := NewBookingHandler(bookingSvc)
	payments := NewPaymentHandler(paymentSvc)
	notes := NewNotificationHandler(noteSvc)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/payments/callback", payments.Callback).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/bookings", bookings.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings", bookings.ListBookings).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookings.GetBooking).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookings.CancelBooking).Methods("DELETE")
	authed.HandleFunc("/bookings/{id}/status", bookings.UpdateStatus).Methods("PATCH")
	authed.HandleFunc("/bookings/{id}/payment", payments.GetPayment).Methods("GET")
	authed.HandleFunc("/notifications", notes.List).Methods("GET")
	authed.HandleFunc("/notifications/{id}/read", notes.MarkAsRead).Methods("POST")

	return router
}

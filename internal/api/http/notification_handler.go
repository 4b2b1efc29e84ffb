package http

import (
	"net/http"

	"mancing-booking-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 20)

	notes, count, err := h.noteSvc.GetNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notes,
		"total":         count,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	noteID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), claims.UserID, noteID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

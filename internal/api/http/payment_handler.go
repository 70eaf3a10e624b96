package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"equiphire-backend/internal/service"
)

// PaymentHandler exposes payment order creation and confirmation for
// online and UPI bookings.
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder opens a payment order against a booking.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		BookingReference string  `json:"booking_reference"`
		Amount           float64 `json:"amount"`
		Currency         string  `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.BookingReference == "" {
		writeError(w, http.StatusBadRequest, "booking_reference is required")
		return
	}

	order, err := h.payments.CreateOrder(r.Context(), claims.UserID, body.BookingReference, body.Amount, body.Currency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// ConfirmOrder records the gateway's verdict for an order.
func (h *PaymentHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orderID := mux.Vars(r)["orderId"]
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.payments.ConfirmOrder(r.Context(), claims.UserID, orderID, body.Success)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListOrders lists the authenticated user's payment orders.
func (h *PaymentHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, pageSize := parsePagination(r)

	orders, total, err := h.payments.ListOrders(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":   orders,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/service"
)

// BookingHandler exposes booking quotes, availability checks and the
// booking lifecycle over HTTP.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Quote resolves availability and pricing for a prospective booking
// without committing anything.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bookings.Quote(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CheckAvailability answers GET /api/bookings/check-availability with a
// single boolean. excludeId lets an extension check skip the booking
// being extended.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	equipmentID, err := strconv.ParseInt(q.Get("equipmentId"), 10, 64)
	if err != nil || equipmentID <= 0 {
		writeError(w, http.StatusBadRequest, "equipmentId is required")
		return
	}
	from, err := parseDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}
	var excludeID int64
	if raw := q.Get("excludeId"); raw != "" {
		excludeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid excludeId")
			return
		}
	}

	available, err := h.bookings.CheckAvailability(r.Context(), equipmentID, from, to, excludeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// UnavailableRanges returns every occupied interval for an equipment so
// clients can grey out dates in the picker.
func (h *BookingHandler) UnavailableRanges(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := pathID(r, "equipmentId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	ranges, err := h.bookings.UnavailableRanges(r.Context(), equipmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranges)
}

// Create books equipment for the authenticated renter.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req service.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.RequestBooking(r.Context(), claims.UserID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// ListUser lists the authenticated renter's bookings, optionally
// filtered by status.
func (h *BookingHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	status := r.URL.Query().Get("status")
	page, pageSize := parsePagination(r)

	bookings, total, err := h.bookings.ListUserBookings(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// Cancel lets the renter cancel one of their own bookings.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	booking, err := h.bookings.CancelBooking(r.Context(), claims.UserID, bookingID, body.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// Track looks a booking up by its public reference. No authentication;
// the reference is the capability.
func (h *BookingHandler) Track(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Reference == "" {
		writeError(w, http.StatusBadRequest, "reference is required")
		return
	}

	booking, err := h.bookings.TrackBooking(r.Context(), body.Reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// RequestExtension asks for a later drop date on a confirmed booking.
func (h *BookingHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		NewDropDate time.Time `json:"new_drop_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewDropDate.IsZero() {
		writeError(w, http.StatusBadRequest, "new_drop_date is required")
		return
	}

	booking, err := h.bookings.RequestExtension(r.Context(), claims.UserID, bookingID, body.NewDropDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListVendor lists bookings for the authenticated vendor's equipment.
func (h *BookingHandler) ListVendor(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	status := r.URL.Query().Get("status")
	page, pageSize := parsePagination(r)

	bookings, total, err := h.bookings.ListVendorBookings(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// UpdateStatus lets a vendor confirm, reject or complete a booking.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), claims.UserID, bookingID, body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ResolveExtension approves or rejects a pending extension request.
func (h *BookingHandler) ResolveExtension(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.ResolveExtension(r.Context(), claims.UserID, bookingID, body.Approve)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

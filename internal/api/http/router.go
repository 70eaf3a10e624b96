package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equiphire-backend/internal/security"
)

// NewRouter wires every API route. Public routes (catalog browsing,
// quotes, availability, tracking) need no token; everything that acts
// on behalf of a user sits behind the bearer-token middleware, and the
// vendor surface additionally requires the vendor role.
func NewRouter(
	tokens security.TokenManager,
	bookingH *BookingHandler,
	equipmentH *EquipmentHandler,
	paymentH *PaymentHandler,
	notificationH *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public catalog and resolver routes.
	api.HandleFunc("/equipments", equipmentH.Search).Methods(http.MethodGet)
	api.HandleFunc("/equipments/{id:[0-9]+}", equipmentH.Get).Methods(http.MethodGet)

	// Equipment management shares the catalog paths but needs a vendor token.
	asVendor := func(h http.HandlerFunc) http.Handler {
		return Authenticate(tokens)(RequireVendor(h))
	}
	api.Handle("/equipments", asVendor(equipmentH.Create)).Methods(http.MethodPost)
	api.Handle("/equipments/{id:[0-9]+}", asVendor(equipmentH.Update)).Methods(http.MethodPut)
	api.Handle("/equipments/{id:[0-9]+}", asVendor(equipmentH.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/quote", bookingH.Quote).Methods(http.MethodPost)
	api.HandleFunc("/bookings/check-availability", bookingH.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/bookings/unavailable/{equipmentId:[0-9]+}", bookingH.UnavailableRanges).Methods(http.MethodGet)
	api.HandleFunc("/bookings/track", bookingH.Track).Methods(http.MethodPost)

	// Authenticated user routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(tokens))
	authed.HandleFunc("/bookings", bookingH.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/user", bookingH.ListUser).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/user/cancel/{id:[0-9]+}", bookingH.Cancel).Methods(http.MethodPut)
	authed.HandleFunc("/bookings/{id:[0-9]+}/extend", bookingH.RequestExtension).Methods(http.MethodPut)
	authed.HandleFunc("/payment/order", paymentH.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/payment/order/{orderId}/confirm", paymentH.ConfirmOrder).Methods(http.MethodPost)
	authed.HandleFunc("/payment/user", paymentH.ListOrders).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", notificationH.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notificationH.MarkAsRead).Methods(http.MethodPut)

	// Vendor routes.
	vendor := api.PathPrefix("/vendor").Subrouter()
	vendor.Use(Authenticate(tokens), RequireVendor)
	vendor.HandleFunc("/equipments", equipmentH.ListVendor).Methods(http.MethodGet)
	vendor.HandleFunc("/bookings", bookingH.ListVendor).Methods(http.MethodGet)
	vendor.HandleFunc("/bookings/{id:[0-9]+}/status", bookingH.UpdateStatus).Methods(http.MethodPut)
	vendor.HandleFunc("/bookings/{id:[0-9]+}/extension", bookingH.ResolveExtension).Methods(http.MethodPut)

	return r
}

package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending       BookingStatus = "PENDING"
	BookingStatusConfirmed     BookingStatus = "CONFIRMED"
	BookingStatusUpdatePending BookingStatus = "UPDATE_PENDING"
	BookingStatusCancelled     BookingStatus = "CANCELLED"
	BookingStatusCompleted     BookingStatus = "COMPLETED"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodUPI    PaymentMethod = "UPI"
)

type Booking struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"`
	EquipmentID int64      `json:"equipment_id"`
	Equipment   *Equipment `json:"equipment,omitempty"` // Populated when fetching booking details
	RenterID    int64      `json:"renter_id"`
	VendorID    int64      `json:"vendor_id"`
	PickupDate  time.Time  `json:"pickup_date"`
	DropDate    time.Time  `json:"drop_date"`
	// RequestedDropDate is set while an extension awaits vendor approval.
	RequestedDropDate *time.Time `json:"requested_drop_date,omitempty"`
	DeliveryAddress   string     `json:"delivery_address"`
	DeliveryLat       *float64   `json:"delivery_lat,omitempty"`
	DeliveryLng       *float64   `json:"delivery_lng,omitempty"`
	// Price snapshot fields — captured from the equipment at booking time.
	// Extensions and reporting use these snapshots, not live equipment prices.
	DayRate       float64       `json:"day_rate"`
	RentalDays    int           `json:"rental_days"`
	BaseCost      float64       `json:"base_cost"`
	TravelCost    float64       `json:"travel_cost"`
	PlatformFee   float64       `json:"platform_fee"`
	TotalCost     float64       `json:"total_cost"`
	ExtensionCost float64       `json:"extension_cost,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        BookingStatus `json:"status"`
	CancelReason  string        `json:"cancel_reason,omitempty"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}

// BookingRange is the occupied interval of one reservation, as consumed by the
// availability check. Both ends are inclusive.
type BookingRange struct {
	BookingID int64         `json:"booking_id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
}

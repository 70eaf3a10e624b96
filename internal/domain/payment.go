package domain

type PaymentOrderStatus string

const (
	PaymentOrderStatusCreated PaymentOrderStatus = "CREATED"
	PaymentOrderStatusPaid    PaymentOrderStatus = "PAID"
	PaymentOrderStatusFailed  PaymentOrderStatus = "FAILED"
	PaymentOrderStatusExpired PaymentOrderStatus = "EXPIRED"
)

type PaymentOrder struct {
	ID               int64              `json:"id"`
	OrderID          string             `json:"order_id"`
	BookingReference string             `json:"booking_reference"`
	UserID           int64              `json:"user_id"`
	Amount           float64            `json:"amount"`
	Currency         string             `json:"currency"`
	Receipt          string             `json:"receipt"`
	Status           PaymentOrderStatus `json:"status"`
	CreatedOn        string             `json:"created_on"`
	UpdatedOn        string             `json:"updated_on"`
}

package domain

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusUnavailable EquipmentStatus = "UNAVAILABLE"
)

type Equipment struct {
	ID          int64  `json:"id"`
	VendorID    int64  `json:"vendor_id"`
	Vendor      *User  `json:"vendor,omitempty"` // Populated when fetching equipment details
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	// DayRate and the delivery tariff are in rupees with paise precision.
	DayRate            float64         `json:"day_rate"`
	BaseLat            float64         `json:"base_lat"`
	BaseLng            float64         `json:"base_lng"`
	PerKmRate          float64         `json:"per_km_rate"`
	BaseDeliveryCharge float64         `json:"base_delivery_charge"`
	ImageURL           string          `json:"image_url"`
	Status             EquipmentStatus `json:"status"`
	CreatedOn          string          `json:"created_on"`
	UpdatedOn          string          `json:"updated_on"`
}

package pricing

import (
	"errors"
	"math"
	"time"

	"equiphire-backend/internal/domain"
)

// Tariff constants shared by every quote.
const (
	// EarthRadiusKm is the fixed radius used by the great-circle distance.
	EarthRadiusKm = 6371.0
	// PlatformFeeRate is the flat marketplace markup applied on base + travel.
	PlatformFeeRate = 0.01

	hoursPerDay = 24.0
)

var (
	// ErrInvalidRange is returned when the requested end is not strictly
	// after the requested start.
	ErrInvalidRange = errors.New("end date must be after start date")
	// ErrInvalidInput is returned for negative rates, non-positive rental
	// days or malformed coordinates.
	ErrInvalidInput = errors.New("invalid pricing input")
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within latitude [-90,90] and
// longitude [-180,180].
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Request carries everything needed to price one rental.
type Request struct {
	DayRate            float64
	Start              time.Time
	End                time.Time
	EquipmentLocation  Coordinate
	DeliveryLocation   *Coordinate // nil means pickup at base, no travel cost
	PerKmRate          float64
	BaseDeliveryCharge float64
}

// Result is the resolver's output. TotalCost always equals
// BaseCost + TravelCost + PlatformFee within currency rounding.
type Result struct {
	RentalDays  int     `json:"rental_days"`
	BaseCost    float64 `json:"base_cost"`
	TravelCost  float64 `json:"travel_cost"`
	PlatformFee float64 `json:"platform_fee"`
	TotalCost   float64 `json:"total_cost"`
	Available   bool    `json:"available"`
}

// RentalDays converts a start/end pair into whole billable days: the elapsed
// duration divided by 24h, rounded up, minimum one day. An end that is not
// strictly after the start is an error, never a silent one-day default.
func RentalDays(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidRange
	}
	days := int(math.Ceil(end.Sub(start).Hours() / hoursPerDay))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// DistanceKm computes the great-circle (haversine) distance between two
// coordinates in kilometers.
func DistanceKm(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// TravelCost computes the delivery surcharge for hauling equipment from its
// base to the delivery site. An absent or invalid coordinate means no
// delivery, hence zero cost. Rounding happens once, at the end.
func TravelCost(equipmentLoc Coordinate, deliveryLoc *Coordinate, perKmRate, baseCharge float64) float64 {
	if deliveryLoc == nil || !equipmentLoc.Valid() || !deliveryLoc.Valid() {
		return 0
	}
	return round2(baseCharge + DistanceKm(equipmentLoc, *deliveryLoc)*perKmRate)
}

// Aggregate combines the duration, day rate and travel surcharge into the
// final payable total, including the platform fee.
func Aggregate(dayRate float64, rentalDays int, travelCost float64) (Result, error) {
	if dayRate < 0 || rentalDays < 1 {
		return Result{}, ErrInvalidInput
	}
	baseCost := round2(dayRate * float64(rentalDays))
	platformFee := round2((baseCost + travelCost) * PlatformFeeRate)
	return Result{
		RentalDays:  rentalDays,
		BaseCost:    baseCost,
		TravelCost:  travelCost,
		PlatformFee: platformFee,
		TotalCost:   round2(baseCost + travelCost + platformFee),
	}, nil
}

// ComputePricing resolves a full quote for the requested range against the
// supplied snapshot of existing reservations. excludeBookingID (zero for
// none) lets a renter re-price their own booking without it conflicting
// with itself. Pure: the caller owns snapshot consistency.
func ComputePricing(req Request, existing []domain.BookingRange, excludeBookingID int64) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	days, err := RentalDays(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	travel := TravelCost(req.EquipmentLocation, req.DeliveryLocation, req.PerKmRate, req.BaseDeliveryCharge)

	result, err := Aggregate(req.DayRate, days, travel)
	if err != nil {
		return nil, err
	}
	result.Available = CheckAvailability(req.Start, req.End, existing, excludeBookingID)
	return &result, nil
}

// CheckAvailability reports whether [start,end] is free of overlap with
// every non-cancelled reservation other than excludeBookingID (zero for
// none). Boundaries are inclusive: a range ending exactly when another
// starts still conflicts, so two renters never share a handoff instant.
func CheckAvailability(start, end time.Time, existing []domain.BookingRange, excludeBookingID int64) bool {
	for _, r := range existing {
		if r.Status == domain.BookingStatusCancelled {
			continue
		}
		if excludeBookingID != 0 && r.BookingID == excludeBookingID {
			continue
		}
		// [s1,e1] and [s2,e2] overlap iff s1 <= e2 && e1 >= s2.
		if !start.After(r.End) && !end.Before(r.Start) {
			return false
		}
	}
	return true
}

func (r Request) validate() error {
	if r.DayRate < 0 || r.PerKmRate < 0 || r.BaseDeliveryCharge < 0 {
		return ErrInvalidInput
	}
	if !r.EquipmentLocation.Valid() {
		return ErrInvalidInput
	}
	if r.DeliveryLocation != nil && !r.DeliveryLocation.Valid() {
		return ErrInvalidInput
	}
	return nil
}

// round2 rounds half away from zero to 2 decimal places. All amounts are
// non-negative, so this matches round-half-up at paise precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

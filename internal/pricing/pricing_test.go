package pricing

import (
	"testing"
	"time"

	"equiphire-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	t.Run("Exact 48 hours", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
		days, err := RentalDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)
		days, err := RentalDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("Less than a day is one day", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
		days, err := RentalDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("End equals start", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		_, err := RentalDays(start, start)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("End before start", func(t *testing.T) {
		start := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		_, err := RentalDays(start, end)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestDistanceKm(t *testing.T) {
	t.Run("Mumbai to Thane", func(t *testing.T) {
		base := Coordinate{Lat: 19.0760, Lng: 72.8777}
		site := Coordinate{Lat: 19.2183, Lng: 72.9781}
		km := DistanceKm(base, site)
		assert.InDelta(t, 19.0, km, 0.1)
	})

	t.Run("Zero distance", func(t *testing.T) {
		p := Coordinate{Lat: 19.0760, Lng: 72.8777}
		assert.InDelta(t, 0, DistanceKm(p, p), 1e-9)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := Coordinate{Lat: 12.9716, Lng: 77.5946}
		b := Coordinate{Lat: 28.7041, Lng: 77.1025}
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	})
}

func TestTravelCost(t *testing.T) {
	base := Coordinate{Lat: 19.0760, Lng: 72.8777}

	t.Run("No delivery location means zero", func(t *testing.T) {
		cost := TravelCost(base, nil, 150, 2000)
		assert.Equal(t, 0.0, cost)
	})

	t.Run("Invalid delivery location means zero", func(t *testing.T) {
		bad := Coordinate{Lat: 91, Lng: 72.9781}
		cost := TravelCost(base, &bad, 150, 2000)
		assert.Equal(t, 0.0, cost)
	})

	t.Run("Base charge plus per-km rate", func(t *testing.T) {
		site := Coordinate{Lat: 19.2183, Lng: 72.9781}
		cost := TravelCost(base, &site, 150, 2000)
		// ~19.02 km great-circle at 150/km on top of the 2000 base charge
		assert.InDelta(t, 4852.3, cost, 1.0)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("Base plus travel plus fee", func(t *testing.T) {
		result, err := Aggregate(5000, 2, 0)
		assert.NoError(t, err)
		assert.Equal(t, 10000.0, result.BaseCost)
		assert.Equal(t, 0.0, result.TravelCost)
		assert.Equal(t, 100.0, result.PlatformFee)
		assert.Equal(t, 10100.0, result.TotalCost)
	})

	t.Run("Fee covers travel cost too", func(t *testing.T) {
		result, err := Aggregate(1000, 3, 500)
		assert.NoError(t, err)
		assert.Equal(t, 3000.0, result.BaseCost)
		assert.Equal(t, 35.0, result.PlatformFee)
		assert.Equal(t, 3535.0, result.TotalCost)
	})

	t.Run("Negative day rate", func(t *testing.T) {
		_, err := Aggregate(-1, 2, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Zero rental days", func(t *testing.T) {
		_, err := Aggregate(5000, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestComputePricing(t *testing.T) {
	base := Coordinate{Lat: 19.0760, Lng: 72.8777}

	t.Run("Two day rental without delivery", func(t *testing.T) {
		req := Request{
			DayRate:           5000,
			Start:             time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			End:               time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
			EquipmentLocation: base,
		}
		result, err := ComputePricing(req, nil, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.RentalDays)
		assert.Equal(t, 10000.0, result.BaseCost)
		assert.Equal(t, 0.0, result.TravelCost)
		assert.Equal(t, 100.0, result.PlatformFee)
		assert.Equal(t, 10100.0, result.TotalCost)
		assert.True(t, result.Available)
	})

	t.Run("Total equals sum of parts", func(t *testing.T) {
		site := Coordinate{Lat: 19.2183, Lng: 72.9781}
		req := Request{
			DayRate:            3200,
			Start:              date(2024, 3, 4),
			End:                date(2024, 3, 11),
			EquipmentLocation:  base,
			DeliveryLocation:   &site,
			PerKmRate:          150,
			BaseDeliveryCharge: 2000,
		}
		result, err := ComputePricing(req, nil, 0)
		assert.NoError(t, err)
		assert.InDelta(t, result.BaseCost+result.TravelCost+result.PlatformFee, result.TotalCost, 0.01)
	})

	t.Run("Idempotent", func(t *testing.T) {
		req := Request{
			DayRate:           750,
			Start:             date(2024, 5, 1),
			End:               date(2024, 5, 4),
			EquipmentLocation: base,
		}
		first, err := ComputePricing(req, nil, 0)
		assert.NoError(t, err)
		second, err := ComputePricing(req, nil, 0)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("End equals start", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		req := Request{DayRate: 5000, Start: at, End: at, EquipmentLocation: base}
		_, err := ComputePricing(req, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("Malformed equipment coordinates", func(t *testing.T) {
		req := Request{
			DayRate:           5000,
			Start:             date(2024, 1, 1),
			End:               date(2024, 1, 3),
			EquipmentLocation: Coordinate{Lat: 19.0760, Lng: 200},
		}
		_, err := ComputePricing(req, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Conflicting reservation flips availability only", func(t *testing.T) {
		req := Request{
			DayRate:           5000,
			Start:             date(2024, 2, 12),
			End:               date(2024, 2, 14),
			EquipmentLocation: base,
		}
		existing := []domain.BookingRange{
			{BookingID: 7, Start: date(2024, 2, 10), End: date(2024, 2, 15), Status: domain.BookingStatusConfirmed},
		}
		result, err := ComputePricing(req, existing, 0)
		assert.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, 10100.0, result.TotalCost)
	})
}

func TestCheckAvailability(t *testing.T) {
	confirmed := func(id int64, start, end time.Time) domain.BookingRange {
		return domain.BookingRange{BookingID: id, Start: start, End: end, Status: domain.BookingStatusConfirmed}
	}

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		existing  []domain.BookingRange
		excludeID int64
		expected  bool
	}{
		{
			name:     "No existing reservations",
			start:    date(2024, 2, 15),
			end:      date(2024, 2, 18),
			expected: true,
		},
		{
			name:     "Disjoint ranges",
			start:    date(2024, 2, 16),
			end:      date(2024, 2, 18),
			existing: []domain.BookingRange{confirmed(1, date(2024, 2, 10), date(2024, 2, 15))},
			expected: true,
		},
		{
			name:     "Touching boundary conflicts",
			start:    date(2024, 2, 15),
			end:      date(2024, 2, 18),
			existing: []domain.BookingRange{confirmed(1, date(2024, 2, 10), date(2024, 2, 15))},
			expected: false,
		},
		{
			name:     "Contained range conflicts",
			start:    date(2024, 2, 11),
			end:      date(2024, 2, 13),
			existing: []domain.BookingRange{confirmed(1, date(2024, 2, 10), date(2024, 2, 15))},
			expected: false,
		},
		{
			name:  "Cancelled reservation never blocks",
			start: date(2024, 2, 15),
			end:   date(2024, 2, 18),
			existing: []domain.BookingRange{
				{BookingID: 1, Start: date(2024, 2, 10), End: date(2024, 2, 15), Status: domain.BookingStatusCancelled},
			},
			expected: true,
		},
		{
			name:  "Pending reservation blocks",
			start: date(2024, 2, 12),
			end:   date(2024, 2, 13),
			existing: []domain.BookingRange{
				{BookingID: 1, Start: date(2024, 2, 10), End: date(2024, 2, 15), Status: domain.BookingStatusPending},
			},
			expected: false,
		},
		{
			name:      "Self exclusion on exact match",
			start:     date(2024, 2, 10),
			end:       date(2024, 2, 15),
			existing:  []domain.BookingRange{confirmed(42, date(2024, 2, 10), date(2024, 2, 15))},
			excludeID: 42,
			expected:  true,
		},
		{
			name:      "Exclusion skips only the named booking",
			start:     date(2024, 2, 10),
			end:       date(2024, 2, 20),
			existing:  []domain.BookingRange{confirmed(42, date(2024, 2, 10), date(2024, 2, 15)), confirmed(43, date(2024, 2, 18), date(2024, 2, 22))},
			excludeID: 42,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAvailability(tt.start, tt.end, tt.existing, tt.excludeID)
			assert.Equal(t, tt.expected, got)
		})
	}
}
